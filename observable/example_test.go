package observable_test

import (
	"fmt"

	"github.com/katalvlaran/lvlattice/gauge"
	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/katalvlaran/lvlattice/observable"
)

func ExampleEvaluator_OverallMeanWilsonLoop() {
	cfg, _ := gauge.Identity(lattice.Shape{2, 2, 2, 4})
	e := observable.New(cfg)

	sum, _ := e.OverallMeanWilsonLoop(1, 2)
	fmt.Println(sum)
	fmt.Println(e.OverallPlaquetteMean())
	// Output:
	// n=96 mean=1 std=0
	// 1
}
