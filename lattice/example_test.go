package lattice_test

import (
	"fmt"

	"github.com/katalvlaran/lvlattice/lattice"
)

// ExampleGrid_MovePoint walks off both edges of a 4×4×4×8 torus.
func ExampleGrid_MovePoint() {
	g := lattice.MustGrid(lattice.Shape{4, 4, 4, 8})
	s := lattice.Site{0, 0, 0, 7}

	fmt.Println(g.MovePoint(s, lattice.T, 1))
	fmt.Println(g.MovePoint(s, lattice.X, -1))
	fmt.Println(g.MovePoint(s, lattice.X, 4))
	// Output:
	// (0, 0, 0, 0)
	// (3, 0, 0, 7)
	// (0, 0, 0, 7)
}
