package stats

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

const (
	opMean      = "Mean"
	opPopStdDev = "PopStdDev"
	opSummarize = "Summarize"
)

// Summary is the (N, mean, population std) triple written per (R, T) row.
type Summary struct {
	N    int
	Mean float64
	Std  float64
}

func (s Summary) String() string {
	return fmt.Sprintf("n=%d mean=%g std=%g", s.N, s.Mean, s.Std)
}

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) (float64, error) {
	if err := requireN(opMean, xs, 1); err != nil {
		return 0, err
	}

	return stat.Mean(xs, nil), nil
}

// PopStdDev returns sqrt(Σ(x-mean)²/n), the population standard deviation.
func PopStdDev(xs []float64) (float64, error) {
	if err := requireN(opPopStdDev, xs, 1); err != nil {
		return 0, err
	}
	_, std := stat.PopMeanStdDev(xs, nil)

	return std, nil
}

// Summarize computes mean and population standard deviation in one call.
func Summarize(xs []float64) (Summary, error) {
	if err := requireN(opSummarize, xs, 1); err != nil {
		return Summary{}, err
	}
	mean, std := stat.PopMeanStdDev(xs, nil)

	return Summary{N: len(xs), Mean: mean, Std: std}, nil
}
