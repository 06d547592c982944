package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ErrNoRows indicates a plot request without data.
var ErrNoRows = errors.New("report: no rows to plot")

// errorPoints is an XY series with symmetric error bars.
type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// Plot draws <W(R,T)> against T with one line per R and saves it to path;
// the extension picks the format (.png, .svg, .pdf). Jackknife errors are
// drawn as error bars when mode is Jackknife.
func Plot(path string, mode Mode, rows []Row) error {
	if len(rows) == 0 {
		return ErrNoRows
	}

	byR := make(map[int][]Row)
	for _, r := range rows {
		byR[r.R] = append(byR[r.R], r)
	}
	rs := make([]int, 0, len(byR))
	for r := range byR {
		rs = append(rs, r)
	}
	sort.Ints(rs)

	p := plot.New()
	p.Title.Text = "Wilson loops"
	p.X.Label.Text = "T"
	p.Y.Label.Text = "<W(R,T)>"
	p.Add(plotter.NewGrid())

	for i, r := range rs {
		series := byR[r]
		sort.Slice(series, func(a, b int) bool { return series[a].T < series[b].T })

		pts := make(plotter.XYs, len(series))
		errs := make(plotter.YErrors, len(series))
		for j, row := range series {
			pts[j] = plotter.XY{X: float64(row.T), Y: row.Mean}
			errs[j].Low = row.Jack.StdErr
			errs[j].High = row.Jack.StdErr
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return fmt.Errorf("report: plot R=%d: %w", r, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)
		p.Add(line, points)
		p.Legend.Add(fmt.Sprintf("R=%d", r), line, points)

		if mode == Jackknife {
			bars, err := plotter.NewYErrorBars(errorPoints{XYs: pts, YErrors: errs})
			if err != nil {
				return fmt.Errorf("report: plot R=%d error bars: %w", r, err)
			}
			bars.Color = plotutil.Color(i)
			p.Add(bars)
		}
	}
	p.Legend.Top = true

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}
	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("report: save plot %s: %w", path, err)
	}

	return nil
}
