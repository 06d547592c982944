package analysis

import (
	"fmt"
	"io"

	"github.com/katalvlaran/lvlattice/config"
	"github.com/katalvlaran/lvlattice/diag"
	"github.com/katalvlaran/lvlattice/gauge"
)

// InspectFile reads the first limit links of path, validates each and prints
// them to out. The records read before a failing link are printed too.
func InspectFile(cfg *config.Config, dctx *diag.Context, path string, limit int, out io.Writer) ([]gauge.LinkRecord, error) {
	shape, err := cfg.LatticeShape()
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	rc, err := gauge.OpenStream(path)
	if err != nil {
		return nil, fmt.Errorf("analysis: inspect: %w", err)
	}
	defer rc.Close()

	recs, err := gauge.Inspect(rc, shape, limit, gauge.WithTolerance(cfg.Tolerance), gauge.WithContext(dctx))
	if perr := PrintRecords(out, recs); perr != nil {
		return recs, perr
	}
	if err != nil {
		return recs, fmt.Errorf("analysis: inspect %s: %w", path, err)
	}

	return recs, nil
}

// PrintRecords writes one block per link: a header line with position and
// determinant, then the matrix.
func PrintRecords(w io.Writer, recs []gauge.LinkRecord) error {
	for _, r := range recs {
		if _, err := fmt.Fprintf(w, "link %d at %s dir %s det %v\n%s", r.Link, r.Site, r.Direction, r.Deviation.Det, r.Matrix); err != nil {
			return fmt.Errorf("analysis: print: %w", err)
		}
	}

	return nil
}
