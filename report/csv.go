package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/katalvlaran/lvlattice/stats"
)

// Mode selects the columns of the sweep table.
type Mode int

const (
	// Sequential writes R,T,Mean,Std.
	Sequential Mode = iota
	// Parallel writes R,T,Mean; the parallel reduction has no spread.
	Parallel
	// Jackknife writes R,T,Mean,Std,JackEstimate,JackErr.
	Jackknife
)

// Header returns the CSV header of m.
func (m Mode) Header() []string {
	switch m {
	case Parallel:
		return []string{"R", "T", "Mean"}
	case Jackknife:
		return []string{"R", "T", "Mean", "Std", "JackEstimate", "JackErr"}
	default:
		return []string{"R", "T", "Mean", "Std"}
	}
}

func (m Mode) String() string {
	switch m {
	case Parallel:
		return "parallel"
	case Jackknife:
		return "jackknife"
	default:
		return "sequential"
	}
}

// Row is one swept (R, T) pair. Fields a mode does not print are ignored.
type Row struct {
	R, T int
	Mean float64
	Std  float64
	Jack stats.JackknifeResult
}

// CSVWriter writes sweep rows in the column layout of its mode.
type CSVWriter struct {
	w      *csv.Writer
	mode   Mode
	header bool
}

// NewCSVWriter wraps w.
func NewCSVWriter(w io.Writer, mode Mode) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w), mode: mode}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteRow writes r, preceded by the header on the first call.
func (c *CSVWriter) WriteRow(r Row) error {
	if !c.header {
		if err := c.w.Write(c.mode.Header()); err != nil {
			return fmt.Errorf("report: csv header: %w", err)
		}
		c.header = true
	}
	rec := []string{strconv.Itoa(r.R), strconv.Itoa(r.T), formatFloat(r.Mean)}
	switch c.mode {
	case Sequential:
		rec = append(rec, formatFloat(r.Std))
	case Jackknife:
		rec = append(rec, formatFloat(r.Std), formatFloat(r.Jack.Estimate), formatFloat(r.Jack.StdErr))
	}
	if err := c.w.Write(rec); err != nil {
		return fmt.Errorf("report: csv row R=%d T=%d: %w", r.R, r.T, err)
	}

	return nil
}

// Flush writes buffered rows; an empty table still gets its header.
func (c *CSVWriter) Flush() error {
	if !c.header {
		if err := c.w.Write(c.mode.Header()); err != nil {
			return fmt.Errorf("report: csv header: %w", err)
		}
		c.header = true
	}
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		return fmt.Errorf("report: csv flush: %w", err)
	}

	return nil
}

// WriteCSV writes rows as one table.
func WriteCSV(w io.Writer, mode Mode, rows []Row) error {
	cw := NewCSVWriter(w, mode)
	for _, r := range rows {
		if err := cw.WriteRow(r); err != nil {
			return err
		}
	}

	return cw.Flush()
}

// WriteCSVFile writes rows to path, creating parent directories.
func WriteCSVFile(path string, mode Mode, rows []Row) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("report: %w", cerr)
		}
	}()

	return WriteCSV(f, mode, rows)
}
