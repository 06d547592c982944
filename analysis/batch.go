package analysis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvlattice/config"
	"github.com/katalvlaran/lvlattice/diag"
	"github.com/katalvlaran/lvlattice/report"
	"github.com/katalvlaran/lvlattice/stats"
)

// ManifestName is the manifest file written into a batch output directory.
const ManifestName = "manifest.yaml"

// ErrNoInputs indicates a batch directory without configuration files.
var ErrNoInputs = errors.New("analysis: no configuration files found")

var inputSuffixes = []string{".bin", ".bin.gz", ".bin.zst"}

// FindInputs lists the configuration files in dir in lexical order, at most
// limit of them when limit > 0.
func FindInputs(dir string, limit int) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		for _, suf := range inputSuffixes {
			if strings.HasSuffix(e.Name(), suf) {
				out = append(out, filepath.Join(dir, e.Name()))
				break
			}
		}
	}
	sort.Strings(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

// Batch analyses every configuration in inDir, writing <uid>.csv per input
// and a manifest into outDir. Inputs run concurrently, cfg.Workers at a time.
// A failing input is recorded in its manifest entry and does not stop the
// others; the returned error is non-nil only when the batch itself could not
// run.
func Batch(ctx context.Context, cfg *config.Config, dctx *diag.Context, inDir, outDir string) (*report.Manifest, error) {
	dctx = diag.Resolve(dctx)
	log := dctx.Logger("batch")

	inputs, err := FindInputs(inDir, cfg.BatchLimit)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoInputs, inDir)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	log.WithField("inputs", len(inputs)).Infof("running over %d samples", len(inputs))

	// each job runs its sweep single-threaded; parallelism is across inputs
	jobCfg := *cfg
	workers := stats.Workers(cfg.Workers)
	jobCfg.Workers = 1

	m := &report.Manifest{
		RunID:   dctx.RunID().String(),
		Created: time.Now().UTC(),
		Mode:    ModeFor(cfg).String(),
		Config:  *cfg,
		Entries: make([]report.Entry, len(inputs)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for uid, input := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			id := uuid.New()
			jctx := dctx.With("job", id.String())
			entry := report.Entry{UID: uid, ID: id.String(), Input: input}

			res, err := Analyze(gctx, &jobCfg, jctx, input)
			if err == nil {
				entry.Output = filepath.Join(outDir, strconv.Itoa(uid)+".csv")
				err = res.Write(entry.Output, "")
				entry.Plaquette = res.Plaquette
				entry.Elapsed = res.Elapsed.Seconds()
			}
			if err != nil {
				entry.Error = err.Error()
				entry.Output = ""
				jctx.Logger("batch").WithError(err).Error("analysis failed")
			}

			m.Entries[uid] = entry

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis: batch: %w", err)
	}

	if err := report.WriteManifest(filepath.Join(outDir, ManifestName), m); err != nil {
		return m, err
	}
	log.WithField("failures", m.Failures()).Info("batch complete")

	return m, nil
}
