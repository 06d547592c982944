package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvlattice/analysis"
	"github.com/katalvlaran/lvlattice/gauge"
	"github.com/katalvlaran/lvlattice/observable"
)

// inputArg returns the optional positional input, falling back to --input.
func (a *app) inputArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}

	return a.cfg.Input
}

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [file]",
		Short: "Print and validate the first links of a configuration",
		Long: `inspect reads the first N links (-d N, default 1) in stream order, checks
each determinant and prints the link with its site and direction.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.wrap(func(_ *cobra.Command, args []string) error {
			limit := a.cfg.ReadLimit
			if limit == 0 {
				limit = 1
			}
			_, err := analysis.InspectFile(a.cfg, a.dctx, a.inputArg(args), limit, a.stdout)
			return err
		}),
	}
}

func newPlaquetteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "plaquette [file]",
		Short: "Print the lattice-averaged plaquette",
		Args:  cobra.MaximumNArgs(1),
		RunE: a.wrap(func(_ *cobra.Command, args []string) error {
			shape, err := a.cfg.LatticeShape()
			if err != nil {
				return err
			}
			lat, err := gauge.Load(a.inputArg(args), shape,
				gauge.WithTolerance(a.cfg.Tolerance), gauge.WithContext(a.dctx))
			if err != nil {
				return err
			}
			mean := observable.New(lat, observable.WithContext(a.dctx)).OverallPlaquetteMean()
			_, err = fmt.Fprintf(a.stdout, "%.16f\n", mean)
			return err
		}),
	}
}

func newBatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "batch <input-dir> <output-dir>",
		Short: "Analyse every configuration in a directory",
		Long: `batch runs the sweep on each *.bin, *.bin.gz and *.bin.zst file of
input-dir (the first --batch-limit files when set), --workers at a time, and
writes <uid>.csv per file plus ` + analysis.ManifestName + ` into output-dir.`,
		Args: cobra.ExactArgs(2),
		RunE: a.wrap(func(cmd *cobra.Command, args []string) error {
			m, err := analysis.Batch(cmd.Context(), a.cfg, a.dctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%d configurations, %d failed\n", len(m.Entries), m.Failures())
			if n := m.Failures(); n > 0 {
				return fmt.Errorf("batch: %d of %d configurations failed", n, len(m.Entries))
			}
			return nil
		}),
	}
}

func newGenerateCmd(a *app) *cobra.Command {
	var (
		kind   string
		seed   int64
		spread float64
	)
	cmd := &cobra.Command{
		Use:   "generate <file>",
		Short: "Write a synthetic configuration of --shape",
		Long: `generate writes an identity (free field), random (Haar) or smooth
(links near the identity) configuration. Every link passes the default
determinant tolerance, so the file loads without --tolerance.`,
		Args: cobra.ExactArgs(1),
		RunE: a.wrap(func(_ *cobra.Command, args []string) error {
			shape, err := a.cfg.LatticeShape()
			if err != nil {
				return err
			}
			cfg, err := analysis.Generate(args[0], shape, kind, seed, spread)
			if err != nil {
				return err
			}
			a.dctx.Logger("wilson").WithField("path", args[0]).
				Infof("wrote %s configuration with %d links", kind, cfg.NumLinks())
			return nil
		}),
	}
	cmd.Flags().StringVar(&kind, "kind", analysis.KindIdentity, "identity, random or smooth")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().Float64Var(&spread, "spread", 0.1, "smooth: maximal phase of each link")

	return cmd
}
