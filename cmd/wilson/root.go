package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvlattice/analysis"
	"github.com/katalvlaran/lvlattice/config"
	"github.com/katalvlaran/lvlattice/diag"
)

// app carries the resolved configuration from PersistentPreRunE to the
// command bodies.
type app struct {
	stdout, stderr io.Writer
	configPath     string
	cfg            *config.Config
	dctx           *diag.Context
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}
	d := config.Default()

	root := &cobra.Command{
		Use:   "wilson",
		Short: "Plaquette and Wilson loop analysis of SU(3) lattice configurations",
		Long: `wilson loads a binary SU(3) gauge configuration, checks every link for
special unitarity and sweeps the lattice-averaged Wilson loop <W(R,T)> over
R = 1..r-max and T = 1..t-max, writing one CSV row per (R,T).

Settings come from defaults, an optional YAML file (--config), a .env file,
LATTICE_* environment variables and flags, in increasing precedence.`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setup,
		RunE: a.wrap(func(cmd *cobra.Command, _ []string) error {
			return analysis.Run(cmd.Context(), a.cfg, a.dctx, a.stdout)
		}),
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "YAML configuration file")
	f.StringP("input", "i", d.Input, "input configuration (.bin, .bin.gz or .bin.zst)")
	f.StringP("output", "o", d.Output, "output CSV file")
	f.String("shape", d.Shape, "lattice extents Lx,Ly,Lz,Lt")
	f.Int("r-max", d.RMax, "largest spatial extent R of the sweep")
	f.Int("t-max", d.TMax, "largest temporal extent T of the sweep")
	f.Bool("parallel", d.Parallel, "use the parallel reduction (mean only)")
	f.Int("workers", d.Workers, "worker goroutines, 0 for one per CPU")
	f.Bool("jackknife", d.Jackknife, "add jackknife estimate and error columns")
	f.String("plot", d.Plot, "also plot <W(R,T)> to this file (.png, .svg, .pdf)")
	f.IntP("debug", "d", d.ReadLimit, "read-limit: inspect the first N links and stop, 0 for a full run")
	f.IntP("verbose", "v", d.Verbose, "trace level: 0 none, 1 load, 2 all channels")
	f.String("trace", d.Trace, "comma-separated trace channels (load,link,plaquette,wilson,stats,all)")
	f.Float64("tolerance", d.Tolerance, "relative tolerance of the determinant check")
	f.String("log-level", d.LogLevel, "log level (debug, info, warn, error)")
	f.String("log-format", d.LogFormat, "log format (text, json)")
	f.Int("batch-limit", d.BatchLimit, "batch: analyse only the first N files, 0 for all")

	root.AddCommand(
		newInspectCmd(a),
		newPlaquetteCmd(a),
		newBatchCmd(a),
		newGenerateCmd(a),
	)

	return root
}

// setup resolves the configuration once flags are parsed.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	v := config.New()
	if a.configPath != "" {
		if err := config.ReadFile(v, a.configPath); err != nil {
			return err
		}
	}
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		return err
	}
	dctx, err := cfg.DiagContext(a.stderr)
	if err != nil {
		return err
	}
	a.cfg, a.dctx = cfg, dctx

	// arguments were fine; from here on failures are logged, not usage errors
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	return nil
}

// wrap logs a failing command body before handing the error to cobra.
func (a *app) wrap(fn func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err != nil {
			a.dctx.Logger("wilson").WithError(err).Error(fmt.Sprintf("%s failed", cmd.Name()))
		}
		return err
	}
}
