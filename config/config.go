package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/katalvlaran/lvlattice/diag"
	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/katalvlaran/lvlattice/su3"
)

// ErrInvalidConfig indicates a value that failed validation.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Built-in defaults: the production 24³×48 ensemble and a short sweep.
const (
	DefaultInput     = "./Data/SU3_24_24_24_48_6.2000_1000_PHB_4_OR_7_dp.bin"
	DefaultOutput    = "Output/wilson.csv"
	DefaultShape     = "24,24,24,48"
	DefaultRMax      = 4
	DefaultTMax      = 6
	DefaultVerbose   = 1
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config is the resolved run configuration.
type Config struct {
	Input      string  `mapstructure:"input" yaml:"input"`
	Output     string  `mapstructure:"output" yaml:"output"`
	Shape      string  `mapstructure:"shape" yaml:"shape"`
	RMax       int     `mapstructure:"r_max" yaml:"r_max"`
	TMax       int     `mapstructure:"t_max" yaml:"t_max"`
	Parallel   bool    `mapstructure:"parallel" yaml:"parallel"`
	Workers    int     `mapstructure:"workers" yaml:"workers"`
	Jackknife  bool    `mapstructure:"jackknife" yaml:"jackknife"`
	Plot       string  `mapstructure:"plot" yaml:"plot,omitempty"`
	ReadLimit  int     `mapstructure:"read_limit" yaml:"read_limit"` // > 0: inspect that many links and stop
	Verbose    int     `mapstructure:"verbose" yaml:"verbose"`
	Trace      string  `mapstructure:"trace" yaml:"trace,omitempty"` // comma-separated channels; overrides Verbose
	Tolerance  float64 `mapstructure:"tolerance" yaml:"tolerance"`
	LogLevel   string  `mapstructure:"log_level" yaml:"log_level"`
	LogFormat  string  `mapstructure:"log_format" yaml:"log_format"`
	BatchLimit int     `mapstructure:"batch_limit" yaml:"batch_limit"` // 0: every file
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Input:     DefaultInput,
		Output:    DefaultOutput,
		Shape:     DefaultShape,
		RMax:      DefaultRMax,
		TMax:      DefaultTMax,
		Verbose:   DefaultVerbose,
		Tolerance: su3.DefaultTolerance,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate reports every problem at once; each joined error matches
// ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.LatticeShape(); err != nil {
		errs = append(errs, invalid("shape: %v", err))
	}
	if c.RMax < 1 {
		errs = append(errs, invalid("r_max must be at least 1, got %d", c.RMax))
	}
	if c.TMax < 1 {
		errs = append(errs, invalid("t_max must be at least 1, got %d", c.TMax))
	}
	if c.Workers < 0 {
		errs = append(errs, invalid("workers must not be negative, got %d", c.Workers))
	}
	if c.ReadLimit < 0 {
		errs = append(errs, invalid("read_limit must not be negative, got %d", c.ReadLimit))
	}
	if c.BatchLimit < 0 {
		errs = append(errs, invalid("batch_limit must not be negative, got %d", c.BatchLimit))
	}
	if c.Verbose < 0 || c.Verbose > 2 {
		errs = append(errs, invalid("verbose must be 0, 1 or 2, got %d", c.Verbose))
	}
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 1) {
		errs = append(errs, invalid("tolerance must be finite and positive, got %g", c.Tolerance))
	}
	if _, err := c.TraceSet(); err != nil {
		errs = append(errs, invalid("trace: %v", err))
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, invalid("log_format must be text or json, got %q", c.LogFormat))
	}
	if c.Parallel && c.Jackknife {
		errs = append(errs, invalid("jackknife needs the sequential sample; drop parallel"))
	}

	return errors.Join(errs...)
}

// LatticeShape parses Shape.
func (c *Config) LatticeShape() (lattice.Shape, error) {
	return lattice.ParseShape(c.Shape)
}

// TraceSet resolves the enabled trace channels: an explicit Trace list wins,
// otherwise the Verbose level decides.
func (c *Config) TraceSet() (diag.Set, error) {
	if strings.TrimSpace(c.Trace) == "" {
		return diag.ForVerbosity(c.Verbose), nil
	}

	return diag.ParseChannels(strings.Split(c.Trace, ","))
}

// DiagContext builds the logger and execution context for a run.
func (c *Config) DiagContext(w io.Writer) (*diag.Context, error) {
	set, err := c.TraceSet()
	if err != nil {
		return nil, fmt.Errorf("%w: trace: %w", ErrInvalidConfig, err)
	}

	return diag.NewContext(diag.NewLogger(w, c.LogLevel, c.LogFormat, set), set), nil
}
