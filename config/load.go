package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "LATTICE"

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"input":       "input",
	"output":      "output",
	"shape":       "shape",
	"r-max":       "r_max",
	"t-max":       "t_max",
	"parallel":    "parallel",
	"workers":     "workers",
	"jackknife":   "jackknife",
	"plot":        "plot",
	"debug":       "read_limit",
	"verbose":     "verbose",
	"trace":       "trace",
	"tolerance":   "tolerance",
	"log-level":   "log_level",
	"log-format":  "log_format",
	"batch-limit": "batch_limit",
}

// New returns a viper instance with defaults registered and environment
// lookup enabled.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	return v
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("input", d.Input)
	v.SetDefault("output", d.Output)
	v.SetDefault("shape", d.Shape)
	v.SetDefault("r_max", d.RMax)
	v.SetDefault("t_max", d.TMax)
	v.SetDefault("parallel", d.Parallel)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("jackknife", d.Jackknife)
	v.SetDefault("plot", d.Plot)
	v.SetDefault("read_limit", d.ReadLimit)
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("trace", d.Trace)
	v.SetDefault("tolerance", d.Tolerance)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("batch_limit", d.BatchLimit)
}

// ReadFile merges the YAML file at path into v.
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	return nil
}

// LoadDotEnv exports the variables of each .env file into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: dotenv %s: %w", p, err)
		}
	}

	return nil
}

// BindFlags binds every known flag present in flags to its key.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("config: bind --%s: %w", name, err)
		}
	}

	return nil
}

// Load unmarshals v into a Config and validates it.
func Load(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}
