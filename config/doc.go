// Package config resolves the run configuration of the wilson tool.
//
// Values are layered, lowest precedence first: built-in defaults, an
// optional YAML file, variables from a .env file, LATTICE_* environment
// variables and finally command-line flags. Keys are flat snake_case
// ("r_max"); the matching environment variable is LATTICE_R_MAX and the
// matching flag is --r-max.
package config
