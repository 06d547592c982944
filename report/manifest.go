package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvlattice/config"
)

// Entry records the outcome of one configuration in a batch.
type Entry struct {
	UID       int     `yaml:"uid"`
	ID        string  `yaml:"id"`
	Input     string  `yaml:"input"`
	Output    string  `yaml:"output,omitempty"`
	Plaquette float64 `yaml:"plaquette,omitempty"`
	Elapsed   float64 `yaml:"elapsed_seconds"`
	Error     string  `yaml:"error,omitempty"`
}

// Failed reports whether the entry's analysis failed.
func (e Entry) Failed() bool { return e.Error != "" }

// Manifest summarises a batch run.
type Manifest struct {
	RunID   string        `yaml:"run_id"`
	Created time.Time     `yaml:"created"`
	Mode    string        `yaml:"mode"`
	Config  config.Config `yaml:"config"`
	Entries []Entry       `yaml:"entries"`
}

// Failures counts failed entries.
func (m *Manifest) Failures() int {
	var n int
	for _, e := range m.Entries {
		if e.Failed() {
			n++
		}
	}

	return n
}

// WriteManifest stores m as YAML at path.
func WriteManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("report: marshal manifest: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("report: write manifest: %w", err)
	}

	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("report: read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("report: parse manifest %s: %w", path, err)
	}

	return &m, nil
}
