package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlattice/config"
	"github.com/katalvlaran/lvlattice/gauge"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

// fixture writes a free-field configuration of shape 2x2x2x2 into a temp dir.
func fixture(t *testing.T) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "free.bin")
	_, _, err := execute(t, "generate", path, "--shape", "2,2,2,2", "-v", "0")
	require.NoError(t, err)

	return dir, path
}

func TestHelp(t *testing.T) {
	out, _, err := execute(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "--r-max")
}

func TestMalformedArguments(t *testing.T) {
	_, stderr, err := execute(t, "--no-such-flag")
	assert.Error(t, err)
	assert.Contains(t, stderr, "unknown flag")

	_, _, err = execute(t, "stray-positional")
	assert.Error(t, err)

	_, _, err = execute(t, "batch", "only-one-dir")
	assert.Error(t, err)
}

func TestInvalidConfig(t *testing.T) {
	_, _, err := execute(t, "--r-max", "0")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestSweep(t *testing.T) {
	dir, path := fixture(t)
	out := filepath.Join(dir, "res", "w.csv")

	_, _, err := execute(t, "-i", path, "-o", out, "--shape", "2,2,2,2", "--r-max", "1", "--t-max", "2", "-v", "0")
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "R,T,Mean,Std\n1,1,1,0\n1,2,1,0\n", string(data))
}

func TestSweep_ParallelFromConfigFile(t *testing.T) {
	dir, path := fixture(t)
	out := filepath.Join(dir, "p.csv")
	yml := filepath.Join(dir, "wilson.yaml")
	require.NoError(t, os.WriteFile(yml, []byte("shape: 2,2,2,2\nr_max: 2\nt_max: 1\nparallel: true\nverbose: 0\n"), 0o600))

	_, _, err := execute(t, "--config", yml, "-i", path, "-o", out)
	require.NoError(t, err)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "R,T,Mean\n1,1,1\n2,1,1\n", string(data))
}

func TestReadLimit(t *testing.T) {
	dir, path := fixture(t)
	out := filepath.Join(dir, "never.csv")

	stdout, _, err := execute(t, "-i", path, "-o", out, "--shape", "2,2,2,2", "-d", "2")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(stdout, "link "))
	assert.NoFileExists(t, out)
}

func TestInspect(t *testing.T) {
	_, path := fixture(t)
	stdout, _, err := execute(t, "inspect", path, "--shape", "2,2,2,2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "link 0 at (0, 0, 0, 0) dir x det (1+0i)\n"))
	assert.Equal(t, 1, strings.Count(stdout, "link "))
}

func TestPlaquette(t *testing.T) {
	_, path := fixture(t)
	stdout, _, err := execute(t, "plaquette", path, "--shape", "2,2,2,2", "-v", "0")
	require.NoError(t, err)
	assert.Equal(t, "1.0000000000000000\n", stdout)
}

func TestLoadFailureIsLogged(t *testing.T) {
	_, path := fixture(t)
	stdout, stderr, err := execute(t, "plaquette", path, "--shape", "2,2,2,3", "-v", "0")
	require.ErrorIs(t, err, gauge.ErrShapeMismatch)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "plaquette failed")
	assert.NotContains(t, stderr, "Usage:")
}

func TestBatch(t *testing.T) {
	dir, _ := fixture(t)
	results := filepath.Join(dir, "results")

	stdout, _, err := execute(t, "batch", dir, results, "--shape", "2,2,2,2", "--r-max", "1", "--t-max", "1", "-v", "0")
	require.NoError(t, err)
	assert.Equal(t, "1 configurations, 0 failed\n", stdout)
	assert.FileExists(t, filepath.Join(results, "0.csv"))
	assert.FileExists(t, filepath.Join(results, "manifest.yaml"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "zz.bin"), []byte("short"), 0o600))
	stdout, _, err = execute(t, "batch", dir, results, "--shape", "2,2,2,2", "--r-max", "1", "--t-max", "1", "-v", "0")
	assert.Error(t, err)
	assert.Equal(t, "2 configurations, 1 failed\n", stdout)
}

func TestGenerate_Random(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hot.bin.gz")
	_, _, err := execute(t, "generate", path, "--kind", "random", "--seed", "3", "--shape", "2,2,2,2", "-v", "0")
	require.NoError(t, err)

	stdout, _, err := execute(t, "plaquette", path, "--shape", "2,2,2,2", "-v", "0")
	require.NoError(t, err)
	assert.NotEqual(t, "1.0000000000000000\n", stdout)

	_, _, err = execute(t, "generate", path, "--kind", "lukewarm", "-v", "0")
	assert.ErrorContains(t, err, "unknown fixture kind")
}
