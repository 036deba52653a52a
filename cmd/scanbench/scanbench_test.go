package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intel/forGoScan/bench"
)

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scanbench.hujson")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// leaves of 4k elements
		"grain": 4096,
		"threads": 3, // trailing comma next
	}`), 0o600))

	v := viper.New()
	require.NoError(t, loadConfigFile(v, path))
	assert.Equal(t, 4096, v.GetInt("grain"))
	assert.Equal(t, 3, v.GetInt("threads"))
}

func TestLoadConfigFileErrors(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, loadConfigFile(viper.New(), filepath.Join(dir, "missing.hujson")))

	broken := filepath.Join(dir, "broken.hujson")
	require.NoError(t, os.WriteFile(broken, []byte(`{"grain": `), 0o600))
	assert.Error(t, loadConfigFile(viper.New(), broken))
}

func TestRunCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "results.json")
	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{
		"run", "--size", "4096", "--threads", "2", "--grain", "256", "--runs", "2",
		"--out", out, bench.Scan, bench.ScanRatio,
	})
	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 2)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var results []bench.Result
	require.NoError(t, json.Unmarshal(data, &results))
	require.Len(t, results, 2)
	assert.Equal(t, bench.Scan, results[0].Case)
	assert.Equal(t, 4096, results[0].Size)
	assert.Equal(t, 2, results[0].Workers)
	assert.Equal(t, bench.ScanRatio, results[1].Case)
}
