package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sherine-k/flightsim/pkg/sink"
)

func TestRunThenReport(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "telemetry.jsonl")
	require.NoError(t, os.WriteFile(output, []byte("stale\n"), 0644))

	rootCmd.SetArgs([]string{"run", "--output", output, "--max-ticks", "5", "--seed", "7", "--quiet"})
	require.NoError(t, rootCmd.Execute())

	records, err := sink.ReadFile(output)
	require.NoError(t, err)
	require.Len(t, records, 5)
	for i, r := range records {
		assert.Equal(t, i+1, r.Tick)
		assert.True(t, r.TrainingPhase)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{"report", "--input", output, "--timeline", "--timeline-limit", "2"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "Loaded 5 telemetry records from "+output)
	assert.Contains(t, out.String(), "Vibration Over Ticks")
	assert.Contains(t, out.String(), "Total Records: 5 (ticks 1-5)")
	assert.Contains(t, out.String(), "No engine failures!")
	assert.Contains(t, out.String(), "... and 3 more records")
}

func TestRun_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  onWriteError: ignore\n"), 0644))

	rootCmd.SetArgs([]string{"--config", path, "run", "--max-ticks", "1"})
	err := rootCmd.Execute()
	configFile = ""

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestReport_MissingFile(t *testing.T) {
	rootCmd.SetArgs([]string{"report", "--input", filepath.Join(t.TempDir(), "missing.jsonl")})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load telemetry")
}
