package batch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fr3shw3b/sortbench-datagen/pkg/dataset"
	"github.com/fr3shw3b/sortbench-datagen/pkg/generators"
	"github.com/fr3shw3b/sortbench-datagen/pkg/sequence"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	return logger
}

func runBatch(t *testing.T, params *BatcherParams, sweep *Sweep) *Manifest {
	t.Helper()
	manifest, err := NewDefaultBatcher(params, createLogger()).Run(context.Background(), sweep)
	require.NoError(t, err)
	return manifest
}

func Test_default_sweep_writes_every_dataset(t *testing.T) {
	dir := t.TempDir()
	manifest := runBatch(t, &BatcherParams{OutputDir: dir, Seed: 1, Workers: 4}, DefaultSweep())

	// 5 repetitions of 6 noisy generators, out of place budgets 2 and 4,
	// inversion counts 0 to 4.
	require.Len(t, manifest.Files, 37)
	assert.NotEmpty(t, manifest.RunID)

	for _, entry := range manifest.Files {
		_, err := os.Stat(filepath.Join(dir, entry.File))
		assert.NoError(t, err, entry.File)
		assert.False(t, entry.Clamped, entry.File)
	}

	for i := 0; i < 5; i++ {
		seq, err := dataset.ReadFile(filepath.Join(dir, dataset.FileName(generators.NameWithInversions, i, "csv")))
		require.NoError(t, err)
		assert.Len(t, seq, 10)
		assert.Equal(t, int64(i), sequence.CountInversions(seq))
	}

	seq, err := dataset.ReadFile(filepath.Join(dir, "dataOutOfPlace4.csv"))
	require.NoError(t, err)
	assert.Len(t, seq, 1000)

	seq, err = dataset.ReadFile(filepath.Join(dir, "ascendingDataWithNoise2.csv"))
	require.NoError(t, err)
	assert.Len(t, seq, 1000)
	assert.True(t, sequence.IsStrictlyIncreasing(seq))

	data, err := os.ReadFile(filepath.Join(dir, ManifestFileName))
	require.NoError(t, err)
	decoded := &Manifest{}
	require.NoError(t, json.Unmarshal(data, decoded))
	assert.Equal(t, manifest.RunID, decoded.RunID)
	assert.Len(t, decoded.Files, 37)
}

func Test_batch_output_does_not_depend_on_worker_count(t *testing.T) {
	sweep := DefaultSweep()
	sweep.NumToGen = 2
	sweep.ArrayLen = 50

	serialDir := t.TempDir()
	parallelDir := t.TempDir()
	serial := runBatch(t, &BatcherParams{OutputDir: serialDir, Seed: 99, Workers: 1}, sweep)
	runBatch(t, &BatcherParams{OutputDir: parallelDir, Seed: 99, Workers: 8}, sweep)

	for _, entry := range serial.Files {
		first, err := os.ReadFile(filepath.Join(serialDir, entry.File))
		require.NoError(t, err)
		second, err := os.ReadFile(filepath.Join(parallelDir, entry.File))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(second), entry.File)
	}
}

func Test_batch_reports_clamped_range_samples(t *testing.T) {
	sweep := DefaultSweep()
	sweep.NumToGen = 1
	sweep.Noise = 1
	sweep.ArrayLen = 500

	manifest := runBatch(t, &BatcherParams{OutputDir: t.TempDir(), Seed: 3, Workers: 2}, sweep)
	clamped := 0
	for _, entry := range manifest.Files {
		if entry.Clamped {
			clamped += 1
			assert.Equal(t, 101, entry.Length)
		}
	}
	assert.Equal(t, 2, clamped)
}

func Test_batch_strict_range_fails(t *testing.T) {
	sweep := DefaultSweep()
	sweep.NumToGen = 1
	sweep.Noise = 1

	_, err := NewDefaultBatcher(
		&BatcherParams{OutputDir: t.TempDir(), Seed: 3, Workers: 2, StrictRange: true},
		createLogger(),
	).Run(context.Background(), sweep)
	assert.ErrorIs(t, err, generators.ErrInsufficientRange)
}

func Test_batch_propagates_generator_errors(t *testing.T) {
	sweep := DefaultSweep()
	sweep.NumToGen = 0
	sweep.SawtoothPeriod = 0
	sweep.IncludeDeterministic = true

	_, err := NewDefaultBatcher(&BatcherParams{OutputDir: t.TempDir(), Workers: 1}, createLogger()).
		Run(context.Background(), sweep)
	assert.ErrorIs(t, err, generators.ErrInvalidParameter)
}

func Test_batch_respects_cancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDefaultBatcher(&BatcherParams{OutputDir: t.TempDir(), Workers: 1}, createLogger()).
		Run(ctx, DefaultSweep())
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_load_sweep_from_yaml_and_json(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "sweep.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("numToGen: 2\narrayLen: 64\nincludeDeterministic: true\n"), 0o644))
	sweep, err := LoadSweep(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, 2, sweep.NumToGen)
	assert.Equal(t, 64, sweep.ArrayLen)
	assert.True(t, sweep.IncludeDeterministic)
	// Unset fields keep their defaults.
	assert.Equal(t, 125.0, sweep.Multiplier)

	jsonPath := filepath.Join(dir, "sweep.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"invCount": 3, "noise": 0.5}`), 0o644))
	sweep, err = LoadSweep(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, 3, sweep.InvCount)
	assert.Equal(t, 0.5, sweep.Noise)
	assert.Equal(t, 1000, sweep.ArrayLen)

	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("minVal: 10\nmaxVal: 1\n"), 0o644))
	_, err = LoadSweep(badPath)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func Test_sweep_jobs_include_deterministic_generators_once(t *testing.T) {
	sweep := DefaultSweep()
	sweep.NumToGen = 1
	sweep.IncludeDeterministic = true
	jobs := sweep.jobs(false)
	assert.Len(t, jobs, 6+2+5+7)
}
