package dataset

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fr3shw3b/sortbench-datagen/pkg/sequence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_write_and_read_round_trip(t *testing.T) {
	seq := sequence.Sequence{0, -1.5, math.Pi, 1e-300, 125.00000000001, -0.0, 42}

	buf := &bytes.Buffer{}
	require.NoError(t, WriteCSV(buf, DefaultHeader, seq))

	read, err := ReadCSV(buf)
	require.NoError(t, err)
	assert.InDeltaSlice(t, seq, read, 1e-9)
}

func Test_write_csv_layout(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, WriteCSV(buf, []string{"time", "amplitude"}, []float64{0, 0.1}, []float64{1, 2.5}))
	assert.Equal(t, "time,amplitude\n0,1\n0.1,2.5\n", buf.String())
}

func Test_write_csv_rejects_mismatched_columns(t *testing.T) {
	err := WriteCSV(&bytes.Buffer{}, []string{"a", "b"}, []float64{1}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrColumnMismatch)

	err = WriteCSV(&bytes.Buffer{}, []string{"a"}, []float64{1}, []float64{1})
	assert.ErrorIs(t, err, ErrColumnMismatch)
}

func Test_read_csv_errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("0\n1\nnot-a-number\n"))
	assert.ErrorContains(t, err, "row 2")

	seq, err := ReadCSV(strings.NewReader("0\n"))
	require.NoError(t, err)
	assert.Empty(t, seq)
}

func Test_file_round_trip_and_naming(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "datasets")
	require.NoError(t, EnsureDir(dir))
	// Existing directories are fine.
	require.NoError(t, EnsureDir(dir))

	name := FileName("dataWithInversions", 3, DefaultExtension)
	assert.Equal(t, "dataWithInversions3.csv", name)

	path := filepath.Join(dir, name)
	seq := sequence.Sequence{3, 1, 2}
	require.NoError(t, WriteSequence(path, seq))

	read, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, seq, read)
}

func Test_persistence_errors_propagate(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	err = WriteSequence(filepath.Join(t.TempDir(), "no", "such", "dir.csv"), sequence.Sequence{1})
	assert.ErrorIs(t, err, os.ErrNotExist)
}
