// Package dataset persists generated sequences as single or multi column
// CSV files with a header row, one value per row in sequence order.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fr3shw3b/sortbench-datagen/pkg/sequence"
)

// DefaultExtension is used for every file written by the batcher.
const DefaultExtension = "csv"

// DefaultHeader is the unnamed column header of single column datasets.
var DefaultHeader = []string{"0"}

var ErrColumnMismatch = errors.New("columns must have the same length")

// EnsureDir creates dir and any missing parents. An existing directory is not an error.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

// FileName returns <generator><index>.<ext>.
func FileName(generator string, index int, ext string) string {
	return fmt.Sprintf("%s%d.%s", generator, index, ext)
}

// WriteCSV writes header followed by one row per index across columns.
func WriteCSV(w io.Writer, header []string, columns ...[]float64) error {
	if len(header) != len(columns) {
		return fmt.Errorf("%d header names for %d columns: %w", len(header), len(columns), ErrColumnMismatch)
	}
	rows := 0
	if len(columns) > 0 {
		rows = len(columns[0])
	}
	for _, column := range columns {
		if len(column) != rows {
			return ErrColumnMismatch
		}
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return err
	}
	record := make([]string, len(columns))
	for i := 0; i < rows; i++ {
		for j, column := range columns {
			record[j] = strconv.FormatFloat(column[i], 'g', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFile writes the columns to path, replacing any existing file.
func WriteFile(path string, header []string, columns ...[]float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(file, header, columns...); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteSequence writes seq as a single column file under DefaultHeader.
func WriteSequence(path string, seq sequence.Sequence) error {
	return WriteFile(path, DefaultHeader, seq)
}

// ReadCSV reads the first column of a CSV stream, skipping the header row.
func ReadCSV(r io.Reader) (sequence.Sequence, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("missing header row: %w", io.ErrUnexpectedEOF)
		}
		return nil, err
	}

	seq := sequence.Sequence{}
	for row := 1; ; row++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return seq, nil
		}
		if err != nil {
			return nil, err
		}
		value, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		seq = append(seq, value)
	}
}

// ReadFile reads the first column of the CSV file at path.
func ReadFile(path string) (sequence.Sequence, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	seq, err := ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return seq, nil
}
