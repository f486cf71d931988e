package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"beer-reviews/models"
)

var _ TableWriter = (*CSVWriter)(nil)

// CSVWriter exports the canonical table to a CSV file for the downstream
// plotting notebooks.
type CSVWriter struct {
	file *os.File
}

// NewCSVWriter creates (or truncates) the CSV file at the given path.
// Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}
	return &CSVWriter{file: f}, nil
}

// Write writes the header row and every row of t.
func (c *CSVWriter) Write(t models.Table) error {
	return WriteTable(c.file, t)
}

// Close closes the underlying file.
func (c *CSVWriter) Close() error {
	return c.file.Close()
}

// WriteTable encodes t as CSV: a header row, then one record per row.
// Identical tables always encode to identical bytes.
func WriteTable(w io.Writer, t models.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("csv: write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("csv: write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
