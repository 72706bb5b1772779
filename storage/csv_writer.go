package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"bestseller-dashboard/models"
)

// CSVWriter writes books in the source column layout.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	closer io.Closer
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string, sep rune) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	cw, err := NewCSVStream(f, sep)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	cw.closer = f
	return cw, nil
}

// NewCSVStream writes the header row to w and returns a writer for the rows.
// Close flushes but does not close w.
func NewCSVStream(w io.Writer, sep rune) (*CSVWriter, error) {
	cw := csv.NewWriter(w)
	cw.Comma = sep

	if err := cw.Write(Columns); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, fmt.Errorf("csv: write header: %w", err)
	}

	return &CSVWriter{writer: cw}, nil
}

// Write appends the books as rows. It stops at the first row after ctx is
// cancelled; rows already written stay in the output.
func (c *CSVWriter) Write(ctx context.Context, books []models.Book) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, b := range books {
		if err := ctx.Err(); err != nil {
			c.writer.Flush()
			return fmt.Errorf("csv: write: %w", err)
		}
		row := []string{
			b.Title,
			b.Author,
			strconv.FormatFloat(b.Rating, 'f', -1, 64),
			strconv.Itoa(b.Reviews),
			strconv.FormatFloat(b.Price, 'f', -1, 64),
			strconv.Itoa(b.Year),
			b.Genre,
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file, if any.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writer.Flush()
	if c.closer == nil {
		return c.writer.Error()
	}
	return c.closer.Close()
}
