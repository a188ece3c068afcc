package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"cba-rental-scraper/models"
)

// CSVWriter appends assembled listings to the run's export file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates the export file for a run starting at the given
// time and writes the header row. Intermediate directories are created
// automatically. Each run gets a fresh file named by its start time.
func NewCSVWriter(dir string, runStart time.Time) (*CSVWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("data_%s.csv", runStart.Format("2006-01-02_15-04-05")))
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(models.CSVColumns); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{path: path, file: f, writer: w}, nil
}

// Path returns the export file's location.
func (c *CSVWriter) Path() string {
	return c.path
}

// Append writes one listing row and flushes it, so a crash mid-run
// loses at most the row being written.
func (c *CSVWriter) Append(listing *models.Listing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.writer.Write(listing.CSVRow()); err != nil {
		return fmt.Errorf("csv: write row: %w", err)
	}
	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
