package storage

import (
	"encoding/csv"
	"os"
	"strings"
	"testing"
	"time"

	"cba-rental-scraper/models"
)

func TestCSVWriterHeaderAndRows(t *testing.T) {
	dir := t.TempDir()
	runStart := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	w, err := NewCSVWriter(dir, runStart)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}

	lat, lng := -31.42, -64.18
	listing := &models.Listing{
		ZPID:                     "50123456",
		ScrapedAt:                runStart,
		RentalPriceOriginal:      120000,
		RentalCurrencyOriginal:   "ARS",
		RentalPriceUSDNormalized: 120,
		Address:                  "Av. Colón 1500",
		Location:                 "Centro, Córdoba",
		Rooms:                    2,
		Latitude:                 &lat,
		Longitude:                &lng,
		USDBuyPrice:              1000,
	}
	if err := w.Append(listing); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	if !strings.Contains(w.Path(), "data_2024-03-15_10-30-00.csv") {
		t.Errorf("export file not named by run start: %s", w.Path())
	}

	f, err := os.Open(w.Path())
	if err != nil {
		t.Fatalf("open export file: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read export file: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}

	header := records[0]
	if len(header) != len(models.CSVColumns) {
		t.Errorf("header length: got %d, want %d", len(header), len(models.CSVColumns))
	}
	for i, col := range models.CSVColumns {
		if header[i] != col {
			t.Errorf("header[%d]: got %q, want %q", i, header[i], col)
		}
	}

	row := records[1]
	if row[0] != "50123456" {
		t.Errorf("zp_id column: got %q", row[0])
	}
	if row[15] != "-31.42" || row[16] != "-64.18" {
		t.Errorf("coordinate columns: got %q, %q", row[15], row[16])
	}
}

func TestCSVWriterEmptyOptionalFields(t *testing.T) {
	w, err := NewCSVWriter(t.TempDir(), time.Now())
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}

	// No coordinates, empty address/location.
	if err := w.Append(&models.Listing{ZPID: "1", ScrapedAt: time.Now()}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, _ := os.Open(w.Path())
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read export file: %v", err)
	}

	row := records[1]
	if row[15] != "" || row[16] != "" {
		t.Errorf("nil coordinates should stringify to empty, got %q, %q", row[15], row[16])
	}
	if row[8] != "" || row[9] != "" {
		t.Errorf("empty address/location should stay empty, got %q, %q", row[8], row[9])
	}
}
