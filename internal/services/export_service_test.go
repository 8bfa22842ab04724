package services

import (
	"bytes"
	"encoding/csv"
	"testing"

	"meatstore-backend/internal/config"
	"meatstore-backend/internal/reporting"
)

func sampleTable() [][]string {
	return [][]string{
		reporting.TableHeader,
		{"Eggs", "Poultry", "3", "0.700", "unavailable", "120.00", "60.00", "180.00", "2"},
		{"Overall", "", "3", "0.700", "unavailable", "120.00", "60.00", "180.00", "2"},
	}
}

func TestBuildCSVRoundTrips(t *testing.T) {
	svc := NewExportService(&config.Config{})

	data, err := svc.BuildCSV(sampleTable())
	if err != nil {
		t.Fatalf("BuildCSV: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("reading back CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for i, h := range reporting.TableHeader {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, want %q", i, rows[0][i], h)
		}
	}
	if rows[1][0] != "Eggs" || rows[2][0] != "Overall" {
		t.Errorf("row order wrong: %q, %q", rows[1][0], rows[2][0])
	}
}

func TestBuildXLSX(t *testing.T) {
	svc := NewExportService(&config.Config{})

	data, err := svc.BuildXLSX(sampleTable())
	if err != nil {
		t.Fatalf("BuildXLSX: %v", err)
	}
	// XLSX files are ZIP containers; check the magic bytes.
	if len(data) < 4 || data[0] != 'P' || data[1] != 'K' {
		t.Error("output is not a valid xlsx container")
	}
}

func TestBuildPDF(t *testing.T) {
	svc := NewExportService(&config.Config{})

	data, err := svc.BuildPDF("Sales Summary", sampleTable())
	if err != nil {
		t.Fatalf("BuildPDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("output is missing the PDF header")
	}
}
