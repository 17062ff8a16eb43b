// Package testutil writes input fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"
)

// WriteFile writes content to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// WriteXLSX writes a workbook whose first sheet holds cells, row by row
// starting at A1, and returns the path. A nil cell is left empty.
// Extra sheets are written after the first one.
func WriteXLSX(t testing.TB, dir, name string, cells [][]interface{}, extraSheets ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	for r, values := range cells {
		for c, v := range values {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("bad cell coordinates: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("failed to set %s: %v", cell, err)
			}
		}
	}
	for _, extra := range extraSheets {
		if _, err := f.NewSheet(extra); err != nil {
			t.Fatalf("failed to add sheet %s: %v", extra, err)
		}
		if err := f.SetCellValue(extra, "A1", "ignored"); err != nil {
			t.Fatalf("failed to fill sheet %s: %v", extra, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	return path
}

// WriteParquet writes rows to dir/name with a generic parquet writer and
// returns the path.
func WriteParquet[T any](t testing.TB, dir, name string, rows []T) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	writer := parquet.NewGenericWriter[T](f)
	if _, err := writer.Write(rows); err != nil {
		t.Fatalf("failed to write test data: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close file: %v", err)
	}
	return path
}
