package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/vegasq/tablemerge/dataset"
)

// CSVFormatter outputs rows as delimited text with a header row.
type CSVFormatter struct {
	writer io.Writer

	// Comma is the field delimiter. Zero means ','.
	Comma rune

	// SanitizeFormulas prefixes values starting with =, +, -, @ and similar
	// with a single quote so spreadsheets do not evaluate them.
	SanitizeFormulas bool
}

// NewCSVFormatter creates a new CSV formatter
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{writer: w}
}

// SetOutput sets the output writer
func (c *CSVFormatter) SetOutput(w io.Writer) {
	c.writer = w
}

// Format writes rows as CSV.
//
// The header is the first row's fields. Every row is written against that
// header, so missing fields are blank and extra fields are dropped. No rows
// produce no output.
func (c *CSVFormatter) Format(rows []dataset.Row) error {
	if len(rows) == 0 {
		return nil
	}

	csvWriter := csv.NewWriter(c.writer)
	if c.Comma != 0 {
		csvWriter.Comma = c.Comma
	}

	columns := Header(rows)
	if err := csvWriter.Write(columns); err != nil {
		return err
	}

	for _, row := range rows {
		if err := csvWriter.Write(record(row, columns, c.SanitizeFormulas)); err != nil {
			return err
		}
	}

	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}

	return nil
}
