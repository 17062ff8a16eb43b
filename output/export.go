package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vegasq/tablemerge/dataset"
	"github.com/vegasq/tablemerge/errors"
)

const (
	// DefaultMergedFilename is where merged rows are exported by default.
	DefaultMergedFilename = "merged_data.csv"

	// DefaultUnmatchedFilename is where unmatched rows are exported by default.
	DefaultUnmatchedFilename = "unmatched_rows.xlsx"
)

type exportOptions struct {
	sanitize  bool
	sheetName string
}

// ExportOption configures file exports.
type ExportOption func(*exportOptions)

// WithSanitizeFormulas enables formula-injection escaping for delimited output.
func WithSanitizeFormulas(enabled bool) ExportOption {
	return func(o *exportOptions) {
		o.sanitize = enabled
	}
}

// WithSheetName sets the sheet name of spreadsheet output.
func WithSheetName(name string) ExportOption {
	return func(o *exportOptions) {
		o.sheetName = name
	}
}

// SerializeDelimited renders rows as CSV text with a header row taken from
// the first row. No rows yield no bytes.
func SerializeDelimited(rows []dataset.Row, opts ...ExportOption) ([]byte, error) {
	var buf bytes.Buffer
	f, err := NewFormatterForPath(DefaultMergedFilename, &buf, opts...)
	if err != nil {
		return nil, err
	}
	if err := f.Format(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SerializeSpreadsheet renders rows as an xlsx workbook with one sheet.
func SerializeSpreadsheet(rows []dataset.Row, opts ...ExportOption) ([]byte, error) {
	var buf bytes.Buffer
	f, err := NewFormatterForPath(DefaultUnmatchedFilename, &buf, opts...)
	if err != nil {
		return nil, err
	}
	if err := f.Format(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewFormatterForPath returns the formatter matching the extension of path:
// csv, tsv, xlsx (or xlsm), json or jsonl. Other extensions fail with an
// UnsupportedFormatError.
func NewFormatterForPath(path string, w io.Writer, opts ...ExportOption) (Formatter, error) {
	o := &exportOptions{}
	for _, opt := range opts {
		opt(o)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "csv":
		return &CSVFormatter{writer: w, SanitizeFormulas: o.sanitize}, nil
	case "tsv":
		return &CSVFormatter{writer: w, Comma: '\t', SanitizeFormulas: o.sanitize}, nil
	case "xlsx", "xlsm":
		return &XLSXFormatter{writer: w, SheetName: o.sheetName}, nil
	case "json", "jsonl", "ndjson":
		return NewJSONFormatter(w), nil
	default:
		return nil, errors.NewUnsupportedFormatError(ext, path)
	}
}

// WriteFile writes rows to path in the format its extension names. The file
// is created or truncated; on failure it is removed.
func WriteFile(path string, rows []dataset.Row, opts ...ExportOption) (err error) {
	var buf bytes.Buffer
	f, err := NewFormatterForPath(path, &buf, opts...)
	if err != nil {
		return err
	}
	if err := f.Format(rows); err != nil {
		return fmt.Errorf("failed to format %s: %w", path, err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if _, err := buf.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
