package reader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vegasq/tablemerge/dataset"
	"github.com/vegasq/tablemerge/errors"
	"github.com/vegasq/tablemerge/internal/logging"
)

// Format identifies an input file format.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatTSV     Format = "tsv"
	FormatXLSX    Format = "xlsx"
	FormatParquet Format = "parquet"
	FormatJSON    Format = "json"
	FormatJSONL   Format = "jsonl"
)

// extensions maps lower-case file extensions (without the dot) to formats.
var extensions = map[string]Format{
	"csv":     FormatCSV,
	"tsv":     FormatTSV,
	"tab":     FormatTSV,
	"xlsx":    FormatXLSX,
	"xlsm":    FormatXLSX,
	"parquet": FormatParquet,
	"json":    FormatJSON,
	"jsonl":   FormatJSONL,
	"ndjson":  FormatJSONL,
}

// DetectFormat maps a file name or bare extension to a Format.
//
// "orders.CSV", ".csv" and "csv" all yield FormatCSV. Unknown extensions,
// including legacy binary ".xls", fail with an UnsupportedFormatError.
func DetectFormat(nameOrExt string) (Format, error) {
	ext := strings.ToLower(strings.TrimSpace(nameOrExt))
	if i := strings.LastIndex(ext, "."); i >= 0 {
		ext = ext[i+1:]
	}
	f, ok := extensions[ext]
	if !ok {
		return "", errors.NewUnsupportedFormatError(ext, nameOrExt)
	}
	return f, nil
}

type options struct {
	encoding string
	logger   zerolog.Logger
}

// Option configures parsing.
type Option func(*options)

// WithEncoding sets the character encoding of text inputs (CSV, TSV).
// Names follow the WHATWG encoding labels, e.g. "windows-1252" or "latin1".
// The default is UTF-8. A byte order mark always takes precedence.
func WithEncoding(name string) Option {
	return func(o *options) {
		o.encoding = name
	}
}

// WithLogger sets the logger used for parse diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: logging.Nop}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Parse reads a whole table from r.
//
// formatHint is a file name or extension and selects the parser. The
// returned dataset is named after formatHint. Parsing stops early when ctx
// is cancelled.
func Parse(ctx context.Context, r io.Reader, formatHint string, opts ...Option) (dataset.Dataset, error) {
	format, err := DetectFormat(formatHint)
	if err != nil {
		return dataset.Dataset{}, err
	}
	o := newOptions(opts)

	var rows []dataset.Row
	switch format {
	case FormatCSV:
		rows, err = parseDelimited(ctx, r, ',', o)
	case FormatTSV:
		rows, err = parseDelimited(ctx, r, '\t', o)
	case FormatXLSX:
		rows, err = parseXLSX(ctx, r, o)
	case FormatParquet:
		rows, err = parseParquet(ctx, r)
	case FormatJSON, FormatJSONL:
		rows, err = parseJSON(ctx, r, format)
	}
	if err != nil {
		return dataset.Dataset{}, err
	}
	if rows == nil {
		rows = []dataset.Row{}
	}

	o.logger.Debug().
		Str("source", formatHint).
		Str("format", string(format)).
		Int("rows", len(rows)).
		Msg("parsed input")

	return dataset.New(filepath.Base(formatHint), rows), nil
}

// ReadFile parses the file at path, choosing the parser from its extension.
// An unsupported extension is reported before the file is opened.
func ReadFile(ctx context.Context, path string, opts ...Option) (dataset.Dataset, error) {
	if _, err := DetectFormat(path); err != nil {
		return dataset.Dataset{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return dataset.Dataset{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Parse(ctx, f, path, opts...)
}
