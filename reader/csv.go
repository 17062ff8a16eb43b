package reader

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/vegasq/tablemerge/dataset"
	"github.com/vegasq/tablemerge/errors"
)

// parseDelimited reads a header-row table separated by comma.
//
// Each data row maps header names to raw string values. Rows shorter than
// the header omit the missing trailing fields; cells past the header are
// dropped. Blank lines are skipped. When a header name repeats, the later
// column's value wins.
func parseDelimited(ctx context.Context, r io.Reader, comma rune, o *options) ([]dataset.Row, error) {
	format := "csv"
	if comma == '\t' {
		format = "tsv"
	}

	text, err := decodeText(r, o.encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(text)
	cr.Comma = comma
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, delimitedError(format, err)
	}
	header = append([]string(nil), header...)

	var rows []dataset.Row
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, delimitedError(format, err)
		}
		if isBlankRecord(rec) {
			continue
		}

		row := dataset.NewRow(len(header))
		for i, name := range header {
			if i >= len(rec) {
				break
			}
			if strings.TrimSpace(name) == "" {
				continue
			}
			row.Set(name, rec[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// isBlankRecord reports whether a record holds nothing but empty cells.
// encoding/csv already drops empty lines; this catches whitespace-only ones.
func isBlankRecord(rec []string) bool {
	return len(rec) == 1 && strings.TrimSpace(rec[0]) == ""
}

func delimitedError(format string, err error) error {
	var pe *csv.ParseError
	if stderrors.As(err, &pe) {
		return errors.NewParseError(format, pe.Line, pe.Err)
	}
	return errors.NewParseError(format, 0, err)
}

// decodeText wraps r so it yields UTF-8. A byte order mark selects the
// encoding it names and is removed; otherwise the named encoding (UTF-8 by
// default) is used.
func decodeText(r io.Reader, name string) (io.Reader, error) {
	var fallback encoding.Encoding = unicode.UTF8
	if name != "" {
		enc, err := htmlindex.Get(name)
		if err != nil {
			return nil, fmt.Errorf("unknown input encoding %q: %w", name, err)
		}
		fallback = enc
	}
	return transform.NewReader(r, unicode.BOMOverride(fallback.NewDecoder())), nil
}
