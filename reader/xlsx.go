package reader

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/vegasq/tablemerge/dataset"
	"github.com/vegasq/tablemerge/errors"
)

// parseXLSX reads the first sheet of a workbook.
//
// The first row is the header. Empty cells are left out of a row, wholly
// empty rows are skipped, and columns with a blank header are dropped.
// Numeric cells become int64 or float64 and boolean cells bool; every other
// cell keeps its stored text.
func parseXLSX(ctx context.Context, r io.Reader, o *options) ([]dataset.Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.NewParseError("xlsx", 0, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	sheet := sheets[0]
	if len(sheets) > 1 {
		o.logger.Debug().Str("sheet", sheet).Int("sheets", len(sheets)).Msg("reading first sheet only")
	}

	grid, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.NewParseError("xlsx", 0, err)
	}
	if len(grid) == 0 {
		return nil, nil
	}

	header := grid[0]
	var rows []dataset.Row
	for i, rec := range grid[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rowNum := i + 2
		row := dataset.NewRow(len(header))
		for c, raw := range rec {
			if c >= len(header) {
				break
			}
			if raw == "" || header[c] == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, rowNum)
			if err != nil {
				return nil, errors.NewParseError("xlsx", rowNum, err)
			}
			row.Set(header[c], cellValue(f, sheet, cell, raw))
		}
		if row.Len() == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// cellValue converts the raw stored value of a cell to a Go scalar.
func cellValue(f *excelize.File, sheet, cell, raw string) interface{} {
	typ, err := f.GetCellType(sheet, cell)
	if err != nil {
		return raw
	}

	switch typ {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if n, ok := parseNumber(raw); ok {
			return n
		}
	}
	return raw
}

// parseNumber parses integers as int64 and everything else numeric as float64.
func parseNumber(s string) (interface{}, bool) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, true
	}
	return nil, false
}
