package output

import (
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/vegasq/tablemerge/dataset"
)

// DefaultSheetName is the name of the single sheet written by XLSXFormatter.
const DefaultSheetName = "Sheet1"

// Column width bounds, in characters.
const (
	minColWidth = 8
	maxColWidth = 60
)

// XLSXFormatter outputs rows as a single-sheet workbook.
type XLSXFormatter struct {
	writer io.Writer

	// SheetName names the sheet. Empty means DefaultSheetName.
	SheetName string
}

// NewXLSXFormatter creates a new workbook formatter
func NewXLSXFormatter(w io.Writer) *XLSXFormatter {
	return &XLSXFormatter{writer: w}
}

// SetOutput sets the output writer
func (x *XLSXFormatter) SetOutput(w io.Writer) {
	x.writer = w
}

// Format writes rows as an xlsx workbook.
//
// Row 1 holds the header taken from the first row's fields. Numbers and
// booleans keep their cell types; missing fields leave the cell empty. No
// rows still produce a valid workbook with one empty sheet.
func (x *XLSXFormatter) Format(rows []dataset.Row) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := DefaultSheetName
	if x.SheetName != "" && x.SheetName != DefaultSheetName {
		if err := f.SetSheetName(DefaultSheetName, x.SheetName); err != nil {
			return fmt.Errorf("invalid sheet name %q: %w", x.SheetName, err)
		}
		sheet = x.SheetName
	}

	columns := Header(rows)
	widths := make([]int, len(columns))
	if len(columns) > 0 {
		header := make([]interface{}, len(columns))
		for i, col := range columns {
			header[i] = col
			widths[i] = utf8.RuneCountInString(col)
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, row := range rows {
		cells := make([]interface{}, len(columns))
		for c, col := range columns {
			v, _ := row.Get(col)
			cells[c] = cellValue(v)
			if w := utf8.RuneCountInString(formatValue(v, false)); w > widths[c] {
				widths[c] = w
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := setColWidths(f, sheet, widths); err != nil {
		return err
	}

	if _, err := f.WriteTo(x.writer); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// setColWidths sizes each column to its widest value, within bounds.
func setColWidths(f *excelize.File, sheet string, widths []int) error {
	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := float64(min(max(w+2, minColWidth), maxColWidth))
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			return fmt.Errorf("failed to size column %s: %w", name, err)
		}
	}
	return nil
}

// cellValue keeps the scalar types excelize stores natively and renders
// everything else as text.
func cellValue(v interface{}) interface{} {
	switch v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, time.Time:
		return v
	default:
		return formatValue(v, false)
	}
}
