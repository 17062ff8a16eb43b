package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/vegasq/tablemerge/dataset"
)

// Formatter defines the interface for output formatters.
//
// Implementers must provide Format to convert rows to the target format
// and SetOutput to change the output destination.
type Formatter interface {
	// Format writes rows in the formatter's specific format
	Format(rows []dataset.Row) error

	// SetOutput changes the output writer
	SetOutput(w io.Writer)
}

// Header returns the columns written for rows: the fields of the first row,
// in order. Fields that only later rows carry are not exported.
func Header(rows []dataset.Row) []string {
	if len(rows) == 0 {
		return nil
	}
	return rows[0].Keys()
}

// record renders one row against header. Missing fields become "".
func record(row dataset.Row, header []string, sanitize bool) []string {
	rec := make([]string, len(header))
	for i, col := range header {
		v, _ := row.Get(col)
		rec[i] = formatValue(v, sanitize)
	}
	return rec
}

// formatValue converts a value to its text form
func formatValue(v interface{}, sanitize bool) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		if sanitize {
			return sanitizeFormula(val)
		}
		return val
	case int:
		return strconv.Itoa(val)
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	case []byte:
		return string(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// sanitizeFormula prefixes values that spreadsheet applications would
// evaluate as formulas.
func sanitizeFormula(val string) string {
	if len(val) == 0 {
		return val
	}
	switch val[0] {
	case '=', '+', '-', '@', '\t', '\r', '\n', '|':
		// Escape existing single quotes and prefix with quote to prevent formula injection
		return "'" + strings.ReplaceAll(val, "'", "''")
	}
	return val
}
