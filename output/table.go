package output

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/tablemerge/dataset"
)

// TableFormatter renders rows as an aligned text table for terminals.
type TableFormatter struct {
	writer io.Writer
}

// NewTableFormatter creates a new table formatter
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{writer: w}
}

// SetOutput sets the output writer
func (t *TableFormatter) SetOutput(w io.Writer) {
	t.writer = w
}

// Format writes rows as a table whose columns are the first row's fields.
func (t *TableFormatter) Format(rows []dataset.Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(t.writer, "(no rows)")
		return err
	}

	columns := Header(rows)
	headers := make([]any, len(columns))
	for i, col := range columns {
		headers[i] = col
	}

	table := tablewriter.NewTable(t.writer)
	table.Header(headers...)
	for _, row := range rows {
		rec := record(row, columns, false)
		cells := make([]any, len(rec))
		for i, cell := range rec {
			cells[i] = cell
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	return table.Render()
}
