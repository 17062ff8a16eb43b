package merge

import (
	"fmt"
	"time"

	"github.com/vegasq/tablemerge/dataset"
)

// DefaultPreviewRows is the number of merged rows shown after a merge.
const DefaultPreviewRows = 10

// ResultSet is the outcome of one merge.
type ResultSet struct {
	// Key is the field the datasets were joined on.
	Key string

	// MergedRows holds one row per matched primary row, in primary order.
	MergedRows []dataset.Row

	// UnmatchedRows holds the primary rows without a match, in primary order.
	UnmatchedRows []dataset.Row

	MergedCount    int
	UnmatchedCount int

	// PrimaryCount and SecondaryCount are the input sizes.
	PrimaryCount   int
	SecondaryCount int
}

// Preview returns up to n merged rows. A negative n returns all of them.
func (r *ResultSet) Preview(n int) []dataset.Row {
	return head(r.MergedRows, n)
}

// PreviewUnmatched returns up to n unmatched rows. A negative n returns all of them.
func (r *ResultSet) PreviewUnmatched(n int) []dataset.Row {
	return head(r.UnmatchedRows, n)
}

// Columns returns the export header of the merged partition: the fields of
// its first row.
func (r *ResultSet) Columns() []string {
	if len(r.MergedRows) == 0 {
		return []string{}
	}
	return r.MergedRows[0].Keys()
}

// Summary returns the counts of the result.
func (r *ResultSet) Summary() Summary {
	return Summary{
		Key:           r.Key,
		PrimaryRows:   r.PrimaryCount,
		SecondaryRows: r.SecondaryCount,
		MergedRows:    r.MergedCount,
		UnmatchedRows: r.UnmatchedCount,
	}
}

func head(rows []dataset.Row, n int) []dataset.Row {
	if n < 0 || n >= len(rows) {
		return rows
	}
	return rows[:n]
}

// Summary reports the size of each partition of a merge.
type Summary struct {
	Key           string `json:"key" yaml:"key"`
	PrimaryRows   int    `json:"primary_rows" yaml:"primary_rows"`
	SecondaryRows int    `json:"secondary_rows" yaml:"secondary_rows"`
	MergedRows    int    `json:"merged_rows" yaml:"merged_rows"`
	UnmatchedRows int    `json:"unmatched_rows" yaml:"unmatched_rows"`

	// DurationMS is set by the caller that timed the merge; see WithDuration.
	DurationMS int64 `json:"duration_ms" yaml:"duration_ms"`
}

// WithDuration returns a copy of s reporting d as the merge duration.
func (s Summary) WithDuration(d time.Duration) Summary {
	s.DurationMS = d.Milliseconds()
	return s
}

// Warning describes the unmatched primary rows, or returns "" when every
// primary row matched.
func (s Summary) Warning() string {
	if s.UnmatchedRows == 0 {
		return ""
	}
	return fmt.Sprintf("%d rows from primary file had no match in the secondary file.", s.UnmatchedRows)
}
