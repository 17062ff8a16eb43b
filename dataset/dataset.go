package dataset

// Dataset is an ordered sequence of rows read from one input.
type Dataset struct {
	// Name identifies the source, usually the file name.
	Name string
	Rows []Row
}

// New creates a dataset from rows.
func New(name string, rows []Row) Dataset {
	return Dataset{Name: name, Rows: rows}
}

// Len returns the number of rows.
func (d Dataset) Len() int {
	return len(d.Rows)
}

// IsEmpty reports whether the dataset has no rows.
func (d Dataset) IsEmpty() bool {
	return len(d.Rows) == 0
}

// Fields returns the field names of the first row.
//
// Only the first row is consulted. Fields that appear in later rows alone
// are not part of the dataset's schema for key selection or export.
func (d Dataset) Fields() []string {
	if len(d.Rows) == 0 {
		return []string{}
	}
	return d.Rows[0].Keys()
}

// AllFields returns every field name that appears in any row, in order of
// first appearance. It exists for diagnostics.
func (d Dataset) AllFields() []string {
	seen := make(map[string]bool)
	fields := []string{}
	for _, row := range d.Rows {
		for _, k := range row.keys {
			if !seen[k] {
				seen[k] = true
				fields = append(fields, k)
			}
		}
	}
	return fields
}
