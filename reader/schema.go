package reader

import (
	"github.com/vegasq/tablemerge/dataset"
)

// ColumnInfo describes one field of a dataset.
type ColumnInfo struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`

	// InSchema reports whether the field is part of the first row, and so
	// eligible as a merge key and export column.
	InSchema bool `json:"in_schema" yaml:"in_schema"`

	// Present counts rows that carry the field at all.
	Present int `json:"present" yaml:"present"`

	// NonEmpty counts rows whose value is neither nil nor blank.
	NonEmpty int `json:"non_empty" yaml:"non_empty"`
}

// Inspect returns a ColumnInfo for every field that appears in any row of
// ds, in order of first appearance.
//
// Type is the user-friendly type shared by all non-empty values: STRING,
// INT64, FLOAT64, BOOLEAN or OTHER. Columns mixing types report MIXED and
// columns with no values report EMPTY.
func Inspect(ds dataset.Dataset) []ColumnInfo {
	schema := make(map[string]bool)
	for _, f := range ds.Fields() {
		schema[f] = true
	}

	fields := ds.AllFields()
	infos := make([]ColumnInfo, len(fields))
	for i, name := range fields {
		info := ColumnInfo{Name: name, Type: "EMPTY", InSchema: schema[name]}
		for _, row := range ds.Rows {
			v, ok := row.Get(name)
			if !ok {
				continue
			}
			info.Present++
			if isEmptyValue(v) {
				continue
			}
			info.NonEmpty++

			t := getUserFriendlyType(v)
			switch info.Type {
			case "EMPTY":
				info.Type = t
			case t, "MIXED":
			default:
				info.Type = "MIXED"
			}
		}
		infos[i] = info
	}
	return infos
}

func isEmptyValue(v interface{}) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// getUserFriendlyType returns a user-friendly type name for a value.
func getUserFriendlyType(v interface{}) string {
	switch v.(type) {
	case string:
		return "STRING"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return "INT64"
	case float32, float64:
		return "FLOAT64"
	case bool:
		return "BOOLEAN"
	default:
		return "OTHER"
	}
}
