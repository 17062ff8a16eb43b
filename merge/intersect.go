package merge

import (
	"strings"

	"github.com/vegasq/tablemerge/dataset"
)

// Intersect returns the fields of a's first row that also appear in b's
// first row, in a's order. Either dataset being empty yields no columns.
func Intersect(a, b dataset.Dataset) []string {
	if a.IsEmpty() || b.IsEmpty() {
		return []string{}
	}
	return IntersectFields(a.Fields(), b.Fields())
}

// IntersectFields returns the members of primary that are also in
// secondary, preserving primary's order. Blank names are never candidates.
func IntersectFields(primary, secondary []string) []string {
	in := make(map[string]struct{}, len(secondary))
	for _, f := range secondary {
		in[f] = struct{}{}
	}

	common := make([]string, 0, len(primary))
	seen := make(map[string]struct{}, len(primary))
	for _, f := range primary {
		if strings.TrimSpace(f) == "" {
			continue
		}
		if _, ok := in[f]; !ok {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		common = append(common, f)
	}
	return common
}

// DefaultKey returns the first common column.
func DefaultKey(common []string) (string, bool) {
	if len(common) == 0 {
		return "", false
	}
	return common[0], true
}

// Contains reports whether key is one of cols.
func Contains(cols []string, key string) bool {
	for _, c := range cols {
		if c == key {
			return true
		}
	}
	return false
}
