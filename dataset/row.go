// Package dataset holds the in-memory representation of a parsed table.
//
// A Row maps field names to scalar values and remembers the order in which
// fields were first set. Rows within one Dataset may carry different field
// sets; sparse input is legal.
package dataset

import (
	"bytes"
	"encoding/json"
	"reflect"
)

// Row is an ordered mapping from field name to value.
//
// Values are string, int64, float64, bool or nil. The zero Row is empty and
// ready to use.
type Row struct {
	keys   []string
	values map[string]interface{}
}

// NewRow creates an empty row with room for n fields.
func NewRow(n int) Row {
	return Row{
		keys:   make([]string, 0, n),
		values: make(map[string]interface{}, n),
	}
}

// RowFromMap builds a row from m, ordering fields by keys.
//
// Keys missing from m are skipped. Fields of m that are not listed in keys
// are appended in no particular order, so callers that care about order
// should list every key.
func RowFromMap(keys []string, m map[string]interface{}) Row {
	r := NewRow(len(m))
	for _, k := range keys {
		if v, ok := m[k]; ok {
			r.Set(k, v)
		}
	}
	for k, v := range m {
		if !r.Has(k) {
			r.Set(k, v)
		}
	}
	return r
}

// Set stores v under k. A new key is appended; an existing key keeps its position.
func (r *Row) Set(k string, v interface{}) {
	if r.values == nil {
		r.values = make(map[string]interface{})
	}
	if _, ok := r.values[k]; !ok {
		r.keys = append(r.keys, k)
	}
	r.values[k] = v
}

// Get returns the value stored under k.
func (r Row) Get(k string) (interface{}, bool) {
	v, ok := r.values[k]
	return v, ok
}

// Has reports whether k is a field of the row.
func (r Row) Has(k string) bool {
	_, ok := r.values[k]
	return ok
}

// Keys returns the field names in insertion order. The slice is a copy.
func (r Row) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len returns the number of fields.
func (r Row) Len() int {
	return len(r.keys)
}

// Clone returns a copy that shares no storage with r.
func (r Row) Clone() Row {
	c := NewRow(len(r.keys))
	for _, k := range r.keys {
		c.Set(k, r.values[k])
	}
	return c
}

// Merge returns the shallow merge of r and other.
//
// The result starts as a copy of r. Each field of other then overwrites the
// value of an existing field in place or is appended after r's fields.
// Neither r nor other is modified.
func (r Row) Merge(other Row) Row {
	m := NewRow(len(r.keys) + len(other.keys))
	for _, k := range r.keys {
		m.Set(k, r.values[k])
	}
	for _, k := range other.keys {
		m.Set(k, other.values[k])
	}
	return m
}

// Map returns the row as a plain map, dropping field order.
func (r Row) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.keys))
	for _, k := range r.keys {
		m[k] = r.values[k]
	}
	return m
}

// Equal reports whether both rows hold the same fields in the same order
// with equal values.
func (r Row) Equal(other Row) bool {
	if len(r.keys) != len(other.keys) {
		return false
	}
	for i, k := range r.keys {
		if other.keys[i] != k {
			return false
		}
		if !reflect.DeepEqual(r.values[k], other.values[k]) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the row as a JSON object with fields in row order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
