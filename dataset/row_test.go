package dataset

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(kv ...interface{}) Row {
	r := NewRow(len(kv) / 2)
	for i := 0; i+1 < len(kv); i += 2 {
		r.Set(kv[i].(string), kv[i+1])
	}
	return r
}

func TestRow_SetKeepsInsertionOrder(t *testing.T) {
	var r Row
	r.Set("name", "Al")
	r.Set("id", "1")
	r.Set("name", "Bo")

	assert.Equal(t, []string{"name", "id"}, r.Keys())
	v, ok := r.Get("name")
	require.True(t, ok)
	assert.Equal(t, "Bo", v)
	assert.Equal(t, 2, r.Len())
}

func TestRow_KeysIsCopy(t *testing.T) {
	r := row("a", 1, "b", 2)
	keys := r.Keys()
	keys[0] = "zzz"
	assert.Equal(t, []string{"a", "b"}, r.Keys())
}

func TestRow_Merge(t *testing.T) {
	a := row("id", "2", "name", "Bo", "city", "LA")
	b := row("id", "2", "city", "NYC", "zip", "10001")

	merged := a.Merge(b)

	assert.Equal(t, []string{"id", "name", "city", "zip"}, merged.Keys())
	assert.Equal(t, map[string]interface{}{
		"id": "2", "name": "Bo", "city": "NYC", "zip": "10001",
	}, merged.Map())

	// inputs untouched
	assert.True(t, a.Equal(row("id", "2", "name", "Bo", "city", "LA")))
	assert.True(t, b.Equal(row("id", "2", "city", "NYC", "zip", "10001")))
}

func TestRow_MergeNilOverrides(t *testing.T) {
	a := row("id", "1", "note", "keep?")
	b := row("id", "1", "note", nil)

	merged := a.Merge(b)
	v, ok := merged.Get("note")
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestRow_CloneIsIndependent(t *testing.T) {
	a := row("id", "1")
	c := a.Clone()
	c.Set("id", "2")
	c.Set("extra", true)

	v, _ := a.Get("id")
	assert.Equal(t, "1", v)
	assert.False(t, a.Has("extra"))
}

func TestRowFromMap(t *testing.T) {
	r := RowFromMap([]string{"b", "a", "missing"}, map[string]interface{}{"a": 1, "b": 2})
	assert.Equal(t, []string{"b", "a"}, r.Keys())
}

func TestRow_Equal(t *testing.T) {
	assert.True(t, row("a", 1, "b", "x").Equal(row("a", 1, "b", "x")))
	assert.False(t, row("a", 1, "b", "x").Equal(row("b", "x", "a", 1)))
	assert.False(t, row("a", 1).Equal(row("a", int64(1))))
	assert.False(t, row("a", 1).Equal(row("a", 1, "b", 2)))
	assert.True(t, Row{}.Equal(NewRow(0)))
}

func TestDataset_Fields(t *testing.T) {
	tests := []struct {
		name string
		ds   Dataset
		want []string
		all  []string
	}{
		{
			name: "empty",
			ds:   New("empty.csv", nil),
			want: []string{},
			all:  []string{},
		},
		{
			name: "first row only",
			ds: New("ragged.csv", []Row{
				row("id", "1", "name", "Al"),
				row("id", "2", "city", "NYC"),
			}),
			want: []string{"id", "name"},
			all:  []string{"id", "name", "city"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ds.Fields())
			assert.Equal(t, tt.all, tt.ds.AllFields())
			assert.Equal(t, len(tt.ds.Rows), tt.ds.Len())
			assert.Equal(t, len(tt.ds.Rows) == 0, tt.ds.IsEmpty())
		})
	}
}

func TestRow_MarshalJSON(t *testing.T) {
	r := row("zeta", int64(1), "alpha", "x", "mid", nil)

	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":1,"alpha":"x","mid":null}`, string(data))

	data, err = json.Marshal(Row{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
