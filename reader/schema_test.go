package reader

import (
	"testing"

	"github.com/vegasq/tablemerge/dataset"
)

func TestInspect(t *testing.T) {
	a := dataset.NewRow(3)
	a.Set("id", "1")
	a.Set("qty", int64(3))
	a.Set("price", 9.5)

	b := dataset.NewRow(4)
	b.Set("id", "2")
	b.Set("qty", "three")
	b.Set("price", nil)
	b.Set("gift", true)

	c := dataset.NewRow(1)
	c.Set("id", "")

	infos := Inspect(dataset.New("orders.csv", []dataset.Row{a, b, c}))

	want := []ColumnInfo{
		{Name: "id", Type: "STRING", InSchema: true, Present: 3, NonEmpty: 2},
		{Name: "qty", Type: "MIXED", InSchema: true, Present: 2, NonEmpty: 2},
		{Name: "price", Type: "FLOAT64", InSchema: true, Present: 2, NonEmpty: 1},
		{Name: "gift", Type: "BOOLEAN", InSchema: false, Present: 1, NonEmpty: 1},
	}

	if len(infos) != len(want) {
		t.Fatalf("Inspect() returned %d columns, want %d", len(infos), len(want))
	}
	for i := range want {
		if infos[i] != want[i] {
			t.Errorf("column %d = %+v, want %+v", i, infos[i], want[i])
		}
	}
}

func TestInspect_Empty(t *testing.T) {
	if infos := Inspect(dataset.New("empty.csv", nil)); len(infos) != 0 {
		t.Errorf("Inspect() on empty dataset returned %d columns, want 0", len(infos))
	}

	r := dataset.NewRow(1)
	r.Set("blank", nil)
	infos := Inspect(dataset.New("nulls.csv", []dataset.Row{r}))
	if len(infos) != 1 || infos[0].Type != "EMPTY" {
		t.Errorf("Inspect() = %+v, want a single EMPTY column", infos)
	}
}

func TestGetUserFriendlyType(t *testing.T) {
	tests := []struct {
		value interface{}
		want  string
	}{
		{"x", "STRING"},
		{int64(1), "INT64"},
		{int32(1), "INT64"},
		{uint8(1), "INT64"},
		{1.5, "FLOAT64"},
		{float32(1.5), "FLOAT64"},
		{false, "BOOLEAN"},
		{[]byte("x"), "OTHER"},
	}
	for _, tt := range tests {
		if got := getUserFriendlyType(tt.value); got != tt.want {
			t.Errorf("getUserFriendlyType(%#v) = %s, want %s", tt.value, got, tt.want)
		}
	}
}
