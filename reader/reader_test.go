package reader

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/tablemerge/dataset"
	"github.com/vegasq/tablemerge/errors"
	"github.com/vegasq/tablemerge/internal/testutil"
)

func fieldValues(t *testing.T, rows []dataset.Row) []map[string]interface{} {
	t.Helper()
	out := make([]map[string]interface{}, len(rows))
	for i, r := range rows {
		out[i] = r.Map()
	}
	return out
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"orders.csv", FormatCSV, false},
		{"ORDERS.CSV", FormatCSV, false},
		{".csv", FormatCSV, false},
		{"csv", FormatCSV, false},
		{"data/2024.q1.tsv", FormatTSV, false},
		{"book.xlsx", FormatXLSX, false},
		{"macro.xlsm", FormatXLSX, false},
		{"events.parquet", FormatParquet, false},
		{"rows.json", FormatJSON, false},
		{"rows.ndjson", FormatJSONL, false},
		{"legacy.xls", "", true},
		{"notes.pdf", "", true},
		{"README", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := DetectFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrUnsupportedFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_CSV(t *testing.T) {
	input := "id,name,city\n1,Al,LA\n2,Bo\n\n3,Cy,NYC,extra\n"

	ds, err := Parse(context.Background(), strings.NewReader(input), "people.csv")
	require.NoError(t, err)

	assert.Equal(t, "people.csv", ds.Name)
	assert.Equal(t, []string{"id", "name", "city"}, ds.Fields())
	assert.Equal(t, []map[string]interface{}{
		{"id": "1", "name": "Al", "city": "LA"},
		{"id": "2", "name": "Bo"},
		{"id": "3", "name": "Cy", "city": "NYC"},
	}, fieldValues(t, ds.Rows))
	assert.Equal(t, []string{"id", "name"}, ds.Rows[1].Keys())
}

func TestParse_CSVKeepsWhitespaceAndQuotes(t *testing.T) {
	input := "id,note\n\" 42 \",\"a, b\"\n"

	ds, err := Parse(context.Background(), strings.NewReader(input), "csv")
	require.NoError(t, err)
	require.Len(t, ds.Rows, 1)
	v, _ := ds.Rows[0].Get("id")
	assert.Equal(t, " 42 ", v)
	v, _ = ds.Rows[0].Get("note")
	assert.Equal(t, "a, b", v)
}

func TestParse_CSVDropsBlankHeaderColumns(t *testing.T) {
	input := ",id,name\n0,1,Al\n1,2,Bo\n"

	ds, err := Parse(context.Background(), strings.NewReader(input), "indexed.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, ds.Fields())
	assert.Equal(t, []map[string]interface{}{
		{"id": "1", "name": "Al"},
		{"id": "2", "name": "Bo"},
	}, fieldValues(t, ds.Rows))
}

func TestParse_CSVStripsBOM(t *testing.T) {
	input := "\ufeffid,name\n1,Al\n"

	ds, err := Parse(context.Background(), strings.NewReader(input), "bom.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, ds.Fields())
}

func TestParse_CSVEncoding(t *testing.T) {
	// "café" in windows-1252
	input := []byte("id,name\n1,caf\xe9\n")

	ds, err := Parse(context.Background(), bytes.NewReader(input), "legacy.csv", WithEncoding("windows-1252"))
	require.NoError(t, err)
	v, _ := ds.Rows[0].Get("name")
	assert.Equal(t, "café", v)

	_, err = Parse(context.Background(), bytes.NewReader(input), "legacy.csv", WithEncoding("klingon"))
	assert.Error(t, err)
}

func TestParse_TSV(t *testing.T) {
	ds, err := Parse(context.Background(), strings.NewReader("id\tname\n1\tAl\n"), "people.tsv")
	require.NoError(t, err)
	assert.Equal(t, []map[string]interface{}{{"id": "1", "name": "Al"}}, fieldValues(t, ds.Rows))
}

func TestParse_EmptyInputs(t *testing.T) {
	for _, hint := range []string{"empty.csv", "empty.json", "empty.jsonl"} {
		t.Run(hint, func(t *testing.T) {
			ds, err := Parse(context.Background(), strings.NewReader(""), hint)
			require.NoError(t, err)
			assert.True(t, ds.IsEmpty())
			assert.NotNil(t, ds.Rows)
		})
	}

	ds, err := Parse(context.Background(), strings.NewReader("id,name\n"), "header-only.csv")
	require.NoError(t, err)
	assert.True(t, ds.IsEmpty())
}

func TestParse_MalformedCSV(t *testing.T) {
	_, err := Parse(context.Background(), strings.NewReader("id,name\n1,\"unterminated\n"), "bad.csv")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrParse))

	var pe *errors.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "csv", pe.Format)
	assert.Greater(t, pe.Line, 0)
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := Parse(context.Background(), strings.NewReader("whatever"), "report.pdf")
	assert.ErrorIs(t, err, errors.ErrUnsupportedFormat)
}

func TestParse_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Parse(ctx, strings.NewReader("id\n1\n2\n"), "rows.csv")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "orders.csv", "order,sku\nA-1,42\n")

	ds, err := ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "orders.csv", ds.Name)
	assert.Equal(t, 1, ds.Len())

	_, err = ReadFile(context.Background(), dir+"/missing.csv")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, errors.ErrUnsupportedFormat))

	_, err = ReadFile(context.Background(), dir+"/missing.doc")
	assert.ErrorIs(t, err, errors.ErrUnsupportedFormat)
}

func TestParse_JSON(t *testing.T) {
	tests := []struct {
		name  string
		hint  string
		input string
	}{
		{"array", "rows.json", `[{"id": 1, "name": "Al", "score": 9.5}, {"name": "Bo", "id": 2, "score": null}]`},
		{"lines", "rows.jsonl", "{\"id\": 1, \"name\": \"Al\", \"score\": 9.5}\n{\"name\": \"Bo\", \"id\": 2, \"score\": null}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Parse(context.Background(), strings.NewReader(tt.input), tt.hint)
			require.NoError(t, err)
			require.Len(t, ds.Rows, 2)

			assert.Equal(t, []string{"id", "name", "score"}, ds.Rows[0].Keys())
			assert.Equal(t, []string{"name", "id", "score"}, ds.Rows[1].Keys())
			assert.Equal(t, map[string]interface{}{"id": int64(1), "name": "Al", "score": 9.5}, ds.Rows[0].Map())
			assert.Equal(t, map[string]interface{}{"id": int64(2), "name": "Bo", "score": nil}, ds.Rows[1].Map())
		})
	}
}

func TestParse_JSONRejectsScalars(t *testing.T) {
	_, err := Parse(context.Background(), strings.NewReader(`42`), "rows.json")
	assert.ErrorIs(t, err, errors.ErrParse)

	_, err = Parse(context.Background(), strings.NewReader(`[1, 2]`), "rows.json")
	assert.ErrorIs(t, err, errors.ErrParse)
}
