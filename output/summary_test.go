package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/tablemerge/dataset"
	"github.com/vegasq/tablemerge/merge"
)

func sampleReport() Report {
	s := merge.Summary{Key: "id", PrimaryRows: 3, SecondaryRows: 2, MergedRows: 2, UnmatchedRows: 1}
	return Report{
		Summary: s,
		Warning: s.Warning(),
		Columns: []string{"id", "name", "city"},
		Preview: []dataset.Row{
			row("id", "1", "name", "Al", "city", "LA"),
			row("id", "2", "name", "Bo", "city", "SF"),
		},
		UnmatchedPreview: []dataset.Row{
			row("id", "3", "name", "Cy"),
		},
		Exports: map[string]string{"merged": "merged_data.csv"},
	}
}

func TestParseReportFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    ReportFormat
		wantErr bool
	}{
		{"", ReportTable, false},
		{"table", ReportTable, false},
		{"JSON", ReportJSON, false},
		{" yaml ", ReportYAML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		got, err := ParseReportFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestSummaryFormatter_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter(&buf, ReportTable).Format(sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "Merged rows")
	assert.Contains(t, out, "merged_data.csv")
	assert.Contains(t, out, "Warning: 1 rows from primary file had no match in the secondary file.")
	assert.Contains(t, out, "Preview (2 of 2 merged rows)")
	assert.Contains(t, out, "SF")
	assert.Less(t, strings.Index(out, "Al"), strings.Index(out, "Bo"))
	assert.Contains(t, out, "Unmatched (1 of 1 primary rows)")
	assert.Less(t, strings.Index(out, "Preview"), strings.Index(out, "Cy"))
}

func TestSummaryFormatter_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter(&buf, ReportJSON).Format(sampleReport()))

	var decoded struct {
		Summary merge.Summary       `json:"summary"`
		Warning string              `json:"warning"`
		Preview []map[string]string `json:"preview"`

		UnmatchedPreview []map[string]string `json:"unmatched_preview"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.UnmatchedPreview, 1)
	assert.Equal(t, "Cy", decoded.UnmatchedPreview[0]["name"])
	assert.Equal(t, 2, decoded.Summary.MergedRows)
	assert.NotEmpty(t, decoded.Warning)
	require.Len(t, decoded.Preview, 2)
	assert.Equal(t, "LA", decoded.Preview[0]["city"])
	assert.Less(t, strings.Index(buf.String(), `"name"`), strings.Index(buf.String(), `"city"`))
}

func TestSummaryFormatter_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter(&buf, ReportYAML).Format(sampleReport()))

	var decoded struct {
		Summary merge.Summary       `yaml:"summary"`
		Preview []map[string]string `yaml:"preview"`

		UnmatchedPreview []map[string]string `yaml:"unmatched_preview"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.UnmatchedPreview, 1)
	assert.Equal(t, "3", decoded.UnmatchedPreview[0]["id"])
	assert.Equal(t, "id", decoded.Summary.Key)
	assert.Equal(t, 1, decoded.Summary.UnmatchedRows)
	require.Len(t, decoded.Preview, 2)
	assert.Equal(t, "Bo", decoded.Preview[1]["name"])
}

func TestTableFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf).Format(nil))
	assert.Equal(t, "(no rows)\n", buf.String())
}
