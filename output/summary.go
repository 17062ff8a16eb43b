package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"

	"github.com/vegasq/tablemerge/dataset"
	"github.com/vegasq/tablemerge/errors"
	"github.com/vegasq/tablemerge/merge"
)

// ReportFormat selects how a merge report is rendered.
type ReportFormat string

const (
	// ReportTable renders aligned text tables.
	ReportTable ReportFormat = "table"
	// ReportJSON renders one indented JSON document.
	ReportJSON ReportFormat = "json"
	// ReportYAML renders one YAML document.
	ReportYAML ReportFormat = "yaml"
)

// ParseReportFormat converts s to a ReportFormat. Empty means ReportTable.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch f := ReportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return ReportTable, nil
	case ReportTable, ReportJSON, ReportYAML:
		return f, nil
	default:
		return "", errors.NewConfigError("output", fmt.Sprintf("unknown format %q (want table, json or yaml)", s), nil)
	}
}

// Report is what the CLI prints after a merge.
type Report struct {
	Summary merge.Summary `json:"summary" yaml:"summary"`
	Warning string        `json:"warning,omitempty" yaml:"warning,omitempty"`
	Columns []string      `json:"columns" yaml:"columns"`
	Preview []dataset.Row `json:"preview" yaml:"-"`

	// UnmatchedPreview holds the first unmatched primary rows.
	UnmatchedPreview []dataset.Row `json:"unmatched_preview,omitempty" yaml:"-"`

	// Exports lists the files written, by role ("merged", "unmatched").
	Exports map[string]string `json:"exports,omitempty" yaml:"exports,omitempty"`
}

// SummaryFormatter writes a Report.
type SummaryFormatter struct {
	writer io.Writer
	format ReportFormat
}

// NewSummaryFormatter creates a report formatter for the given format.
func NewSummaryFormatter(w io.Writer, format ReportFormat) *SummaryFormatter {
	return &SummaryFormatter{writer: w, format: format}
}

// SetOutput sets the output writer
func (s *SummaryFormatter) SetOutput(w io.Writer) {
	s.writer = w
}

// Format writes r in the formatter's format.
func (s *SummaryFormatter) Format(r Report) error {
	switch s.format {
	case ReportJSON:
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(r)
	case ReportYAML:
		return s.formatYAML(r)
	default:
		return s.formatTable(r)
	}
}

func (s *SummaryFormatter) formatTable(r Report) error {
	table := tablewriter.NewTable(s.writer)
	table.Header("Metric", "Value")
	counts := [][]any{
		{"Key", r.Summary.Key},
		{"Primary rows", strconv.Itoa(r.Summary.PrimaryRows)},
		{"Secondary rows", strconv.Itoa(r.Summary.SecondaryRows)},
		{"Merged rows", strconv.Itoa(r.Summary.MergedRows)},
		{"Unmatched rows", strconv.Itoa(r.Summary.UnmatchedRows)},
		{"Duration", strconv.FormatInt(r.Summary.DurationMS, 10) + "ms"},
	}
	for _, role := range []string{"merged", "unmatched"} {
		if path, ok := r.Exports[role]; ok {
			counts = append(counts, []any{"Exported " + role, path})
		}
	}
	for _, c := range counts {
		if err := table.Append(c...); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if r.Warning != "" {
		if _, err := fmt.Fprintf(s.writer, "\nWarning: %s\n", r.Warning); err != nil {
			return err
		}
	}

	if r.Preview != nil {
		if _, err := fmt.Fprintf(s.writer, "\nPreview (%d of %d merged rows):\n", len(r.Preview), r.Summary.MergedRows); err != nil {
			return err
		}
		if err := NewTableFormatter(s.writer).Format(r.Preview); err != nil {
			return err
		}
	}

	if len(r.UnmatchedPreview) > 0 {
		if _, err := fmt.Fprintf(s.writer, "\nUnmatched (%d of %d primary rows):\n", len(r.UnmatchedPreview), r.Summary.UnmatchedRows); err != nil {
			return err
		}
		return NewTableFormatter(s.writer).Format(r.UnmatchedPreview)
	}
	return nil
}

// formatYAML writes the report with preview rows as ordered mappings.
func (s *SummaryFormatter) formatYAML(r Report) error {
	type yamlReport struct {
		Report           `yaml:",inline"`
		Preview          []yaml.MapSlice `yaml:"preview"`
		UnmatchedPreview []yaml.MapSlice `yaml:"unmatched_preview,omitempty"`
	}

	out := yamlReport{
		Report:           r,
		Preview:          mapSlices(r.Preview),
		UnmatchedPreview: mapSlices(r.UnmatchedPreview),
	}

	data, err := yaml.MarshalWithOptions(out,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = s.writer.Write(data)
	return err
}

func mapSlices(rows []dataset.Row) []yaml.MapSlice {
	if rows == nil {
		return nil
	}
	out := make([]yaml.MapSlice, len(rows))
	for i, row := range rows {
		ms := make(yaml.MapSlice, 0, row.Len())
		for _, k := range row.Keys() {
			v, _ := row.Get(k)
			ms = append(ms, yaml.MapItem{Key: k, Value: v})
		}
		out[i] = ms
	}
	return out
}
