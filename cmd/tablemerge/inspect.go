package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/vegasq/tablemerge/internal/logging"
	"github.com/vegasq/tablemerge/output"
	"github.com/vegasq/tablemerge/reader"
)

type inspection struct {
	File    string              `json:"file" yaml:"file"`
	Format  string              `json:"format" yaml:"format"`
	Rows    int                 `json:"rows" yaml:"rows"`
	Columns []reader.ColumnInfo `json:"columns" yaml:"columns"`
}

func (a *app) inspectCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "Show the columns of a file",
		Long: `Inspect parses FILE and prints one line per column: its inferred type,
whether it is part of the header used for merging and exporting, and how
many rows carry a value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := output.ParseReportFormat(format)
			if err != nil {
				return err
			}

			path := args[0]
			detected, err := reader.DetectFormat(path)
			if err != nil {
				return err
			}
			ds, err := reader.ReadFile(cmd.Context(), path,
				reader.WithEncoding(a.cfg.Encoding),
				reader.WithLogger(*logging.FromContext(cmd.Context())),
			)
			if err != nil {
				return err
			}

			info := inspection{
				File:    ds.Name,
				Format:  string(detected),
				Rows:    ds.Len(),
				Columns: reader.Inspect(ds),
			}
			return writeInspection(cmd.OutOrStdout(), f, info)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: table, json or yaml")
	return cmd
}

func writeInspection(w io.Writer, format output.ReportFormat, info inspection) error {
	switch format {
	case output.ReportJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	case output.ReportYAML:
		data, err := yaml.MarshalWithOptions(info, yaml.Indent(2), yaml.IndentSequence(false))
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}

	if _, err := fmt.Fprintf(w, "%s (%s): %d rows\n", info.File, info.Format, info.Rows); err != nil {
		return err
	}
	config := tablewriter.Config{}
	config.Row.Alignment = tw.CellAlignment{
		PerColumn: []tw.Align{tw.AlignLeft, tw.AlignLeft, tw.AlignLeft, tw.AlignRight, tw.AlignRight},
	}
	table := tablewriter.NewTable(w, tablewriter.WithConfig(config))
	table.Header("Column", "Type", "In Header", "Present", "Non-empty")
	for _, col := range info.Columns {
		if err := table.Append(
			col.Name,
			col.Type,
			strconv.FormatBool(col.InSchema),
			strconv.Itoa(col.Present),
			strconv.Itoa(col.NonEmpty),
		); err != nil {
			return err
		}
	}
	return table.Render()
}
