package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vegasq/tablemerge/internal/config"
	"github.com/vegasq/tablemerge/internal/logging"
	"github.com/vegasq/tablemerge/merge"
	"github.com/vegasq/tablemerge/output"
	"github.com/vegasq/tablemerge/reader"
	"github.com/vegasq/tablemerge/session"
)

type mergeFlags struct {
	format   string
	noExport bool
}

func (a *app) mergeCommand() *cobra.Command {
	var mf mergeFlags

	cmd := &cobra.Command{
		Use:   "merge PRIMARY SECONDARY",
		Short: "Merge two files on a shared column and export the result",
		Long: `Merge left-joins PRIMARY with SECONDARY on a key column present in both.

The key defaults to the first column of PRIMARY that SECONDARY also has.
Merged rows are written as CSV and unmatched primary rows as a spreadsheet;
the output format of each file follows its extension.`,
		Example: `  tablemerge merge customers.csv orders.xlsx
  tablemerge merge customers.csv orders.xlsx --key email --preview 5
  tablemerge merge a.csv b.parquet --merged-out merged.json --unmatched-out missing.csv
  tablemerge merge a.csv b.csv --format json --no-export`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMerge(cmd, args[0], args[1], mf)
		},
	}

	flags := cmd.Flags()
	flags.String("key", "", "merge key column (default: first common column)")
	flags.String("merged-out", output.DefaultMergedFilename, "file for merged rows")
	flags.String("unmatched-out", output.DefaultUnmatchedFilename, "file for unmatched primary rows")
	flags.Int("preview", merge.DefaultPreviewRows, "number of merged rows to preview (0 disables)")
	flags.String("empty-keys", string(merge.EmptyKeysMatch), "how blank keys compare: match or unmatched")
	flags.Bool("nfc", false, "compare keys after Unicode NFC normalization")
	flags.Bool("sanitize", false, "escape values that spreadsheets would run as formulas")
	flags.String("sheet", output.DefaultSheetName, "sheet name of spreadsheet exports")
	flags.BoolVar(&mf.noExport, "no-export", false, "print the report without writing files")
	flags.StringVarP(&mf.format, "format", "f", "table", "report format: table, json or yaml")

	a.bindFlag(flags, config.KeyMergeKey, "key")
	a.bindFlag(flags, config.KeyMergedPath, "merged-out")
	a.bindFlag(flags, config.KeyUnmatchedPath, "unmatched-out")
	a.bindFlag(flags, config.KeyPreviewRows, "preview")
	a.bindFlag(flags, config.KeyEmptyKeys, "empty-keys")
	a.bindFlag(flags, config.KeyUnicodeNFC, "nfc")
	a.bindFlag(flags, config.KeySanitizeFormulas, "sanitize")
	a.bindFlag(flags, config.KeySheetName, "sheet")

	return cmd
}

// newSession builds a session from the loaded configuration, logging to
// the logger carried by ctx.
func (a *app) newSession(ctx context.Context) *session.Session {
	logger := *logging.FromContext(ctx)
	return session.New(
		session.WithLogger(logger),
		session.WithMergeOptions(
			merge.WithEmptyKeyPolicy(a.cfg.EmptyKeys),
			merge.WithUnicodeNormalization(a.cfg.UnicodeNFC),
			merge.WithLogger(logger),
		),
		session.WithReaderOptions(reader.WithEncoding(a.cfg.Encoding)),
		session.WithExportOptions(
			output.WithSanitizeFormulas(a.cfg.SanitizeFormulas),
			output.WithSheetName(a.cfg.SheetName),
		),
	)
}

// loadPair loads both inputs and checks that they share a column.
func (a *app) loadPair(cmd *cobra.Command, primary, secondary string) (*session.Session, error) {
	ctx := cmd.Context()
	s := a.newSession(ctx)

	if err := s.LoadPrimaryFile(ctx, primary); err != nil {
		return nil, err
	}
	if err := s.LoadSecondaryFile(ctx, secondary); err != nil {
		return nil, err
	}
	if len(s.Columns()) == 0 {
		return nil, fmt.Errorf("%s and %s have no column in common", primary, secondary)
	}
	return s, nil
}

func (a *app) runMerge(cmd *cobra.Command, primary, secondary string, mf mergeFlags) error {
	format, err := output.ParseReportFormat(mf.format)
	if err != nil {
		return err
	}

	s, err := a.loadPair(cmd, primary, secondary)
	if err != nil {
		return err
	}

	key := a.cfg.Key
	if key == "" {
		key = s.Key()
	}
	start := time.Now()
	res, err := s.MergeKey(cmd.Context(), key)
	if err != nil {
		return err
	}

	summary := res.Summary().WithDuration(time.Since(start))
	report := output.Report{
		Summary: summary,
		Warning: summary.Warning(),
		Columns: res.Columns(),
	}
	if a.cfg.PreviewRows > 0 {
		report.Preview = res.Preview(a.cfg.PreviewRows)
		if res.UnmatchedCount > 0 {
			report.UnmatchedPreview = res.PreviewUnmatched(a.cfg.PreviewRows)
		}
	}

	if !mf.noExport {
		report.Exports = make(map[string]string)
		path, err := s.ExportMerged(a.cfg.MergedPath)
		if err != nil {
			return err
		}
		report.Exports["merged"] = path

		// Always written, replacing any file from an earlier run.
		path, err = s.ExportUnmatched(a.cfg.UnmatchedPath)
		if err != nil {
			return err
		}
		report.Exports["unmatched"] = path
	}

	return output.NewSummaryFormatter(cmd.OutOrStdout(), format).Format(report)
}
