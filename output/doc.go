// Package output provides formatters for writing rows to files and terminals.
//
// This package defines the Formatter interface and provides implementations
// for CSV, xlsx workbooks, JSON Lines and text tables. All formatters work
// with rows represented as []dataset.Row and share one header rule: the
// columns are the fields of the first row, in order. Later rows are written
// against that header, so their missing fields come out blank.
//
// # Supported Formats
//
//   - CSV (and TSV): delimited text with a header row
//   - XLSX: one sheet, header in row 1, numbers and booleans typed
//   - JSON Lines: One JSON object per line (suitable for streaming)
//   - Table: aligned text for previews
//
// # Basic Usage
//
// Writing a merge result the way the merge command does:
//
//	if err := output.WriteFile(output.DefaultMergedFilename, res.MergedRows); err != nil {
//	    log.Fatal(err)
//	}
//	if err := output.WriteFile(output.DefaultUnmatchedFilename, res.UnmatchedRows); err != nil {
//	    log.Fatal(err)
//	}
//
// Serializing to bytes, e.g. for an HTTP response:
//
//	data, err := output.SerializeDelimited(rows)
//	book, err := output.SerializeSpreadsheet(rows, output.WithSheetName("Unmatched"))
//
// # Writing to Different Destinations
//
//	formatter := output.NewCSVFormatter(os.Stdout)
//	formatter.SetOutput(file)
//	if err := formatter.Format(rows); err != nil {
//	    log.Fatal(err)
//	}
//
// # Formula Injection
//
// Values starting with =, +, -, @ (and a few control characters) are
// evaluated by spreadsheet applications. CSVFormatter.SanitizeFormulas, or
// WithSanitizeFormulas for exports, prefixes them with a single quote.
// It is off by default so exported text matches the input exactly.
//
// # Reports
//
// SummaryFormatter renders the counts, warning and preview of a merge as a
// table, JSON or YAML.
package output
