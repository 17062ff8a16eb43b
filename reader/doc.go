// Package reader parses tabular files into datasets.
//
// This package offers a simple, high-level API for turning CSV, TSV,
// spreadsheet, parquet and JSON files into rows of named fields. The whole
// file is loaded into memory.
//
// # Basic Usage
//
// Reading a file, with the format chosen from its extension:
//
//	ds, err := reader.ReadFile(ctx, "orders.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(ds.Fields())
//
// Parsing bytes that did not come from disk, such as an upload:
//
//	ds, err := reader.Parse(ctx, bytes.NewReader(body), "customers.xlsx")
//
// # Formats
//
//   - csv, tsv: the header row names the fields; every value is a string.
//     Short rows omit their missing trailing fields.
//   - xlsx, xlsm: first sheet only; the first row is the header. Empty cells
//     are omitted, numbers become int64 or float64, booleans bool.
//   - parquet: fields follow the file schema; values keep their parquet types.
//   - json, jsonl, ndjson: an array of objects or one object per line.
//
// Any other extension, including legacy ".xls", fails with an error
// matching errors.ErrUnsupportedFormat:
//
//	_, err := reader.ReadFile(ctx, "notes.pdf")
//	if errors.Is(err, errors.ErrUnsupportedFormat) {
//	    // ask for a different file
//	}
//
// # Text Encodings
//
// CSV and TSV input is UTF-8 by default. A byte order mark is honoured and
// stripped. Other encodings are selected with WithEncoding:
//
//	ds, err := reader.ReadFile(ctx, "legacy.csv", reader.WithEncoding("windows-1252"))
//
// # Column Introspection
//
// Inspect summarises every field seen in a dataset:
//
//	for _, col := range reader.Inspect(ds) {
//	    fmt.Printf("%s: %s (%d/%d non-empty)\n", col.Name, col.Type, col.NonEmpty, ds.Len())
//	}
//
// The package uses github.com/xuri/excelize/v2 for spreadsheets and
// github.com/parquet-go/parquet-go for parquet files.
package reader
