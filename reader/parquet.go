package reader

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/vegasq/tablemerge/dataset"
	"github.com/vegasq/tablemerge/errors"
)

// ParquetReader reads a parquet file into rows ordered by the file schema.
type ParquetReader struct {
	pqFile *parquet.File
}

// NewParquetReader opens the parquet file held by r.
//
// Returns an error if the content is not a valid parquet file.
func NewParquetReader(r io.ReaderAt, size int64) (*ParquetReader, error) {
	pqFile, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, errors.NewParseError("parquet", 0, fmt.Errorf("failed to open parquet file: %w", err))
	}
	return &ParquetReader{pqFile: pqFile}, nil
}

// Fields returns the top-level column names in schema order.
func (r *ParquetReader) Fields() []string {
	fields := r.pqFile.Schema().Fields()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name()
	}
	return names
}

// NumRows returns the row count recorded in the file metadata.
func (r *ParquetReader) NumRows() int64 {
	return r.pqFile.NumRows()
}

// ReadAll reads every row into memory.
//
// Each row's fields follow the schema order. Optional columns that are
// null come back as nil values.
func (r *ParquetReader) ReadAll(ctx context.Context) ([]dataset.Row, error) {
	fields := r.Fields()
	rows := make([]dataset.Row, 0, r.NumRows())

	pr := parquet.NewReader(r.pqFile)
	defer func() { _ = pr.Close() }()

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		m := make(map[string]interface{})
		err := pr.Read(&m)
		if err != nil {
			if stderrors.Is(err, io.EOF) {
				break
			}
			return nil, errors.NewParseError("parquet", len(rows)+1, fmt.Errorf("failed to read row: %w", err))
		}
		rows = append(rows, dataset.RowFromMap(fields, m))
	}

	return rows, nil
}

func parseParquet(ctx context.Context, r io.Reader) ([]dataset.Row, error) {
	var ra io.ReaderAt
	var size int64

	if f, ok := r.(*os.File); ok {
		if st, err := f.Stat(); err == nil {
			ra, size = f, st.Size()
		}
	}
	if ra == nil {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet input: %w", err)
		}
		ra, size = bytes.NewReader(data), int64(len(data))
	}

	pr, err := NewParquetReader(ra, size)
	if err != nil {
		return nil, err
	}
	return pr.ReadAll(ctx)
}
