package reader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/vegasq/tablemerge/dataset"
	"github.com/vegasq/tablemerge/errors"
)

// parseJSON reads either a JSON array of objects or a stream of objects
// (JSON Lines). Field order follows the source text. Whole numbers become
// int64, other numbers float64; nested values are kept as decoded.
func parseJSON(ctx context.Context, r io.Reader, format Format) ([]dataset.Row, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, jsonError(format, 0, err)
	}

	var rows []dataset.Row
	switch tok {
	case json.Delim('['):
		for dec.More() {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := expectDelim(dec, '{'); err != nil {
				return nil, jsonError(format, len(rows)+1, err)
			}
			row, err := readObject(dec)
			if err != nil {
				return nil, jsonError(format, len(rows)+1, err)
			}
			rows = append(rows, row)
		}
		if err := expectDelim(dec, ']'); err != nil {
			return nil, jsonError(format, 0, err)
		}
	case json.Delim('{'):
		for {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			row, err := readObject(dec)
			if err != nil {
				return nil, jsonError(format, len(rows)+1, err)
			}
			rows = append(rows, row)

			if err := expectDelim(dec, '{'); err == io.EOF {
				break
			} else if err != nil {
				return nil, jsonError(format, len(rows)+1, err)
			}
		}
	default:
		return nil, jsonError(format, 0, fmt.Errorf("expected an object or an array of objects, got %v", tok))
	}
	return rows, nil
}

// readObject reads the members of an object whose opening brace has been
// consumed, including the closing brace.
func readObject(dec *json.Decoder) (dataset.Row, error) {
	row := dataset.NewRow(8)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return dataset.Row{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return dataset.Row{}, fmt.Errorf("expected object key, got %v", tok)
		}
		var v interface{}
		if err := dec.Decode(&v); err != nil {
			return dataset.Row{}, err
		}
		row.Set(key, jsonValue(v))
	}
	if err := expectDelim(dec, '}'); err != nil {
		return dataset.Row{}, err
	}
	return row, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func jsonValue(v interface{}) interface{} {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

func jsonError(format Format, record int, err error) error {
	return errors.NewParseError(string(format), record, err)
}
