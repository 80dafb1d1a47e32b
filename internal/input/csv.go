package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadCSV reads delimited text whose first row names the fields. Short rows
// leave their missing fields unset.
func ReadCSV(r io.Reader, comma rune) ([]any, error) {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var out []any
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		rec := NewRecord()
		for i, key := range header {
			if i < len(row) {
				rec.Put(key, row[i])
			}
		}
		out = append(out, rec)
	}
}
