package flatten

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// WriteCSV writes the table as CSV with a header row. Empty cells and nulls
// are written as empty fields; lists and objects are JSON-encoded.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		for j, name := range t.Columns {
			cell, err := formatCell(row[name])
			if err != nil {
				return fmt.Errorf("row %d column %q: %w", i, name, err)
			}
			record[j] = cell
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatCell(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return string(encoded), nil
	}
}

// WriteJSON writes the table as a JSON array of objects. Object fields follow
// column order and every column is present, null for empty cells.
func (t *Table) WriteJSON(w io.Writer) error {
	stream := json.BorrowStream(w)
	defer json.ReturnStream(stream)

	stream.WriteArrayStart()
	for i, row := range t.Rows {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectStart()
		for j, name := range t.Columns {
			if j > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(name)
			stream.WriteVal(row[name])
		}
		stream.WriteObjectEnd()
	}
	stream.WriteArrayEnd()
	stream.WriteRaw("\n")

	if stream.Error != nil {
		return fmt.Errorf("encode table: %w", stream.Error)
	}
	return stream.Flush()
}
