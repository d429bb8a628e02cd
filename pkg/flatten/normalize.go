package flatten

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultSep joins nested keys into column names.
const DefaultSep = "."

// Normalize builds one row per record. Nested objects are flattened into
// columns joined by sep; lists are kept as cell values. Empty nested objects
// produce no column. Every record must be a JSON object.
//
// Columns appear in first-appearance order across records, with the keys of
// each object visited in sorted order.
func Normalize(records []any, sep string) (*Table, error) {
	return normalizePrefixed(records, "", sep)
}

func normalizePrefixed(records []any, prefix, sep string) (*Table, error) {
	cols := newColumnSet()
	rows := make([]Row, 0, len(records))

	for i, record := range records {
		obj, ok := record.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d is %T, not an object", i, record)
		}
		row := make(Row)
		normalizeInto(row, cols, prefix, obj, sep)
		rows = append(rows, row)
	}

	return &Table{Columns: cols.names, Rows: rows}, nil
}

func normalizeInto(row Row, cols *columnSet, prefix string, obj map[string]any, sep string) {
	for _, key := range sortedKeys(obj) {
		name := prefix + key
		if nested, ok := obj[key].(map[string]any); ok {
			normalizeInto(row, cols, name+sep, nested, sep)
			continue
		}
		row[name] = obj[key]
		cols.add(name)
	}
}

// FromPayload normalizes the value stored at path in payload. Path may be a
// single key or a dotted path into nested objects. A list is normalized row
// by row; an object becomes a single row.
func FromPayload(payload map[string]any, path string) (*Table, error) {
	value, err := lookup(payload, path)
	if err != nil {
		return nil, err
	}

	switch v := value.(type) {
	case []any:
		return Normalize(v, DefaultSep)
	case map[string]any:
		return Normalize([]any{v}, DefaultSep)
	default:
		return nil, fmt.Errorf("%s: cannot normalize %T", path, value)
	}
}

func lookup(payload map[string]any, path string) (any, error) {
	if value, ok := payload[path]; ok {
		return value, nil
	}

	var current any = payload
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, &LookupError{Key: path}
		}
		if current, ok = obj[part]; !ok {
			return nil, &LookupError{Key: path}
		}
	}
	return current, nil
}

// FlattenObject flattens obj completely: nested objects and list elements
// both become columns, list elements keyed by their index
// ("roles.0.competitor.id"). Empty objects and lists are kept as values.
func FlattenObject(obj map[string]any, sep string) Row {
	row := make(Row)
	flattenInto(row, newColumnSet(), "", obj, sep)
	return row
}

// FlattenRecords applies FlattenObject to each record and collects the
// results in a table. Every record must be a JSON object.
func FlattenRecords(records []any, sep string) (*Table, error) {
	cols := newColumnSet()
	rows := make([]Row, 0, len(records))

	for i, record := range records {
		obj, ok := record.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("record %d is %T, not an object", i, record)
		}
		row := make(Row)
		flattenInto(row, cols, "", obj, sep)
		rows = append(rows, row)
	}

	return &Table{Columns: cols.names, Rows: rows}, nil
}

func flattenInto(row Row, cols *columnSet, name string, value any, sep string) {
	join := func(key string) string {
		if name == "" {
			return key
		}
		return name + sep + key
	}

	switch v := value.(type) {
	case map[string]any:
		if len(v) == 0 && name != "" {
			break
		}
		for _, key := range sortedKeys(v) {
			flattenInto(row, cols, join(key), v[key], sep)
		}
		return
	case []any:
		if len(v) == 0 {
			break
		}
		for i, item := range v {
			flattenInto(row, cols, join(strconv.Itoa(i)), item, sep)
		}
		return
	}

	row[name] = value
	cols.add(name)
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for key := range obj {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
