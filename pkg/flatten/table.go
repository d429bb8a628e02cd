package flatten

import (
	"slices"
	"sort"
)

// Row maps column names to cell values. A column absent from the map is an
// empty cell.
type Row map[string]any

// Table is an ordered set of columns and the rows holding their values.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...string) *Table {
	return &Table{Columns: slices.Clone(columns)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.Columns, name)
}

// Append adds a row. Keys not yet known become new columns, in sorted order.
func (t *Table) Append(row Row) {
	var added []string
	for name := range row {
		if !t.HasColumn(name) {
			added = append(added, name)
		}
	}
	sort.Strings(added)
	t.Columns = append(t.Columns, added...)
	t.Rows = append(t.Rows, row)
}

// Assign sets column to value in every row, adding the column if needed.
func (t *Table) Assign(column string, value any) {
	if !t.HasColumn(column) {
		t.Columns = append(t.Columns, column)
	}
	for _, row := range t.Rows {
		row[column] = value
	}
}

// Column returns the values of one column in row order.
func (t *Table) Column(name string) ([]any, error) {
	if !t.HasColumn(name) {
		return nil, &LookupError{Key: name}
	}
	values := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[name]
	}
	return values, nil
}

// Select returns a new table with only the named columns, in the given order.
func (t *Table) Select(columns ...string) (*Table, error) {
	for _, name := range columns {
		if !t.HasColumn(name) {
			return nil, &LookupError{Key: name}
		}
	}

	out := &Table{
		Columns: dedupe(columns),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = row.pick(out.Columns)
	}
	return out, nil
}

// Drop returns a new table without the named columns. Unknown names are ignored.
func (t *Table) Drop(columns ...string) *Table {
	var keep []string
	for _, name := range t.Columns {
		if !slices.Contains(columns, name) {
			keep = append(keep, name)
		}
	}

	out := &Table{
		Columns: keep,
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = row.pick(keep)
	}
	return out
}

func (r Row) pick(columns []string) Row {
	out := make(Row, len(columns))
	for _, name := range columns {
		if value, ok := r[name]; ok {
			out[name] = value
		}
	}
	return out
}

func dedupe(names []string) []string {
	set := newColumnSet()
	for _, name := range names {
		set.add(name)
	}
	return set.names
}

// columnSet collects column names in first-appearance order.
type columnSet struct {
	names []string
	seen  map[string]struct{}
}

func newColumnSet(names ...string) *columnSet {
	c := &columnSet{seen: make(map[string]struct{})}
	for _, name := range names {
		c.add(name)
	}
	return c
}

func (c *columnSet) add(name string) {
	if _, ok := c.seen[name]; ok {
		return
	}
	c.seen[name] = struct{}{}
	c.names = append(c.names, name)
}
