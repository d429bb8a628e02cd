package flatten

import (
	"fmt"
	"strings"
)

// Rule rewrites one column name.
type Rule interface {
	Apply(name string) string
}

// TrimPrefix strips a leading prefix from column names.
type TrimPrefix string

// Apply implements Rule.
func (p TrimPrefix) Apply(name string) string {
	return strings.TrimPrefix(name, string(p))
}

// Remove deletes every occurrence of a substring from column names.
type Remove string

// Apply implements Rule.
func (s Remove) Apply(name string) string {
	return strings.ReplaceAll(name, string(s), "")
}

// Replace substitutes every occurrence of Old with New.
type Replace struct {
	Old string
	New string
}

// Apply implements Rule.
func (r Replace) Apply(name string) string {
	return strings.ReplaceAll(name, r.Old, r.New)
}

// Rules is an ordered list of rename rules.
type Rules []Rule

// Apply runs every rule on name, in order.
func (rs Rules) Apply(name string) string {
	for _, rule := range rs {
		name = rule.Apply(name)
	}
	return name
}

// Rename returns a copy of t with every column renamed. Two columns that end
// up with the same name are an error.
func (rs Rules) Rename(t *Table) (*Table, error) {
	renamed := make(map[string]string, len(t.Columns))
	origin := make(map[string]string, len(t.Columns))
	columns := make([]string, len(t.Columns))

	for i, name := range t.Columns {
		newName := rs.Apply(name)
		if previous, exists := origin[newName]; exists {
			return nil, fmt.Errorf("rename: columns %q and %q both become %q", previous, name, newName)
		}
		origin[newName] = name
		renamed[name] = newName
		columns[i] = newName
	}

	out := &Table{Columns: columns, Rows: make([]Row, len(t.Rows))}
	for i, row := range t.Rows {
		next := make(Row, len(row))
		for name, value := range row {
			if newName, ok := renamed[name]; ok {
				next[newName] = value
			}
		}
		out.Rows[i] = next
	}
	return out, nil
}
