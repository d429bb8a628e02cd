package flatten

// Explode replaces the list-valued column by one row per list element.
//
// When keep is non-empty the input is first reduced to keep plus column, so
// every other column is dropped. Object elements are normalized into columns
// prefixed with column + "."; scalar elements are stored under column itself.
// A row whose value is an empty list or null is kept once, without new
// columns. A missing column or keep column yields a *LookupError.
func Explode(t *Table, column string, keep ...string) (*Table, error) {
	if !t.HasColumn(column) {
		return nil, &LookupError{Key: column}
	}

	base := t
	if len(keep) > 0 {
		selected, err := t.Select(append(keep[:len(keep):len(keep)], column)...)
		if err != nil {
			return nil, err
		}
		base = selected
	}

	cols := newColumnSet()
	for _, name := range base.Columns {
		if name != column {
			cols.add(name)
		}
	}

	prefix := column + DefaultSep
	var rows []Row

	for _, row := range base.Rows {
		parent := make(Row, len(row))
		for name, value := range row {
			if name != column {
				parent[name] = value
			}
		}

		elements, ok := row[column].([]any)
		if !ok {
			if row[column] != nil {
				elements = []any{row[column]}
			}
		}
		if len(elements) == 0 {
			rows = append(rows, parent)
			continue
		}

		for _, element := range elements {
			out := make(Row, len(parent))
			for name, value := range parent {
				out[name] = value
			}

			switch v := element.(type) {
			case map[string]any:
				normalizeInto(out, cols, prefix, v, DefaultSep)
			case nil:
			default:
				out[column] = v
				cols.add(column)
			}
			rows = append(rows, out)
		}
	}

	return &Table{Columns: cols.names, Rows: rows}, nil
}

// Level is one step of a multi-level explode.
type Level struct {
	Column string
	Keep   []string
}

// ExplodeLevels explodes each level in turn. Keep columns accumulate: level n
// retains its own Keep plus the Keep of every earlier level, so identifiers
// from outer lists are carried down to the innermost rows.
func ExplodeLevels(t *Table, levels ...Level) (*Table, error) {
	var keep []string
	current := t

	for _, level := range levels {
		keep = append(keep, level.Keep...)

		next, err := Explode(current, level.Column, keep...)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}
