package flatten

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
)

func sampleTable() *Table {
	table := NewTable("id", "name")
	table.Append(Row{"id": "sr:competitor:1", "name": "Ajax", "founded": 1900.0})
	table.Append(Row{"id": "sr:competitor:2", "name": "PSV"})
	return table
}

func TestTable_Append(t *testing.T) {
	table := sampleTable()

	if !reflect.DeepEqual(table.Columns, []string{"id", "name", "founded"}) {
		t.Errorf("Columns = %v", table.Columns)
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
}

func TestTable_Assign(t *testing.T) {
	table := sampleTable()
	table.Assign("season_urn", "sr:season:1")

	if table.Columns[len(table.Columns)-1] != "season_urn" {
		t.Errorf("Columns = %v, assigned column should be last", table.Columns)
	}
	values, err := table.Column("season_urn")
	if err != nil {
		t.Fatalf("Column() failed: %v", err)
	}
	for i, v := range values {
		if v != "sr:season:1" {
			t.Errorf("Row %d season_urn = %v", i, v)
		}
	}

	table.Assign("season_urn", "sr:season:2")
	if len(table.Columns) != 4 {
		t.Errorf("Reassigning must not duplicate the column: %v", table.Columns)
	}
}

func TestTable_SelectAndDrop(t *testing.T) {
	table := sampleTable()

	selected, err := table.Select("name", "id", "name")
	if err != nil {
		t.Fatalf("Select() failed: %v", err)
	}
	if !reflect.DeepEqual(selected.Columns, []string{"name", "id"}) {
		t.Errorf("Columns = %v, want [name id]", selected.Columns)
	}
	if _, ok := selected.Rows[0]["founded"]; ok {
		t.Error("Unselected cell leaked into result")
	}

	if _, err := table.Select("id", "country"); !errors.Is(err, ErrLookup) {
		t.Errorf("Select() error = %v, want lookup error", err)
	}

	dropped := table.Drop("founded", "does-not-exist")
	if !reflect.DeepEqual(dropped.Columns, []string{"id", "name"}) {
		t.Errorf("Columns = %v, want [id name]", dropped.Columns)
	}
	if !table.HasColumn("founded") {
		t.Error("Drop must not modify the input table")
	}
}

func TestTable_Column(t *testing.T) {
	table := sampleTable()

	values, err := table.Column("founded")
	if err != nil {
		t.Fatalf("Column() failed: %v", err)
	}
	if !reflect.DeepEqual(values, []any{1900.0, nil}) {
		t.Errorf("Column() = %v", values)
	}

	var lookupErr *LookupError
	if _, err := table.Column("country"); !errors.As(err, &lookupErr) || lookupErr.Key != "country" {
		t.Errorf("Column() error = %v, want *LookupError for country", err)
	}
}

func TestTable_WriteCSV(t *testing.T) {
	table := NewTable("id", "score", "active", "tags", "note")
	table.Append(Row{"id": "sr:player:1", "score": 1.5, "active": true, "tags": []any{"a"}, "note": "x, y"})
	table.Append(Row{"id": "sr:player:2", "score": 12.0})

	var buf bytes.Buffer
	if err := table.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV() failed: %v", err)
	}

	expected := "id,score,active,tags,note\n" +
		"sr:player:1,1.5,true,\"[\"\"a\"\"]\",\"x, y\"\n" +
		"sr:player:2,12,,,\n"
	if buf.String() != expected {
		t.Errorf("WriteCSV() =\n%s\nwant\n%s", buf.String(), expected)
	}
}

func TestTable_WriteJSON(t *testing.T) {
	table := NewTable("name", "id")
	table.Append(Row{"name": "Ajax", "id": "sr:competitor:1"})
	table.Append(Row{"id": "sr:competitor:2"})

	var buf bytes.Buffer
	if err := table.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}

	expected := `[{"name":"Ajax","id":"sr:competitor:1"},{"name":null,"id":"sr:competitor:2"}]` + "\n"
	if buf.String() != expected {
		t.Errorf("WriteJSON() = %s, want %s", buf.String(), expected)
	}
}

func TestTable_WriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTable("id").WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() failed: %v", err)
	}
	if buf.String() != "[]\n" {
		t.Errorf("WriteJSON() = %q, want []", buf.String())
	}
}
