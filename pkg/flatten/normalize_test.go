package flatten

import (
	"errors"
	"reflect"
	"testing"

	jsoniter "github.com/json-iterator/go"
)

// decode parses a JSON fixture into the shapes the client produces.
func decode(t *testing.T, raw string) map[string]any {
	t.Helper()

	var payload map[string]any
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return payload
}

func TestNormalize_NestedObjects(t *testing.T) {
	payload := decode(t, `{"items":[{"a":1,"b":{"c":2}}]}`)

	table, err := FromPayload(payload, "items")
	if err != nil {
		t.Fatalf("FromPayload() failed: %v", err)
	}

	if !reflect.DeepEqual(table.Columns, []string{"a", "b.c"}) {
		t.Errorf("Columns = %v, want [a b.c]", table.Columns)
	}
	if table.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", table.Len())
	}
	if table.Rows[0]["a"] != 1.0 || table.Rows[0]["b.c"] != 2.0 {
		t.Errorf("Row = %v, want a=1 b.c=2", table.Rows[0])
	}
}

func TestNormalize_ColumnOrder(t *testing.T) {
	records := []any{
		map[string]any{"name": "Ajax", "id": "sr:competitor:1"},
		map[string]any{"id": "sr:competitor:2", "country": "NL", "category": map[string]any{"name": "Netherlands", "id": "sr:category:35"}},
	}

	table, err := Normalize(records, DefaultSep)
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}

	expected := []string{"id", "name", "category.id", "category.name", "country"}
	if !reflect.DeepEqual(table.Columns, expected) {
		t.Errorf("Columns = %v, want %v", table.Columns, expected)
	}
	if _, ok := table.Rows[0]["country"]; ok {
		t.Error("First row should have no country cell")
	}
}

func TestNormalize_KeepsListsAndDropsEmptyObjects(t *testing.T) {
	records := []any{
		map[string]any{
			"id":    "sr:season:1",
			"tags":  []any{"a", "b"},
			"extra": map[string]any{},
		},
	}

	table, err := Normalize(records, "_")
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}

	if !reflect.DeepEqual(table.Columns, []string{"id", "tags"}) {
		t.Errorf("Columns = %v, want [id tags]", table.Columns)
	}
	if _, ok := table.Rows[0]["tags"].([]any); !ok {
		t.Errorf("tags = %T, want list kept as value", table.Rows[0]["tags"])
	}
}

func TestNormalize_FlatInputUnchanged(t *testing.T) {
	records := []any{
		map[string]any{"id": "sr:competition:17", "name": "Premier League", "gender": "men"},
		map[string]any{"id": "sr:competition:8", "name": "LaLiga", "gender": "men"},
	}

	first, err := Normalize(records, DefaultSep)
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}

	again := make([]any, len(first.Rows))
	for i, row := range first.Rows {
		again[i] = map[string]any(row)
	}
	second, err := Normalize(again, DefaultSep)
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Normalize is not idempotent on flat input:\n%v\n%v", first, second)
	}
	for i, record := range records {
		if !reflect.DeepEqual(map[string]any(first.Rows[i]), record) {
			t.Errorf("Row %d = %v, want %v", i, first.Rows[i], record)
		}
	}
}

func TestNormalize_RejectsNonObjects(t *testing.T) {
	if _, err := Normalize([]any{map[string]any{"a": 1}, "oops"}, DefaultSep); err == nil {
		t.Error("Expected error for non-object record")
	}
}

func TestFromPayload(t *testing.T) {
	payload := decode(t, `{
		"player": {"id": "sr:player:1", "name": "Doe, John", "nationality": "Norway"},
		"statistics": {"totals": {"competitors": [{"id": "sr:competitor:1"}]}},
		"generated_at": "2024-05-01"
	}`)

	tests := []struct {
		name    string
		path    string
		rows    int
		columns []string
		wantErr error
	}{
		{"object becomes one row", "player", 1, []string{"id", "name", "nationality"}, nil},
		{"dotted path", "statistics.totals.competitors", 1, []string{"id"}, nil},
		{"missing key", "competitors", 0, nil, ErrLookup},
		{"missing nested key", "statistics.totals.players", 0, nil, ErrLookup},
		{"path through scalar", "generated_at.day", 0, nil, ErrLookup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := FromPayload(payload, tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Error = %v, want %v", err, tt.wantErr)
				}
				var lookupErr *LookupError
				if !errors.As(err, &lookupErr) || lookupErr.Key != tt.path {
					t.Errorf("Expected *LookupError for %q, got %v", tt.path, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromPayload() failed: %v", err)
			}
			if table.Len() != tt.rows {
				t.Errorf("Len() = %d, want %d", table.Len(), tt.rows)
			}
			if !reflect.DeepEqual(table.Columns, tt.columns) {
				t.Errorf("Columns = %v, want %v", table.Columns, tt.columns)
			}
		})
	}

	if _, err := FromPayload(payload, "generated_at"); err == nil {
		t.Error("Expected error normalizing a scalar")
	}
}

func TestFlattenObject(t *testing.T) {
	role := decode(t, `{
		"type": "player",
		"active": true,
		"competitor": {"id": "sr:competitor:44", "name": "Liverpool FC"},
		"jersey_number": 11,
		"shirts": [{"number": 11}, {"number": 7}],
		"notes": [],
		"meta": {}
	}`)

	row := FlattenObject(role, DefaultSep)

	expected := Row{
		"active":          true,
		"competitor.id":   "sr:competitor:44",
		"competitor.name": "Liverpool FC",
		"jersey_number":   11.0,
		"meta":            map[string]any{},
		"notes":           []any{},
		"shirts.0.number": 11.0,
		"shirts.1.number": 7.0,
		"type":            "player",
	}
	if !reflect.DeepEqual(row, expected) {
		t.Errorf("FlattenObject() = %v, want %v", row, expected)
	}
}

func TestFlattenRecords(t *testing.T) {
	records := []any{
		map[string]any{"type": "player", "competitor": map[string]any{"id": "sr:competitor:1"}},
		map[string]any{"type": "player", "competitor": map[string]any{"id": "sr:competitor:2"}, "end_date": "2020-06-30"},
	}

	table, err := FlattenRecords(records, DefaultSep)
	if err != nil {
		t.Fatalf("FlattenRecords() failed: %v", err)
	}

	expected := []string{"competitor.id", "type", "end_date"}
	if !reflect.DeepEqual(table.Columns, expected) {
		t.Errorf("Columns = %v, want %v", table.Columns, expected)
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}

	if _, err := FlattenRecords([]any{nil}, DefaultSep); err == nil {
		t.Error("Expected error for null record")
	}
}
