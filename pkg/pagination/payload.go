package pagination

import (
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMissingCollection is matched by CollectionError through errors.Is.
var ErrMissingCollection = errors.New("collection key missing")

// CollectionError is returned when a page lacks the list named by the
// collection key, or the field is not a list.
type CollectionError struct {
	Endpoint string
	Key      string
	Offset   int
	Found    string // JSON kind found instead of a list, empty if absent
}

// Error implements the error interface.
func (e *CollectionError) Error() string {
	if e.Found != "" {
		return fmt.Sprintf("%s (offset %d): field %q is %s, not a list", e.Endpoint, e.Offset, e.Key, e.Found)
	}
	return fmt.Sprintf("%s (offset %d): field %q not found", e.Endpoint, e.Offset, e.Key)
}

// Is implements errors.Is matching against ErrMissingCollection.
func (e *CollectionError) Is(target error) bool {
	return target == ErrMissingCollection
}

// Payload is a decoded JSON response body.
type Payload map[string]any

// Decode parses a response body into a Payload. The body must be a JSON object.
func Decode(body []byte) (Payload, error) {
	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if payload == nil {
		return nil, fmt.Errorf("decode payload: body is not a JSON object")
	}
	return payload, nil
}

// Encode serializes the payload back to JSON.
func (p Payload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// List returns the list stored under key.
func (p Payload) List(key string) ([]any, bool) {
	list, ok := p[key].([]any)
	return list, ok
}

// Len returns the length of the list stored under key, or 0.
func (p Payload) Len(key string) int {
	list, _ := p.List(key)
	return len(list)
}

// collection returns the list under key or a CollectionError.
func (p Payload) collection(endpoint, key string, offset int) ([]any, error) {
	value, exists := p[key]
	if !exists {
		return nil, &CollectionError{Endpoint: endpoint, Key: key, Offset: offset}
	}
	list, ok := value.([]any)
	if !ok {
		return nil, &CollectionError{Endpoint: endpoint, Key: key, Offset: offset, Found: jsonKind(value)}
	}
	return list, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "an object"
	case string:
		return "a string"
	case bool:
		return "a boolean"
	default:
		return "a number"
	}
}
