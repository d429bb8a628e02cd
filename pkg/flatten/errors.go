package flatten

import (
	"errors"
	"fmt"
)

// ErrLookup is matched by LookupError through errors.Is.
var ErrLookup = errors.New("lookup failed")

// LookupError reports a column or payload key that does not exist.
type LookupError struct {
	Key string
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("key not found: %q", e.Key)
}

// Is implements errors.Is matching against ErrLookup.
func (e *LookupError) Is(target error) bool {
	return target == ErrLookup
}
