package pagination

import (
	"net/http"
	"strconv"
	"strings"
)

// Response headers carrying pagination counters.
const (
	HeaderResult     = "X-Result"
	HeaderMaxResults = "X-Max-Results"
)

// Kind discriminates single-page from paginated responses.
type Kind int

const (
	// Single means the response holds the whole result.
	Single Kind = iota

	// Paginated means the response carried both pagination counters.
	Paginated
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	if k == Paginated {
		return "paginated"
	}
	return "single"
}

// Pagination is the pagination state read from a first-page response.
type Pagination struct {
	Kind Kind

	// Returned is the number of records on the page (X-Result).
	Returned int

	// Max is the total number of records (X-Max-Results).
	Max int
}

// Inspect reads the pagination counters from response headers.
// A missing or malformed counter makes the response Single.
func Inspect(headers http.Header) Pagination {
	returned, ok := intHeader(headers, HeaderResult)
	if !ok {
		return Pagination{Kind: Single}
	}
	maxResults, ok := intHeader(headers, HeaderMaxResults)
	if !ok {
		return Pagination{Kind: Single}
	}

	return Pagination{
		Kind:     Paginated,
		Returned: returned,
		Max:      maxResults,
	}
}

// Remaining returns the number of records not covered by the first page,
// or 0 when the first page holds everything.
func (p Pagination) Remaining() int {
	if p.Kind != Paginated || p.Max <= p.Returned {
		return 0
	}
	return p.Max - p.Returned
}

// Next returns the offset of the request following the one at offset, each
// request having a limit of Returned. Start with Next(0). ok is false once
// offset+Returned reaches Max or when the step size is not positive.
// Offsets are produced one at a time and never overflow, whatever the
// headers claim.
func (p Pagination) Next(offset int) (next int, ok bool) {
	if p.Kind != Paginated || p.Returned <= 0 || p.Max <= p.Returned {
		return 0, false
	}
	if offset >= p.Max-p.Returned {
		return 0, false
	}
	return offset + p.Returned, true
}

// Pages returns the number of requests needed for the whole result, the
// first one included.
func (p Pagination) Pages() int {
	remaining := p.Remaining()
	if remaining == 0 || p.Returned <= 0 {
		return 1
	}
	return 2 + (remaining-1)/p.Returned
}

func intHeader(headers http.Header, name string) (int, bool) {
	raw := strings.TrimSpace(headers.Get(name))
	if raw == "" {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}
