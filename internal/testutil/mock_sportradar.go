// Package testutil provides testing utilities for the Sportradar client.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// Response headers served by the mock.
const (
	HeaderResult        = "X-Result"
	HeaderMaxResults    = "X-Max-Results"
	HeaderQuotaCurrent  = "X-Plan-Quota-Current"
	HeaderQuotaAllotted = "X-Plan-Quota-Allotted"
)

// MockResponse defines a fixed response for a mock endpoint.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
}

// RecordedRequest is one request seen by the mock server.
type RecordedRequest struct {
	Path   string
	APIKey string
	Offset string
	Limit  string
	// HasPage is true when offset or limit was sent.
	HasPage bool
}

// MockSportradar is a configurable mock Sportradar server for testing.
type MockSportradar struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc
	requests []RecordedRequest
	quotaUse int
}

// NewMockSportradar creates a new mock server.
func NewMockSportradar() *MockSportradar {
	mock := &MockSportradar{
		handlers: make(map[string]http.HandlerFunc),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		_, hasOffset := query["offset"]
		_, hasLimit := query["limit"]

		mock.mu.Lock()
		mock.requests = append(mock.requests, RecordedRequest{
			Path:    r.URL.Path,
			APIKey:  query.Get("api_key"),
			Offset:  query.Get("offset"),
			Limit:   query.Get("limit"),
			HasPage: hasOffset || hasLimit,
		})
		mock.quotaUse++
		used := mock.quotaUse
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.Unlock()

		w.Header().Set(HeaderQuotaCurrent, strconv.Itoa(used))
		w.Header().Set(HeaderQuotaAllotted, "1000")

		if !exists {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message": "no route"}`))
			return
		}
		handler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockSportradar) URL() string {
	return m.server.URL
}

// Host returns the host:port of the mock server, suitable for client.Config.Host.
func (m *MockSportradar) Host() string {
	return strings.TrimPrefix(m.server.URL, "http://")
}

// Close shuts down the mock server.
func (m *MockSportradar) Close() {
	m.server.Close()
}

// Reset clears recorded requests.
func (m *MockSportradar) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
}

// Requests returns a copy of the recorded requests in arrival order.
func (m *MockSportradar) Requests() []RecordedRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]RecordedRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockSportradar) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.requests)
}

// SetHandler sets a custom handler for a request path, e.g.
// "/soccer-extended/trial/v4/en/competitions.json".
func (m *MockSportradar) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockSportradar) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetPaginated serves items under key the way Sportradar does: a request
// without offset/limit returns the first pageSize items, later requests
// return items[offset:offset+limit]. Every page reports X-Result (items on
// the page) and X-Max-Results (len(items)).
func (m *MockSportradar) SetPaginated(path, key string, items []any, pageSize int) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		offset, limit := 0, pageSize
		if v := r.URL.Query().Get("offset"); v != "" {
			offset, _ = strconv.Atoi(v)
		}
		if v := r.URL.Query().Get("limit"); v != "" {
			limit, _ = strconv.Atoi(v)
		}

		start := min(offset, len(items))
		end := min(start+limit, len(items))
		page := items[start:end]

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set(HeaderResult, strconv.Itoa(len(page)))
		w.Header().Set(HeaderMaxResults, strconv.Itoa(len(items)))
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]any{
			"generated_at": "2024-05-01T10:00:00+00:00",
			key:            page,
		})
	})
}

// NewJSONResponse creates a 200 OK response without pagination headers.
func NewJSONResponse(body string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewPageResponse creates a 200 OK response with explicit pagination headers.
func NewPageResponse(body string, result, maxResults int) MockResponse {
	resp := NewJSONResponse(body)
	resp.Headers[HeaderResult] = strconv.Itoa(result)
	resp.Headers[HeaderMaxResults] = strconv.Itoa(maxResults)
	return resp
}

// NewErrorResponse creates an error response with the given status.
func NewErrorResponse(statusCode int) MockResponse {
	return MockResponse{
		StatusCode: statusCode,
		Body:       `{"message": "` + http.StatusText(statusCode) + `"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// Items builds n objects of the form {"id": "<prefix>:<i>", "index": i}.
func Items(prefix string, n int) []any {
	items := make([]any, n)
	for i := range items {
		items[i] = map[string]any{
			"id":    prefix + ":" + strconv.Itoa(i),
			"index": i,
		}
	}
	return items
}
