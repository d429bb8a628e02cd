package client

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Sentinel errors matched by APIError through errors.Is.
var (
	// ErrClientError matches 4xx responses.
	ErrClientError = errors.New("sportradar client error")

	// ErrServerError matches 5xx responses.
	ErrServerError = errors.New("sportradar server error")

	// ErrUnexpectedStatus matches any other non-200 response.
	ErrUnexpectedStatus = errors.New("sportradar unexpected status")
)

// ErrorClass represents a classification of failed requests.
type ErrorClass string

const (
	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"

	// ErrorClassUnexpected represents any status that is neither 200, 4xx nor 5xx.
	ErrorClassUnexpected ErrorClass = "unexpected"

	// ErrorClassNetwork represents transport and timeout errors.
	ErrorClassNetwork ErrorClass = "network"
)

// APIError is returned for every response whose status is not 200 OK.
type APIError struct {
	StatusCode int
	ErrorClass ErrorClass
	Reason     string
	URL        string
}

// Error implements the error interface.
// The format follows the familiar "404 Client Error: Not Found for url: ..." shape.
func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s Error: %s for url: %s",
		e.StatusCode, e.ErrorClass.title(), e.Reason, e.URL)
}

// Is reports whether target is the sentinel for this error's class.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrClientError:
		return e.ErrorClass == ErrorClassClient
	case ErrServerError:
		return e.ErrorClass == ErrorClassServer
	case ErrUnexpectedStatus:
		return e.ErrorClass == ErrorClassUnexpected
	default:
		return false
	}
}

func (c ErrorClass) title() string {
	switch c {
	case ErrorClassClient:
		return "Client"
	case ErrorClassServer:
		return "Server"
	default:
		return "Unexpected"
	}
}

// classifyStatus maps a status code to its error class.
// 200 OK is the only success and yields an empty class.
func classifyStatus(statusCode int) ErrorClass {
	switch {
	case statusCode == http.StatusOK:
		return ""
	case statusCode >= 400 && statusCode < 500:
		return ErrorClassClient
	case statusCode >= 500 && statusCode < 600:
		return ErrorClassServer
	default:
		return ErrorClassUnexpected
	}
}

// reasonPhrase extracts the reason phrase from a response status line,
// falling back to the standard text for the code.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		reason = http.StatusText(resp.StatusCode)
	}
	return reason
}
