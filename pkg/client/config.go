package client

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultScheme       = "https"
	DefaultHost         = "api.sportradar.us"
	DefaultAccessLevel  = "trial"
	DefaultVersion      = "v4"
	DefaultLanguage     = "en"
	DefaultFormat       = "json"
	DefaultTimeout      = 120 * time.Second
	DefaultRequestDelay = 1200 * time.Millisecond
)

// Config holds the client configuration.
// A Config is a plain value: the client copies it on construction and never
// mutates it afterwards.
type Config struct {
	// APIKey is sent as the api_key query parameter (REQUIRED)
	APIKey string

	// Product is the API family, e.g. "soccer-extended" (REQUIRED)
	Product string

	// URL segments
	AccessLevel string // "trial" or "production"
	Version     string
	Language    string
	Format      string

	// Scheme and Host of the API server
	Scheme string
	Host   string

	// Timeout applies to every single request
	Timeout time.Duration

	// RequestDelay is waited before every request, including the first one
	RequestDelay time.Duration

	// Verbose logs every request at info level instead of debug
	Verbose bool

	// HTTPClient overrides the default client (transport injection).
	// Its Timeout is replaced by Timeout.
	HTTPClient *http.Client
}

// DefaultConfig returns the configuration used by the Sportradar docs.
func DefaultConfig(apiKey, product string) Config {
	return Config{
		APIKey:       apiKey,
		Product:      product,
		AccessLevel:  DefaultAccessLevel,
		Version:      DefaultVersion,
		Language:     DefaultLanguage,
		Format:       DefaultFormat,
		Scheme:       DefaultScheme,
		Host:         DefaultHost,
		Timeout:      DefaultTimeout,
		RequestDelay: DefaultRequestDelay,
	}
}

// Validate checks that every URL segment and timing value is usable.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("api key is required")
	}

	segments := []struct {
		name  string
		value string
	}{
		{"product", c.Product},
		{"access level", c.AccessLevel},
		{"version", c.Version},
		{"language", c.Language},
		{"format", c.Format},
		{"scheme", c.Scheme},
		{"host", c.Host},
	}
	for _, s := range segments {
		if strings.TrimSpace(s.value) == "" {
			return fmt.Errorf("%s is required", s.name)
		}
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", c.Timeout)
	}

	if c.RequestDelay < 0 {
		return fmt.Errorf("request delay must be >= 0 (got %s)", c.RequestDelay)
	}

	return nil
}

// BuildURL returns the request URL for an endpoint, without query parameters:
//
//	{scheme}://{host}/{product}/{access}/{version}/{language}/{endpoint}.{format}
func (c Config) BuildURL(endpoint string) string {
	return fmt.Sprintf("%s://%s/%s/%s/%s/%s/%s.%s",
		c.Scheme,
		strings.TrimRight(c.Host, "/"),
		c.Product,
		c.AccessLevel,
		c.Version,
		c.Language,
		strings.Trim(endpoint, "/"),
		c.Format,
	)
}
