package cache

import (
	"fmt"
	"strings"
)

// Key identifies one aggregated endpoint result.
type Key struct {
	// Product is the API package, e.g. "soccer-extended"
	Product string

	AccessLevel string
	Version     string
	Language    string
	Format      string

	// Endpoint is the path below the language segment (e.g. "seasons/sr:season:1/summaries")
	Endpoint string

	// CollectionKey is the list field the pages were merged on, empty for
	// endpoints that are never paginated
	CollectionKey string
}

// String generates a deterministic cache key string.
// Format: sportradar:product:access:version:language:format:endpoint[:key=collection]
//
// Example:
//
//	sportradar:soccer-extended:trial:v4:en:json:seasons:key=seasons
//
// The API key is never part of the cache key.
func (k Key) String() string {
	parts := []string{
		"sportradar",
		k.Product,
		k.AccessLevel,
		k.Version,
		k.Language,
		k.Format,
		strings.Trim(k.Endpoint, "/"),
	}

	if k.CollectionKey != "" {
		parts = append(parts, fmt.Sprintf("key=%s", k.CollectionKey))
	}

	return strings.Join(parts, ":")
}
