package cache

import (
	"time"
)

// Entry is a cached aggregation result.
type Entry struct {
	// Data is the aggregated payload, JSON-encoded
	Data []byte `json:"data"`

	// Records is the number of items in the collection, 0 when not paginated
	Records int `json:"records"`

	// Expires is when the entry becomes stale
	Expires time.Time `json:"expires"`

	// CachedAt is when we cached this payload
	CachedAt time.Time `json:"cached_at"`
}

// NewEntry creates an entry for data that stays fresh for ttl.
func NewEntry(data []byte, records int, ttl time.Duration) *Entry {
	now := time.Now()
	return &Entry{
		Data:     data,
		Records:  records,
		Expires:  now.Add(ttl),
		CachedAt: now,
	}
}

// IsExpired returns true if the cache entry has expired.
func (e *Entry) IsExpired() bool {
	return time.Now().After(e.Expires)
}

// TTL returns the time until expiration.
// Returns 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}

// Age returns how long ago the entry was cached.
func (e *Entry) Age() time.Duration {
	return time.Since(e.CachedAt)
}
