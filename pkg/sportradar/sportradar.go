// Package sportradar ties the request issuer, the pagination aggregator and
// the optional Redis payload cache into one entry point.
package sportradar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sternrassler/sportradar-client/pkg/cache"
	"github.com/Sternrassler/sportradar-client/pkg/client"
	"github.com/Sternrassler/sportradar-client/pkg/pagination"
	"github.com/Sternrassler/sportradar-client/pkg/quota"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Endpoint describes one API call: the path below the language segment and
// the list field pages are merged on. Key is empty for endpoints that are
// never paginated.
type Endpoint struct {
	Path string
	Key  string
}

// API is a configured Sportradar product client.
type API struct {
	client     *client.Client
	aggregator *pagination.Aggregator
	cache      *cache.Manager
	cacheTTL   time.Duration
	logger     zerolog.Logger
}

// Option configures an API.
type Option func(*API)

// WithCache stores aggregated payloads in Redis for ttl. A nil client or a
// ttl <= 0 disables caching.
func WithCache(redisClient *redis.Client, ttl time.Duration) Option {
	return func(a *API) {
		if redisClient == nil || ttl <= 0 {
			return
		}
		a.cache = cache.NewManager(redisClient)
		a.cacheTTL = ttl
	}
}

// WithLogger replaces the logger derived from the global zerolog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *API) {
		a.logger = logger
	}
}

// New validates cfg and builds an API for cfg.Product.
func New(cfg client.Config, opts ...Option) (*API, error) {
	c, err := client.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	a := &API{
		client: c,
		logger: log.With().
			Str("component", "sportradar").
			Str("product", cfg.Product).
			Logger(),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.aggregator = pagination.NewAggregator(c, a.logger)
	a.aggregator.SetVerbose(cfg.Verbose)

	return a, nil
}

// CallEndpoint returns the complete payload of an endpoint, following
// pagination when the response carries X-Result and X-Max-Results. Cached
// payloads are served without a request; cache failures are logged and
// otherwise ignored.
func (a *API) CallEndpoint(ctx context.Context, ep Endpoint) (pagination.Payload, error) {
	key := a.cacheKey(ep)

	if payload, ok := a.fromCache(ctx, key); ok {
		return payload, nil
	}

	payload, err := a.aggregator.Aggregate(ctx, ep.Path, ep.Key)
	if err != nil {
		return nil, err
	}

	a.store(ctx, key, payload, ep.Key)
	return payload, nil
}

// Quota returns the last plan quota reported by the API.
func (a *API) Quota() quota.State {
	return a.client.Quota()
}

// Client returns the underlying request issuer.
func (a *API) Client() *client.Client {
	return a.client
}

func (a *API) cacheKey(ep Endpoint) cache.Key {
	cfg := a.client.Config()
	return cache.Key{
		Product:       cfg.Product,
		AccessLevel:   cfg.AccessLevel,
		Version:       cfg.Version,
		Language:      cfg.Language,
		Format:        cfg.Format,
		Endpoint:      ep.Path,
		CollectionKey: ep.Key,
	}
}

func (a *API) fromCache(ctx context.Context, key cache.Key) (pagination.Payload, bool) {
	if a.cache == nil {
		return nil, false
	}

	entry, err := a.cache.Get(ctx, key)
	switch {
	case errors.Is(err, cache.ErrCacheMiss):
		return nil, false
	case errors.Is(err, cache.ErrInvalidEntry):
		a.logger.Warn().Err(err).Str("key", key.String()).Msg("Discarding corrupt cache entry")
		_ = a.cache.Delete(ctx, key)
		return nil, false
	case err != nil:
		a.logger.Warn().Err(err).Str("key", key.String()).Msg("Cache read failed")
		return nil, false
	}

	payload, err := pagination.Decode(entry.Data)
	if err != nil {
		a.logger.Warn().Err(err).Str("key", key.String()).Msg("Discarding undecodable cache entry")
		_ = a.cache.Delete(ctx, key)
		return nil, false
	}

	a.logger.Debug().
		Str("endpoint", key.Endpoint).
		Int("records", entry.Records).
		Dur("age", entry.Age()).
		Msg("Served from cache")
	return payload, true
}

func (a *API) store(ctx context.Context, key cache.Key, payload pagination.Payload, collection string) {
	if a.cache == nil {
		return
	}

	data, err := payload.Encode()
	if err != nil {
		a.logger.Warn().Err(err).Str("key", key.String()).Msg("Cache encode failed")
		return
	}

	if err := a.cache.Set(ctx, key, cache.NewEntry(data, payload.Len(collection), a.cacheTTL)); err != nil {
		a.logger.Warn().Err(err).Str("key", key.String()).Msg("Cache write failed")
	}
}
