// Package cache stores aggregated Sportradar payloads in Redis.
//
// Aggregating a paginated endpoint costs one request per page against the
// plan quota. The cache keeps the merged result for a configured TTL so that
// repeated calls for the same endpoint are served without touching the API.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{
//		Addr: "localhost:6379",
//	})
//
//	manager := cache.NewManager(redisClient)
//
//	key := cache.Key{
//		Product:       "soccer-extended",
//		AccessLevel:   "trial",
//		Version:       "v4",
//		Language:      "en",
//		Format:        "json",
//		Endpoint:      "seasons",
//		CollectionKey: "seasons",
//	}
//
//	entry, err := manager.Get(ctx, key)
//	if errors.Is(err, cache.ErrCacheMiss) {
//		// aggregate, then
//		err = manager.Set(ctx, key, cache.NewEntry(data, records, 30*time.Minute))
//	}
//
// # Metrics
//
//   - sportradar_cache_hits_total{layer="redis"}
//   - sportradar_cache_misses_total
//   - sportradar_cache_bytes_total{operation}
//   - sportradar_cache_errors_total{operation}
package cache
