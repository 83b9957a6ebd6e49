// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: in-process cache backed by go-cache
// - cache/redis: Redis cache backed by go-redis
// - cache/sqlite: file-backed cache using go-sqlite3, survives restarts
// - http/standard: net/http client with an optional request-logging transport
// - logger/logrus: logrus adapter for interfaces.Logger
// - sink/console: prints merged entries as text or JSON
// - sink/snapshot: stores the latest cycle in a cache for the API
//
// # Cache Implementations
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "key", []byte("value"), time.Hour)
//	value, err := cache.Get(ctx, "key")
//
// All caches return interfaces.ErrCacheMiss for an absent or expired key.
//
// # HTTP Client
//
// The client performs a single request per call. Fetch failures are
// reported to the pipeline, which skips the source for that cycle.
//
//	client := standard.NewStandardHTTPClient(30 * time.Second)
//	resp, err := client.Get(ctx, "https://example.com/feed.atom")
//	if err != nil {
//	    return err
//	}
//	defer resp.Body().Close()
package infrastructure
