package redis

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"newsreader-app/core/interfaces"
	"newsreader-app/pkg/config"
)

// These are integration tests that need a Redis instance at REDIS_ADDRESS
// (default localhost:6379). They run only when REDIS_TEST=1.

func testConfig() config.RedisConfig {
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		addr = "localhost:6379"
	}
	return config.RedisConfig{Address: addr}
}

func newTestCache(t *testing.T) *RedisCache {
	t.Helper()
	if os.Getenv("REDIS_TEST") != "1" {
		t.Skip("Skipping Redis integration tests - set REDIS_TEST=1 to run")
	}

	cache, err := NewRedisCache(testConfig())
	if err != nil {
		t.Fatalf("NewRedisCache returned error: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestNewRedisCache_InvalidAddress(t *testing.T) {
	cache, err := NewRedisCache(config.RedisConfig{Address: ""})

	if err == nil {
		t.Error("NewRedisCache should return error for empty address")
	}
	if cache != nil {
		t.Error("NewRedisCache should return nil cache for invalid config")
	}
}

func TestRedisCache_SetGetDelete(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	key := "newsreader:test:" + t.Name()

	if err := cache.Set(ctx, key, []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	got, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Get returned %s, want value", got)
	}

	if err := cache.Delete(ctx, key); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := cache.Get(ctx, key); !errors.Is(err, interfaces.ErrCacheMiss) {
		t.Errorf("Get after Delete = %v, want ErrCacheMiss", err)
	}
}

func TestRedisCache_Expiration(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	key := "newsreader:test:" + t.Name()

	cache.Set(ctx, key, []byte("v"), 100*time.Millisecond)
	time.Sleep(200 * time.Millisecond)

	if _, err := cache.Get(ctx, key); !errors.Is(err, interfaces.ErrCacheMiss) {
		t.Errorf("expired key should miss, got %v", err)
	}
}

func TestRedisCache_DeleteMissingKey(t *testing.T) {
	cache := newTestCache(t)

	if err := cache.Delete(context.Background(), "newsreader:test:missing"); err != nil {
		t.Errorf("Delete of missing key returned error: %v", err)
	}
}
