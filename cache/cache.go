// Package cache is a thin optional Redis layer. When REDIS_URL is unset every
// call is a miss and the app runs straight off the database.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Connect initializes the Redis client from REDIS_URL. Safe to skip: a
// missing or unreachable Redis only disables caching.
func Connect() {
	raw := strings.TrimSpace(os.Getenv("REDIS_URL"))
	if raw == "" {
		log.Println("REDIS_URL not set; cache disabled")
		return
	}

	opts, err := redis.ParseURL(raw)
	if err != nil {
		log.Printf("warning: invalid REDIS_URL, cache disabled: %v", err)
		return
	}

	c := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		log.Printf("warning: redis unreachable, cache disabled: %v", err)
		return
	}

	client = c
	log.Println("Redis cache connected")
}

func Enabled() bool { return client != nil }

// GetJSON loads a cached value into v. Returns false on miss, disabled cache,
// or decode failure.
func GetJSON(ctx context.Context, key string, v interface{}) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		log.Printf("warning: cache decode failed for %s: %v", key, err)
		return false
	}
	return true
}

// SetJSON stores v under key with a TTL. Best-effort.
func SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := client.Set(ctx, key, raw, ttl).Err(); err != nil {
		log.Printf("warning: cache write failed for %s: %v", key, err)
	}
}

// Invalidate drops keys after a write. Best-effort.
func Invalidate(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("warning: cache invalidate failed: %v", err)
	}
}
