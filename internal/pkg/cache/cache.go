package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/conduitapp/conduit/internal/pkg/env"
)

var (
	client *redis.Client
	ctx    = context.Background()
)

const (
	tagListKey = "conduit:tags"
	tagListTTL = 5 * time.Minute
)

// SetupCache initializes the connection to the Redis cache server
func SetupCache() {
	host := env.GetEnv("CACHE_HOST", "localhost")
	port := env.GetEnv("CACHE_PORT", "6379")

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	// Test the connection
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		log.Printf("Warning: Could not connect to Redis cache: %v", err)
	} else {
		log.Printf("Successfully connected to Redis cache: %s", pong)
	}
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	if client == nil {
		SetupCache()
	}
	return client
}

// Set stores a value in the cache with the given key and expiration time
func Set(key string, value interface{}, expiration time.Duration) error {
	return GetClient().Set(ctx, key, value, expiration).Err()
}

// Get retrieves a value from the cache by key
func Get(key string) (string, error) {
	return GetClient().Get(ctx, key).Result()
}

// Delete removes a value from the cache by key
func Delete(key string) error {
	return GetClient().Del(ctx, key).Err()
}

// SetTagList caches the global tag list. Failures are the caller's to
// ignore; the datastore stays authoritative.
func SetTagList(tags []string) error {
	payload, err := json.Marshal(tags)
	if err != nil {
		return err
	}
	return Set(tagListKey, payload, tagListTTL)
}

// GetTagList returns the cached tag list, or an error on cache miss.
func GetTagList() ([]string, error) {
	raw, err := Get(tagListKey)
	if err != nil {
		return nil, err
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// InvalidateTagList drops the cached tag list after a tag-set change.
func InvalidateTagList() {
	if err := Delete(tagListKey); err != nil {
		log.Printf("failed to invalidate tag list cache: %v", err)
	}
}
