package cache

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	CatalogKey = "catalog:products"
	CatalogTTL = 5 * time.Minute
)

var client *redis.Client

// Init initializes the Redis connection. A failed connection leaves
// the client nil and every cache call becomes a no-op, so the server
// runs fine without Redis.
func Init(host string, port int, password string) error {
	// K8s service discovery env vars win over the config file
	if h := os.Getenv("REDIS_SERVICE_HOST"); h != "" {
		host = h
	}
	if p := os.Getenv("REDIS_SERVICE_PORT"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			port = n
		}
	}
	if pw := os.Getenv("REDIS_PASSWORD"); pw != "" {
		password = pw
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + strconv.Itoa(port),
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client, nil when degraded.
func GetClient() *redis.Client {
	return client
}

// GetCachedCatalog returns the cached product catalog snapshot.
func GetCachedCatalog(ctx context.Context) ([]byte, bool) {
	return GetCached(ctx, CatalogKey)
}

// CacheCatalog stores the serialized product catalog.
func CacheCatalog(ctx context.Context, data []byte) {
	SetCached(ctx, CatalogKey, data, CatalogTTL)
}

// InvalidateCatalog drops the catalog snapshot after product changes.
func InvalidateCatalog(ctx context.Context) {
	InvalidateKeys(ctx, CatalogKey)
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
