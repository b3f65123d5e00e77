// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"sync"
	"time"

	"laborlink/config"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CacheClient is the generic cache client (directory cache, payment locks).
var CacheClient *redis.Client

// InitCache initializes the generic Redis cache client. A failed ping is
// returned so callers can run without Redis.
func InitCache() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to Redis (cache): %w", err)
	}
	CacheClient = client
	return nil
}

// GetCacheClient returns the generic cache client, or nil when Redis is not configured.
func GetCacheClient() *redis.Client {
	return CacheClient
}

// RedisLocker hands out short-lived exclusive locks backed by SET NX.
type RedisLocker struct {
	Client *redis.Client
	Prefix string
}

// NewRedisLocker creates a locker whose keys are namespaced by prefix.
func NewRedisLocker(client *redis.Client, prefix string) *RedisLocker {
	return &RedisLocker{Client: client, Prefix: prefix}
}

// releaseScript deletes a lock only while it still holds the caller's token,
// so an expired holder cannot free a lock that was taken after it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Acquire takes the lock for key. ok is false when another holder has it.
// The returned release func is safe to call more than once.
func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	fullKey := l.Prefix + key
	token := uuid.NewString()
	ok, err := l.Client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire lock %s: %w", fullKey, err)
	}
	if !ok {
		return nil, false, nil
	}
	var once sync.Once
	release := func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(ctx, l.Client, []string{fullKey}, token).Err(); err != nil && err != redis.Nil {
				GetLogger().Warn("failed to release lock", zap.String("key", fullKey), zap.Error(err))
			}
		})
	}
	return release, true, nil
}
