package utils

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLockerUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	_, ok, err := NewRedisLocker(client, "test-lock:").Acquire(context.Background(), "b1", time.Second)
	assert.Error(t, err)
	assert.False(t, ok)
}

// Runs against a live server when REDIS_TEST_ADDR is set.
func TestRedisLockerReleaseKeepsNewerHolder(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	ctx := context.Background()
	locker := NewRedisLocker(client, "test-lock:")
	key := "b-" + time.Now().Format("150405.000000000")
	defer client.Del(ctx, "test-lock:"+key)

	releaseFirst, ok, err := locker.Acquire(ctx, key, 50*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = locker.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	time.Sleep(100 * time.Millisecond)
	releaseSecond, ok, err := locker.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	releaseFirst()
	exists, err := client.Exists(ctx, "test-lock:"+key).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists, "an expired holder must not free the current lock")

	releaseSecond()
	releaseSecond()
	exists, err = client.Exists(ctx, "test-lock:"+key).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), exists)
}
