package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisClient(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisLease(t *testing.T) {
	client := redisClient(t)
	ctx := context.Background()
	key := "test:reminder-scan:" + uuid.New().String()
	t.Cleanup(func() { client.Del(ctx, key) })

	first := NewRedisLease(client, key, time.Minute)
	second := NewRedisLease(client, key, time.Minute)

	release, ok, err := first.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	release()

	release2, ok, err := second.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	// A stale release from the first holder leaves the new holder alone.
	release()
	assert.Equal(t, int64(1), client.Exists(ctx, key).Val())
	release2()
	assert.Equal(t, int64(0), client.Exists(ctx, key).Val())
}

func TestRedisLease_Expires(t *testing.T) {
	client := redisClient(t)
	ctx := context.Background()
	key := "test:reminder-scan:" + uuid.New().String()
	t.Cleanup(func() { client.Del(ctx, key) })

	lease := NewRedisLease(client, key, 50*time.Millisecond)
	_, ok, err := lease.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Eventually(t, func() bool {
		_, ok, err := lease.Acquire(ctx)
		return err == nil && ok
	}, 2*time.Second, 20*time.Millisecond)
}
