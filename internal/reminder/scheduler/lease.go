package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lease only while this holder still owns it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLease is a Lease held as a Redis key with a TTL (SET NX PX). The TTL
// bounds how long a crashed holder can block other instances.
type RedisLease struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisLease creates a lease on key
func NewRedisLease(client *redis.Client, key string, ttl time.Duration) *RedisLease {
	return &RedisLease{client: client, key: key, ttl: ttl}
}

func (l *RedisLease) Acquire(ctx context.Context) (func(), bool, error) {
	owner := uuid.New().String()
	ok, err := l.client.SetNX(ctx, l.key, owner, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lease %s: %w", l.key, err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{l.key}, owner).Err(); err != nil {
			log.Printf("[ReminderScheduler] Failed to release lease %s: %v", l.key, err)
		}
	}
	return release, true, nil
}
