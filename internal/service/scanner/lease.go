// internal/service/scanner/lease.go
package scanner

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLease implements Lease with SETNX + TTL so that across restarts and
// replicas each (subscription, end date) pair is warned once.
type RedisLease struct {
	client *redis.Client
}

func NewRedisLease(client *redis.Client) *RedisLease {
	return &RedisLease{client: client}
}

func (l *RedisLease) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, key, 1, ttl).Result()
}
