package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:ip:"

// fixedWindowScript increments the counter and starts the window on the
// first hit, atomically. Returns {count, pttl_ms}.
var fixedWindowScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	local ttl = redis.call('PTTL', KEYS[1])
	if ttl < 0 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
		ttl = tonumber(ARGV[1])
	end
	return {count, ttl}
`)

// RedisLimiter shares windows between every instance using the same Redis.
type RedisLimiter struct {
	client *redis.Client
	max    int
	length time.Duration
}

func NewRedisLimiter(client *redis.Client, maxRequests int, length time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, max: maxRequests, length: length}
}

// NewRedisClient parses url, applies pool settings and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 2
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	now := time.Now()
	res, err := fixedWindowScript.Run(ctx, l.client,
		[]string{redisKey(key)},
		l.length.Milliseconds(),
	).Int64Slice()
	if err != nil || len(res) != 2 {
		if err == nil {
			err = fmt.Errorf("unexpected script reply of length %d", len(res))
		}
		return Result{
			Allowed:   true,
			Limit:     l.max,
			Remaining: l.max,
			ResetAt:   now.Add(l.length),
		}, fmt.Errorf("rate limit script: %w", err)
	}

	count := int(res[0])
	return Result{
		Allowed:   count <= l.max,
		Limit:     l.max,
		Remaining: remaining(l.max, count),
		ResetAt:   now.Add(time.Duration(res[1]) * time.Millisecond),
	}, nil
}

// redisKey hashes the client address so raw IPs are never written to Redis.
func redisKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return redisKeyPrefix + hex.EncodeToString(sum[:8])
}
