package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Lua script for atomic increment with TTL on first set.
// KEYS[1] = counter key
// ARGV[1] = window TTL in seconds
// Returns: [current_count, ttl_remaining]
const counterScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// RedisLimiter counts requests in a shared Redis store. Concurrent callers
// across process instances observe a consistent count.
type RedisLimiter struct {
	client    *redis.Client
	policy    Policy
	keyPrefix string
}

// NewRedisLimiter creates a Redis-backed limiter. The client must already
// be connected.
func NewRedisLimiter(client *redis.Client, policy Policy) *RedisLimiter {
	return &RedisLimiter{
		client:    client,
		policy:    policy,
		keyPrefix: "rl:contact:",
	}
}

func (l *RedisLimiter) Check(ctx context.Context, identity string) (Result, error) {
	ttlSeconds := int(l.policy.Window.Seconds())

	raw, err := l.client.Eval(ctx, counterScript, []string{l.keyPrefix + identity}, ttlSeconds).Result()
	if err != nil {
		return Result{}, fmt.Errorf("rate limit eval failed: %w", err)
	}

	arr, ok := raw.([]interface{})
	if !ok || len(arr) < 2 {
		return Result{}, fmt.Errorf("unexpected redis result format")
	}
	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	remaining := l.policy.Limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   int(count) <= l.policy.Limit,
		Limit:     l.policy.Limit,
		Remaining: remaining,
		ResetAt:   time.Now().Add(time.Duration(ttl) * time.Second),
	}, nil
}
