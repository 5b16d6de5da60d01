package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/NeuralTrust/ChapterGenie/pkg/domain"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const keyPattern = "ratelimit:%s"

// slidingWindowScript prunes, counts and records in one round trip so
// concurrent requests from the same client cannot both pass the check.
// Scores are unix milliseconds.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
local count = redis.call('ZCARD', key)
if count >= limit then
  local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
  local retry = window
  if oldest[2] then
    retry = tonumber(oldest[2]) + window - now
  end
  return {0, count, retry}
end
redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return {1, count + 1, 0}
`)

type RedisLimiter struct {
	redis        *redis.Client
	opts         Options
	uuidProvider func() uuid.UUID
}

type RedisLimiterOpts struct {
	UuidProvider func() uuid.UUID
}

func NewRedisLimiter(redisClient *redis.Client, opts Options, extra *RedisLimiterOpts) *RedisLimiter {
	uuidProvider := uuid.New
	if extra != nil && extra.UuidProvider != nil {
		uuidProvider = extra.UuidProvider
	}
	return &RedisLimiter{
		redis:        redisClient,
		opts:         opts.withDefaults(),
		uuidProvider: uuidProvider,
	}
}

func (l *RedisLimiter) Check(ctx context.Context, clientID string, now time.Time) (*Result, error) {
	nowMs := now.UnixMilli()
	member := fmt.Sprintf("%d:%s", nowMs, l.uuidProvider().String())

	raw, err := slidingWindowScript.Run(
		ctx,
		l.redis,
		[]string{Key(clientID)},
		nowMs,
		l.opts.Window.Milliseconds(),
		l.opts.MaxRequests,
		member,
	).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to run rate limit script: %w", err)
	}

	values, ok := raw.([]interface{})
	if !ok || len(values) != 3 {
		return nil, fmt.Errorf("unexpected rate limit script reply: %v", raw)
	}
	allowed, _ := values[0].(int64)
	count, _ := values[1].(int64)
	retryMs, _ := values[2].(int64)

	result := &Result{
		Allowed:    allowed == 1,
		Count:      int(count),
		Limit:      l.opts.MaxRequests,
		RetryAfter: time.Duration(retryMs) * time.Millisecond,
	}
	if !result.Allowed {
		return result, domain.ErrRateLimitExceeded
	}
	return result, nil
}

func Key(clientID string) string {
	return fmt.Sprintf(keyPattern, clientID)
}
