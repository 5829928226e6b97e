package throttle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "pkbm:login:"

// RedisLimiter counts failed logins per key in a fixed window.
type RedisLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewRedisClient strips an optional redis:// scheme and pings once. A failed ping
// is only logged; the limiter fails open while Redis is unreachable.
func NewRedisClient(ctx context.Context, addr, password string, db int, log *logrus.Logger) *redis.Client {
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).WithField("addr", parsedAddr).Warn("Redis ping failed on initialization")
	} else {
		log.WithField("addr", parsedAddr).Debug("Redis connection established")
	}
	return client
}

func NewRedisLimiter(client *redis.Client, maxAttempts int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

func (l *RedisLimiter) key(key string) string {
	return keyPrefix + strings.ToLower(key)
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	count, err := l.client.Get(ctx, l.key(key)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return true, nil
		}
		return true, fmt.Errorf("failed to read login attempts: %w", err)
	}
	return count < l.maxAttempts, nil
}

func (l *RedisLimiter) RecordFailure(ctx context.Context, key string) error {
	cacheKey := l.key(key)
	count, err := l.client.Incr(ctx, cacheKey).Result()
	if err != nil {
		return fmt.Errorf("failed to record login attempt: %w", err)
	}
	// window starts at the first failure
	if count == 1 {
		if err := l.client.Expire(ctx, cacheKey, l.window).Err(); err != nil {
			return fmt.Errorf("failed to set login window: %w", err)
		}
	}
	return nil
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.key(key)).Err()
}

// NopLimiter never throttles. Used when REDIS_ADDR is unset.
type NopLimiter struct{}

func (NopLimiter) Allow(context.Context, string) (bool, error) { return true, nil }
func (NopLimiter) RecordFailure(context.Context, string) error { return nil }
func (NopLimiter) Reset(context.Context, string) error         { return nil }
