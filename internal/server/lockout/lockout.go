// Package lockout throttles password guessing by counting login attempts per
// mailbox in Redis. A successful login clears the counter, so only failures
// accumulate. Once more than Threshold attempts land inside Window the
// account is refused until the counter expires.
package lockout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ajcloudsolutions/vmailapi/internal/common"
	"github.com/redis/go-redis/v9"
)

// ErrUnavailable indicates the lockout backend is unreachable.
var ErrUnavailable = errors.New("lockout backend unavailable")

// Limiter is consulted by the login flow before the password is checked.
type Limiter interface {
	// Enforce counts a login attempt for username and returns
	// common.ErrorLocked once the attempts inside the window exceed the
	// threshold.
	Enforce(ctx context.Context, username string) error
	// Reset clears the counter after a successful login.
	Reset(ctx context.Context, username string) error
}

// Config holds the lockout policy.
type Config struct {
	Threshold int
	Window    time.Duration
}

// RedisLimiter is the Redis-backed Limiter.
type RedisLimiter struct {
	redis  redis.UniversalClient
	config Config
}

// NewRedisLimiter creates a limiter using redisClient. A non-positive
// threshold disables locking while still counting attempts.
func NewRedisLimiter(redisClient redis.UniversalClient, cfg Config) *RedisLimiter {
	return &RedisLimiter{redis: redisClient, config: cfg}
}

func key(username string) string {
	return "vmail:lockout:" + strings.ToLower(username)
}

func (l *RedisLimiter) Enforce(ctx context.Context, username string) error {
	k := key(username)

	count, err := l.redis.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	// The window starts with the first attempt.
	if count == 1 && l.config.Window > 0 {
		if err := l.redis.Expire(ctx, k, l.config.Window).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}

	if l.config.Threshold > 0 && count > int64(l.config.Threshold) {
		return common.ErrorLocked
	}
	return nil
}

func (l *RedisLimiter) Reset(ctx context.Context, username string) error {
	if err := l.redis.Del(ctx, key(username)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Nop never locks anything. Used when no Redis address is configured.
type Nop struct{}

func (Nop) Enforce(context.Context, string) error { return nil }
func (Nop) Reset(context.Context, string) error   { return nil }
