package presence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL is how long an activity mark is kept
const DefaultTTL = 5 * time.Minute

// RedisPresence keeps one expiring key per active user
type RedisPresence struct {
	client       redis.Cmdable
	ttl          time.Duration
	timeProvider coreport.TimeProvider
}

var _ coreport.PresenceTracker = (*RedisPresence)(nil)

// NewRedisPresence creates a presence tracker
func NewRedisPresence(client redis.Cmdable, ttl time.Duration, timeProvider coreport.TimeProvider) *RedisPresence {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisPresence{client: client, ttl: ttl, timeProvider: timeProvider}
}

func presenceKey(userID uint64) string {
	return "presence:" + strconv.FormatUint(userID, 10)
}

// Touch records activity now
func (p *RedisPresence) Touch(ctx context.Context, userID uint64) error {
	now := p.timeProvider.Now().UnixMilli()
	if err := p.client.Set(ctx, presenceKey(userID), now, p.ttl).Err(); err != nil {
		return fmt.Errorf("failed to record presence: %w", err)
	}
	return nil
}

// LastSeen returns the last recorded activity, or the zero time when the
// mark has expired
func (p *RedisPresence) LastSeen(ctx context.Context, userID uint64) (time.Time, error) {
	millis, err := p.client.Get(ctx, presenceKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read presence: %w", err)
	}
	return time.UnixMilli(millis).UTC(), nil
}
