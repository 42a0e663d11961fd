package presence

import (
	"context"
	"os"
	"testing"
	"time"

	coremocks "github.com/amirhossein-jamali/socialhub/mocks/port/core"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresenceKey(t *testing.T) {
	assert.Equal(t, "presence:17", presenceKey(17))
}

// TestRedisPresence runs against a real server when TEST_REDIS_ADDR is set
func TestRedisPresence(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set, skipping redis integration test")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()
	require.NoError(t, client.Ping(ctx).Err())

	now := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
	tracker := NewRedisPresence(client, time.Minute, coremocks.NewFixedTimeProvider(t, now))
	userID := uint64(time.Now().UnixNano())
	t.Cleanup(func() { client.Del(ctx, presenceKey(userID)) })

	t.Run("should report zero time for unknown users", func(t *testing.T) {
		seen, err := tracker.LastSeen(ctx, userID)
		require.NoError(t, err)
		assert.True(t, seen.IsZero())
	})

	t.Run("should store the activity mark with a ttl", func(t *testing.T) {
		require.NoError(t, tracker.Touch(ctx, userID))

		seen, err := tracker.LastSeen(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, now, seen)

		ttl, err := client.TTL(ctx, presenceKey(userID)).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})
}
