package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchRoomApply(t *testing.T) {
	t.Run("should follow the playback lifecycle", func(t *testing.T) {
		room := NewWatchRoom(1, "movie night", "dQw4w9WgXcQ", false, time.Now())
		assert.True(t, room.IsActive)
		assert.False(t, room.IsPlaying)
		assert.Equal(t, 0.0, room.CurrentTime)

		require.NoError(t, room.Apply(CommandPlay, 5.0))
		assert.True(t, room.IsPlaying)
		assert.Equal(t, 5.0, room.CurrentTime)

		require.NoError(t, room.Apply(CommandSeek, 42.5))
		assert.True(t, room.IsPlaying)
		assert.Equal(t, 42.5, room.CurrentTime)

		require.NoError(t, room.Apply(CommandPause, 43))
		assert.False(t, room.IsPlaying)

		room.IsActive = false
		assert.ErrorIs(t, room.Apply(CommandSeek, 1), errs.ErrRoomInactive)
	})

	t.Run("should reject negative positions", func(t *testing.T) {
		room := NewWatchRoom(1, "", "abc", false, time.Now())
		assert.ErrorIs(t, room.Apply(CommandPlay, -1), errs.ErrInvalidPosition)
	})
}

func TestExtractVideoID(t *testing.T) {
	testCases := []struct {
		url      string
		expected string
		err      error
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", nil},
		{"https://youtube.com/watch?v=abc123&t=42s", "abc123", nil},
		{"https://youtu.be/xyz789?si=share", "xyz789", nil},
		{"youtu.be/short", "short", nil},
		{"", "", errs.ErrInvalidVideoURL},
		{"https://vimeo.com/123", "", errs.ErrInvalidVideoURL},
		{"https://www.youtube.com/watch?list=abc", "", errs.ErrInvalidVideoURL},
	}

	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			id, err := ExtractVideoID(tc.url)
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, id)
		})
	}
}

func TestStatusFor(t *testing.T) {
	pending := &Friendship{RequesterID: 1, AddresseeID: 2, Status: FriendshipPending}
	accepted := &Friendship{RequesterID: 1, AddresseeID: 2, Status: FriendshipAccepted}

	assert.Equal(t, RelationshipNone, StatusFor(nil, 1))
	assert.Equal(t, RelationshipPendingSent, StatusFor(pending, 1))
	assert.Equal(t, RelationshipPendingReceived, StatusFor(pending, 2))
	assert.Equal(t, RelationshipFriends, StatusFor(accepted, 2))
	assert.Equal(t, uint64(2), accepted.OtherParty(1))
	assert.True(t, accepted.Involves(2))
	assert.False(t, accepted.Involves(3))
}
