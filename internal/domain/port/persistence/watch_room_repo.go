package persistence

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
)

// WatchRoomRepository manages rooms and their participants
type WatchRoomRepository interface {
	Create(ctx context.Context, room *entity.WatchRoom) error

	// GetByID returns ErrRoomNotFound when the room doesn't exist
	GetByID(ctx context.Context, id uint64) (*entity.WatchRoom, error)

	// LockByID share-locks the room row until the transaction in ctx ends, so
	// the room cannot be closed meanwhile. Host name and participant count
	// are left empty.
	LockByID(ctx context.Context, id uint64) (*entity.WatchRoom, error)

	// UpdatePlayback writes position and playing flag with a single update
	// guarded by is_active. It reports whether a row matched.
	UpdatePlayback(ctx context.Context, id uint64, at float64, isPlaying *bool) (bool, error)

	Deactivate(ctx context.Context, id uint64) error

	// Delete returns ErrRoomNotFound when nothing was removed
	Delete(ctx context.Context, id uint64) error

	// ListVisible returns active rooms that are public, hosted or joined by the user
	ListVisible(ctx context.Context, userID uint64) ([]*entity.WatchRoom, error)

	// AddParticipant reports false when the user already joined
	AddParticipant(ctx context.Context, roomID, userID uint64) (bool, error)

	RemoveParticipant(ctx context.Context, roomID, userID uint64) (bool, error)

	RemoveAllParticipants(ctx context.Context, roomID uint64) error

	IsParticipant(ctx context.Context, roomID, userID uint64) (bool, error)

	// ListParticipants is ordered by join time
	ListParticipants(ctx context.Context, roomID uint64) ([]*entity.WatchParticipant, error)
}
