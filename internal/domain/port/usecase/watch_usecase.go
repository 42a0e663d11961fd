package usecase

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
)

// WatchUseCase defines watch-together room operations
type WatchUseCase interface {
	CreateRoom(ctx context.Context, actor entity.Actor, req entity.NewRoom) (*entity.WatchRoom, error)
	GetRoom(ctx context.Context, actor entity.Actor, roomID uint64) (*entity.WatchRoom, error)
	ListRooms(ctx context.Context, actor entity.Actor) ([]*entity.WatchRoom, error)

	JoinRoom(ctx context.Context, actor entity.Actor, roomID uint64) error
	LeaveRoom(ctx context.Context, actor entity.Actor, roomID uint64) error
	DeleteRoom(ctx context.Context, actor entity.Actor, roomID uint64) error

	// Control applies a play, pause or seek command
	Control(ctx context.Context, actor entity.Actor, roomID uint64, cmd entity.PlaybackCommand, at float64) (*entity.WatchRoom, error)

	ListParticipants(ctx context.Context, actor entity.Actor, roomID uint64) ([]*entity.WatchParticipant, error)
	InviteToRoom(ctx context.Context, actor entity.Actor, roomID, friendID uint64) error
}
