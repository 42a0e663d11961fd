package watch

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
)

// DefaultRoomName is used when a room is created without a name
const DefaultRoomName = "Watch Room"

// Service implements watch-together rooms
type Service struct {
	uow          persistence.UnitOfWork
	notifier     coreport.Notifier
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ usecase.WatchUseCase = (*Service)(nil)

// NewWatchService creates a new watch room service
func NewWatchService(
	uow persistence.UnitOfWork,
	notifier coreport.Notifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		notifier:     notifier,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// CreateRoom opens an active, paused room at position zero with the host
// as its first participant
func (s *Service) CreateRoom(ctx context.Context, actor entity.Actor, req entity.NewRoom) (*entity.WatchRoom, error) {
	videoID, err := entity.ExtractVideoID(req.VideoURL)
	if err != nil {
		return nil, err
	}
	name := req.Name
	if name == "" {
		name = DefaultRoomName
	}

	room := entity.NewWatchRoom(actor.UserID, name, videoID, req.IsPrivate, s.timeProvider.Now())
	err = s.uow.Do(ctx, func(txCtx context.Context) error {
		rooms := s.uow.GetWatchRoomRepository(txCtx)
		if err := rooms.Create(txCtx, room); err != nil {
			return err
		}
		_, err := rooms.AddParticipant(txCtx, room.ID, actor.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	room.ParticipantCount = 1

	s.logger.Info("Watch room created", map[string]any{
		"room_id":  room.ID,
		"host_id":  actor.UserID,
		"video_id": videoID,
		"private":  req.IsPrivate,
	})
	return room, nil
}

// GetRoom returns the room snapshot clients poll for playback state
func (s *Service) GetRoom(ctx context.Context, actor entity.Actor, roomID uint64) (*entity.WatchRoom, error) {
	room, err := s.uow.GetWatchRoomRepository(ctx).GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureVisible(ctx, actor, room); err != nil {
		return nil, err
	}
	return room, nil
}

// ensureVisible hides private rooms from everyone but participants and admins
func (s *Service) ensureVisible(ctx context.Context, actor entity.Actor, room *entity.WatchRoom) error {
	if !room.IsPrivate || actor.CanManage(room.HostID) {
		return nil
	}
	joined, err := s.uow.GetWatchRoomRepository(ctx).IsParticipant(ctx, room.ID, actor.UserID)
	if err != nil {
		return err
	}
	if !joined {
		return errs.ErrUnauthorized
	}
	return nil
}

// ListRooms returns active rooms that are public, hosted or joined by the actor
func (s *Service) ListRooms(ctx context.Context, actor entity.Actor) ([]*entity.WatchRoom, error) {
	return s.uow.GetWatchRoomRepository(ctx).ListVisible(ctx, actor.UserID)
}

// JoinRoom adds the actor to an active room. Joining twice is a no-op.
// The room row stays share-locked until the roster insert commits, so a
// host closing the room either waits for the join or is seen by it.
func (s *Service) JoinRoom(ctx context.Context, actor entity.Actor, roomID uint64) error {
	var added bool
	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		rooms := s.uow.GetWatchRoomRepository(txCtx)
		room, err := rooms.LockByID(txCtx, roomID)
		if err != nil {
			return err
		}
		if !room.IsActive {
			return errs.ErrRoomInactive
		}

		added, err = rooms.AddParticipant(txCtx, roomID, actor.UserID)
		return err
	})
	if err != nil {
		return err
	}
	if added {
		s.logger.Info("User joined watch room", map[string]any{
			"room_id": roomID,
			"user_id": actor.UserID,
		})
	}
	return nil
}

// LeaveRoom removes the actor from the roster. When the host leaves the
// room is closed for good.
func (s *Service) LeaveRoom(ctx context.Context, actor entity.Actor, roomID uint64) error {
	var closed bool
	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		rooms := s.uow.GetWatchRoomRepository(txCtx)
		room, err := rooms.GetByID(txCtx, roomID)
		if err != nil {
			return err
		}

		if _, err := rooms.RemoveParticipant(txCtx, roomID, actor.UserID); err != nil {
			return err
		}

		if room.HostID == actor.UserID && room.IsActive {
			closed = true
			return rooms.Deactivate(txCtx, roomID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("User left watch room", map[string]any{
		"room_id":     roomID,
		"user_id":     actor.UserID,
		"room_closed": closed,
	})
	return nil
}

// DeleteRoom removes a room and its roster (admin only)
func (s *Service) DeleteRoom(ctx context.Context, actor entity.Actor, roomID uint64) error {
	if !actor.IsAdmin() {
		return errs.ErrUnauthorized
	}

	err := s.uow.Do(ctx, func(txCtx context.Context) error {
		rooms := s.uow.GetWatchRoomRepository(txCtx)
		if _, err := rooms.GetByID(txCtx, roomID); err != nil {
			return err
		}
		if err := rooms.RemoveAllParticipants(txCtx, roomID); err != nil {
			return err
		}
		return rooms.Delete(txCtx, roomID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Watch room deleted", map[string]any{
		"room_id":  roomID,
		"admin_id": actor.UserID,
	})
	return nil
}

// Control applies a playback command. The write is a single conditional
// update, so concurrent commands resolve as last write wins.
func (s *Service) Control(ctx context.Context, actor entity.Actor, roomID uint64, cmd entity.PlaybackCommand, at float64) (*entity.WatchRoom, error) {
	rooms := s.uow.GetWatchRoomRepository(ctx)
	room, err := rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if err := room.Apply(cmd, at); err != nil {
		return nil, err
	}

	joined, err := rooms.IsParticipant(ctx, roomID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !joined {
		return nil, errs.ErrUnauthorized
	}

	var playing *bool
	if cmd != entity.CommandSeek {
		playing = &room.IsPlaying
	}

	updated, err := rooms.UpdatePlayback(ctx, roomID, at, playing)
	if err != nil {
		return nil, err
	}

	// other participants may have changed the room since it was read
	room, err = rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, errs.ErrRoomInactive
	}

	s.logger.Debug("Playback updated", map[string]any{
		"room_id": roomID,
		"user_id": actor.UserID,
		"command": string(cmd),
		"at":      at,
	})
	return room, nil
}

// ListParticipants returns the roster ordered by join time
func (s *Service) ListParticipants(ctx context.Context, actor entity.Actor, roomID uint64) ([]*entity.WatchParticipant, error) {
	if _, err := s.GetRoom(ctx, actor, roomID); err != nil {
		return nil, err
	}
	return s.uow.GetWatchRoomRepository(ctx).ListParticipants(ctx, roomID)
}

// InviteToRoom notifies a friend about a room the actor is watching
func (s *Service) InviteToRoom(ctx context.Context, actor entity.Actor, roomID, friendID uint64) error {
	if friendID == actor.UserID {
		return errs.ErrSelfRelation
	}

	rooms := s.uow.GetWatchRoomRepository(ctx)
	room, err := rooms.GetByID(ctx, roomID)
	if err != nil {
		return err
	}
	if !room.IsActive {
		return errs.ErrRoomInactive
	}

	joined, err := rooms.IsParticipant(ctx, roomID, actor.UserID)
	if err != nil {
		return err
	}
	friends, err := s.uow.GetFriendshipRepository(ctx).AreFriends(ctx, actor.UserID, friendID)
	if err != nil {
		return err
	}
	if !joined || !friends {
		return errs.ErrUnauthorized
	}

	users, err := s.uow.GetUserRepository(ctx).GetByIDs(ctx, []uint64{actor.UserID, friendID})
	if err != nil {
		return err
	}
	friend, ok := users[friendID]
	if !ok {
		return errs.ErrUserNotFound
	}
	inviter := fmt.Sprintf("User %d", actor.UserID)
	if u, ok := users[actor.UserID]; ok {
		inviter = u.Username
	}

	if s.notifier != nil {
		n := coreport.Notification{
			Kind:        coreport.NotifyRoomInvite,
			RecipientID: friendID,
			Email:       friend.Email,
			Subject:     "Watch party invitation",
			Body:        fmt.Sprintf("%s invited you to watch together in %q.", inviter, room.Name),
			Data: map[string]any{
				"room_id":  roomID,
				"video_id": room.VideoID,
			},
			CreatedAt: s.timeProvider.Now(),
		}
		if err := s.notifier.Notify(ctx, n); err != nil {
			s.logger.Warn("Failed to send notification", map[string]any{
				"kind":         string(n.Kind),
				"recipient_id": friendID,
				"error":        err.Error(),
			})
		}
	}

	s.logger.Info("Room invitation sent", map[string]any{
		"room_id":    roomID,
		"inviter_id": actor.UserID,
		"friend_id":  friendID,
	})
	return nil
}
