package repository

import (
	"context"
	"errors"
	"time"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const roomSelect = `
	SELECT r.id, r.host_id, r.room_name, r.video_id, r.playback_time, r.is_playing,
	       r.is_active, r.is_private, r.created_at, r.updated_at,
	       u.username AS host_username,
	       (SELECT COUNT(*) FROM watch_participants p WHERE p.room_id = r.id) AS participant_count
	FROM watch_rooms r
	JOIN users u ON u.id = r.host_id`

type roomRow struct {
	ID               uint64
	HostID           uint64
	RoomName         string
	VideoID          string
	PlaybackTime     float64
	IsPlaying        bool
	IsActive         bool
	IsPrivate        bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
	HostUsername     string
	ParticipantCount int64
}

func (row *roomRow) toEntity() *entity.WatchRoom {
	return &entity.WatchRoom{
		ID:               row.ID,
		HostID:           row.HostID,
		Name:             row.RoomName,
		VideoID:          row.VideoID,
		CurrentTime:      row.PlaybackTime,
		IsPlaying:        row.IsPlaying,
		IsActive:         row.IsActive,
		IsPrivate:        row.IsPrivate,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
		HostUsername:     row.HostUsername,
		ParticipantCount: row.ParticipantCount,
	}
}

// WatchRoomRepository implements WatchRoomRepository using GORM
type WatchRoomRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewWatchRoomRepository creates a new WatchRoomRepository instance
func NewWatchRoomRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *WatchRoomRepository {
	return &WatchRoomRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Create inserts the room and fills in its ID
func (r *WatchRoomRepository) Create(ctx context.Context, room *entity.WatchRoom) error {
	row := model.WatchRoom{
		HostID:       room.HostID,
		RoomName:     room.Name,
		VideoID:      room.VideoID,
		PlaybackTime: room.CurrentTime,
		IsPlaying:    room.IsPlaying,
		IsActive:     room.IsActive,
		IsPrivate:    room.IsPrivate,
		CreatedAt:    room.CreatedAt,
		UpdatedAt:    room.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		r.logger.Error("Failed to create watch room", map[string]any{
			"host_id": room.HostID,
			"error":   err.Error(),
		})
		if pgCode(err) == pgForeignKeyViolation {
			return errs.ErrUserNotFound
		}
		return r.errorClassifier.mapWriteError(err)
	}
	room.ID = row.ID
	return nil
}

// GetByID returns the room with host name and participant count
func (r *WatchRoomRepository) GetByID(ctx context.Context, id uint64) (*entity.WatchRoom, error) {
	var rows []roomRow
	if err := r.db.WithContext(ctx).Raw(roomSelect+" WHERE r.id = ?", id).Scan(&rows).Error; err != nil {
		return nil, wrapDatabaseError(err)
	}
	if len(rows) == 0 {
		return nil, errs.ErrRoomNotFound
	}
	return rows[0].toEntity(), nil
}

// LockByID reads the bare room row FOR SHARE
func (r *WatchRoomRepository) LockByID(ctx context.Context, id uint64) (*entity.WatchRoom, error) {
	var row model.WatchRoom
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "SHARE"}).
		Where("id = ?", id).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrRoomNotFound
		}
		return nil, wrapDatabaseError(err)
	}
	return &entity.WatchRoom{
		ID:          row.ID,
		HostID:      row.HostID,
		Name:        row.RoomName,
		VideoID:     row.VideoID,
		CurrentTime: row.PlaybackTime,
		IsPlaying:   row.IsPlaying,
		IsActive:    row.IsActive,
		IsPrivate:   row.IsPrivate,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

// UpdatePlayback writes the playback state in a single statement guarded by
// is_active. Concurrent commands resolve as last write wins.
func (r *WatchRoomRepository) UpdatePlayback(ctx context.Context, id uint64, at float64, isPlaying *bool) (bool, error) {
	updates := map[string]any{
		"playback_time": at,
		"updated_at":    r.timeProvider.Now(),
	}
	if isPlaying != nil {
		updates["is_playing"] = *isPlaying
	}

	result := r.db.WithContext(ctx).Model(&model.WatchRoom{}).
		Where("id = ? AND is_active = ?", id, true).
		UpdateColumns(updates)
	if result.Error != nil {
		return false, wrapDatabaseError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Deactivate stops playback and closes the room for good
func (r *WatchRoomRepository) Deactivate(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Model(&model.WatchRoom{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"is_active":  false,
			"is_playing": false,
			"updated_at": r.timeProvider.Now(),
		})
	if result.Error != nil {
		return wrapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrRoomNotFound
	}
	return nil
}

// Delete returns ErrRoomNotFound when nothing was removed
func (r *WatchRoomRepository) Delete(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Delete(&model.WatchRoom{}, id)
	if result.Error != nil {
		return wrapDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrRoomNotFound
	}
	return nil
}

// ListVisible returns active rooms that are public, hosted or joined by the user
func (r *WatchRoomRepository) ListVisible(ctx context.Context, userID uint64) ([]*entity.WatchRoom, error) {
	var rows []roomRow
	err := r.db.WithContext(ctx).Raw(roomSelect+`
		WHERE r.is_active
		  AND (NOT r.is_private
		       OR r.host_id = ?
		       OR EXISTS (SELECT 1 FROM watch_participants p WHERE p.room_id = r.id AND p.user_id = ?))
		ORDER BY r.created_at DESC, r.id DESC`, userID, userID).
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDatabaseError(err)
	}

	rooms := make([]*entity.WatchRoom, 0, len(rows))
	for i := range rows {
		rooms = append(rooms, rows[i].toEntity())
	}
	return rooms, nil
}

// AddParticipant reports false when the user already joined
func (r *WatchRoomRepository) AddParticipant(ctx context.Context, roomID, userID uint64) (bool, error) {
	added, err := insertEdge(ctx, r.db, &model.WatchParticipant{
		RoomID:   roomID,
		UserID:   userID,
		JoinedAt: r.timeProvider.Now(),
	})
	if errors.Is(err, errs.ErrUserNotFound) {
		// either side of the roster key may be missing
		return false, errs.ErrRoomNotFound
	}
	return added, err
}

// RemoveParticipant reports whether the user was on the roster
func (r *WatchRoomRepository) RemoveParticipant(ctx context.Context, roomID, userID uint64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Delete(&model.WatchParticipant{})
	if result.Error != nil {
		return false, wrapDatabaseError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

// RemoveAllParticipants empties the roster
func (r *WatchRoomRepository) RemoveAllParticipants(ctx context.Context, roomID uint64) error {
	err := r.db.WithContext(ctx).Where("room_id = ?", roomID).Delete(&model.WatchParticipant{}).Error
	if err != nil {
		return wrapDatabaseError(err)
	}
	return nil
}

// IsParticipant reports roster membership
func (r *WatchRoomRepository) IsParticipant(ctx context.Context, roomID, userID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.WatchParticipant{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error
	if err != nil {
		return false, wrapDatabaseError(err)
	}
	return count > 0, nil
}

// ListParticipants is ordered by join time
func (r *WatchRoomRepository) ListParticipants(ctx context.Context, roomID uint64) ([]*entity.WatchParticipant, error) {
	var rows []struct {
		RoomID   uint64
		UserID   uint64
		Username string
		JoinedAt time.Time
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.room_id, p.user_id, u.username, p.joined_at
		FROM watch_participants p
		JOIN users u ON u.id = p.user_id
		WHERE p.room_id = ?
		ORDER BY p.joined_at, p.user_id`, roomID).
		Scan(&rows).Error
	if err != nil {
		return nil, wrapDatabaseError(err)
	}

	participants := make([]*entity.WatchParticipant, 0, len(rows))
	for _, row := range rows {
		participants = append(participants, &entity.WatchParticipant{
			RoomID:   row.RoomID,
			UserID:   row.UserID,
			Username: row.Username,
			JoinedAt: row.JoinedAt,
		})
	}
	return participants, nil
}
