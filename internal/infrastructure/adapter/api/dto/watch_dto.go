package dto

import (
	"time"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
)

// CreateRoomRequest opens a watch room
type CreateRoomRequest struct {
	Name      string `json:"name"`
	VideoURL  string `json:"videoUrl" binding:"required"`
	IsPrivate bool   `json:"isPrivate"`
}

// PlaybackRequest carries the position for play, pause and seek
type PlaybackRequest struct {
	Time *float64 `json:"time" binding:"required"`
}

// RoomResponse is a watch room
type RoomResponse struct {
	ID               uint64    `json:"id"`
	HostID           uint64    `json:"hostId"`
	HostUsername     string    `json:"hostUsername,omitempty"`
	Name             string    `json:"name"`
	VideoID          string    `json:"videoId"`
	CurrentTime      float64   `json:"currentTime"`
	IsPlaying        bool      `json:"isPlaying"`
	IsActive         bool      `json:"isActive"`
	IsPrivate        bool      `json:"isPrivate"`
	ParticipantCount int64     `json:"participantCount"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// ParticipantResponse is a user in a room
type ParticipantResponse struct {
	UserID   uint64    `json:"userId"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joinedAt"`
}

// NewRoomResponse maps a room
func NewRoomResponse(r *entity.WatchRoom) RoomResponse {
	return RoomResponse{
		ID:               r.ID,
		HostID:           r.HostID,
		HostUsername:     r.HostUsername,
		Name:             r.Name,
		VideoID:          r.VideoID,
		CurrentTime:      r.CurrentTime,
		IsPlaying:        r.IsPlaying,
		IsActive:         r.IsActive,
		IsPrivate:        r.IsPrivate,
		ParticipantCount: r.ParticipantCount,
		UpdatedAt:        r.UpdatedAt,
	}
}

// NewRoomList maps rooms
func NewRoomList(rooms []*entity.WatchRoom) []RoomResponse {
	out := make([]RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, NewRoomResponse(r))
	}
	return out
}

// NewParticipantList maps participants
func NewParticipantList(participants []*entity.WatchParticipant) []ParticipantResponse {
	out := make([]ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		out = append(out, ParticipantResponse{UserID: p.UserID, Username: p.Username, JoinedAt: p.JoinedAt})
	}
	return out
}
