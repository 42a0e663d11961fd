package entity

import (
	"net/url"
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
)

// PlaybackCommand is a state change issued by a room participant
type PlaybackCommand string

// Playback commands
const (
	CommandPlay  PlaybackCommand = "play"
	CommandPause PlaybackCommand = "pause"
	CommandSeek  PlaybackCommand = "seek"
)

// WatchRoom is the shared playback state of a watch-together session
type WatchRoom struct {
	ID          uint64
	HostID      uint64
	Name        string
	VideoID     string
	CurrentTime float64 // seconds
	IsPlaying   bool
	IsActive    bool
	IsPrivate   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Filled by listing queries
	ParticipantCount int64
	HostUsername     string
}

// NewWatchRoom creates an active, paused room positioned at zero
func NewWatchRoom(hostID uint64, name, videoID string, isPrivate bool, now time.Time) *WatchRoom {
	return &WatchRoom{
		HostID:    hostID,
		Name:      strings.TrimSpace(name),
		VideoID:   videoID,
		IsPlaying: false,
		IsActive:  true,
		IsPrivate: isPrivate,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply computes the playing flag and position after a command.
// The room must be active.
func (r *WatchRoom) Apply(cmd PlaybackCommand, at float64) error {
	if at < 0 {
		return errs.ErrInvalidPosition
	}
	if !r.IsActive {
		return errs.ErrRoomInactive
	}
	switch cmd {
	case CommandPlay:
		r.IsPlaying = true
	case CommandPause:
		r.IsPlaying = false
	case CommandSeek:
	default:
		return errs.ErrInvalidRequest
	}
	r.CurrentTime = at
	return nil
}

// WatchParticipant is roster membership of a room
type WatchParticipant struct {
	RoomID   uint64
	UserID   uint64
	Username string
	JoinedAt time.Time
}

// NewRoom carries the input of a room creation
type NewRoom struct {
	Name      string
	VideoURL  string
	IsPrivate bool
}

// ExtractVideoID pulls the YouTube video id out of a watch or short link
func ExtractVideoID(videoURL string) (string, error) {
	videoURL = strings.TrimSpace(videoURL)
	if videoURL == "" {
		return "", errs.ErrInvalidVideoURL
	}

	var id string
	switch {
	case strings.Contains(videoURL, "youtube.com/watch"):
		parsed, err := url.Parse(videoURL)
		if err != nil {
			return "", errs.ErrInvalidVideoURL
		}
		id = parsed.Query().Get("v")
	case strings.Contains(videoURL, "youtu.be/"):
		id = videoURL[strings.Index(videoURL, "youtu.be/")+len("youtu.be/"):]
		if i := strings.IndexAny(id, "?&#/"); i >= 0 {
			id = id[:i]
		}
	default:
		return "", errs.ErrInvalidVideoURL
	}

	if id == "" {
		return "", errs.ErrInvalidVideoURL
	}
	return id, nil
}
