package dto

import (
	"time"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
)

// UserResponse is a profile. The balance is only shown to its owner and admins.
type UserResponse struct {
	ID            uint64    `json:"id"`
	Username      string    `json:"username"`
	Subscription  string    `json:"subscription"`
	IsPrivate     bool      `json:"isPrivate"`
	AllowMessages bool      `json:"allowMessages"`
	IsApproved    bool      `json:"isApproved"`
	Balance       string    `json:"balance,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SettingsRequest updates privacy flags. Omitted flags keep their value.
type SettingsRequest struct {
	IsPrivate     *bool `json:"isPrivate"`
	AllowMessages *bool `json:"allowMessages"`
}

// PresenceResponse reports recent activity
type PresenceResponse struct {
	UserID   uint64     `json:"userId"`
	Online   bool       `json:"online"`
	LastSeen *time.Time `json:"lastSeen,omitempty"`
}

// HealthResponse is returned by the health probe
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// NewUserResponse maps a profile, including the balance when requested
func NewUserResponse(u *entity.User, withBalance bool) UserResponse {
	resp := UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		Subscription:  string(u.Subscription),
		IsPrivate:     u.IsPrivate,
		AllowMessages: u.AllowMessages,
		IsApproved:    u.IsApproved,
		CreatedAt:     u.CreatedAt,
	}
	if withBalance {
		resp.Balance = FormatAmount(u.Balance())
	}
	return resp
}

// NewPresenceResponse maps presence
func NewPresenceResponse(p *usecase.Presence) PresenceResponse {
	resp := PresenceResponse{UserID: p.UserID, Online: p.Online}
	if !p.LastSeen.IsZero() {
		seen := p.LastSeen
		resp.LastSeen = &seen
	}
	return resp
}
