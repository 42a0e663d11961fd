package usecase

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
)

// Settings are the user-editable privacy flags
type Settings struct {
	IsPrivate     bool
	AllowMessages bool
}

// Presence reports whether a user was recently active
type Presence struct {
	UserID   uint64
	Online   bool
	LastSeen time.Time
}

// UserUseCase defines methods for user-related business operations
type UserUseCase interface {
	GetUser(ctx context.Context, userID uint64) (*entity.User, error)

	// CreateUser creates a user with the given initial balance (e.g. "10.50")
	CreateUser(ctx context.Context, username, email, initialBalance string) (*entity.User, error)

	// CreateDefaultUsers seeds the admin and demo accounts when missing
	CreateDefaultUsers(ctx context.Context) error

	UpdateSettings(ctx context.Context, actor entity.Actor, settings Settings) (*entity.User, error)

	// ApproveUser marks an account approved and notifies its owner (admin only)
	ApproveUser(ctx context.Context, actor entity.Actor, userID uint64) error

	Touch(ctx context.Context, userID uint64) error
	GetPresence(ctx context.Context, userID uint64) (*Presence, error)
}
