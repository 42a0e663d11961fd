package persistence

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
)

// UserRepository defines essential methods to interact with user data
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// Possible errors:
	// - ErrUserNotFound: If user with specified ID doesn't exist
	// - ErrDatabaseConnection: If database connection fails
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByIDs retrieves the users that exist among ids, keyed by id
	GetByIDs(ctx context.Context, ids []uint64) (map[uint64]*entity.User, error)

	// LockPair loads two users and row-locks them, lower id first, until the
	// transaction in ctx ends. Missing users are absent from the map.
	LockPair(ctx context.Context, a, b uint64) (map[uint64]*entity.User, error)

	// Exists checks whether a user with the given ID exists
	Exists(ctx context.Context, id uint64) (bool, error)

	// Create creates a new user. A zero ID lets the database assign one.
	//
	// Possible errors:
	// - ErrDuplicateUser: If the ID or username is taken
	// - ErrConstraintViolation: If user data breaks a table constraint
	Create(ctx context.Context, user *entity.User) error

	// UpdateSettings writes the privacy flags of a user
	UpdateSettings(ctx context.Context, id uint64, isPrivate, allowMessages bool) error

	// SetSubscription overwrites the subscription tier with a conditional
	// update. It reports false when the user already has that tier.
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	SetSubscription(ctx context.Context, id uint64, tier entity.Tier) (bool, error)

	// SetApproved marks the account as approved
	SetApproved(ctx context.Context, id uint64) error

	// AdjustBalance applies delta to the wallet balance with a conditional
	// update that refuses to take the balance below zero.
	// Returns the balance after the change.
	//
	// Possible errors:
	// - ErrUserNotFound: If user doesn't exist
	// - InsufficientFundsError: If the balance would become negative
	// - ErrDatabaseConnection: If database connection fails
	AdjustBalance(ctx context.Context, id uint64, delta int64) (int64, error)
}
