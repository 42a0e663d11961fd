package persistence

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
)

// TransactionRepository stores the append-only wallet audit trail
type TransactionRepository interface {
	// Create saves a new transaction and fills in its ID
	//
	// Possible errors:
	// - ErrUserNotFound: If referenced user does not exist
	// - ErrDatabaseConnection: If database connection fails
	Create(ctx context.Context, transaction *entity.Transaction) error

	// ListByUser returns the most recent transactions of a user, newest first
	ListByUser(ctx context.Context, userID uint64, limit int) ([]*entity.Transaction, error)
}
