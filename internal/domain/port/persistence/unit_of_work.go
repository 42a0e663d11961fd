package persistence

import (
	"context"
)

// UnitOfWork defines an interface for coordinating transaction operations
// across multiple repositories to maintain data consistency
type UnitOfWork interface {
	// Begin starts a new transaction and returns a transactional context
	Begin(ctx context.Context) (context.Context, error)

	// Commit commits the transaction in the given context
	Commit(ctx context.Context) error

	// Rollback rolls back the transaction in the given context
	Rollback(ctx context.Context) error

	// Do runs fn inside a transaction, committing when it returns nil.
	// When ctx already carries a transaction fn joins it instead.
	// Serialization failures and deadlocks restart fn from scratch.
	Do(ctx context.Context, fn func(ctx context.Context) error) error

	// Repositories bound to the transaction in ctx, or to the pool without one
	GetUserRepository(ctx context.Context) UserRepository
	GetTransactionRepository(ctx context.Context) TransactionRepository
	GetProductRepository(ctx context.Context) ProductRepository
	GetPurchaseRepository(ctx context.Context) PurchaseRepository
	GetCartRepository(ctx context.Context) CartRepository
	GetFriendshipRepository(ctx context.Context) FriendshipRepository
	GetFollowerRepository(ctx context.Context) FollowerRepository
	GetBlockRepository(ctx context.Context) BlockRepository
	GetWatchRoomRepository(ctx context.Context) WatchRoomRepository
}
