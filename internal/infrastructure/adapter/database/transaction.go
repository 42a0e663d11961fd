package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// Context keys
const txKey contextKey = "tx"

// UnitOfWork implements the unit of work pattern for database transactions
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	retryConfig  RetryConfig
	queryTimeout coreport.Duration
	classifier   *repository.ErrorClassifier
	errorMapper  *ErrorMapper
	metrics      *MetricsCollector
}

// UnitOfWorkOption customises a UnitOfWork
type UnitOfWorkOption func(*UnitOfWork)

// WithRetryConfig overrides the transient-failure retry policy
func WithRetryConfig(config RetryConfig) UnitOfWorkOption {
	return func(u *UnitOfWork) {
		u.retryConfig = config
	}
}

// WithQueryTimeout bounds each transaction attempt
func WithQueryTimeout(timeout coreport.Duration) UnitOfWorkOption {
	return func(u *UnitOfWork) {
		u.queryTimeout = timeout
	}
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider, opts ...UnitOfWorkOption) *UnitOfWork {
	u := &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		retryConfig:  DefaultRetryConfig(),
		classifier:   repository.NewErrorClassifier(),
		errorMapper:  NewErrorMapper(),
		metrics:      NewMetricsCollector(logger, timeProvider),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Begin starts a READ COMMITTED transaction. Row-level serialization comes
// from the conditional updates issued inside it.
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	tx := u.db.WithContext(ctx).Begin(&sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, u.errorMapper.MapError(tx.Error, "begin")
	}
	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the transaction in ctx
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	if err := tx.Commit().Error; err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return u.errorMapper.MapError(err, "commit")
	}
	return nil
}

// Rollback rolls back the transaction in ctx
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return fmt.Errorf("no transaction found in context")
	}

	err := tx.Rollback().Error
	if errors.Is(err, sql.ErrTxDone) {
		u.logger.Warn("Transaction has already been committed or rolled back", nil)
		return nil
	}
	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// Do runs fn in a transaction. A ctx that already carries one is joined,
// otherwise a new transaction is started and restarted on serialization
// failures and deadlocks.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok && tx != nil {
		return fn(ctx)
	}

	return RetryOnTransientError(ctx, u.retryConfig, func() error {
		_, err := u.metrics.MeasureQuery(ctx, "transaction", func() (int64, error) {
			return 0, u.attempt(ctx, fn)
		})
		return err
	}, u.classifier, u.logger)
}

// attempt runs one transaction from Begin to Commit
func (u *UnitOfWork) attempt(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if u.queryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = u.timeProvider.WithTimeout(ctx, u.queryTimeout)
		defer cancel()
	}

	txCtx, err := u.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = u.Rollback(txCtx)
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		if rbErr := u.Rollback(txCtx); rbErr != nil {
			u.logger.Warn("Rollback after failed unit of work also failed", map[string]any{
				"error":          err.Error(),
				"rollback_error": rbErr.Error(),
			})
		}
		return err
	}

	return u.Commit(txCtx)
}

// GetUserRepository returns a user repository in the current transaction
func (u *UnitOfWork) GetUserRepository(ctx context.Context) persistence.UserRepository {
	return repository.NewUserRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// GetTransactionRepository returns a transaction repository in the current transaction
func (u *UnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return repository.NewTransactionRepository(u.getDbFromContext(ctx), u.logger)
}

// GetProductRepository returns a product repository in the current transaction
func (u *UnitOfWork) GetProductRepository(ctx context.Context) persistence.ProductRepository {
	return repository.NewProductRepository(u.getDbFromContext(ctx), u.logger)
}

// GetPurchaseRepository returns a purchase repository in the current transaction
func (u *UnitOfWork) GetPurchaseRepository(ctx context.Context) persistence.PurchaseRepository {
	return repository.NewPurchaseRepository(u.getDbFromContext(ctx), u.logger)
}

// GetCartRepository returns a cart repository in the current transaction
func (u *UnitOfWork) GetCartRepository(ctx context.Context) persistence.CartRepository {
	return repository.NewCartRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// GetFriendshipRepository returns a friendship repository in the current transaction
func (u *UnitOfWork) GetFriendshipRepository(ctx context.Context) persistence.FriendshipRepository {
	return repository.NewFriendshipRepository(u.getDbFromContext(ctx), u.logger)
}

// GetFollowerRepository returns a follower repository in the current transaction
func (u *UnitOfWork) GetFollowerRepository(ctx context.Context) persistence.FollowerRepository {
	return repository.NewFollowerRepository(u.getDbFromContext(ctx), u.timeProvider)
}

// GetBlockRepository returns a block repository in the current transaction
func (u *UnitOfWork) GetBlockRepository(ctx context.Context) persistence.BlockRepository {
	return repository.NewBlockRepository(u.getDbFromContext(ctx), u.timeProvider)
}

// GetWatchRoomRepository returns a watch room repository in the current transaction
func (u *UnitOfWork) GetWatchRoomRepository(ctx context.Context) persistence.WatchRoomRepository {
	return repository.NewWatchRoomRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// getDbFromContext retrieves the database instance from context
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}

var _ persistence.UnitOfWork = (*UnitOfWork)(nil)
