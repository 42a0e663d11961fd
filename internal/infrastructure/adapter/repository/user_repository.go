package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// getOperationType returns "credit" for positive or zero changes and "debit" for negative changes
func getOperationType(balanceChange int64) string {
	if balanceChange >= 0 {
		return "credit"
	}
	return "debit"
}

// UserRepository implements UserRepository interface using GORM
type UserRepository struct {
	db              *gorm.DB
	timeProvider    coreport.TimeProvider
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		timeProvider:    timeProvider,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// userToEntity rehydrates a user row
func userToEntity(m *model.User) *entity.User {
	user := &entity.User{
		ID:            m.ID,
		Username:      m.Username,
		Email:         m.Email,
		Subscription:  entity.Tier(m.Subscription),
		IsPrivate:     m.IsPrivate,
		AllowMessages: m.AllowMessages,
		IsApproved:    m.IsApproved,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	user.SetBalance(m.WalletBalance)
	return user
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Debug("User not found", map[string]any{
			"user_id":   userID,
			"operation": operation,
		})
		return errs.ErrUserNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id":    userID,
		"error":      err.Error(),
		"error_type": r.errorClassifier.Classify(err),
	})

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %w", errs.ErrDuplicateUser, err)
	}
	return r.errorClassifier.mapWriteError(err)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	var userModel model.User
	if err := r.db.WithContext(ctx).First(&userModel, id).Error; err != nil {
		return nil, r.handleDatabaseError("getting user", err, id)
	}
	return userToEntity(&userModel), nil
}

// GetByIDs retrieves the users that exist among ids, keyed by id
func (r *UserRepository) GetByIDs(ctx context.Context, ids []uint64) (map[uint64]*entity.User, error) {
	users := make(map[uint64]*entity.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	var models []model.User
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, r.handleDatabaseError("getting users", err, 0)
	}
	for i := range models {
		users[models[i].ID] = userToEntity(&models[i])
	}
	return users, nil
}

// LockPair serializes relationship writes between two users. NO KEY UPDATE
// leaves foreign key checks from other inserts unblocked.
func (r *UserRepository) LockPair(ctx context.Context, a, b uint64) (map[uint64]*entity.User, error) {
	var models []model.User
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "NO KEY UPDATE"}).
		Where("id IN ?", []uint64{a, b}).
		Order("id").
		Find(&models).Error
	if err != nil {
		return nil, r.handleDatabaseError("locking users", err, a)
	}

	users := make(map[uint64]*entity.User, len(models))
	for i := range models {
		users[models[i].ID] = userToEntity(&models[i])
	}
	return users, nil
}

// Exists checks whether a user with the given ID exists
func (r *UserRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Limit(1).Count(&count).Error
	if err != nil {
		return false, r.handleDatabaseError("checking user", err, id)
	}
	return count > 0, nil
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	presetID := user.ID != 0
	userModel := model.User{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		WalletBalance: user.Balance(),
		Subscription:  string(user.Subscription),
		IsPrivate:     user.IsPrivate,
		AllowMessages: user.AllowMessages,
		IsApproved:    user.IsApproved,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
	if userModel.Subscription == "" {
		userModel.Subscription = string(entity.TierNone)
	}

	db := r.db.WithContext(ctx)
	if err := db.Create(&userModel).Error; err != nil {
		return r.handleDatabaseError("creating user", err, user.ID)
	}

	if presetID {
		// keep the sequence ahead of explicitly seeded ids
		err := db.Exec("SELECT setval(pg_get_serial_sequence('users', 'id'), (SELECT MAX(id) FROM users))").Error
		if err != nil {
			return r.handleDatabaseError("advancing user sequence", err, user.ID)
		}
	}

	user.ID = userModel.ID
	r.logger.Debug("User row inserted", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
		"balance":  user.GetBalance(),
	})
	return nil
}

// UpdateSettings writes the privacy flags of a user
func (r *UserRepository) UpdateSettings(ctx context.Context, id uint64, isPrivate, allowMessages bool) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"is_private":     isPrivate,
			"allow_messages": allowMessages,
			"updated_at":     r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating settings", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// SetSubscription overwrites the tier unless the user already has it
func (r *UserRepository) SetSubscription(ctx context.Context, id uint64, tier entity.Tier) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND subscription <> ?", id, string(tier)).
		UpdateColumns(map[string]any{
			"subscription": string(tier),
			"updated_at":   r.timeProvider.Now(),
		})
	if result.Error != nil {
		return false, r.handleDatabaseError("setting subscription", result.Error, id)
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	exists, err := r.Exists(ctx, id)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, errs.ErrUserNotFound
	}
	return false, nil
}

// SetApproved marks the account as approved
func (r *UserRepository) SetApproved(ctx context.Context, id uint64) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"is_approved": true,
			"updated_at":  r.timeProvider.Now(),
		})
	if result.Error != nil {
		return r.handleDatabaseError("approving user", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}

// AdjustBalance applies delta with a single conditional update. The row
// lock taken by the UPDATE serializes concurrent adjustments of one user and
// the guard re-evaluates against the committed balance, so a debit can never
// take the wallet below zero.
func (r *UserRepository) AdjustBalance(ctx context.Context, id uint64, delta int64) (int64, error) {
	var updated model.User
	result := r.db.WithContext(ctx).Model(&updated).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "wallet_balance"}}}).
		Where("id = ? AND wallet_balance + ? >= 0", id, delta).
		UpdateColumns(map[string]any{
			"wallet_balance": gorm.Expr("wallet_balance + ?", delta),
			"updated_at":     r.timeProvider.Now(),
		})

	if result.Error != nil {
		if r.errorClassifier.IsCheckViolation(result.Error) {
			// the transaction is aborted, the balance cannot be read back
			return 0, errs.NewInsufficientFundsError(id, entity.AmountInCentsToString(-delta), "unknown")
		}
		return 0, r.handleDatabaseError("adjusting balance", result.Error, id)
	}

	if result.RowsAffected == 0 {
		return 0, r.insufficientFunds(ctx, id, delta)
	}

	r.logger.Debug("Balance updated", map[string]any{
		"user_id":        id,
		"change_amount":  entity.AmountInCentsToString(delta),
		"operation_type": getOperationType(delta),
		"new_balance":    entity.AmountInCentsToString(updated.WalletBalance),
	})
	return updated.WalletBalance, nil
}

// insufficientFunds resolves a guarded update that matched no row
func (r *UserRepository) insufficientFunds(ctx context.Context, id uint64, delta int64) error {
	var current model.User
	err := r.db.WithContext(ctx).Select("id", "wallet_balance").First(&current, id).Error
	if err != nil {
		return r.handleDatabaseError("reading balance", err, id)
	}

	r.logger.Warn("Insufficient balance for debit", map[string]any{
		"user_id":          id,
		"current_balance":  entity.AmountInCentsToString(current.WalletBalance),
		"requested_change": entity.AmountInCentsToString(delta),
		"operation_type":   getOperationType(delta),
	})
	return errs.NewInsufficientFundsError(id,
		entity.AmountInCentsToString(-delta),
		entity.AmountInCentsToString(current.WalletBalance))
}
