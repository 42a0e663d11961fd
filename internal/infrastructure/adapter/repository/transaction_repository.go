package repository

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransactionRepository implements TransactionRepository interface using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Create appends an audit row and fills in its ID
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	row := model.Transaction{
		UserID:       transaction.UserID,
		Type:         string(transaction.Type),
		Amount:       transaction.Amount,
		BalanceAfter: transaction.BalanceAfter,
		Description:  transaction.Description,
		CreatedAt:    transaction.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		r.logger.Error("Failed to create transaction", map[string]any{
			"user_id": transaction.UserID,
			"type":    transaction.Type,
			"error":   err.Error(),
		})
		if pgCode(err) == pgForeignKeyViolation {
			return errs.ErrUserNotFound
		}
		return r.errorClassifier.mapWriteError(err)
	}

	transaction.ID = row.ID
	r.logger.Debug("Transaction created successfully", map[string]any{
		"transaction_id": transaction.ID,
		"user_id":        transaction.UserID,
		"type":           transaction.Type,
	})
	return nil
}

// ListByUser returns the latest audit rows of a user, newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uint64, limit int) ([]*entity.Transaction, error) {
	var rows []model.Transaction
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		r.logger.Error("Failed to list transactions", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil, wrapDatabaseError(err)
	}

	transactions := make([]*entity.Transaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, &entity.Transaction{
			ID:           row.ID,
			UserID:       row.UserID,
			Type:         entity.TransactionType(row.Type),
			Amount:       row.Amount,
			BalanceAfter: row.BalanceAfter,
			Description:  row.Description,
			CreatedAt:    row.CreatedAt,
		})
	}
	return transactions, nil
}
