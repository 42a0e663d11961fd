package usecase

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
)

// AdjustRequest describes one signed change to a wallet balance
type AdjustRequest struct {
	UserID      uint64
	Amount      int64 // signed cents, negative debits
	Type        entity.TransactionType
	Description string
}

// TransferResult holds both legs of a wallet-to-wallet transfer
type TransferResult struct {
	Debit  *entity.Transaction
	Credit *entity.Transaction
}

// LedgerUseCase defines methods for wallet balance operations
type LedgerUseCase interface {
	// AdjustBalance applies the change and writes its audit row in one
	// transaction, serialized per user
	AdjustBalance(ctx context.Context, req AdjustRequest) (*entity.Transaction, error)

	// Post applies the change inside the unit of work carried by ctx.
	// Callers are responsible for serialization.
	Post(ctx context.Context, req AdjustRequest) (*entity.Transaction, error)

	// Exclusive runs fn in the per-user queue of userID
	Exclusive(ctx context.Context, userID uint64, fn func(ctx context.Context) error) error

	// AdminCredit adds funds to a user's wallet (admin only)
	AdminCredit(ctx context.Context, actor entity.Actor, userID uint64, amount int64) (*entity.Transaction, error)

	// Transfer moves funds from the actor to another user
	Transfer(ctx context.Context, actor entity.Actor, toUserID uint64, amount int64) (*TransferResult, error)

	// History returns recent transactions, newest first
	History(ctx context.Context, actor entity.Actor, userID uint64, limit int) ([]*entity.Transaction, error)

	// GetBalance returns the balance in cents
	GetBalance(ctx context.Context, userID uint64) (int64, error)
}
