package entity

import (
	"time"

	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
)

// TransactionType classifies a ledger entry
type TransactionType string

// Ledger entry types
const (
	TypePurchase           TransactionType = "purchase"
	TypeSubscription       TransactionType = "subscription"
	TypeTransferIn         TransactionType = "transfer_in"
	TypeTransferOut        TransactionType = "transfer_out"
	TypeAdminCredit        TransactionType = "admin_credit"
	TypeSubscriptionCancel TransactionType = "subscription_cancel"
)

// Validate checks the type against the known ledger entry types
func (t TransactionType) Validate() error {
	switch t {
	case TypePurchase, TypeSubscription, TypeTransferIn, TypeTransferOut, TypeAdminCredit, TypeSubscriptionCancel:
		return nil
	default:
		return errs.ErrInvalidTransactionType
	}
}

// Transaction is an immutable audit row written for every balance change
type Transaction struct {
	ID           uint64
	UserID       uint64
	Type         TransactionType
	Amount       int64 // signed cents
	BalanceAfter int64 // cents
	Description  string
	CreatedAt    time.Time
}

// NewTransaction builds an audit row for a balance change that has just been applied
func NewTransaction(userID uint64, txType TransactionType, amount, balanceAfter int64, description string, createdAt time.Time) (*Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	if err := txType.Validate(); err != nil {
		return nil, err
	}
	return &Transaction{
		UserID:       userID,
		Type:         txType,
		Amount:       amount,
		BalanceAfter: balanceAfter,
		Description:  description,
		CreatedAt:    createdAt,
	}, nil
}

// GetAmount returns the signed amount formatted with 2 decimal places
func (t *Transaction) GetAmount() string {
	return AmountInCentsToString(t.Amount)
}

// GetBalanceAfter returns the resulting balance formatted with 2 decimal places
func (t *Transaction) GetBalanceAfter() string {
	return AmountInCentsToString(t.BalanceAfter)
}

// IsDebit reports whether the entry reduced the balance
func (t *Transaction) IsDebit() bool {
	return t.Amount < 0
}
