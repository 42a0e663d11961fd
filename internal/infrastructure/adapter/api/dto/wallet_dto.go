package dto

import (
	"time"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
)

// BalanceResponse represents the API response for a user's balance
type BalanceResponse struct {
	UserID  uint64 `json:"userId"`
	Balance string `json:"balance"`
}

// AmountRequest carries a positive decimal amount
type AmountRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// TransferRequest moves funds to another user
type TransferRequest struct {
	ToUserID uint64 `json:"toUserId" binding:"required"`
	Amount   string `json:"amount" binding:"required"`
}

// TransactionResponse is one ledger entry
type TransactionResponse struct {
	ID           uint64    `json:"id"`
	Type         string    `json:"type"`
	Amount       string    `json:"amount"`
	BalanceAfter string    `json:"balanceAfter"`
	Description  string    `json:"description,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TransferResponse holds both legs of a transfer
type TransferResponse struct {
	Debit  TransactionResponse `json:"debit"`
	Credit TransactionResponse `json:"credit"`
}

// NewTransactionResponse maps a ledger entry
func NewTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:           t.ID,
		Type:         string(t.Type),
		Amount:       FormatAmount(t.Amount),
		BalanceAfter: FormatAmount(t.BalanceAfter),
		Description:  t.Description,
		CreatedAt:    t.CreatedAt,
	}
}

// NewTransactionList maps ledger entries
func NewTransactionList(txns []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, NewTransactionResponse(t))
	}
	return out
}
