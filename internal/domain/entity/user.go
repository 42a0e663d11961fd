package entity

import (
	"strings"
	"time"

	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
)

// User represents an account with a wallet and a subscription tier
type User struct {
	ID            uint64
	Username      string
	Email         string
	balance       int64 // cents
	Subscription  Tier
	IsPrivate     bool
	AllowMessages bool
	IsApproved    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUser creates a new user with the given username and initial balance
func NewUser(username, email, initialBalance string, timeProvider coreport.TimeProvider) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errs.ErrInvalidRequest
	}

	balanceInCents, err := ValidateAndConvertAmount(initialBalance)
	if err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &User{
		Username:      username,
		Email:         strings.TrimSpace(email),
		balance:       balanceInCents,
		Subscription:  TierNone,
		AllowMessages: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Balance returns the current balance in cents
func (u *User) Balance() int64 {
	return u.balance
}

// GetBalance returns the balance as a string with 2 decimal places
func (u *User) GetBalance() string {
	return AmountInCentsToString(u.balance)
}

// SetBalance updates the balance directly (for repositories rehydrating rows)
func (u *User) SetBalance(balanceInCents int64) {
	u.balance = balanceInCents
}

// HasPaidTier reports whether the user holds basic, pro or premium
func (u *User) HasPaidTier() bool {
	return u.Subscription.IsPaid()
}
