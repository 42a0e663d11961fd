package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInsufficientFunds    = 4001
	CodeInvalidAmount        = 4002
	CodeInvalidUserID        = 4003
	CodeInvalidRequest       = 4004
	CodeConstraintViolation  = 4005
	CodeAmountOverflow       = 4006
	CodeInvalidPlan          = 4007
	CodeEmptyCart            = 4008
	CodeInvalidVideoURL      = 4009
	CodeInvalidPosition      = 4010
	CodeSelfRelation         = 4011
	CodeUnauthorized         = 4030
	CodeProductLimitExceeded = 4031
	CodeUserBlocked          = 4032
	CodeNotFound             = 4040
	CodeUserNotFound         = 4041
	CodeProductNotFound      = 4042
	CodeRoomNotFound         = 4043
	CodeRequestNotFound      = 4044
	CodeAlreadySubscribed    = 4091
	CodeRoomInactive         = 4092

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeDatabaseConnection = 5001
)

// Base error types
var (
	// ErrInsufficientFunds is returned when a debit would take a wallet below zero
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrAlreadySubscribed is returned when the user already holds the requested plan
	ErrAlreadySubscribed = errors.New("already subscribed to this plan")

	// ErrProductLimitExceeded is returned when the user's tier does not allow another product
	ErrProductLimitExceeded = errors.New("product limit exceeded for subscription tier")

	// ErrRoomInactive is returned when a state change targets a room that is no longer active
	ErrRoomInactive = errors.New("room is inactive")

	// ErrUnauthorized is returned when the actor is not allowed to perform the operation
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidAmount is returned when the amount format is invalid
	ErrInvalidAmount = errors.New("invalid amount format")

	// ErrNegativeAmount is returned when a positive amount was expected
	ErrNegativeAmount = errors.New("amount must be positive")

	// ErrAmountOverflow is returned when the amount is too large and would cause overflow
	ErrAmountOverflow = errors.New("amount is too large and would cause overflow")

	// ErrInvalidUserID is returned when the user ID is not a positive integer
	ErrInvalidUserID = errors.New("user ID must be positive")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrInvalidPlan is returned for an unknown subscription plan
	ErrInvalidPlan = errors.New("invalid subscription plan")

	// ErrInvalidTransactionType is returned for an unknown ledger entry type
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrEmptyCart is returned when checking out a cart without purchasable items
	ErrEmptyCart = errors.New("cart is empty")

	// ErrInvalidVideoURL is returned when no video id can be extracted from a URL
	ErrInvalidVideoURL = errors.New("invalid video URL")

	// ErrInvalidPosition is returned for a negative playback position
	ErrInvalidPosition = errors.New("playback position cannot be negative")

	// ErrSelfRelation is returned when a user targets themselves with a social or wallet operation
	ErrSelfRelation = errors.New("cannot target yourself")

	// ErrUserBlocked is returned when one of the two users has blocked the other
	ErrUserBlocked = errors.New("user is blocked")

	// ErrUserNotFound is returned when the requested user doesn't exist
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)

	// ErrProductNotFound is returned when the requested product doesn't exist
	ErrProductNotFound = fmt.Errorf("product %w", ErrNotFound)

	// ErrRoomNotFound is returned when the requested room doesn't exist
	ErrRoomNotFound = fmt.Errorf("room %w", ErrNotFound)

	// ErrFriendRequestNotFound is returned when the friend request doesn't exist or is not pending
	ErrFriendRequestNotFound = fmt.Errorf("friend request %w", ErrNotFound)

	// ErrDuplicateUser is returned when trying to create a user that already exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return CodeInsufficientFunds
	case errors.Is(err, ErrAlreadySubscribed):
		return CodeAlreadySubscribed
	case errors.Is(err, ErrProductLimitExceeded):
		return CodeProductLimitExceeded
	case errors.Is(err, ErrRoomInactive):
		return CodeRoomInactive
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrUserBlocked):
		return CodeUserBlocked
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrProductNotFound):
		return CodeProductNotFound
	case errors.Is(err, ErrRoomNotFound):
		return CodeRoomNotFound
	case errors.Is(err, ErrFriendRequestNotFound):
		return CodeRequestNotFound
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrAmountOverflow):
		return CodeAmountOverflow
	case errors.Is(err, ErrInvalidUserID):
		return CodeInvalidUserID
	case errors.Is(err, ErrInvalidPlan):
		return CodeInvalidPlan
	case errors.Is(err, ErrEmptyCart):
		return CodeEmptyCart
	case errors.Is(err, ErrInvalidVideoURL):
		return CodeInvalidVideoURL
	case errors.Is(err, ErrInvalidPosition):
		return CodeInvalidPosition
	case errors.Is(err, ErrSelfRelation):
		return CodeSelfRelation
	case errors.Is(err, ErrInvalidRequest), errors.Is(err, ErrInvalidTransactionType):
		return CodeInvalidRequest
	case errors.Is(err, ErrConstraintViolation), errors.Is(err, ErrDuplicateUser):
		return CodeConstraintViolation
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabaseConnection
	default:
		return CodeInternalServer
	}
}

// InsufficientFundsError provides detailed error information for a rejected debit
type InsufficientFundsError struct {
	UserID  uint64
	Amount  string
	Balance string
}

// Error implements the error interface
func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds for user %d: required %s, available %s",
		e.UserID, e.Amount, e.Balance)
}

// Is checks if the target error is an ErrInsufficientFunds
func (e *InsufficientFundsError) Is(target error) bool {
	return target == ErrInsufficientFunds
}

// LogFields returns a map of fields for structured logging
func (e *InsufficientFundsError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "insufficient_funds",
		"user_id":    e.UserID,
		"amount":     e.Amount,
		"balance":    e.Balance,
		"error_code": CodeInsufficientFunds,
	}
}

// NewInsufficientFundsError creates a new detailed insufficient funds error
func NewInsufficientFundsError(userID uint64, amount, balance string) error {
	return &InsufficientFundsError{
		UserID:  userID,
		Amount:  amount,
		Balance: balance,
	}
}

// LedgerError wraps a failure of a balance-changing operation
type LedgerError struct {
	UserID uint64
	Type   string
	Amount string
	Reason string
	Err    error
}

// Error implements the error interface for LedgerError
func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger %s failed for user %d (amount: %s): %s - %v",
		e.Type, e.UserID, e.Amount, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *LedgerError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "ledger_error",
		"user_id":    e.UserID,
		"type":       e.Type,
		"amount":     e.Amount,
		"reason":     e.Reason,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewLedgerError creates a detailed ledger error
func NewLedgerError(userID uint64, txType, amount, reason string, err error) error {
	return &LedgerError{
		UserID: userID,
		Type:   txType,
		Amount: amount,
		Reason: reason,
		Err:    err,
	}
}

// ProductLimitError reports the tier limit that rejected a product creation
type ProductLimitError struct {
	UserID   uint64
	Tier     string
	Limit    int
	Existing int64
}

// Error implements the error interface
func (e *ProductLimitError) Error() string {
	return fmt.Sprintf("product limit reached for user %d: tier %s allows %d, has %d",
		e.UserID, e.Tier, e.Limit, e.Existing)
}

// Is checks if the target error is an ErrProductLimitExceeded
func (e *ProductLimitError) Is(target error) bool {
	return target == ErrProductLimitExceeded
}

// LogFields returns a map of fields for structured logging
func (e *ProductLimitError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "product_limit_exceeded",
		"user_id":    e.UserID,
		"tier":       e.Tier,
		"limit":      e.Limit,
		"existing":   e.Existing,
		"error_code": CodeProductLimitExceeded,
	}
}

// IsInsufficientFundsError checks if the error is related to insufficient funds
func IsInsufficientFundsError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorizedError checks if the error is an authorization failure
func IsUnauthorizedError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsRoomInactiveError checks if the error is caused by an inactive room
func IsRoomInactiveError(err error) bool {
	return errors.Is(err, ErrRoomInactive)
}

// IsValidationError reports whether the error was caused by bad client input
func IsValidationError(err error) bool {
	code := ErrorCode(err)
	return code >= 4002 && code <= 4011
}
