package database

import (
	"context"
	"errors"
	"fmt"

	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
)

// ErrorMapper maps errors raised outside any repository, such as BEGIN and
// COMMIT failures, onto domain errors. The driver error stays in the chain
// so the retry loop can still recognise serialization failures.
type ErrorMapper struct {
	classifier *repository.ErrorClassifier
}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{classifier: repository.NewErrorClassifier()}
}

// MapError maps a database error to a domain error
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.ErrNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %s: %w", errs.ErrDatabaseConnection, operation, err)
	case m.classifier.IsConstraintError(err):
		return fmt.Errorf("%w: %w", errs.ErrConstraintViolation, err)
	case m.classifier.IsLockError(err), m.classifier.IsConnectionError(err):
		return fmt.Errorf("%w: %s: %w", errs.ErrDatabaseConnection, operation, err)
	default:
		return fmt.Errorf("%w: %s failed: %w", errs.ErrInternalServer, operation, err)
	}
}
