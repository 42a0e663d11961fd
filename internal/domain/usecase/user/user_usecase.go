package user

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
)

// UserUseCase handles user-related business logic
type UserUseCase struct {
	uow          persistence.UnitOfWork
	presence     coreport.PresenceTracker
	notifier     coreport.Notifier
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ usecase.UserUseCase = (*UserUseCase)(nil)

// NewUserUseCase creates a new UserUseCase.
// presence and notifier may be nil when the backing services are disabled.
func NewUserUseCase(
	uow persistence.UnitOfWork,
	presence coreport.PresenceTracker,
	notifier coreport.Notifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UserUseCase {
	return &UserUseCase{
		uow:          uow,
		presence:     presence,
		notifier:     notifier,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetUser returns a user by ID
func (u *UserUseCase) GetUser(ctx context.Context, userID uint64) (*entity.User, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}
	return u.uow.GetUserRepository(ctx).GetByID(ctx, userID)
}
