package user

import (
	"context"
	"fmt"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
)

// OnlineWindow is how recently a user must have been active to count as online
const OnlineWindow = 5 * coreport.Minute

// UpdateSettings writes the actor's privacy flags
func (u *UserUseCase) UpdateSettings(ctx context.Context, actor entity.Actor, settings usecase.Settings) (*entity.User, error) {
	repo := u.uow.GetUserRepository(ctx)
	if err := repo.UpdateSettings(ctx, actor.UserID, settings.IsPrivate, settings.AllowMessages); err != nil {
		return nil, err
	}
	return repo.GetByID(ctx, actor.UserID)
}

// ApproveUser marks an account approved and tells its owner. A failed
// notification is logged and does not fail the approval.
func (u *UserUseCase) ApproveUser(ctx context.Context, actor entity.Actor, userID uint64) error {
	if !actor.IsAdmin() {
		return errs.ErrUnauthorized
	}

	repo := u.uow.GetUserRepository(ctx)
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.IsApproved {
		return nil
	}
	if err := repo.SetApproved(ctx, userID); err != nil {
		return err
	}

	u.logger.Info("User approved", map[string]any{
		"user_id":  userID,
		"admin_id": actor.UserID,
	})

	if u.notifier != nil {
		err := u.notifier.Notify(ctx, coreport.Notification{
			Kind:        coreport.NotifyAccountApproved,
			RecipientID: userID,
			Email:       user.Email,
			Subject:     "Your account has been approved",
			Body:        fmt.Sprintf("Hi %s, your account is now approved.", user.Username),
			CreatedAt:   u.timeProvider.Now(),
		})
		if err != nil {
			u.logger.Warn("Failed to send notification", map[string]any{
				"kind":         string(coreport.NotifyAccountApproved),
				"recipient_id": userID,
				"error":        err.Error(),
			})
		}
	}
	return nil
}

// Touch records activity for the user
func (u *UserUseCase) Touch(ctx context.Context, userID uint64) error {
	if u.presence == nil {
		return nil
	}
	return u.presence.Touch(ctx, userID)
}

// GetPresence reports whether the user was active within OnlineWindow
func (u *UserUseCase) GetPresence(ctx context.Context, userID uint64) (*usecase.Presence, error) {
	exists, err := u.uow.GetUserRepository(ctx).Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.ErrUserNotFound
	}

	presence := &usecase.Presence{UserID: userID}
	if u.presence == nil {
		return presence, nil
	}

	lastSeen, err := u.presence.LastSeen(ctx, userID)
	if err != nil {
		return nil, err
	}
	presence.LastSeen = lastSeen
	presence.Online = !lastSeen.IsZero() && u.timeProvider.Since(lastSeen) <= OnlineWindow
	return presence, nil
}
