package user

import (
	"context"
	"errors"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
)

type defaultUser struct {
	id       uint64
	username string
	email    string
	balance  string
	tier     entity.Tier
}

// Seeded accounts. ID 1 is the administrator.
var defaultUsers = []defaultUser{
	{id: 1, username: "admin", email: "admin@socialhub.local", balance: "100.00", tier: entity.TierPremium},
	{id: 2, username: "alice", email: "alice@socialhub.local", balance: "50.00", tier: entity.TierBasic},
	{id: 3, username: "bob", email: "bob@socialhub.local", balance: "20.00", tier: entity.TierNone},
}

// CreateUser creates a new user with the given initial balance
func (u *UserUseCase) CreateUser(ctx context.Context, username, email, initialBalance string) (*entity.User, error) {
	user, err := entity.NewUser(username, email, initialBalance, u.timeProvider)
	if err != nil {
		return nil, err
	}

	if err := u.uow.GetUserRepository(ctx).Create(ctx, user); err != nil {
		return nil, err
	}

	u.logger.Info("User created successfully", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
		"balance":  user.GetBalance(),
	})
	return user, nil
}

// CreateDefaultUsers seeds the default accounts that do not exist yet
func (u *UserUseCase) CreateDefaultUsers(ctx context.Context) error {
	repo := u.uow.GetUserRepository(ctx)

	for _, d := range defaultUsers {
		exists, err := repo.Exists(ctx, d.id)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		user, err := entity.NewUser(d.username, d.email, d.balance, u.timeProvider)
		if err != nil {
			return err
		}
		user.ID = d.id
		user.Subscription = d.tier
		user.IsApproved = true

		if err := repo.Create(ctx, user); err != nil {
			// another instance seeded it first
			if errors.Is(err, errs.ErrDuplicateUser) {
				continue
			}
			return err
		}

		u.logger.Info("Default user created", map[string]any{
			"user_id":  d.id,
			"username": d.username,
			"balance":  d.balance,
		})
	}

	return nil
}
