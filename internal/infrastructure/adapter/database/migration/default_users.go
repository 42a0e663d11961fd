package migration

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
)

// SeedDefaultUsers creates the admin and demo accounts when they are missing
func SeedDefaultUsers(ctx context.Context, users usecase.UserUseCase) error {
	return users.CreateDefaultUsers(ctx)
}
