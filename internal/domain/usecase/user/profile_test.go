package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApproveUser(t *testing.T) {
	ctx := context.Background()
	admin := entity.NewActor(1, entity.RoleAdmin)

	t.Run("should require an admin", func(t *testing.T) {
		uc, _, _, _ := newTestUseCase(t)

		err := uc.ApproveUser(ctx, entity.NewActor(2, entity.RoleUser), 3)

		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("should approve and notify", func(t *testing.T) {
		// Arrange
		uc, repos, _, notifier := newTestUseCase(t)
		repos.Users.On("GetByID", mock.Anything, uint64(3)).
			Return(&entity.User{ID: 3, Username: "bob", Email: "bob@example.com"}, nil).Once()
		repos.Users.On("SetApproved", mock.Anything, uint64(3)).Return(nil).Once()
		notifier.On("Notify", mock.Anything, mock.MatchedBy(func(n coreport.Notification) bool {
			return n.Kind == coreport.NotifyAccountApproved && n.Email == "bob@example.com"
		})).Return(errors.New("smtp down")).Once()

		// Act
		err := uc.ApproveUser(ctx, admin, 3)

		// Assert
		require.NoError(t, err)
	})

	t.Run("should skip approved accounts", func(t *testing.T) {
		uc, repos, _, notifier := newTestUseCase(t)
		repos.Users.On("GetByID", mock.Anything, uint64(3)).Return(&entity.User{ID: 3, IsApproved: true}, nil).Once()

		err := uc.ApproveUser(ctx, admin, 3)

		require.NoError(t, err)
		notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	})
}

func TestUpdateSettings(t *testing.T) {
	t.Run("should write flags and return the fresh user", func(t *testing.T) {
		// Arrange
		uc, repos, _, _ := newTestUseCase(t)
		repos.Users.On("UpdateSettings", mock.Anything, uint64(2), true, false).Return(nil).Once()
		repos.Users.On("GetByID", mock.Anything, uint64(2)).Return(&entity.User{ID: 2, IsPrivate: true}, nil).Once()

		// Act
		user, err := uc.UpdateSettings(context.Background(), entity.NewActor(2, entity.RoleUser), usecase.Settings{IsPrivate: true})

		// Assert
		require.NoError(t, err)
		assert.True(t, user.IsPrivate)
	})
}

func TestGetPresence(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		lastSeen time.Time
		online   bool
	}{
		{"should be online within the window", fixedTime.Add(-4 * time.Minute), true},
		{"should be offline after the window", fixedTime.Add(-6 * time.Minute), false},
		{"should be offline when never seen", time.Time{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			uc, repos, presence, _ := newTestUseCase(t)
			repos.Users.On("Exists", mock.Anything, uint64(2)).Return(true, nil).Once()
			presence.On("LastSeen", mock.Anything, uint64(2)).Return(tc.lastSeen, nil).Once()

			// Act
			result, err := uc.GetPresence(ctx, 2)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tc.online, result.Online)
		})
	}

	t.Run("should fail for unknown users", func(t *testing.T) {
		uc, repos, _, _ := newTestUseCase(t)
		repos.Users.On("Exists", mock.Anything, uint64(9)).Return(false, nil).Once()

		_, err := uc.GetPresence(ctx, 9)

		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("should report offline without a tracker", func(t *testing.T) {
		uc, repos, _, _ := newTestUseCase(t)
		uc.presence = nil
		repos.Users.On("Exists", mock.Anything, uint64(2)).Return(true, nil).Once()

		result, err := uc.GetPresence(ctx, 2)

		require.NoError(t, err)
		assert.False(t, result.Online)
	})
}
