package commerce

import (
	"testing"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_BuySubscription(t *testing.T) {
	actor := entity.NewActor(7, entity.RoleUser)

	t.Run("should charge once and refuse the same plan twice", func(t *testing.T) {
		// Arrange
		svc, repos, _ := newTestService(t)
		repos.Users.On("SetSubscription", mock.Anything, uint64(7), entity.TierPro).Return(true, nil).Once()
		repos.Users.On("AdjustBalance", mock.Anything, uint64(7), int64(-1200)).Return(int64(800), nil).Once()
		repos.Transactions.On("Create", mock.Anything, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.Type == entity.TypeSubscription && tx.Amount == -1200 && tx.Description == "Purchased Pro subscription"
		})).Return(nil).Once()

		// Act
		first, err := svc.BuySubscription(ctx, actor, "pro")
		require.NoError(t, err)

		repos.Users.On("SetSubscription", mock.Anything, uint64(7), entity.TierPro).Return(false, nil).Once()
		second, errAgain := svc.BuySubscription(ctx, actor, "pro")

		// Assert
		assert.Equal(t, entity.TierPro, first.Tier)
		assert.Equal(t, "8.00", first.Transaction.GetBalanceAfter())
		assert.Nil(t, second)
		assert.ErrorIs(t, errAgain, errs.ErrAlreadySubscribed)
	})

	t.Run("should surface insufficient funds", func(t *testing.T) {
		// Arrange
		svc, repos, _ := newTestService(t)
		repos.Users.On("SetSubscription", mock.Anything, uint64(7), entity.TierPremium).Return(true, nil).Once()
		repos.Users.On("AdjustBalance", mock.Anything, uint64(7), int64(-2400)).
			Return(int64(0), errs.NewInsufficientFundsError(7, "24.00", "20.00")).Once()

		// Act
		_, err := svc.BuySubscription(ctx, actor, "premium")

		// Assert
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		repos.Transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should reject unknown plans", func(t *testing.T) {
		svc, repos, _ := newTestService(t)

		_, errGold := svc.BuySubscription(ctx, actor, "gold")
		_, errNone := svc.BuySubscription(ctx, actor, "none")

		assert.ErrorIs(t, errGold, errs.ErrInvalidPlan)
		assert.ErrorIs(t, errNone, errs.ErrInvalidPlan)
		repos.Users.AssertNotCalled(t, "SetSubscription", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_CancelSubscription(t *testing.T) {
	actor := entity.NewActor(7, entity.RoleUser)

	t.Run("should record a zero amount cancellation", func(t *testing.T) {
		// Arrange
		svc, repos, _ := newTestService(t)
		repos.Users.On("SetSubscription", mock.Anything, uint64(7), entity.TierNone).Return(true, nil).Once()
		repos.Users.On("AdjustBalance", mock.Anything, uint64(7), int64(0)).Return(int64(800), nil).Once()
		repos.Transactions.On("Create", mock.Anything, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.Type == entity.TypeSubscriptionCancel && tx.Amount == 0
		})).Return(nil).Once()

		// Act
		result, err := svc.CancelSubscription(ctx, actor)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, entity.TierNone, result.Tier)
		assert.NotNil(t, result.Transaction)
	})

	t.Run("should do nothing without a plan", func(t *testing.T) {
		// Arrange
		svc, repos, _ := newTestService(t)
		repos.Users.On("SetSubscription", mock.Anything, uint64(7), entity.TierNone).Return(false, nil).Once()

		// Act
		result, err := svc.CancelSubscription(ctx, actor)

		// Assert
		require.NoError(t, err)
		assert.Nil(t, result.Transaction)
		repos.Transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_SetSubscription(t *testing.T) {
	t.Run("should require an admin", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		err := svc.SetSubscription(ctx, entity.NewActor(7, entity.RoleUser), 7, "premium")

		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("should set any tier without charging", func(t *testing.T) {
		// Arrange
		svc, repos, _ := newTestService(t)
		repos.Users.On("SetSubscription", mock.Anything, uint64(7), entity.TierNone).Return(true, nil).Once()

		// Act
		err := svc.SetSubscription(ctx, entity.NewActor(1, entity.RoleAdmin), 7, "none")

		// Assert
		require.NoError(t, err)
		repos.Users.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
	})
}
