package entity

import (
	"testing"
	"time"

	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coremocks "github.com/amirhossein-jamali/socialhub/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	fixedTime := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	mockTime := coremocks.NewMockTimeProvider(t)
	mockTime.On("Now").Return(fixedTime).Maybe()

	t.Run("Valid user creation", func(t *testing.T) {
		user, err := NewUser("alice", "alice@example.com", "100.00", mockTime)

		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, int64(10000), user.Balance())
		assert.Equal(t, "100.00", user.GetBalance())
		assert.Equal(t, TierNone, user.Subscription)
		assert.True(t, user.AllowMessages)
		assert.False(t, user.HasPaidTier())
		assert.Equal(t, fixedTime, user.CreatedAt)
	})

	t.Run("Empty username should return error", func(t *testing.T) {
		user, err := NewUser("  ", "", "1.00", mockTime)

		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
		assert.Nil(t, user)
	})

	t.Run("Negative balance should return error", func(t *testing.T) {
		user, err := NewUser("bob", "", "-1.00", mockTime)

		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
		assert.Nil(t, user)
	})
}

func TestTier(t *testing.T) {
	t.Run("should price paid plans", func(t *testing.T) {
		for tier, expected := range map[Tier]int64{TierBasic: 400, TierPro: 1200, TierPremium: 2400} {
			price, err := tier.Price()
			require.NoError(t, err)
			assert.Equal(t, expected, price)
			assert.True(t, tier.IsPaid())
		}

		_, err := TierNone.Price()
		assert.ErrorIs(t, err, errs.ErrInvalidPlan)
	})

	t.Run("should parse plans", func(t *testing.T) {
		plan, err := ParsePlan(" Pro ")
		require.NoError(t, err)
		assert.Equal(t, TierPro, plan)

		_, err = ParsePlan("none")
		assert.ErrorIs(t, err, errs.ErrInvalidPlan)

		_, err = ParsePlan("gold")
		assert.ErrorIs(t, err, errs.ErrInvalidPlan)

		tier, err := ParseTier("none")
		require.NoError(t, err)
		assert.Equal(t, TierNone, tier)
	})

	t.Run("should enforce product limits", func(t *testing.T) {
		assert.False(t, TierNone.AllowsAnotherProduct(0))
		assert.True(t, TierBasic.AllowsAnotherProduct(0))
		assert.False(t, TierBasic.AllowsAnotherProduct(1))
		assert.True(t, TierPro.AllowsAnotherProduct(4))
		assert.False(t, TierPro.AllowsAnotherProduct(5))
		assert.True(t, TierPremium.AllowsAnotherProduct(1000))
	})

	t.Run("should capitalise display names", func(t *testing.T) {
		assert.Equal(t, "Pro", TierPro.DisplayName())
		assert.Equal(t, "Premium", TierPremium.DisplayName())
	})
}

func TestActor(t *testing.T) {
	admin := NewActor(1, RoleAdmin)
	user := NewActor(2, "superuser")

	assert.True(t, admin.IsAdmin())
	assert.False(t, user.IsAdmin())
	assert.Equal(t, RoleUser, user.Role)
	assert.True(t, user.CanManage(2))
	assert.False(t, user.CanManage(3))
	assert.True(t, admin.CanManage(3))
}
