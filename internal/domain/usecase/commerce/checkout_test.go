package commerce

import (
	"testing"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func cartWith(userID uint64, productIDs ...uint64) *entity.Cart {
	cart := entity.NewCart(userID)
	for _, id := range productIDs {
		cart.Add(id, fixedTime)
	}
	return cart
}

func TestService_Checkout(t *testing.T) {
	buyer := entity.NewActor(7, entity.RoleUser)
	catalogue := []*entity.Product{
		{ID: 1, Name: "Poster", Price: 1000, Type: entity.ProductNormal},
		{ID: 2, Name: "Stickers", Price: 500, Type: entity.ProductSticker},
	}

	t.Run("should leave everything untouched when funds are insufficient", func(t *testing.T) {
		// Arrange
		svc, repos, _ := newTestService(t)
		cart := cartWith(7, 1, 2)
		repos.Carts.On("LoadForUpdate", mock.Anything, uint64(7)).Return(cartWith(7, 1, 2), nil).Once()
		repos.Products.On("GetByIDs", mock.Anything, []uint64{1, 2}).Return(catalogue, nil).Once()
		repos.Users.On("AdjustBalance", mock.Anything, uint64(7), int64(-1500)).
			Return(int64(0), errs.NewInsufficientFundsError(7, "15.00", "10.00")).Once()

		// Act
		result, err := svc.Checkout(ctx, buyer, cart)

		// Assert
		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.Len(t, cart.Items, 2)
		repos.Purchases.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
		repos.Carts.AssertNotCalled(t, "RemoveItems", mock.Anything, mock.Anything, mock.Anything)
		repos.Transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should charge, record purchases and clear the cart", func(t *testing.T) {
		// Arrange
		svc, repos, _ := newTestService(t)
		cart := cartWith(7, 1, 2)
		repos.Carts.On("LoadForUpdate", mock.Anything, uint64(7)).Return(cartWith(7, 1, 2), nil).Once()
		repos.Products.On("GetByIDs", mock.Anything, []uint64{1, 2}).Return(catalogue, nil).Once()
		repos.Users.On("AdjustBalance", mock.Anything, uint64(7), int64(-1500)).Return(int64(500), nil).Once()
		repos.Transactions.On("Create", mock.Anything, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.Type == entity.TypePurchase && tx.Description == "Purchased 2 product(s)"
		})).Return(nil).Once()
		repos.Purchases.On("CreateBatch", mock.Anything, mock.MatchedBy(func(ps []*entity.Purchase) bool {
			return len(ps) == 2 && ps[0].PricePaid == 1000 && ps[1].PricePaid == 500 && ps[0].PurchasedAt.Equal(fixedTime)
		})).Return(nil).Once()
		repos.Carts.On("RemoveItems", mock.Anything, uint64(7), []uint64{1, 2}).Return(nil).Once()

		// Act
		result, err := svc.Checkout(ctx, buyer, cart)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(1500), result.Total)
		assert.Equal(t, "5.00", result.Transaction.GetBalanceAfter())
		assert.Len(t, result.Purchases, 2)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("should drop products deleted since they were added", func(t *testing.T) {
		// Arrange
		svc, repos, _ := newTestService(t)
		cart := cartWith(7, 1, 2)
		repos.Carts.On("LoadForUpdate", mock.Anything, uint64(7)).Return(cartWith(7, 1, 2), nil).Once()
		repos.Products.On("GetByIDs", mock.Anything, []uint64{1, 2}).Return(catalogue[1:], nil).Once()
		repos.Users.On("AdjustBalance", mock.Anything, uint64(7), int64(-500)).Return(int64(9500), nil).Once()
		repos.Transactions.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		repos.Purchases.On("CreateBatch", mock.Anything, mock.Anything).Return(nil).Once()
		repos.Carts.On("RemoveItems", mock.Anything, uint64(7), []uint64{1, 2}).Return(nil).Once()

		// Act
		result, err := svc.Checkout(ctx, buyer, cart)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(500), result.Total)
		require.Len(t, result.Purchases, 1)
		assert.Equal(t, uint64(2), result.Purchases[0].ProductID)
	})

	t.Run("should treat a cart of deleted products as empty", func(t *testing.T) {
		// Arrange
		svc, repos, _ := newTestService(t)
		repos.Carts.On("LoadForUpdate", mock.Anything, uint64(7)).Return(cartWith(7, 3), nil).Once()
		repos.Products.On("GetByIDs", mock.Anything, []uint64{3}).Return([]*entity.Product{}, nil).Once()

		// Act
		_, err := svc.Checkout(ctx, buyer, cartWith(7, 3))

		// Assert
		assert.ErrorIs(t, err, errs.ErrEmptyCart)
		repos.Users.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should charge a cart submitted twice only once", func(t *testing.T) {
		// Arrange
		svc, repos, _ := newTestService(t)
		first, second := cartWith(7, 1), cartWith(7, 1)

		// the first checkout empties the stored cart before the second locks it
		repos.Carts.On("LoadForUpdate", mock.Anything, uint64(7)).Return(cartWith(7, 1), nil).Once()
		repos.Carts.On("LoadForUpdate", mock.Anything, uint64(7)).Return(entity.NewCart(7), nil).Once()
		repos.Products.On("GetByIDs", mock.Anything, []uint64{1}).Return(catalogue[:1], nil).Once()
		repos.Users.On("AdjustBalance", mock.Anything, uint64(7), int64(-1000)).Return(int64(4000), nil).Once()
		repos.Transactions.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		repos.Purchases.On("CreateBatch", mock.Anything, mock.MatchedBy(func(ps []*entity.Purchase) bool {
			return len(ps) == 1
		})).Return(nil).Once()
		repos.Carts.On("RemoveItems", mock.Anything, uint64(7), []uint64{1}).Return(nil).Once()

		// Act
		result, err1 := svc.Checkout(ctx, buyer, first)
		_, err2 := svc.Checkout(ctx, buyer, second)

		// Assert
		require.NoError(t, err1)
		assert.Equal(t, int64(1000), result.Total)
		assert.ErrorIs(t, err2, errs.ErrEmptyCart)
		assert.Len(t, second.Items, 1, "a rejected checkout leaves the caller's cart alone")
	})

	t.Run("should keep items added after the cart was read", func(t *testing.T) {
		// Arrange
		svc, repos, _ := newTestService(t)
		cart := cartWith(7, 1)
		repos.Carts.On("LoadForUpdate", mock.Anything, uint64(7)).Return(cartWith(7, 1, 2), nil).Once()
		repos.Products.On("GetByIDs", mock.Anything, []uint64{1}).Return(catalogue[:1], nil).Once()
		repos.Users.On("AdjustBalance", mock.Anything, uint64(7), int64(-1000)).Return(int64(0), nil).Once()
		repos.Transactions.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
		repos.Purchases.On("CreateBatch", mock.Anything, mock.Anything).Return(nil).Once()
		repos.Carts.On("RemoveItems", mock.Anything, uint64(7), []uint64{1}).Return(nil).Once()

		// Act
		result, err := svc.Checkout(ctx, buyer, cart)

		// Assert
		require.NoError(t, err)
		require.Len(t, result.Purchases, 1)
		assert.Equal(t, uint64(1), result.Purchases[0].ProductID)
	})

	t.Run("should reject empty and foreign carts", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, errEmpty := svc.Checkout(ctx, buyer, entity.NewCart(7))
		_, errForeign := svc.Checkout(ctx, buyer, cartWith(8, 1))

		assert.ErrorIs(t, errEmpty, errs.ErrEmptyCart)
		assert.ErrorIs(t, errForeign, errs.ErrUnauthorized)
	})
}
