package database_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/socialhub/internal/domain/usecase/commerce"
	"github.com/amirhossein-jamali/socialhub/internal/domain/usecase/ledger"
	"github.com/amirhossein-jamali/socialhub/internal/domain/usecase/social"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db       *database.TestDBManager
	uow      *database.UnitOfWork
	ledger   *ledger.Service
	commerce *commerce.Service
	social   *social.Service
}

func newFixture(t *testing.T) *fixture {
	log := logger.NewNoopLogger()
	db := database.NewTestDBManager(t, log)
	uow := db.Manager.CreateUnitOfWork()

	serializer := ledger.NewSerializer(log, 64)
	t.Cleanup(serializer.Shutdown)
	ledgerSvc := ledger.NewLedgerService(uow, serializer, db.TimeProvider, log, 0)

	return &fixture{
		db:       db,
		uow:      uow,
		ledger:   ledgerSvc,
		commerce: commerce.NewCommerceService(uow, ledgerSvc, nil, db.TimeProvider, log),
		social:   social.NewSocialService(uow, nil, db.TimeProvider, log),
	}
}

func (f *fixture) transactionCount(t *testing.T, userID uint64) int64 {
	var count int64
	require.NoError(t, f.db.Manager.DB().Model(&model.Transaction{}).Where("user_id = ?", userID).Count(&count).Error)
	return count
}

func TestConcurrentDebitsNeverOverdraw(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.db.CreateTestUser(t, "racer", 1000, "none")

	workers := 20
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.ledger.AdjustBalance(ctx, usecase.AdjustRequest{
				UserID: userID,
				Amount: -300,
				Type:   entity.TypePurchase,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errs.IsInsufficientFundsError(err), "unexpected error: %v", err)
	}

	balance, err := f.ledger.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, succeeded)
	assert.Equal(t, int64(100), balance)
	assert.Equal(t, int64(succeeded), f.transactionCount(t, userID))
}

func TestConditionalUpdateBypassingSerializer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := f.db.CreateTestUser(t, "direct", 500, "none")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = f.uow.Do(ctx, func(txCtx context.Context) error {
				_, err := f.ledger.Post(txCtx, usecase.AdjustRequest{UserID: userID, Amount: -200, Type: entity.TypePurchase})
				return err
			})
		}()
	}
	wg.Wait()

	balance, err := f.ledger.GetBalance(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
	assert.Equal(t, int64(2), f.transactionCount(t, userID))
}

func TestCheckoutIsAtomic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sellerID := f.db.CreateTestUser(t, "seller", 0, "pro")
	buyerID := f.db.CreateTestUser(t, "buyer", 1500, "none")
	buyer := entity.NewActor(buyerID, entity.RoleUser)

	var productIDs []uint64
	for _, price := range []int64{1000, 800} {
		product := &entity.Product{OwnerID: sellerID, Name: "item", Price: price, Type: entity.ProductNormal, CreatedAt: f.db.TimeProvider.Now()}
		require.NoError(t, f.uow.GetProductRepository(ctx).Create(ctx, product))
		productIDs = append(productIDs, product.ID)
		require.NoError(t, f.commerce.AddToCart(ctx, buyer, product.ID))
	}

	view, err := f.commerce.GetCart(ctx, buyer)
	require.NoError(t, err)
	assert.Equal(t, int64(1800), view.Total)

	_, err = f.commerce.Checkout(ctx, buyer, view.Cart)
	require.Error(t, err)
	assert.True(t, errs.IsInsufficientFundsError(err))

	purchases, err := f.commerce.ListPurchases(ctx, buyer)
	require.NoError(t, err)
	assert.Empty(t, purchases)
	assert.Equal(t, int64(0), f.transactionCount(t, buyerID))

	// the failed checkout leaves the cart in place
	require.NoError(t, f.commerce.RemoveFromCart(ctx, buyer, productIDs[1]))
	view, err = f.commerce.GetCart(ctx, buyer)
	require.NoError(t, err)

	result, err := f.commerce.Checkout(ctx, buyer, view.Cart)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), result.Total)
	assert.Equal(t, int64(500), result.Transaction.BalanceAfter)

	view, err = f.commerce.GetCart(ctx, buyer)
	require.NoError(t, err)
	assert.True(t, view.Cart.IsEmpty())
}

func TestDoubleCheckoutChargesOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sellerID := f.db.CreateTestUser(t, "seller", 0, "pro")
	buyerID := f.db.CreateTestUser(t, "buyer", 5000, "none")
	buyer := entity.NewActor(buyerID, entity.RoleUser)

	product := &entity.Product{OwnerID: sellerID, Name: "poster", Price: 1000, Type: entity.ProductNormal, CreatedAt: f.db.TimeProvider.Now()}
	require.NoError(t, f.uow.GetProductRepository(ctx).Create(ctx, product))
	require.NoError(t, f.commerce.AddToCart(ctx, buyer, product.ID))

	// both submissions read the cart before either commits
	views := make([]*entity.Cart, 2)
	for i := range views {
		view, err := f.commerce.GetCart(ctx, buyer)
		require.NoError(t, err)
		views[i] = view.Cart
	}

	var wg sync.WaitGroup
	results := make(chan error, len(views))
	for _, cart := range views {
		wg.Add(1)
		go func(cart *entity.Cart) {
			defer wg.Done()
			_, err := f.commerce.Checkout(ctx, buyer, cart)
			results <- err
		}(cart)
	}
	wg.Wait()
	close(results)

	var succeeded, empty int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, errs.ErrEmptyCart):
			empty++
		default:
			t.Fatalf("unexpected checkout error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, empty)

	balance, err := f.ledger.GetBalance(ctx, buyerID)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), balance)
	purchases, err := f.commerce.ListPurchases(ctx, buyer)
	require.NoError(t, err)
	assert.Len(t, purchases, 1)
}

func TestBlockCascadesAndEdgesAreIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	aliceID := f.db.CreateTestUser(t, "alice", 0, "basic")
	bobID := f.db.CreateTestUser(t, "bob", 0, "basic")
	alice := entity.NewActor(aliceID, entity.RoleUser)
	bob := entity.NewActor(bobID, entity.RoleUser)

	request, err := f.social.SendFriendRequest(ctx, alice, bobID)
	require.NoError(t, err)
	_, err = f.social.AcceptFriendRequest(ctx, bob, request.ID)
	require.NoError(t, err)

	created, err := f.social.Follow(ctx, alice, bobID)
	require.NoError(t, err)
	assert.True(t, created)
	created, err = f.social.Follow(ctx, alice, bobID)
	require.NoError(t, err)
	assert.False(t, created)
	_, err = f.social.Follow(ctx, bob, aliceID)
	require.NoError(t, err)

	blocked, err := f.social.BlockUser(ctx, alice, bobID)
	require.NoError(t, err)
	assert.True(t, blocked)
	blocked, err = f.social.BlockUser(ctx, alice, bobID)
	require.NoError(t, err)
	assert.False(t, blocked)

	friends, err := f.social.ListFriends(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, friends)
	followers, err := f.social.ListFollowers(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, followers)
	following, err := f.social.ListFollowing(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, following)

	_, err = f.social.SendFriendRequest(ctx, bob, aliceID)
	assert.ErrorIs(t, err, errs.ErrUserBlocked)
}

func TestFollowRacingBlockLeavesNoEdge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	aliceID := f.db.CreateTestUser(t, "alice", 0, "pro")
	bobID := f.db.CreateTestUser(t, "bob", 0, "pro")
	alice := entity.NewActor(aliceID, entity.RoleUser)
	bob := entity.NewActor(bobID, entity.RoleUser)

	for i := 0; i < 20; i++ {
		require.NoError(t, f.social.UnblockUser(ctx, alice, bobID))

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := f.social.Follow(ctx, bob, aliceID)
			if err != nil {
				assert.ErrorIs(t, err, errs.ErrUserBlocked)
			}
		}()
		go func() {
			defer wg.Done()
			_, err := f.social.BlockUser(ctx, alice, bobID)
			assert.NoError(t, err)
		}()
		wg.Wait()

		following, err := f.social.ListFollowing(ctx, bob)
		require.NoError(t, err)
		require.Empty(t, following, "iteration %d left a follow next to a block", i)
	}
}

func TestReverseFriendRequestConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	aID := f.db.CreateTestUser(t, "a", 0, "none")
	bID := f.db.CreateTestUser(t, "b", 0, "none")

	now := f.db.TimeProvider.Now()
	repo := f.uow.GetFriendshipRepository(ctx)
	created, err := repo.Create(ctx, &entity.Friendship{RequesterID: aID, AddresseeID: bID, Status: entity.FriendshipPending, CreatedAt: now})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Create(ctx, &entity.Friendship{RequesterID: bID, AddresseeID: aID, Status: entity.FriendshipPending, CreatedAt: now})
	require.NoError(t, err)
	assert.False(t, created)
}
