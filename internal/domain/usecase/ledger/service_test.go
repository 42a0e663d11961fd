package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
	coremocks "github.com/amirhossein-jamali/socialhub/mocks/port/core"
	persistencemocks "github.com/amirhossein-jamali/socialhub/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *persistencemocks.Repositories) {
	uow, repos := persistencemocks.NewMockUnitOfWorkWithRepositories(t)
	logger := coremocks.NewQuietLogger(t)
	serializer := NewSerializer(logger, 10)
	t.Cleanup(serializer.Shutdown)

	svc := NewLedgerService(uow, serializer, coremocks.NewFixedTimeProvider(t, fixedTime), logger, 0)
	return svc, repos
}

func TestService_AdjustBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("should debit and record one transaction", func(t *testing.T) {
		// Arrange
		svc, repos := newTestService(t)
		repos.Users.On("AdjustBalance", mock.Anything, uint64(7), int64(-500)).Return(int64(1500), nil).Once()
		repos.Transactions.On("Create", mock.Anything, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.UserID == 7 && tx.Amount == -500 && tx.BalanceAfter == 1500 &&
				tx.Type == entity.TypePurchase && tx.CreatedAt.Equal(fixedTime)
		})).Return(nil).Once()

		// Act
		txn, err := svc.AdjustBalance(ctx, usecase.AdjustRequest{
			UserID:      7,
			Amount:      -500,
			Type:        entity.TypePurchase,
			Description: "Purchased 1 product(s)",
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "-5.00", txn.GetAmount())
		assert.Equal(t, "15.00", txn.GetBalanceAfter())
	})

	t.Run("should not record anything when funds are insufficient", func(t *testing.T) {
		// Arrange
		svc, repos := newTestService(t)
		repos.Users.On("AdjustBalance", mock.Anything, uint64(7), int64(-5000)).
			Return(int64(0), errs.NewInsufficientFundsError(7, "50.00", "10.00")).Once()

		// Act
		txn, err := svc.AdjustBalance(ctx, usecase.AdjustRequest{UserID: 7, Amount: -5000, Type: entity.TypePurchase})

		// Assert
		assert.Nil(t, txn)
		assert.ErrorIs(t, err, errs.ErrInsufficientFunds)
		repos.Transactions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("should pass through unknown users", func(t *testing.T) {
		// Arrange
		svc, repos := newTestService(t)
		repos.Users.On("AdjustBalance", mock.Anything, uint64(99), int64(100)).Return(int64(0), errs.ErrUserNotFound).Once()

		// Act
		_, err := svc.AdjustBalance(ctx, usecase.AdjustRequest{UserID: 99, Amount: 100, Type: entity.TypeAdminCredit})

		// Assert
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("should wrap storage failures in a ledger error", func(t *testing.T) {
		// Arrange
		svc, repos := newTestService(t)
		repos.Users.On("AdjustBalance", mock.Anything, uint64(7), int64(100)).Return(int64(200), nil).Once()
		repos.Transactions.On("Create", mock.Anything, mock.Anything).Return(errs.ErrDatabaseConnection).Once()

		// Act
		_, err := svc.AdjustBalance(ctx, usecase.AdjustRequest{UserID: 7, Amount: 100, Type: entity.TypeAdminCredit})

		// Assert
		var ledgerErr *errs.LedgerError
		require.ErrorAs(t, err, &ledgerErr)
		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
		assert.Equal(t, "admin_credit", ledgerErr.Type)
	})

	t.Run("should validate before touching the balance", func(t *testing.T) {
		// Arrange
		svc, repos := newTestService(t)

		// Act
		_, errType := svc.AdjustBalance(ctx, usecase.AdjustRequest{UserID: 7, Amount: 100, Type: "bonus"})
		_, errUser := svc.Post(ctx, usecase.AdjustRequest{UserID: 0, Amount: 100, Type: entity.TypeAdminCredit})

		// Assert
		assert.ErrorIs(t, errType, errs.ErrInvalidTransactionType)
		assert.ErrorIs(t, errUser, errs.ErrInvalidUserID)
		repos.Users.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestService_AdminCredit(t *testing.T) {
	ctx := context.Background()
	admin := entity.NewActor(1, entity.RoleAdmin)

	t.Run("should reject non-admins", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.AdminCredit(ctx, entity.NewActor(2, entity.RoleUser), 3, 100)

		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("should reject non-positive amounts", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.AdminCredit(ctx, admin, 3, 0)

		assert.ErrorIs(t, err, errs.ErrNegativeAmount)
	})

	t.Run("should credit with an admin_credit row", func(t *testing.T) {
		// Arrange
		svc, repos := newTestService(t)
		repos.Users.On("AdjustBalance", mock.Anything, uint64(3), int64(2500)).Return(int64(2500), nil).Once()
		repos.Transactions.On("Create", mock.Anything, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.Type == entity.TypeAdminCredit && tx.Description == "Admin credit"
		})).Return(nil).Once()

		// Act
		txn, err := svc.AdminCredit(ctx, admin, 3, 2500)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "25.00", txn.GetBalanceAfter())
	})
}

func TestService_Transfer(t *testing.T) {
	ctx := context.Background()
	actor := entity.NewActor(5, entity.RoleUser)

	t.Run("should reject self transfers", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Transfer(ctx, actor, 5, 100)

		assert.ErrorIs(t, err, errs.ErrSelfRelation)
	})

	t.Run("should fail for a missing recipient", func(t *testing.T) {
		// Arrange
		svc, repos := newTestService(t)
		repos.Users.On("Exists", mock.Anything, uint64(9)).Return(false, nil).Once()

		// Act
		_, err := svc.Transfer(ctx, actor, 9, 100)

		// Assert
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		repos.Users.AssertNotCalled(t, "AdjustBalance", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should write both legs", func(t *testing.T) {
		// Arrange
		svc, repos := newTestService(t)
		repos.Users.On("Exists", mock.Anything, uint64(2)).Return(true, nil).Once()
		credit := repos.Users.On("AdjustBalance", mock.Anything, uint64(2), int64(300)).Return(int64(800), nil).Once()
		repos.Users.On("AdjustBalance", mock.Anything, uint64(5), int64(-300)).Return(int64(700), nil).Once().NotBefore(credit)
		repos.Transactions.On("Create", mock.Anything, mock.Anything).Return(nil).Twice()

		// Act
		result, err := svc.Transfer(ctx, actor, 2, 300)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, entity.TypeTransferOut, result.Debit.Type)
		assert.Equal(t, int64(-300), result.Debit.Amount)
		assert.Equal(t, entity.TypeTransferIn, result.Credit.Type)
		assert.Equal(t, "Transfer from user 5", result.Credit.Description)
	})
}

func TestService_History(t *testing.T) {
	ctx := context.Background()

	t.Run("should use the default limit", func(t *testing.T) {
		// Arrange
		svc, repos := newTestService(t)
		repos.Users.On("Exists", mock.Anything, uint64(4)).Return(true, nil).Once()
		repos.Transactions.On("ListByUser", mock.Anything, uint64(4), DefaultHistoryLimit).
			Return([]*entity.Transaction{{ID: 1}}, nil).Once()

		// Act
		txns, err := svc.History(ctx, entity.NewActor(4, entity.RoleUser), 4, 0)

		// Assert
		require.NoError(t, err)
		assert.Len(t, txns, 1)
	})

	t.Run("should hide other wallets", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.History(ctx, entity.NewActor(4, entity.RoleUser), 5, 10)

		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})
}

// racyUserRepository reads and writes the balance in separate steps, so only
// outside serialization keeps it correct
type racyUserRepository struct {
	persistence.UserRepository
	mu      sync.Mutex
	balance int64
}

func (r *racyUserRepository) AdjustBalance(ctx context.Context, id uint64, delta int64) (int64, error) {
	r.mu.Lock()
	current := r.balance
	r.mu.Unlock()

	time.Sleep(10 * time.Millisecond)

	if current+delta < 0 {
		return 0, errs.NewInsufficientFundsError(id, entity.AmountInCentsToString(-delta), entity.AmountInCentsToString(current))
	}

	r.mu.Lock()
	r.balance = current + delta
	r.mu.Unlock()
	return current + delta, nil
}

type recordingTransactionRepository struct {
	persistence.TransactionRepository
	mu   sync.Mutex
	rows []*entity.Transaction
}

func (r *recordingTransactionRepository) Create(ctx context.Context, tx *entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx.ID = uint64(len(r.rows) + 1)
	r.rows = append(r.rows, tx)
	return nil
}

func TestService_ConcurrentDebits(t *testing.T) {
	t.Run("should let exactly one of two overlapping debits through", func(t *testing.T) {
		// Arrange
		users := &racyUserRepository{balance: 10000}
		txns := &recordingTransactionRepository{}

		uow := persistencemocks.NewMockUnitOfWork(t)
		uow.On("Do", mock.Anything).Return(nil)
		uow.On("GetUserRepository", mock.Anything).Return(users)
		uow.On("GetTransactionRepository", mock.Anything).Return(txns)

		logger := coremocks.NewQuietLogger(t)
		serializer := NewSerializer(logger, 10)
		defer serializer.Shutdown()
		svc := NewLedgerService(uow, serializer, coremocks.NewFixedTimeProvider(t, fixedTime), logger, 0)

		// Act
		var wg sync.WaitGroup
		results := make(chan error, 2)
		for i := 0; i < 2; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := svc.AdjustBalance(context.Background(), usecase.AdjustRequest{
					UserID: 1, Amount: -6000, Type: entity.TypePurchase,
				})
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		// Assert
		var successes, rejected int
		for err := range results {
			switch {
			case err == nil:
				successes++
			case errors.Is(err, errs.ErrInsufficientFunds):
				rejected++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, successes)
		assert.Equal(t, 1, rejected)
		assert.Equal(t, int64(4000), users.balance)
		assert.Len(t, txns.rows, 1)
	})
}
