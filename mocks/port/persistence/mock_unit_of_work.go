package persistence

import (
	"context"

	persistenceport "github.com/amirhossein-jamali/socialhub/internal/domain/port/persistence"
	"github.com/stretchr/testify/mock"
)

// MockUnitOfWork is a mock type for the UnitOfWork type
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Do records the call and runs fn unless the expectation returns an error
func (m *MockUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

func (m *MockUnitOfWork) GetUserRepository(ctx context.Context) persistenceport.UserRepository {
	return m.Called(ctx).Get(0).(persistenceport.UserRepository)
}

func (m *MockUnitOfWork) GetTransactionRepository(ctx context.Context) persistenceport.TransactionRepository {
	return m.Called(ctx).Get(0).(persistenceport.TransactionRepository)
}

func (m *MockUnitOfWork) GetProductRepository(ctx context.Context) persistenceport.ProductRepository {
	return m.Called(ctx).Get(0).(persistenceport.ProductRepository)
}

func (m *MockUnitOfWork) GetPurchaseRepository(ctx context.Context) persistenceport.PurchaseRepository {
	return m.Called(ctx).Get(0).(persistenceport.PurchaseRepository)
}

func (m *MockUnitOfWork) GetCartRepository(ctx context.Context) persistenceport.CartRepository {
	return m.Called(ctx).Get(0).(persistenceport.CartRepository)
}

func (m *MockUnitOfWork) GetFriendshipRepository(ctx context.Context) persistenceport.FriendshipRepository {
	return m.Called(ctx).Get(0).(persistenceport.FriendshipRepository)
}

func (m *MockUnitOfWork) GetFollowerRepository(ctx context.Context) persistenceport.FollowerRepository {
	return m.Called(ctx).Get(0).(persistenceport.FollowerRepository)
}

func (m *MockUnitOfWork) GetBlockRepository(ctx context.Context) persistenceport.BlockRepository {
	return m.Called(ctx).Get(0).(persistenceport.BlockRepository)
}

func (m *MockUnitOfWork) GetWatchRoomRepository(ctx context.Context) persistenceport.WatchRoomRepository {
	return m.Called(ctx).Get(0).(persistenceport.WatchRoomRepository)
}

// NewMockUnitOfWork creates a new instance of MockUnitOfWork and registers
// a cleanup function that asserts the mock's expectations.
func NewMockUnitOfWork(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUnitOfWork {
	m := &MockUnitOfWork{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Repositories groups one mock per repository port
type Repositories struct {
	Users        *MockUserRepository
	Transactions *MockTransactionRepository
	Products     *MockProductRepository
	Purchases    *MockPurchaseRepository
	Carts        *MockCartRepository
	Friendships  *MockFriendshipRepository
	Followers    *MockFollowerRepository
	Blocks       *MockBlockRepository
	Rooms        *MockWatchRoomRepository
}

// NewMockUnitOfWorkWithRepositories returns a unit of work whose Do runs its
// callback directly and whose getters hand out the returned repository mocks
func NewMockUnitOfWorkWithRepositories(t interface {
	mock.TestingT
	Cleanup(func())
}) (*MockUnitOfWork, *Repositories) {
	repos := &Repositories{
		Users:        NewMockUserRepository(t),
		Transactions: NewMockTransactionRepository(t),
		Products:     NewMockProductRepository(t),
		Purchases:    NewMockPurchaseRepository(t),
		Carts:        NewMockCartRepository(t),
		Friendships:  NewMockFriendshipRepository(t),
		Followers:    NewMockFollowerRepository(t),
		Blocks:       NewMockBlockRepository(t),
		Rooms:        NewMockWatchRoomRepository(t),
	}

	uow := NewMockUnitOfWork(t)
	uow.On("Do", mock.Anything).Return(nil).Maybe()
	uow.On("GetUserRepository", mock.Anything).Return(repos.Users).Maybe()
	uow.On("GetTransactionRepository", mock.Anything).Return(repos.Transactions).Maybe()
	uow.On("GetProductRepository", mock.Anything).Return(repos.Products).Maybe()
	uow.On("GetPurchaseRepository", mock.Anything).Return(repos.Purchases).Maybe()
	uow.On("GetCartRepository", mock.Anything).Return(repos.Carts).Maybe()
	uow.On("GetFriendshipRepository", mock.Anything).Return(repos.Friendships).Maybe()
	uow.On("GetFollowerRepository", mock.Anything).Return(repos.Followers).Maybe()
	uow.On("GetBlockRepository", mock.Anything).Return(repos.Blocks).Maybe()
	uow.On("GetWatchRoomRepository", mock.Anything).Return(repos.Rooms).Maybe()

	return uow, repos
}
