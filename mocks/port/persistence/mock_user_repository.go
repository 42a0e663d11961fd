package persistence

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock type for the UserRepository type
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []uint64) (map[uint64]*entity.User, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint64]*entity.User), args.Error(1)
}

func (m *MockUserRepository) LockPair(ctx context.Context, a, b uint64) (map[uint64]*entity.User, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uint64]*entity.User), args.Error(1)
}

func (m *MockUserRepository) Exists(ctx context.Context, id uint64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateSettings(ctx context.Context, id uint64, isPrivate, allowMessages bool) error {
	args := m.Called(ctx, id, isPrivate, allowMessages)
	return args.Error(0)
}

func (m *MockUserRepository) SetSubscription(ctx context.Context, id uint64, tier entity.Tier) (bool, error) {
	args := m.Called(ctx, id, tier)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) SetApproved(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) AdjustBalance(ctx context.Context, id uint64, delta int64) (int64, error) {
	args := m.Called(ctx, id, delta)
	return args.Get(0).(int64), args.Error(1)
}

// NewMockUserRepository creates a new instance of MockUserRepository and registers
// a cleanup function that asserts the mock's expectations.
func NewMockUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
