package persistence

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockFriendshipRepository is a mock type for the FriendshipRepository type
type MockFriendshipRepository struct {
	mock.Mock
}

func (m *MockFriendshipRepository) GetByID(ctx context.Context, id uint64) (*entity.Friendship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Friendship), args.Error(1)
}

func (m *MockFriendshipRepository) FindBetween(ctx context.Context, a, b uint64) (*entity.Friendship, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Friendship), args.Error(1)
}

func (m *MockFriendshipRepository) Create(ctx context.Context, friendship *entity.Friendship) (bool, error) {
	args := m.Called(ctx, friendship)
	return args.Bool(0), args.Error(1)
}

func (m *MockFriendshipRepository) Accept(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFriendshipRepository) DeletePending(ctx context.Context, id uint64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockFriendshipRepository) DeleteBetween(ctx context.Context, a, b uint64) (int64, error) {
	args := m.Called(ctx, a, b)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFriendshipRepository) ListFriends(ctx context.Context, userID uint64) ([]*entity.UserSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.UserSummary), args.Error(1)
}

func (m *MockFriendshipRepository) ListIncoming(ctx context.Context, userID uint64) ([]*entity.FriendRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.FriendRequest), args.Error(1)
}

func (m *MockFriendshipRepository) AreFriends(ctx context.Context, a, b uint64) (bool, error) {
	args := m.Called(ctx, a, b)
	return args.Bool(0), args.Error(1)
}

// NewMockFriendshipRepository creates a MockFriendshipRepository that asserts its expectations on cleanup
func NewMockFriendshipRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFriendshipRepository {
	m := &MockFriendshipRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockFollowerRepository is a mock type for the FollowerRepository type
type MockFollowerRepository struct {
	mock.Mock
}

func (m *MockFollowerRepository) Create(ctx context.Context, followerID, followingID uint64) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowerRepository) Delete(ctx context.Context, followerID, followingID uint64) (bool, error) {
	args := m.Called(ctx, followerID, followingID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowerRepository) DeleteBetween(ctx context.Context, a, b uint64) (int64, error) {
	args := m.Called(ctx, a, b)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFollowerRepository) ListFollowers(ctx context.Context, userID uint64) ([]*entity.UserSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.UserSummary), args.Error(1)
}

func (m *MockFollowerRepository) ListFollowing(ctx context.Context, userID uint64) ([]*entity.UserSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.UserSummary), args.Error(1)
}

// NewMockFollowerRepository creates a MockFollowerRepository that asserts its expectations on cleanup
func NewMockFollowerRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFollowerRepository {
	m := &MockFollowerRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockBlockRepository is a mock type for the BlockRepository type
type MockBlockRepository struct {
	mock.Mock
}

func (m *MockBlockRepository) Create(ctx context.Context, userID, blockedUserID uint64) (bool, error) {
	args := m.Called(ctx, userID, blockedUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlockRepository) Delete(ctx context.Context, userID, blockedUserID uint64) (bool, error) {
	args := m.Called(ctx, userID, blockedUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlockRepository) IsBlockedEither(ctx context.Context, a, b uint64) (bool, error) {
	args := m.Called(ctx, a, b)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlockRepository) ListBlocked(ctx context.Context, userID uint64) ([]*entity.UserSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.UserSummary), args.Error(1)
}

// NewMockBlockRepository creates a MockBlockRepository that asserts its expectations on cleanup
func NewMockBlockRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBlockRepository {
	m := &MockBlockRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
