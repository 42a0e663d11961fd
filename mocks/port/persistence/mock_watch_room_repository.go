package persistence

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockWatchRoomRepository is a mock type for the WatchRoomRepository type
type MockWatchRoomRepository struct {
	mock.Mock
}

func (m *MockWatchRoomRepository) Create(ctx context.Context, room *entity.WatchRoom) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockWatchRoomRepository) GetByID(ctx context.Context, id uint64) (*entity.WatchRoom, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WatchRoom), args.Error(1)
}

func (m *MockWatchRoomRepository) LockByID(ctx context.Context, id uint64) (*entity.WatchRoom, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WatchRoom), args.Error(1)
}

func (m *MockWatchRoomRepository) UpdatePlayback(ctx context.Context, id uint64, at float64, isPlaying *bool) (bool, error) {
	args := m.Called(ctx, id, at, isPlaying)
	return args.Bool(0), args.Error(1)
}

func (m *MockWatchRoomRepository) Deactivate(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWatchRoomRepository) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWatchRoomRepository) ListVisible(ctx context.Context, userID uint64) ([]*entity.WatchRoom, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.WatchRoom), args.Error(1)
}

func (m *MockWatchRoomRepository) AddParticipant(ctx context.Context, roomID, userID uint64) (bool, error) {
	args := m.Called(ctx, roomID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWatchRoomRepository) RemoveParticipant(ctx context.Context, roomID, userID uint64) (bool, error) {
	args := m.Called(ctx, roomID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWatchRoomRepository) RemoveAllParticipants(ctx context.Context, roomID uint64) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

func (m *MockWatchRoomRepository) IsParticipant(ctx context.Context, roomID, userID uint64) (bool, error) {
	args := m.Called(ctx, roomID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWatchRoomRepository) ListParticipants(ctx context.Context, roomID uint64) ([]*entity.WatchParticipant, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.WatchParticipant), args.Error(1)
}

// NewMockWatchRoomRepository creates a MockWatchRoomRepository that asserts its expectations on cleanup
func NewMockWatchRoomRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWatchRoomRepository {
	m := &MockWatchRoomRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
