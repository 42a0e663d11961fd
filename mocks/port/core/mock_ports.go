package core

import (
	"context"
	"io"
	"time"

	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/stretchr/testify/mock"
)

// MockFileStorage is a mock type for the FileStorage type
type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Upload(ctx context.Context, category, filename, contentType string, content io.Reader) (string, error) {
	args := m.Called(ctx, category, filename, contentType, content)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Delete(ctx context.Context, url string) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

// NewMockFileStorage creates a MockFileStorage that asserts its expectations on cleanup
func NewMockFileStorage(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockFileStorage {
	m := &MockFileStorage{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockNotifier is a mock type for the Notifier type
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, notification coreport.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

// NewMockNotifier creates a MockNotifier that asserts its expectations on cleanup
func NewMockNotifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNotifier {
	m := &MockNotifier{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// MockPresenceTracker is a mock type for the PresenceTracker type
type MockPresenceTracker struct {
	mock.Mock
}

func (m *MockPresenceTracker) Touch(ctx context.Context, userID uint64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockPresenceTracker) LastSeen(ctx context.Context, userID uint64) (time.Time, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(time.Time), args.Error(1)
}

// NewMockPresenceTracker creates a MockPresenceTracker that asserts its expectations on cleanup
func NewMockPresenceTracker(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPresenceTracker {
	m := &MockPresenceTracker{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
