package core

import (
	"context"
	"time"

	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/stretchr/testify/mock"
)

// MockTimeProvider is a mock type for the TimeProvider type
type MockTimeProvider struct {
	mock.Mock
}

func (m *MockTimeProvider) Now() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}

func (m *MockTimeProvider) Since(t time.Time) coreport.Duration {
	args := m.Called(t)
	if fn, ok := args.Get(0).(func(time.Time) coreport.Duration); ok {
		return fn(t)
	}
	return args.Get(0).(coreport.Duration)
}

func (m *MockTimeProvider) Sleep(d coreport.Duration) {
	m.Called(d)
}

func (m *MockTimeProvider) WithTimeout(ctx context.Context, timeout coreport.Duration) (context.Context, context.CancelFunc) {
	args := m.Called(ctx, timeout)
	if fn, ok := args.Get(0).(func(context.Context, coreport.Duration) (context.Context, context.CancelFunc)); ok {
		return fn(ctx, timeout)
	}
	return args.Get(0).(context.Context), args.Get(1).(context.CancelFunc)
}

// NewMockTimeProvider creates a new instance of MockTimeProvider and registers
// a cleanup function that asserts the mock's expectations.
func NewMockTimeProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTimeProvider {
	m := &MockTimeProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// NewFixedTimeProvider returns a MockTimeProvider frozen at now
func NewFixedTimeProvider(t interface {
	mock.TestingT
	Cleanup(func())
}, now time.Time) *MockTimeProvider {
	m := NewMockTimeProvider(t)
	m.On("Now").Return(now).Maybe()
	m.On("Since", mock.Anything).Return(func(ts time.Time) coreport.Duration {
		return coreport.Duration(now.Sub(ts))
	}).Maybe()
	return m
}
