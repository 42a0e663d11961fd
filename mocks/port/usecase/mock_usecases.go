package usecase

import (
	"context"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

func register(t testingT, m *mock.Mock) {
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
}

func typed[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)
	return v
}

// MockLedgerUseCase is a mock type for the LedgerUseCase type
type MockLedgerUseCase struct {
	mock.Mock
}

// NewMockLedgerUseCase creates a MockLedgerUseCase that asserts its expectations on cleanup
func NewMockLedgerUseCase(t testingT) *MockLedgerUseCase {
	m := &MockLedgerUseCase{}
	register(t, &m.Mock)
	return m
}

func (m *MockLedgerUseCase) AdjustBalance(ctx context.Context, req usecase.AdjustRequest) (*entity.Transaction, error) {
	args := m.Called(ctx, req)
	return typed[*entity.Transaction](args, 0), args.Error(1)
}

func (m *MockLedgerUseCase) Post(ctx context.Context, req usecase.AdjustRequest) (*entity.Transaction, error) {
	args := m.Called(ctx, req)
	return typed[*entity.Transaction](args, 0), args.Error(1)
}

func (m *MockLedgerUseCase) Exclusive(ctx context.Context, userID uint64, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, userID, fn)
	return args.Error(0)
}

func (m *MockLedgerUseCase) AdminCredit(ctx context.Context, actor entity.Actor, userID uint64, amount int64) (*entity.Transaction, error) {
	args := m.Called(ctx, actor, userID, amount)
	return typed[*entity.Transaction](args, 0), args.Error(1)
}

func (m *MockLedgerUseCase) Transfer(ctx context.Context, actor entity.Actor, toUserID uint64, amount int64) (*usecase.TransferResult, error) {
	args := m.Called(ctx, actor, toUserID, amount)
	return typed[*usecase.TransferResult](args, 0), args.Error(1)
}

func (m *MockLedgerUseCase) History(ctx context.Context, actor entity.Actor, userID uint64, limit int) ([]*entity.Transaction, error) {
	args := m.Called(ctx, actor, userID, limit)
	return typed[[]*entity.Transaction](args, 0), args.Error(1)
}

func (m *MockLedgerUseCase) GetBalance(ctx context.Context, userID uint64) (int64, error) {
	args := m.Called(ctx, userID)
	return typed[int64](args, 0), args.Error(1)
}

// MockCommerceUseCase is a mock type for the CommerceUseCase type
type MockCommerceUseCase struct {
	mock.Mock
}

// NewMockCommerceUseCase creates a MockCommerceUseCase that asserts its expectations on cleanup
func NewMockCommerceUseCase(t testingT) *MockCommerceUseCase {
	m := &MockCommerceUseCase{}
	register(t, &m.Mock)
	return m
}

func (m *MockCommerceUseCase) Checkout(ctx context.Context, actor entity.Actor, cart *entity.Cart) (*usecase.CheckoutResult, error) {
	args := m.Called(ctx, actor, cart)
	return typed[*usecase.CheckoutResult](args, 0), args.Error(1)
}

func (m *MockCommerceUseCase) BuySubscription(ctx context.Context, actor entity.Actor, plan string) (*usecase.SubscriptionResult, error) {
	args := m.Called(ctx, actor, plan)
	return typed[*usecase.SubscriptionResult](args, 0), args.Error(1)
}

func (m *MockCommerceUseCase) CancelSubscription(ctx context.Context, actor entity.Actor) (*usecase.SubscriptionResult, error) {
	args := m.Called(ctx, actor)
	return typed[*usecase.SubscriptionResult](args, 0), args.Error(1)
}

func (m *MockCommerceUseCase) SetSubscription(ctx context.Context, actor entity.Actor, userID uint64, plan string) error {
	args := m.Called(ctx, actor, userID, plan)
	return args.Error(0)
}

func (m *MockCommerceUseCase) CreateProduct(ctx context.Context, actor entity.Actor, req entity.NewProduct) (*entity.Product, error) {
	args := m.Called(ctx, actor, req)
	return typed[*entity.Product](args, 0), args.Error(1)
}

func (m *MockCommerceUseCase) DeleteProduct(ctx context.Context, actor entity.Actor, productID uint64) error {
	args := m.Called(ctx, actor, productID)
	return args.Error(0)
}

func (m *MockCommerceUseCase) GetProduct(ctx context.Context, productID uint64) (*entity.Product, error) {
	args := m.Called(ctx, productID)
	return typed[*entity.Product](args, 0), args.Error(1)
}

func (m *MockCommerceUseCase) ListProducts(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	args := m.Called(ctx, limit, offset)
	return typed[[]*entity.Product](args, 0), args.Error(1)
}

func (m *MockCommerceUseCase) AddToCart(ctx context.Context, actor entity.Actor, productID uint64) error {
	args := m.Called(ctx, actor, productID)
	return args.Error(0)
}

func (m *MockCommerceUseCase) RemoveFromCart(ctx context.Context, actor entity.Actor, productID uint64) error {
	args := m.Called(ctx, actor, productID)
	return args.Error(0)
}

func (m *MockCommerceUseCase) GetCart(ctx context.Context, actor entity.Actor) (*usecase.CartView, error) {
	args := m.Called(ctx, actor)
	return typed[*usecase.CartView](args, 0), args.Error(1)
}

func (m *MockCommerceUseCase) ListPurchases(ctx context.Context, actor entity.Actor) ([]*entity.Purchase, error) {
	args := m.Called(ctx, actor)
	return typed[[]*entity.Purchase](args, 0), args.Error(1)
}

// MockSocialUseCase is a mock type for the SocialUseCase type
type MockSocialUseCase struct {
	mock.Mock
}

// NewMockSocialUseCase creates a MockSocialUseCase that asserts its expectations on cleanup
func NewMockSocialUseCase(t testingT) *MockSocialUseCase {
	m := &MockSocialUseCase{}
	register(t, &m.Mock)
	return m
}

func (m *MockSocialUseCase) SendFriendRequest(ctx context.Context, actor entity.Actor, targetID uint64) (*entity.Friendship, error) {
	args := m.Called(ctx, actor, targetID)
	return typed[*entity.Friendship](args, 0), args.Error(1)
}

func (m *MockSocialUseCase) AcceptFriendRequest(ctx context.Context, actor entity.Actor, requestID uint64) (*entity.Friendship, error) {
	args := m.Called(ctx, actor, requestID)
	return typed[*entity.Friendship](args, 0), args.Error(1)
}

func (m *MockSocialUseCase) RejectFriendRequest(ctx context.Context, actor entity.Actor, requestID uint64) error {
	return m.Called(ctx, actor, requestID).Error(0)
}

func (m *MockSocialUseCase) RemoveFriend(ctx context.Context, actor entity.Actor, otherID uint64) error {
	return m.Called(ctx, actor, otherID).Error(0)
}

func (m *MockSocialUseCase) Follow(ctx context.Context, actor entity.Actor, targetID uint64) (bool, error) {
	args := m.Called(ctx, actor, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialUseCase) Unfollow(ctx context.Context, actor entity.Actor, targetID uint64) error {
	return m.Called(ctx, actor, targetID).Error(0)
}

func (m *MockSocialUseCase) BlockUser(ctx context.Context, actor entity.Actor, targetID uint64) (bool, error) {
	args := m.Called(ctx, actor, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSocialUseCase) UnblockUser(ctx context.Context, actor entity.Actor, targetID uint64) error {
	return m.Called(ctx, actor, targetID).Error(0)
}

func (m *MockSocialUseCase) ListFriends(ctx context.Context, actor entity.Actor) ([]*entity.UserSummary, error) {
	args := m.Called(ctx, actor)
	return typed[[]*entity.UserSummary](args, 0), args.Error(1)
}

func (m *MockSocialUseCase) ListPendingRequests(ctx context.Context, actor entity.Actor) ([]*entity.FriendRequest, error) {
	args := m.Called(ctx, actor)
	return typed[[]*entity.FriendRequest](args, 0), args.Error(1)
}

func (m *MockSocialUseCase) ListFollowers(ctx context.Context, actor entity.Actor) ([]*entity.UserSummary, error) {
	args := m.Called(ctx, actor)
	return typed[[]*entity.UserSummary](args, 0), args.Error(1)
}

func (m *MockSocialUseCase) ListFollowing(ctx context.Context, actor entity.Actor) ([]*entity.UserSummary, error) {
	args := m.Called(ctx, actor)
	return typed[[]*entity.UserSummary](args, 0), args.Error(1)
}

func (m *MockSocialUseCase) ListBlocked(ctx context.Context, actor entity.Actor) ([]*entity.UserSummary, error) {
	args := m.Called(ctx, actor)
	return typed[[]*entity.UserSummary](args, 0), args.Error(1)
}

func (m *MockSocialUseCase) RelationshipStatus(ctx context.Context, actor entity.Actor, otherID uint64) (entity.RelationshipStatus, error) {
	args := m.Called(ctx, actor, otherID)
	return typed[entity.RelationshipStatus](args, 0), args.Error(1)
}

// MockWatchUseCase is a mock type for the WatchUseCase type
type MockWatchUseCase struct {
	mock.Mock
}

// NewMockWatchUseCase creates a MockWatchUseCase that asserts its expectations on cleanup
func NewMockWatchUseCase(t testingT) *MockWatchUseCase {
	m := &MockWatchUseCase{}
	register(t, &m.Mock)
	return m
}

func (m *MockWatchUseCase) CreateRoom(ctx context.Context, actor entity.Actor, req entity.NewRoom) (*entity.WatchRoom, error) {
	args := m.Called(ctx, actor, req)
	return typed[*entity.WatchRoom](args, 0), args.Error(1)
}

func (m *MockWatchUseCase) GetRoom(ctx context.Context, actor entity.Actor, roomID uint64) (*entity.WatchRoom, error) {
	args := m.Called(ctx, actor, roomID)
	return typed[*entity.WatchRoom](args, 0), args.Error(1)
}

func (m *MockWatchUseCase) ListRooms(ctx context.Context, actor entity.Actor) ([]*entity.WatchRoom, error) {
	args := m.Called(ctx, actor)
	return typed[[]*entity.WatchRoom](args, 0), args.Error(1)
}

func (m *MockWatchUseCase) JoinRoom(ctx context.Context, actor entity.Actor, roomID uint64) error {
	return m.Called(ctx, actor, roomID).Error(0)
}

func (m *MockWatchUseCase) LeaveRoom(ctx context.Context, actor entity.Actor, roomID uint64) error {
	return m.Called(ctx, actor, roomID).Error(0)
}

func (m *MockWatchUseCase) DeleteRoom(ctx context.Context, actor entity.Actor, roomID uint64) error {
	return m.Called(ctx, actor, roomID).Error(0)
}

func (m *MockWatchUseCase) Control(ctx context.Context, actor entity.Actor, roomID uint64, cmd entity.PlaybackCommand, at float64) (*entity.WatchRoom, error) {
	args := m.Called(ctx, actor, roomID, cmd, at)
	return typed[*entity.WatchRoom](args, 0), args.Error(1)
}

func (m *MockWatchUseCase) ListParticipants(ctx context.Context, actor entity.Actor, roomID uint64) ([]*entity.WatchParticipant, error) {
	args := m.Called(ctx, actor, roomID)
	return typed[[]*entity.WatchParticipant](args, 0), args.Error(1)
}

func (m *MockWatchUseCase) InviteToRoom(ctx context.Context, actor entity.Actor, roomID, friendID uint64) error {
	return m.Called(ctx, actor, roomID, friendID).Error(0)
}

// MockUserUseCase is a mock type for the UserUseCase type
type MockUserUseCase struct {
	mock.Mock
}

// NewMockUserUseCase creates a MockUserUseCase that asserts its expectations on cleanup
func NewMockUserUseCase(t testingT) *MockUserUseCase {
	m := &MockUserUseCase{}
	register(t, &m.Mock)
	return m
}

func (m *MockUserUseCase) GetUser(ctx context.Context, userID uint64) (*entity.User, error) {
	args := m.Called(ctx, userID)
	return typed[*entity.User](args, 0), args.Error(1)
}

func (m *MockUserUseCase) CreateUser(ctx context.Context, username, email, initialBalance string) (*entity.User, error) {
	args := m.Called(ctx, username, email, initialBalance)
	return typed[*entity.User](args, 0), args.Error(1)
}

func (m *MockUserUseCase) CreateDefaultUsers(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUserUseCase) UpdateSettings(ctx context.Context, actor entity.Actor, settings usecase.Settings) (*entity.User, error) {
	args := m.Called(ctx, actor, settings)
	return typed[*entity.User](args, 0), args.Error(1)
}

func (m *MockUserUseCase) ApproveUser(ctx context.Context, actor entity.Actor, userID uint64) error {
	return m.Called(ctx, actor, userID).Error(0)
}

func (m *MockUserUseCase) Touch(ctx context.Context, userID uint64) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockUserUseCase) GetPresence(ctx context.Context, userID uint64) (*usecase.Presence, error) {
	args := m.Called(ctx, userID)
	return typed[*usecase.Presence](args, 0), args.Error(1)
}

var (
	_ usecase.LedgerUseCase   = (*MockLedgerUseCase)(nil)
	_ usecase.CommerceUseCase = (*MockCommerceUseCase)(nil)
	_ usecase.SocialUseCase   = (*MockSocialUseCase)(nil)
	_ usecase.WatchUseCase    = (*MockWatchUseCase)(nil)
	_ usecase.UserUseCase     = (*MockUserUseCase)(nil)
)
