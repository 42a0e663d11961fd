package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/api/middleware"
	coremocks "github.com/amirhossein-jamali/socialhub/mocks/port/core"
	usecasemocks "github.com/amirhossein-jamali/socialhub/mocks/port/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	alice = entity.NewActor(1, entity.RoleUser)
	admin = entity.NewActor(99, entity.RoleAdmin)
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newRouter authenticates every request as the given actor
func newRouter(as entity.Actor) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetActor(c, as)
		c.Next()
	})
	return r
}

func perform(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestStatusFor(t *testing.T) {
	testCases := []struct {
		err    error
		status int
	}{
		{errs.ErrInsufficientFunds, http.StatusPaymentRequired},
		{errs.ErrAlreadySubscribed, http.StatusConflict},
		{errs.ErrRoomInactive, http.StatusConflict},
		{errs.ErrUnauthorized, http.StatusForbidden},
		{errs.ErrProductLimitExceeded, http.StatusForbidden},
		{errs.ErrUserBlocked, http.StatusForbidden},
		{errs.ErrRoomNotFound, http.StatusNotFound},
		{fmt.Errorf("loading: %w", errs.ErrUserNotFound), http.StatusNotFound},
		{errs.ErrConstraintViolation, http.StatusConflict},
		{errs.ErrInvalidPlan, http.StatusBadRequest},
		{errs.ErrSelfRelation, http.StatusBadRequest},
		{errs.ErrDatabaseConnection, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			assert.Equal(t, tc.status, statusFor(tc.err))
		})
	}
}

func TestWalletHandler(t *testing.T) {
	t.Run("should return the balance as a decimal string", func(t *testing.T) {
		ledger := usecasemocks.NewMockLedgerUseCase(t)
		ledger.On("GetBalance", mock.Anything, uint64(1)).Return(int64(1050), nil)

		h := NewWalletHandler(ledger, coremocks.NewQuietLogger(t))
		r := newRouter(alice)
		r.GET("/wallet", h.GetBalance)

		w := perform(r, http.MethodGet, "/wallet", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.BalanceResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "10.50", resp.Balance)
		assert.Equal(t, uint64(1), resp.UserID)
	})

	t.Run("should map insufficient funds to payment required", func(t *testing.T) {
		ledger := usecasemocks.NewMockLedgerUseCase(t)
		ledger.On("Transfer", mock.Anything, alice, uint64(2), int64(500)).
			Return(nil, errs.ErrInsufficientFunds)

		h := NewWalletHandler(ledger, coremocks.NewQuietLogger(t))
		r := newRouter(alice)
		r.POST("/wallet/transfer", h.Transfer)

		w := perform(r, http.MethodPost, "/wallet/transfer", dto.TransferRequest{ToUserID: 2, Amount: "5.00"})
		assert.Equal(t, http.StatusPaymentRequired, w.Code)
		assert.Equal(t, errs.CodeInsufficientFunds, decodeError(t, w).Code)
	})

	t.Run("should reject malformed amounts before reaching the ledger", func(t *testing.T) {
		ledger := usecasemocks.NewMockLedgerUseCase(t)

		h := NewWalletHandler(ledger, coremocks.NewQuietLogger(t))
		r := newRouter(alice)
		r.POST("/wallet/transfer", h.Transfer)

		for _, amount := range []string{"abc", "-1", "0", "1.001"} {
			w := perform(r, http.MethodPost, "/wallet/transfer", dto.TransferRequest{ToUserID: 2, Amount: amount})
			assert.Equal(t, http.StatusBadRequest, w.Code, amount)
		}
	})

	t.Run("should return both legs of a transfer", func(t *testing.T) {
		now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		debit, err := entity.NewTransaction(1, entity.TypeTransferOut, -250, 750, "Transfer to user 2", now)
		require.NoError(t, err)
		credit, err := entity.NewTransaction(2, entity.TypeTransferIn, 250, 250, "Transfer from user 1", now)
		require.NoError(t, err)

		ledger := usecasemocks.NewMockLedgerUseCase(t)
		ledger.On("Transfer", mock.Anything, alice, uint64(2), int64(250)).
			Return(&usecase.TransferResult{Debit: debit, Credit: credit}, nil)

		h := NewWalletHandler(ledger, coremocks.NewQuietLogger(t))
		r := newRouter(alice)
		r.POST("/wallet/transfer", h.Transfer)

		w := perform(r, http.MethodPost, "/wallet/transfer", dto.TransferRequest{ToUserID: 2, Amount: "2.50"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.TransferResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "-2.50", resp.Debit.Amount)
		assert.Equal(t, "7.50", resp.Debit.BalanceAfter)
		assert.Equal(t, "2.50", resp.Credit.Amount)
	})

	t.Run("should reject a non numeric user id on credit", func(t *testing.T) {
		ledger := usecasemocks.NewMockLedgerUseCase(t)

		h := NewWalletHandler(ledger, coremocks.NewQuietLogger(t))
		r := newRouter(admin)
		r.POST("/admin/users/:userId/credit", h.Credit)

		w := perform(r, http.MethodPost, "/admin/users/abc/credit", dto.AmountRequest{Amount: "1.00"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, errs.CodeInvalidUserID, decodeError(t, w).Code)
	})
}

func TestSocialHandler(t *testing.T) {
	t.Run("should report an unchanged follow edge", func(t *testing.T) {
		social := usecasemocks.NewMockSocialUseCase(t)
		social.On("Follow", mock.Anything, alice, uint64(2)).Return(false, nil)

		h := NewSocialHandler(social, coremocks.NewQuietLogger(t))
		r := newRouter(alice)
		r.POST("/follows/:userId", h.Follow)

		w := perform(r, http.MethodPost, "/follows/2", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.EdgeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Changed)
	})

	t.Run("should forbid friend requests between blocked users", func(t *testing.T) {
		social := usecasemocks.NewMockSocialUseCase(t)
		social.On("SendFriendRequest", mock.Anything, alice, uint64(3)).Return(nil, errs.ErrUserBlocked)

		h := NewSocialHandler(social, coremocks.NewQuietLogger(t))
		r := newRouter(alice)
		r.POST("/friends/requests", h.SendFriendRequest)

		w := perform(r, http.MethodPost, "/friends/requests", dto.TargetUserRequest{UserID: 3})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, errs.CodeUserBlocked, decodeError(t, w).Code)
	})

	t.Run("should return the relationship status", func(t *testing.T) {
		social := usecasemocks.NewMockSocialUseCase(t)
		social.On("RelationshipStatus", mock.Anything, alice, uint64(2)).
			Return(entity.RelationshipPendingSent, nil)

		h := NewSocialHandler(social, coremocks.NewQuietLogger(t))
		r := newRouter(alice)
		r.GET("/users/:userId/relationship", h.Relationship)

		w := perform(r, http.MethodGet, "/users/2/relationship", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.RelationshipResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, string(entity.RelationshipPendingSent), resp.Status)
	})

	t.Run("should answer rejecting a missing request with not found", func(t *testing.T) {
		social := usecasemocks.NewMockSocialUseCase(t)
		social.On("RejectFriendRequest", mock.Anything, alice, uint64(7)).Return(errs.ErrFriendRequestNotFound)

		h := NewSocialHandler(social, coremocks.NewQuietLogger(t))
		r := newRouter(alice)
		r.DELETE("/friends/requests/:requestId", h.RejectFriendRequest)

		w := perform(r, http.MethodDelete, "/friends/requests/7", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestWatchHandler(t *testing.T) {
	t.Run("should pass the playback command and position through", func(t *testing.T) {
		room := entity.NewWatchRoom(1, "movie night", "abc", false, time.Now())
		room.ID = 5
		require.NoError(t, room.Apply(entity.CommandSeek, 42.5))

		watch := usecasemocks.NewMockWatchUseCase(t)
		watch.On("Control", mock.Anything, alice, uint64(5), entity.CommandSeek, 42.5).Return(room, nil)

		h := NewWatchHandler(watch, coremocks.NewQuietLogger(t))
		r := newRouter(alice)
		r.POST("/rooms/:roomId/seek", h.Seek)

		w := perform(r, http.MethodPost, "/rooms/5/seek", map[string]any{"time": 42.5})
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.RoomResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 42.5, resp.CurrentTime)
		assert.Equal(t, uint64(5), resp.ID)
	})

	t.Run("should accept a zero position", func(t *testing.T) {
		room := entity.NewWatchRoom(1, "", "abc", false, time.Now())

		watch := usecasemocks.NewMockWatchUseCase(t)
		watch.On("Control", mock.Anything, alice, uint64(5), entity.CommandPlay, 0.0).Return(room, nil)

		h := NewWatchHandler(watch, coremocks.NewQuietLogger(t))
		r := newRouter(alice)
		r.POST("/rooms/:roomId/play", h.Play)

		w := perform(r, http.MethodPost, "/rooms/5/play", map[string]any{"time": 0})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("should require a position", func(t *testing.T) {
		watch := usecasemocks.NewMockWatchUseCase(t)

		h := NewWatchHandler(watch, coremocks.NewQuietLogger(t))
		r := newRouter(alice)
		r.POST("/rooms/:roomId/pause", h.Pause)

		w := perform(r, http.MethodPost, "/rooms/5/pause", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should map an inactive room to conflict", func(t *testing.T) {
		watch := usecasemocks.NewMockWatchUseCase(t)
		watch.On("JoinRoom", mock.Anything, alice, uint64(5)).Return(errs.ErrRoomInactive)

		h := NewWatchHandler(watch, coremocks.NewQuietLogger(t))
		r := newRouter(alice)
		r.POST("/rooms/:roomId/join", h.JoinRoom)

		w := perform(r, http.MethodPost, "/rooms/5/join", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, errs.CodeRoomInactive, decodeError(t, w).Code)
	})
}

func TestUserHandler(t *testing.T) {
	bob := &entity.User{ID: 2, Username: "bob", Subscription: entity.TierBasic, AllowMessages: true}
	bob.SetBalance(1200)

	t.Run("should hide the balance of other users", func(t *testing.T) {
		users := usecasemocks.NewMockUserUseCase(t)
		users.On("GetUser", mock.Anything, uint64(2)).Return(bob, nil)

		h := NewUserHandler(users, coremocks.NewQuietLogger(t))
		r := newRouter(alice)
		r.GET("/users/:userId", h.GetUser)

		w := perform(r, http.MethodGet, "/users/2", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "bob", resp.Username)
		assert.Empty(t, resp.Balance)
	})

	t.Run("should show the balance to admins", func(t *testing.T) {
		users := usecasemocks.NewMockUserUseCase(t)
		users.On("GetUser", mock.Anything, uint64(2)).Return(bob, nil)

		h := NewUserHandler(users, coremocks.NewQuietLogger(t))
		r := newRouter(admin)
		r.GET("/users/:userId", h.GetUser)

		w := perform(r, http.MethodGet, "/users/2", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "12.00", resp.Balance)
	})

	t.Run("should keep unspecified settings", func(t *testing.T) {
		current := &entity.User{ID: 1, Username: "alice", AllowMessages: true}
		updated := &entity.User{ID: 1, Username: "alice", AllowMessages: true, IsPrivate: true}

		users := usecasemocks.NewMockUserUseCase(t)
		users.On("GetUser", mock.Anything, uint64(1)).Return(current, nil)
		users.On("UpdateSettings", mock.Anything, alice, usecase.Settings{IsPrivate: true, AllowMessages: true}).
			Return(updated, nil)

		h := NewUserHandler(users, coremocks.NewQuietLogger(t))
		r := newRouter(alice)
		r.PUT("/me/settings", h.UpdateSettings)

		w := perform(r, http.MethodPut, "/me/settings", map[string]any{"isPrivate": true})
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.IsPrivate)
		assert.True(t, resp.AllowMessages)
	})

	t.Run("should forbid approval by regular users", func(t *testing.T) {
		users := usecasemocks.NewMockUserUseCase(t)
		users.On("ApproveUser", mock.Anything, alice, uint64(2)).Return(errs.ErrUnauthorized)

		h := NewUserHandler(users, coremocks.NewQuietLogger(t))
		r := newRouter(alice)
		r.POST("/admin/users/:userId/approve", h.ApproveUser)

		w := perform(r, http.MethodPost, "/admin/users/2/approve", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthHandler(t *testing.T) {
	t.Run("should report ok when the database answers", func(t *testing.T) {
		r := gin.New()
		r.GET("/health", NewHealthHandler(stubPinger{}, coremocks.NewQuietLogger(t)).Health)

		w := perform(r, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("should report degraded when the database is down", func(t *testing.T) {
		r := gin.New()
		r.GET("/health", NewHealthHandler(stubPinger{err: errors.New("refused")}, coremocks.NewQuietLogger(t)).Health)

		w := perform(r, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		var resp dto.HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "degraded", resp.Status)
	})
}
