package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/api/middleware"
	coremocks "github.com/amirhossein-jamali/socialhub/mocks/port/core"
	usecasemocks "github.com/amirhossein-jamali/socialhub/mocks/port/usecase"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type fixture struct {
	router *gin.Engine
	tokens *middleware.TokenService
	ledger *usecasemocks.MockLedgerUseCase
	users  *usecasemocks.MockUserUseCase
}

func newFixture(t *testing.T) *fixture {
	gin.SetMode(gin.TestMode)

	log := coremocks.NewQuietLogger(t)
	tp := coremocks.NewFixedTimeProvider(t, time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC))
	ledger := usecasemocks.NewMockLedgerUseCase(t)
	commerce := usecasemocks.NewMockCommerceUseCase(t)
	social := usecasemocks.NewMockSocialUseCase(t)
	watch := usecasemocks.NewMockWatchUseCase(t)
	users := usecasemocks.NewMockUserUseCase(t)
	tokens := middleware.NewTokenService("routes-secret", time.Hour, tp)

	router := gin.New()
	SetupMiddlewares(router, log, tp)
	SetupRoutes(router, Handlers{
		Wallet:   handler.NewWalletHandler(ledger, log),
		Commerce: handler.NewCommerceHandler(commerce, log),
		Social:   handler.NewSocialHandler(social, log),
		Watch:    handler.NewWatchHandler(watch, log),
		User:     handler.NewUserHandler(users, log),
		Health:   handler.NewHealthHandler(okPinger{}, log),
	}, Dependencies{Tokens: tokens, Users: users, Logger: log})

	return &fixture{router: router, tokens: tokens, ledger: ledger, users: users}
}

func (f *fixture) do(t *testing.T, method, path string, as *entity.Actor) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if as != nil {
		token, err := f.tokens.Issue(as.UserID, as.Role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestRoutes(t *testing.T) {
	t.Run("should serve health without a token", func(t *testing.T) {
		f := newFixture(t)

		w := f.do(t, http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("should reject api calls without a token", func(t *testing.T) {
		f := newFixture(t)

		w := f.do(t, http.MethodGet, "/api/v1/wallet", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should route an authenticated call and record presence", func(t *testing.T) {
		f := newFixture(t)
		alice := entity.NewActor(7, entity.RoleUser)
		f.ledger.On("GetBalance", mock.Anything, uint64(7)).Return(int64(500), nil)
		f.users.On("Touch", mock.Anything, uint64(7)).Return(nil).Once()

		w := f.do(t, http.MethodGet, "/api/v1/wallet", &alice)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"balance":"5.00"`)
	})

	t.Run("should keep regular users out of admin routes", func(t *testing.T) {
		f := newFixture(t)
		alice := entity.NewActor(7, entity.RoleUser)
		f.users.On("Touch", mock.Anything, uint64(7)).Return(nil).Once()

		w := f.do(t, http.MethodDelete, "/api/v1/admin/rooms/3", &alice)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
