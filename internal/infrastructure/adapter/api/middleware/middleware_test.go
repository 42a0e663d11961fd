package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	coremocks "github.com/amirhossein-jamali/socialhub/mocks/port/core"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var fixedNow = time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

func newTokens(t *testing.T) *TokenService {
	return NewTokenService("test-secret", time.Hour, coremocks.NewFixedTimeProvider(t, fixedNow))
}

func perform(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTokenService(t *testing.T) {
	tokens := newTokens(t)

	t.Run("should round trip the actor", func(t *testing.T) {
		token, err := tokens.Issue(7, entity.RoleAdmin)
		require.NoError(t, err)

		actor, err := tokens.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, entity.NewActor(7, entity.RoleAdmin), actor)
	})

	t.Run("should reject tokens signed with another secret", func(t *testing.T) {
		other := NewTokenService("other-secret", time.Hour, coremocks.NewFixedTimeProvider(t, fixedNow))
		token, err := other.Issue(7, entity.RoleUser)
		require.NoError(t, err)

		_, err = tokens.Parse(token)
		assert.Error(t, err)
	})

	t.Run("should reject expired tokens", func(t *testing.T) {
		issuer := NewTokenService("test-secret", time.Hour, coremocks.NewFixedTimeProvider(t, fixedNow.Add(-2*time.Hour)))
		token, err := issuer.Issue(7, entity.RoleUser)
		require.NoError(t, err)

		_, err = tokens.Parse(token)
		assert.Error(t, err)
	})

	t.Run("should downgrade unknown roles", func(t *testing.T) {
		token, err := tokens.Issue(9, "owner")
		require.NoError(t, err)

		actor, err := tokens.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, entity.RoleUser, actor.Role)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tokens := newTokens(t)
	router := gin.New()
	router.Use(Auth(tokens, coremocks.NewQuietLogger(t)))
	router.GET("/me", func(c *gin.Context) {
		actor, _ := ActorFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": actor.UserID})
	})
	router.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	userToken, err := tokens.Issue(3, entity.RoleUser)
	require.NoError(t, err)
	adminToken, err := tokens.Issue(1, entity.RoleAdmin)
	require.NoError(t, err)

	t.Run("should reject missing tokens", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should reject malformed tokens", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should expose the actor", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + userToken})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":3}`, w.Body.String())
	})

	t.Run("should guard admin routes", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer " + userToken})
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = perform(router, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer " + adminToken})
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, coreport.RequestIDFromContext(c.Request.Context()))
	})

	w := perform(router, http.MethodGet, "/", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())

	w = perform(router, http.MethodGet, "/", nil)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	assert.Equal(t, w.Header().Get(RequestIDHeader), w.Body.String())
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	logger := coremocks.NewMockLogger(t)
	logger.On("Error", "Panic recovered in API request", mock.MatchedBy(func(fields map[string]any) bool {
		return fields["error"] == "kaboom"
	})).Once()

	router := gin.New()
	router.Use(ErrorHandler(logger))
	router.GET("/", func(c *gin.Context) { panic("kaboom") })

	w := perform(router, http.MethodGet, "/", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":5000,"message":"Internal server error"}`, w.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	router := gin.New()
	router.Use(CORS())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(router, http.MethodOptions, "/", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPresenceTouchesAuthenticatedCallers(t *testing.T) {
	tracker := coremocks.NewMockPresenceTracker(t)
	tracker.On("Touch", mock.Anything, uint64(5)).Return(nil).Once()

	router := gin.New()
	router.Use(func(c *gin.Context) { SetActor(c, entity.NewActor(5, entity.RoleUser)) })
	router.Use(Presence(tracker, coremocks.NewMockLogger(t)))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	logger := coremocks.NewMockLogger(t)
	logger.On("Warn", "Rate limit check failed", mock.Anything).Once()

	router := gin.New()
	router.Use(RateLimit(client, 1, time.Minute, logger))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
