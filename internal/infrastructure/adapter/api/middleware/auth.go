package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// actorKey is the gin context key holding the authenticated entity.Actor
const actorKey = "actor"

// Claims are the bearer token claims
type Claims struct {
	UserID uint64 `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 bearer tokens
type TokenService struct {
	secret       []byte
	ttl          time.Duration
	timeProvider coreport.TimeProvider
}

// NewTokenService creates a token service
func NewTokenService(secret string, ttl time.Duration, timeProvider coreport.TimeProvider) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, timeProvider: timeProvider}
}

// Issue signs a token for the user
func (s *TokenService) Issue(userID uint64, role entity.Role) (string, error) {
	now := s.timeProvider.Now()
	claims := Claims{
		UserID: userID,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse verifies the token and returns the actor it names
func (s *TokenService) Parse(tokenString string) (entity.Actor, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.timeProvider.Now),
	)
	if err != nil {
		return entity.Actor{}, err
	}
	if claims.UserID == 0 {
		return entity.Actor{}, errors.New("token has no user_id claim")
	}
	return entity.NewActor(claims.UserID, entity.Role(claims.Role)), nil
}

// Auth rejects requests without a valid bearer token and stores the actor
func Auth(tokens *TokenService, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    errs.ErrorCode(errs.ErrUnauthorized),
				Message: "Missing bearer token",
			})
			return
		}

		actor, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			logger.Debug("Rejected bearer token", map[string]any{
				"error":      err.Error(),
				"request_id": RequestID(c),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    errs.ErrorCode(errs.ErrUnauthorized),
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireAdmin rejects authenticated callers without the admin role
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok || !actor.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Code:    errs.ErrorCode(errs.ErrUnauthorized),
				Message: "Admin role required",
			})
			return
		}
		c.Next()
	}
}

// ActorFrom returns the actor stored by Auth
func ActorFrom(c *gin.Context) (entity.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return entity.Actor{}, false
	}
	actor, ok := v.(entity.Actor)
	return actor, ok
}

// SetActor stores an actor, for tests that bypass token parsing
func SetActor(c *gin.Context, actor entity.Actor) {
	c.Set(actorKey, actor)
}
