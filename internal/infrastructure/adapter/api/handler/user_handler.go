package handler

import (
	"context"
	"net/http"

	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userUseCase usecase.UserUseCase
	logger      coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(userUseCase usecase.UserUseCase, logger coreport.Logger) *UserHandler {
	return &UserHandler{userUseCase: userUseCase, logger: logger}
}

// GetUser handles GET /users/:userId
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := idParam(c, "userId", errs.ErrInvalidUserID)
	if !ok {
		return
	}
	user, err := h.userUseCase.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, "get_user", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user, actor(c).CanManage(user.ID)))
}

// UpdateSettings handles PUT /me/settings
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	var req dto.SettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, errs.ErrInvalidRequest, "Invalid request format: "+err.Error())
		return
	}

	a := actor(c)
	current, err := h.userUseCase.GetUser(c.Request.Context(), a.UserID)
	if err != nil {
		respondError(c, h.logger, "update_settings", err)
		return
	}
	settings := usecase.Settings{IsPrivate: current.IsPrivate, AllowMessages: current.AllowMessages}
	if req.IsPrivate != nil {
		settings.IsPrivate = *req.IsPrivate
	}
	if req.AllowMessages != nil {
		settings.AllowMessages = *req.AllowMessages
	}

	user, err := h.userUseCase.UpdateSettings(c.Request.Context(), a, settings)
	if err != nil {
		respondError(c, h.logger, "update_settings", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user, true))
}

// ApproveUser handles POST /admin/users/:userId/approve
func (h *UserHandler) ApproveUser(c *gin.Context) {
	userID, ok := idParam(c, "userId", errs.ErrInvalidUserID)
	if !ok {
		return
	}
	if err := h.userUseCase.ApproveUser(c.Request.Context(), actor(c), userID); err != nil {
		respondError(c, h.logger, "approve_user", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPresence handles GET /users/:userId/presence
func (h *UserHandler) GetPresence(c *gin.Context) {
	userID, ok := idParam(c, "userId", errs.ErrInvalidUserID)
	if !ok {
		return
	}
	presence, err := h.userUseCase.GetPresence(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, "get_presence", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPresenceResponse(presence))
}

// Pinger reports whether the database answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the unauthenticated health probe
type HealthHandler struct {
	db     Pinger
	logger coreport.Logger
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(db Pinger, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("Health check failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Database: "unreachable"})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Database: "ok"})
}
