package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/amirhossein-jamali/socialhub/internal/domain/entity"
	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// statusFor maps a domain error to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, errs.ErrAlreadySubscribed), errors.Is(err, errs.ErrRoomInactive):
		return http.StatusConflict
	case errors.Is(err, errs.ErrUnauthorized), errors.Is(err, errs.ErrProductLimitExceeded),
		errors.Is(err, errs.ErrUserBlocked):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConstraintViolation), errors.Is(err, errs.ErrDuplicateUser):
		return http.StatusConflict
	case errs.IsValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrDatabaseConnection):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// messageFor returns a client-safe message. Server-side details are only logged.
func messageFor(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}

// respondError logs err and writes the error response
func respondError(c *gin.Context, logger coreport.Logger, operation string, err error) {
	status := statusFor(err)

	fields := map[string]any{
		"operation":  operation,
		"error":      err.Error(),
		"status":     status,
		"request_id": middleware.RequestID(c),
	}
	var detailed interface{ LogFields() map[string]any }
	if errors.As(err, &detailed) {
		for k, v := range detailed.LogFields() {
			fields[k] = v
		}
	}

	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("Request failed", fields)
	default:
		logger.Debug("Request rejected", fields)
	}

	c.JSON(status, dto.ErrorResponse{
		Code:    errs.ErrorCode(err),
		Message: messageFor(err, status),
	})
}

// badRequest writes a 400 for malformed input
func badRequest(c *gin.Context, err error, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    errs.ErrorCode(err),
		Message: message,
	})
}

// actor returns the authenticated caller. Auth middleware guarantees one on
// every route that calls this.
func actor(c *gin.Context) entity.Actor {
	a, _ := middleware.ActorFrom(c)
	return a
}

// idParam parses a positive numeric path parameter, writing a 400 on failure
func idParam(c *gin.Context, name string, notFound error) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, notFound, "Invalid "+name+" format")
		return 0, false
	}
	return id, true
}
