package middleware

import (
	"context"

	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/gin-gonic/gin"
)

// activityRecorder is satisfied by the user use case
type activityRecorder interface {
	Touch(ctx context.Context, userID uint64) error
}

// Presence marks the authenticated caller as active once the request is handled
func Presence(recorder activityRecorder, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		actor, ok := ActorFrom(c)
		if !ok {
			return
		}
		if err := recorder.Touch(context.WithoutCancel(c.Request.Context()), actor.UserID); err != nil {
			logger.Warn("Failed to record presence", map[string]any{
				"user_id":    actor.UserID,
				"error":      err.Error(),
				"request_id": RequestID(c),
			})
		}
	}
}
