package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	errs "github.com/amirhossein-jamali/socialhub/internal/domain/error"
	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit allows limit requests per caller per window using a redis
// counter per fixed window. Requests pass when redis is unavailable.
func RateLimit(client redis.Cmdable, limit int, window time.Duration, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller := c.ClientIP()
		if actor, ok := ActorFrom(c); ok {
			caller = "user:" + strconv.FormatUint(actor.UserID, 10)
		}
		key := fmt.Sprintf("rate_limit:%s:%d", caller, time.Now().UnixNano()/int64(window))

		ctx := c.Request.Context()
		pipe := client.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, window)
		if _, err := pipe.Exec(ctx); err != nil {
			logger.Warn("Rate limit check failed", map[string]any{
				"error":      err.Error(),
				"request_id": RequestID(c),
			})
			c.Next()
			return
		}

		count := incr.Val()
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(max(int64(limit)-count, 0), 10))

		if count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Code:    errs.ErrorCode(errs.ErrInvalidRequest),
				Message: "Rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
