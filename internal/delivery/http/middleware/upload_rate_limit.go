package middleware

import (
	"context"
	"math"
	"strconv"
	"time"

	"go-resume-backend/pkg/apperror"
	"go-resume-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// UploadLimiter is satisfied by security.UploadLimiter
type UploadLimiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// UploadRateLimit rejects clients exceeding the upload quota with 429 and a
// Retry-After header. Limiter backend failures let the request through.
func UploadRateLimit(limiter UploadLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Log.Warn("upload rate limiter unavailable", "error", err)
		}
		if !allowed {
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			_ = c.Error(apperror.TooManyRequests("Too many uploads. Please try again later."))
			c.Abort()
			return
		}

		c.Next()
	}
}
