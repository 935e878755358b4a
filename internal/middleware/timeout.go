package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestTimeoutHeader lets a client bound how long a mutation may wait on account locks.
const RequestTimeoutHeader = "X-Request-Timeout"

// RequestTimeout applies a deadline to the request context. The client may
// shorten it with the X-Request-Timeout header (a Go duration such as "750ms");
// values above max are clamped.
func RequestTimeout(max time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		timeout := max
		if raw := c.GetHeader(RequestTimeoutHeader); raw != "" {
			d, err := time.ParseDuration(raw)
			if err != nil || d <= 0 {
				GetLoggerFromCtx(c.Request.Context()).Warn("Invalid request timeout header", slog.String("value", raw))
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "VALIDATION", "detail": RequestTimeoutHeader + " must be a positive duration"})
				return
			}
			if d < timeout {
				timeout = d
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
