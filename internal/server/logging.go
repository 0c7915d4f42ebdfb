package server

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yarkinbusiness/New-GymFlexItalia-folder-sub000/internal/logger"
)

// RequestLoggingMiddleware logs each request with method, path, status and
// latency.
func RequestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		logger.Infof("%s %s -> %d (%dms) ip=%s",
			c.Request.Method,
			path,
			c.Writer.Status(),
			time.Since(start).Milliseconds(),
			c.ClientIP(),
		)
	}
}
