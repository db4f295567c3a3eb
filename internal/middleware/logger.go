package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Logger returns the access-logging middleware. Socket.io transport
// requests are excluded: clients long-poll every few seconds and would
// drown the log. Failures log at warn (4xx) or error (5xx) so they
// stand out when the level is raised in production.
func Logger(log *zap.Logger) gin.HandlerFunc {
	access := log.Named("access")
	return func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/socket.io") {
			c.Next()
			return
		}

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		}
		if uid := CurrentUserID(c); uid != "" {
			fields = append(fields, zap.String("uid", uid))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case status >= http.StatusInternalServerError:
			access.Error("request", fields...)
		case status >= http.StatusBadRequest:
			access.Warn("request", fields...)
		default:
			access.Info("request", fields...)
		}
	}
}
