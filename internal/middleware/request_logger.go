package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/federaltalks/iq-backend/internal/pkg/logger"
)

// RequestLogger logs each completed request with status-appropriate level.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	requestLog := log.With("middleware", "RequestLogger")
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		attrs := []interface{}{
			"status", status,
			"method", c.Request.Method,
			"path", path,
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
			"request_id", GetRequestID(c),
		}
		if query != "" {
			attrs = append(attrs, "query", query)
		}

		switch {
		case status >= 500:
			requestLog.Error("request completed", attrs...)
		case status >= 400:
			requestLog.Warn("request completed", attrs...)
		default:
			requestLog.Info("request completed", attrs...)
		}
	}
}
