package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLogger returns a gin.HandlerFunc (middleware) that logs requests using zap.
// It logs the method, path, status code, latency, client IP, the session the
// request was served under, query parameters, and any errors that occurred
// during request processing.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		panic("RequestLogger requires a non-nil zap.Logger instance")
	}
	return func(c *gin.Context) {
		start := time.Now()

		// Copy path and query so subsequent handlers can't mutate what we log.
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()

		logFields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status_code", statusCode),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}

		// The session middleware echoes the session ID on every response,
		// so read it from the response writer rather than the request.
		if sessionID := c.Writer.Header().Get(SessionHeader); sessionID != "" {
			logFields = append(logFields, zap.String("session_id", sessionID))
		}

		if query != "" {
			logFields = append(logFields, zap.String("query", query))
		}

		if len(c.Errors) > 0 {
			logFields = append(logFields, zap.String("gin_errors", c.Errors.String()))
		}

		// Log with different levels based on status code.
		if statusCode >= http.StatusInternalServerError {
			logger.Error("Incoming Request", logFields...)
		} else if statusCode >= http.StatusBadRequest {
			logger.Warn("Incoming Request", logFields...)
		} else {
			logger.Info("Incoming Request", logFields...)
		}
	}
}
