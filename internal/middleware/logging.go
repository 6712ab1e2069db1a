package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"ledgerline/internal/logger"
)

const (
	requestIDKey    = "requestID"
	requestIDHeader = "X-Request-ID"
)

// quietPaths are polled by infrastructure and only logged on failure.
var quietPaths = map[string]bool{
	"/api/health": true,
	"/metrics":    true,
}

// RequestLogging assigns every request an id and logs its outcome. A valid
// UUID in X-Request-ID is reused so ids can be traced across services.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(requestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.New().String()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		if quietPaths[c.Request.URL.Path] && status < http.StatusBadRequest {
			return
		}

		fields := []any{
			"request_id", requestID,
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if userID := c.GetString("userID"); userID != "" {
			fields = append(fields, "user_id", userID)
		}

		log := logger.Named("http")
		switch {
		case status >= http.StatusInternalServerError:
			log.Errorw("request failed", fields...)
		case status >= http.StatusBadRequest:
			log.Warnw("request rejected", fields...)
		default:
			log.Infow("request", fields...)
		}
	}
}

// RequestID returns the id RequestLogging assigned to the request.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
