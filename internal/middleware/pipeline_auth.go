package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	apperrors "ledgerline/internal/errors"
)

// APIKeyHeader carries the pipeline API key.
const APIKeyHeader = "X-API-Key"

// PipelineAuthMiddleware guards the scheduler-facing endpoints with a shared
// API key. With no key configured the endpoints are disabled.
func PipelineAuthMiddleware(apiKey string) gin.HandlerFunc {
	expected := []byte(apiKey)
	return func(c *gin.Context) {
		if len(expected) == 0 {
			abortWithError(c, apperrors.ErrPipelineNotConfigured)
			return
		}
		if subtle.ConstantTimeCompare([]byte(c.GetHeader(APIKeyHeader)), expected) != 1 {
			abortWithError(c, apperrors.ErrInvalidAPIKey)
			return
		}
		c.Set("pipeline", true)
		c.Next()
	}
}
