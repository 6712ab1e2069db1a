package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "ledgerline/internal/errors"
)

// abortWithError stops the chain and writes appErr.
func abortWithError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, appErr.Envelope())
}
