package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "ledgerline/internal/errors"
	"ledgerline/internal/logger"
)

// ErrorHandler turns the last error attached to the context into the JSON
// error envelope. AppErrors keep their code and message. Anything else is
// logged and answered with a generic internal error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		last := c.Errors.Last()
		err := last.Err
		appErr := classify(last)
		if appErr.Internal != nil || appErr.StatusCode >= 500 {
			logger.Named("http").Errorw("request error",
				"code", appErr.Code,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"request_id", RequestID(c),
			)
		}

		// Handlers that already responded attach errors for logging only.
		if c.Writer.Written() {
			return
		}
		c.JSON(appErr.StatusCode, appErr.Envelope())
	}
}

// classify maps a context error onto the AppError the client sees.
func classify(ginErr *gin.Error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if !errors.As(ginErr.Err, &appErr) && ginErr.IsType(gin.ErrorTypeBind) {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, ginErr.Err.Error())
	}
	return apperrors.From(ginErr.Err)
}
