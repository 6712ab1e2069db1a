package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	apperrors "ledgerline/internal/errors"
	"ledgerline/internal/ledger"
	"ledgerline/internal/logger"
	"ledgerline/internal/uuid"
)

// clock is the source of "today" for handlers that realize or project
// recurring transactions.
var clock = time.Now

// ErrorDetail documents the error object for swagger.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse documents apperrors.Envelope for swagger.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// MessageResponse is returned by endpoints with nothing else to say.
type MessageResponse struct {
	Message string `json:"message"`
}

// getUserID returns the user id set by the auth middleware.
func getUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	id, ok := userID.(string)
	if !ok || id == "" {
		return "", apperrors.ErrUnauthorized
	}
	return id, nil
}

// parsePathID reads a UUID path parameter.
func parsePathID(c *gin.Context, param string) (string, error) {
	id := c.Param(param)
	if !uuid.IsValid(id) {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return id, nil
}

// requireUser returns the authenticated user id, answering 401 when there is
// none.
func requireUser(c *gin.Context) (string, bool) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return "", false
	}
	return userID, true
}

// requireUserAndID is requireUser followed by parsePathID.
func requireUserAndID(c *gin.Context, param string) (string, string, bool) {
	userID, ok := requireUser(c)
	if !ok {
		return "", "", false
	}
	id, err := parsePathID(c, param)
	if err != nil {
		respondWithError(c, err)
		return "", "", false
	}
	return userID, id, true
}

// bindJSON binds the request body into obj, answering 400 on failure.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return false
	}
	return true
}

// bindQuery binds query parameters into obj, answering 400 on failure.
func bindQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return false
	}
	return true
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter.
func parseDateQuery(c *gin.Context, param string) (*ledger.Date, error) {
	v := c.Query(param)
	if v == "" {
		return nil, nil
	}
	d, err := ledger.ParseDate(v)
	if err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidDate, "invalid "+param+", use YYYY-MM-DD")
	}
	return &d, nil
}

// parseOptionalDate parses a request body date. An empty string yields the
// zero date.
func parseOptionalDate(field, v string) (ledger.Date, error) {
	if v == "" {
		return ledger.Date{}, nil
	}
	d, err := ledger.ParseDate(v)
	if err != nil {
		return ledger.Date{}, apperrors.WithMessage(apperrors.ErrInvalidDate, "invalid "+field+", use YYYY-MM-DD")
	}
	return d, nil
}

// parseBoolQuery parses an optional "true"/"false" query parameter.
func parseBoolQuery(c *gin.Context, param string) (*bool, error) {
	switch c.Query(param) {
	case "":
		return nil, nil
	case "true":
		b := true
		return &b, nil
	case "false":
		b := false
		return &b, nil
	}
	return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, param+" must be 'true' or 'false'")
}

func today() ledger.Date {
	return ledger.Today(clock)
}

// respondWithError writes err as the JSON error envelope. Errors without an
// AppError in their chain are answered as internal errors. Causes are
// logged, never sent.
func respondWithError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr.Internal != nil {
		logger.Named("handlers").Errorw("request failed",
			"code", appErr.Code,
			"error", appErr.Internal.Error(),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString("requestID"),
		)
	}
	c.JSON(appErr.StatusCode, appErr.Envelope())
}
