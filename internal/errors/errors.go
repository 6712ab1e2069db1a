// Package errors defines the AppError type every service returns and the
// sentinels clients can match on by code. Internal causes are kept for logs
// and never serialized.
package errors

import (
	"errors"
	"net/http"
)

// AppError is an error with a stable code, a client-facing message and the
// HTTP status it maps to.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Internal }

// Is matches any AppError with the same code, so copies made by Wrap and
// WithMessage still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Code == t.Code
}

// Envelope is the JSON body of an error response.
type Envelope struct {
	Error *AppError `json:"error"`
}

// Envelope wraps e for a response body.
func (e *AppError) Envelope() Envelope {
	return Envelope{Error: e}
}

// Wrap copies sentinel and attaches an internal cause.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage copies sentinel with a more specific message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// From returns the AppError in err's chain. Any other error becomes an
// internal error carrying err as its cause.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(ErrInternalServer, err)
}

// Authentication & authorization errors.
var (
	ErrUnauthorized = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrForbidden    = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}

	ErrInvalidAPIKey         = &AppError{Code: "INVALID_API_KEY", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
	ErrPipelineNotConfigured = &AppError{Code: "PIPELINE_NOT_CONFIGURED", Message: "Pipeline endpoints are disabled: PIPELINE_API_KEY is not set", StatusCode: http.StatusServiceUnavailable}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInvalidDate    = &AppError{Code: "INVALID_DATE", Message: "Invalid date, use YYYY-MM-DD", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Account errors.
var (
	ErrAccountNotFound    = &AppError{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found", StatusCode: http.StatusNotFound}
	ErrInvalidAccountType = &AppError{Code: "INVALID_ACCOUNT_TYPE", Message: "Unsupported account type", StatusCode: http.StatusBadRequest}
	ErrNegativeOpening    = &AppError{Code: "NEGATIVE_OPENING_BALANCE", Message: "Opening balance can't be negative", StatusCode: http.StatusBadRequest}
)

// Transaction errors.
var (
	ErrTransactionNotFound    = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", StatusCode: http.StatusNotFound}
	ErrInvalidTransactionType = &AppError{Code: "INVALID_TRANSACTION_TYPE", Message: "Unsupported transaction type", StatusCode: http.StatusBadRequest}
	ErrAmountNegative         = &AppError{Code: "AMOUNT_NEGATIVE", Message: "Amount negative", StatusCode: http.StatusBadRequest}
	ErrInvalidAmount          = &AppError{Code: "INVALID_AMOUNT", Message: "Amount must be greater than zero", StatusCode: http.StatusBadRequest}
	ErrAmountOverflow         = &AppError{Code: "AMOUNT_OVERFLOW", Message: "Amount exceeds the supported range", StatusCode: http.StatusBadRequest}
	ErrMissingAccount         = &AppError{Code: "MISSING_ACCOUNT", Message: "Both credit and debit accounts are required", StatusCode: http.StatusBadRequest}
	ErrSameAccount            = &AppError{Code: "SAME_ACCOUNT", Message: "Accounts can't be the same", StatusCode: http.StatusBadRequest}
	ErrAccountTypeMismatch    = &AppError{Code: "ACCOUNT_TYPE_MISMATCH", Message: "Account types are not valid for this transaction type", StatusCode: http.StatusBadRequest}
	ErrDuplicateOccurrence    = &AppError{Code: "DUPLICATE_OCCURRENCE", Message: "The recurring template already has a transaction on this date", StatusCode: http.StatusConflict}
)

// Recurring template errors.
var (
	ErrTemplateNotFound  = &AppError{Code: "TEMPLATE_NOT_FOUND", Message: "Recurring template not found", StatusCode: http.StatusNotFound}
	ErrInvalidRecurrence = &AppError{Code: "INVALID_RECURRENCE", Message: "Invalid recurrence rule", StatusCode: http.StatusBadRequest}
	ErrEndBeforeStart    = &AppError{Code: "END_BEFORE_START", Message: "End date before start date", StatusCode: http.StatusBadRequest}
)

// Budget errors.
var (
	ErrBudgetNotFound = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
)
