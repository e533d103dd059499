// Package errors provides custom error types for the CashTrackr API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// client-facing message, HTTP status code, and optional internal error.
// Message strings are part of the client contract and must not change.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & session errors.
var (
	ErrNotAuthorized = &AppError{Code: "NOT_AUTHORIZED", Message: "Not authorized", StatusCode: http.StatusUnauthorized}
	// ErrTokenVerification is returned for a bearer token that fails
	// signature or expiry checks. Clients expect a 500 here, not a 401.
	ErrTokenVerification = &AppError{Code: "TOKEN_VERIFICATION", Message: "token no valido", StatusCode: http.StatusInternalServerError}
)

// Account lifecycle errors.
var (
	ErrEmailExists              = &AppError{Code: "EMAIL_EXISTS", Message: "Email already exists", StatusCode: http.StatusConflict}
	ErrTokenConflict            = &AppError{Code: "TOKEN_NOT_VALID", Message: "Token not valid", StatusCode: http.StatusConflict}
	ErrTokenNotFound            = &AppError{Code: "TOKEN_NOT_FOUND", Message: "Token not valid", StatusCode: http.StatusNotFound}
	ErrUserNotFound             = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrUserNotConfirmed         = &AppError{Code: "USER_NOT_CONFIRMED", Message: "User is not confirmed", StatusCode: http.StatusForbidden}
	ErrPasswordIncorrect        = &AppError{Code: "PASSWORD_INCORRECT", Message: "Password is incorrect", StatusCode: http.StatusUnauthorized}
	ErrCurrentPasswordIncorrect = &AppError{Code: "CURRENT_PASSWORD_INCORRECT", Message: "Current password is incorrect", StatusCode: http.StatusUnauthorized}
)

// Budget and expense errors.
var (
	ErrBudgetNotFound  = &AppError{Code: "BUDGET_NOT_FOUND", Message: "Budget not found", StatusCode: http.StatusNotFound}
	ErrBudgetAccess    = &AppError{Code: "BUDGET_ACCESS_DENIED", Message: "You don't have access to this budget", StatusCode: http.StatusUnauthorized}
	ErrExpenseNotFound = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found", StatusCode: http.StatusNotFound}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "Internal server error", StatusCode: http.StatusInternalServerError}
)
