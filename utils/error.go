package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies a failure for callers.
type ErrorKind string

const (
	KindUnauthorized     ErrorKind = "Unauthorized"
	KindForbidden        ErrorKind = "Forbidden"
	KindNotFound         ErrorKind = "NotFound"
	KindInvalidInput     ErrorKind = "InvalidInput"
	KindInvalidState     ErrorKind = "InvalidState"
	KindPaymentDeclined  ErrorKind = "PaymentDeclined"
	KindConflict         ErrorKind = "Conflict"
	KindStoreUnavailable ErrorKind = "StoreUnavailable"
	KindInternal         ErrorKind = "Internal"
)

// AppError is the structured error returned by services.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newAppError(kind ErrorKind, msg string, err error) *AppError {
	return &AppError{Kind: kind, Message: msg, Err: err}
}

func NewUnauthorized(msg string) error { return newAppError(KindUnauthorized, msg, nil) }
func NewForbidden(msg string) error    { return newAppError(KindForbidden, msg, nil) }
func NewNotFound(msg string) error     { return newAppError(KindNotFound, msg, nil) }
func NewInvalidInput(msg string) error { return newAppError(KindInvalidInput, msg, nil) }
func NewInvalidState(msg string) error { return newAppError(KindInvalidState, msg, nil) }
func NewConflict(msg string) error     { return newAppError(KindConflict, msg, nil) }

func NewPaymentDeclined(msg string) error {
	return newAppError(KindPaymentDeclined, msg, nil)
}

// NewStoreUnavailable wraps a persistence or dependency failure.
func NewStoreUnavailable(msg string, err error) error {
	return newAppError(KindStoreUnavailable, msg, err)
}

// KindOf returns the kind of the first AppError in err's chain, or KindInternal.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error kind to its response status.
func HTTPStatus(kind ErrorKind) int {
	switch kind {
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidInput, KindInvalidState:
		return http.StatusBadRequest
	case KindPaymentDeclined:
		return http.StatusPaymentRequired
	case KindConflict:
		return http.StatusConflict
	case KindStoreUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error   ErrorKind `json:"error"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))

				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
					Error:   KindInternal,
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, kind ErrorKind, message string) {
	GetLogger().Warn(message, zap.String("kind", string(kind)), zap.Int("status", status))
	c.AbortWithStatusJSON(status, ErrorResponse{Error: kind, Message: message})
}

// RespondError writes err as a structured response. Internal details of
// non-AppError failures are logged, not returned.
func RespondError(c *gin.Context, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		GetLogger().Error("unclassified error", zap.Error(err), zap.String("path", c.FullPath()))
		JSONError(c, http.StatusInternalServerError, KindInternal, "Internal server error")
		return
	}
	if appErr.Kind == KindStoreUnavailable {
		GetLogger().Error(appErr.Message, zap.Error(appErr.Err), zap.String("path", c.FullPath()))
	}
	JSONError(c, HTTPStatus(appErr.Kind), appErr.Kind, appErr.Message)
}
