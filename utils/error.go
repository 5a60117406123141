package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ErrorKind string

const (
	KindValidation         ErrorKind = "VALIDATION_ERROR"
	KindInvalidDate        ErrorKind = "INVALID_DATE"
	KindUnauthorized       ErrorKind = "UNAUTHORIZED"
	KindInvalidCredentials ErrorKind = "INVALID_CREDENTIALS"
	KindForbidden          ErrorKind = "FORBIDDEN"
	KindNotFound           ErrorKind = "NOT_FOUND"
	KindConflict           ErrorKind = "CONFLICT"
	KindServer             ErrorKind = "SERVER_ERROR"
)

var kindStatus = map[ErrorKind]int{
	KindValidation:         http.StatusBadRequest,
	KindInvalidDate:        http.StatusBadRequest,
	KindUnauthorized:       http.StatusUnauthorized,
	KindInvalidCredentials: http.StatusUnauthorized,
	KindForbidden:          http.StatusForbidden,
	KindNotFound:           http.StatusNotFound,
	KindConflict:           http.StatusConflict,
	KindServer:             http.StatusInternalServerError,
}

// AppError is a failure with a client-facing message and HTTP status.
type AppError struct {
	Kind    ErrorKind
	Message string
	Status  int
	// Details is merged into the response body, e.g. missingFields.
	Details map[string]interface{}
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func newAppError(kind ErrorKind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Status: kindStatus[kind], Err: err}
}

// WithDetail attaches a response field to the error.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}
	e.Details[key] = value
	return e
}

func ErrValidation(message string) *AppError { return newAppError(KindValidation, message, nil) }

func ErrInvalidDate(message string) *AppError { return newAppError(KindInvalidDate, message, nil) }

func ErrUnauthorized(message string) *AppError { return newAppError(KindUnauthorized, message, nil) }

func ErrInvalidCredentials() *AppError {
	return newAppError(KindInvalidCredentials, "Invalid email or password", nil)
}

func ErrForbidden(message string) *AppError { return newAppError(KindForbidden, message, nil) }

func ErrNotFound(resource string) *AppError {
	return newAppError(KindNotFound, resource+" not found", nil)
}

func ErrConflict(message string) *AppError { return newAppError(KindConflict, message, nil) }

// ErrServer wraps an unexpected failure; the message is never shown outside dev mode.
func ErrServer(err error) *AppError {
	return newAppError(KindServer, "Internal server error", err)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// AsAppError converts any error into an AppError, treating unknown errors as server errors.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrServer(err)
}

// ErrorHandler recovers panics into a 500 envelope.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("Unhandled panic", zap.Any("error", rec), zap.String("path", c.Request.URL.Path))
				RespondError(c, ErrServer(fmt.Errorf("panic: %v", rec)))
				c.Abort()
			}
		}()
		c.Next()
	}
}
