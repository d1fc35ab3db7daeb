package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Error represents an application error carried to the client as the standard
// envelope {error, message?, details?, code, timestamp}.
type Error struct {
	Code    int         `json:"code"`
	Summary string      `json:"error"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

type envelope struct {
	ErrorMsg  string      `json:"error"`
	Message   string      `json:"message,omitempty"`
	Details   interface{} `json:"details,omitempty"`
	Code      int         `json:"code"`
	Timestamp string      `json:"timestamp"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Summary, e.Err)
	}
	return e.Summary
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// JSON returns the client envelope as a JSON string
func (e *Error) JSON() string {
	b, _ := json.Marshal(e.envelope())
	return string(b)
}

func (e *Error) envelope() envelope {
	return envelope{
		ErrorMsg:  e.Summary,
		Message:   e.Message,
		Details:   e.Details,
		Code:      e.Code,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// New creates a new Error
func New(code int, summary string, err error) *Error {
	return &Error{
		Code:    code,
		Summary: summary,
		Err:     err,
	}
}

// WithMessage returns a copy of the error with a human-readable message attached.
func (e *Error) WithMessage(msg string) *Error {
	clone := *e
	clone.Message = msg
	return &clone
}

// WithDetails returns a copy of the error with structured details attached.
func (e *Error) WithDetails(details interface{}) *Error {
	clone := *e
	clone.Details = details
	return &clone
}

// Common error types
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Bad request", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden      = New(http.StatusForbidden, "Insufficient permissions", nil)
	ErrNotFound       = New(http.StatusNotFound, "Not found", nil)
	ErrConflict       = New(http.StatusConflict, "Conflict", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Internal server error", nil)
)

// Validation error types
var (
	ErrValidation   = New(http.StatusBadRequest, "Validation failed", nil)
	ErrInvalidInput = New(http.StatusBadRequest, "Invalid input", nil)
)

// Authentication error types
var (
	ErrInvalidCredentials = New(http.StatusUnauthorized, "Invalid email or password", nil)
	ErrMissingToken       = New(http.StatusUnauthorized, "Authorization token required", nil)
	ErrInvalidToken       = New(http.StatusUnauthorized, "Invalid or expired token", nil)
)

// Abort writes the envelope for status/summary and stops the handler chain.
func Abort(c *gin.Context, code int, summary string) {
	AbortWith(c, New(code, summary, nil))
}

// AbortWith writes the error envelope and stops the handler chain. Non-app
// errors are suppressed to a generic 500; the original error stays server-side.
func AbortWith(c *gin.Context, err error) {
	var appErr *Error
	if e, ok := err.(*Error); ok {
		appErr = e
	} else {
		appErr = &Error{Code: ErrInternalServer.Code, Summary: ErrInternalServer.Summary, Err: err}
	}
	c.AbortWithStatusJSON(appErr.Code, appErr.envelope())
}

// ErrorMiddleware converts errors attached to the gin context into envelopes.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			AbortWith(c, c.Errors.Last().Err)
		}
	}
}
