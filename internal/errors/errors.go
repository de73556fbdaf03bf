package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/warbler/internal/constants"
)

// Error codes
const (
	// Authentication errors
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Authorization errors
	ErrCodeForbidden = "FORBIDDEN"

	// Validation errors
	ErrCodeInvalidInput = "INVALID_INPUT"

	// Resource errors
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConflict = "CONFLICT"

	// Service errors
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS"
	ErrCodeInternalError   = "INTERNAL_ERROR"
)

// AccessUnauthorizedMessage is shown whenever a signed-out or wrong user hits a guarded action.
const AccessUnauthorizedMessage = "Access unauthorized."

// APIError represents a standardized API error response.
// Category and Redirect are set when the error doubles as a user-facing notice.
type APIError struct {
	Code     string      `json:"code"`
	Message  string      `json:"message"`
	Category string      `json:"category,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
	Details  interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// NewNoticeError creates an APIError rendered as a danger notice with a redirect target
func NewNoticeError(code, message, redirect string) *APIError {
	return &APIError{
		Code:     code,
		Message:  message,
		Category: constants.NoticeDanger,
		Redirect: redirect,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.JSON(statusCode, err)
}

// Helper functions for common error responses

// Unauthorized sends a 401 access-unauthorized notice redirecting home
func Unauthorized(c *gin.Context) {
	RespondWithError(c, http.StatusUnauthorized, NewNoticeError(ErrCodeUnauthorized, AccessUnauthorizedMessage, "/"))
}

// Forbidden sends a 403 access-unauthorized notice redirecting home
func Forbidden(c *gin.Context) {
	RespondWithError(c, http.StatusForbidden, NewNoticeError(ErrCodeForbidden, AccessUnauthorizedMessage, "/"))
}

// InvalidCredentials sends a 401 for a failed login
func InvalidCredentials(c *gin.Context) {
	RespondWithError(c, http.StatusUnauthorized, NewNoticeError(ErrCodeInvalidCredentials, "Invalid credentials.", ""))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Resource conflict"
	}
	RespondWithError(c, http.StatusConflict, NewNoticeError(ErrCodeConflict, message, ""))
}

// TooManyRequests sends a 429 response
func TooManyRequests(c *gin.Context) {
	RespondWithError(c, http.StatusTooManyRequests, NewAPIError(ErrCodeTooManyRequests, "Too many requests, slow down."))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}
