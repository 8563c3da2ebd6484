package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// ErrUnknownDocumentRoot is the structural decode failure: the input XML
// contains none of the recognized market-document roots. It is fatal for
// that document; no partial rows are produced.
var ErrUnknownDocumentRoot = errors.New("unknown document root")

// UnknownRootError wraps ErrUnknownDocumentRoot with the root element that
// was actually found, so callers can surface it to the user.
func UnknownRootError(root string) error {
	if root == "" {
		return fmt.Errorf("%w: document has no root element", ErrUnknownDocumentRoot)
	}
	return fmt.Errorf("%w: %q", ErrUnknownDocumentRoot, root)
}

// IsStructural reports whether err is a structural decode failure, as
// opposed to an anomaly the pipeline absorbs with sentinel values.
func IsStructural(err error) bool {
	return errors.Is(err, ErrUnknownDocumentRoot)
}

// APIError represents a structured API error response
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error values the API actually returns; failures carrying an
// underlying cause go through the *WithError constructors instead.
var (
	ErrInvalidRequest = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrDecodeFailed   = New(http.StatusUnprocessableEntity, "DECODE_FAILED", "Document could not be decoded")
	ErrInternalServer = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// ErrorResponse is the JSON envelope for error payloads
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// NewErrorResponse wraps an APIError in the response envelope
func NewErrorResponse(err *APIError) ErrorResponse {
	return ErrorResponse{Error: err}
}

// WriteError writes an error response to the HTTP response writer
func WriteError(w http.ResponseWriter, err *APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)
	json.NewEncoder(w).Encode(NewErrorResponse(err))
}

// ValidationFailedWithError creates a validation error carrying the
// underlying validator message
func ValidationFailedWithError(err error) *APIError {
	return NewWithDetails(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", err.Error())
}

// DecodeFailedWithError creates a decode error carrying the structural
// failure detail
func DecodeFailedWithError(err error) *APIError {
	return NewWithDetails(http.StatusUnprocessableEntity, "DECODE_FAILED", "Document could not be decoded", err.Error())
}

// UpstreamWithError creates an upstream error carrying the fetch failure
func UpstreamWithError(err error) *APIError {
	return NewWithDetails(http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "Upstream platform request failed", err.Error())
}
