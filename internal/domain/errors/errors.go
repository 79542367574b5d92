// Package errors defines the typed operation results of the core services.
// The original duck-typed {success:false, ...} objects become one error type
// per outcome kind; the HTTP error handler dispatches on them exhaustively.
package errors

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// AppError is implemented by every domain error that maps to a specific HTTP
// status and response body. Errors that do not implement it surface as 500.
type AppError interface {
	error
	HTTPCode() int // HTTP status code for this error kind.
	Body() any     // JSON response body, nil for an empty body.
}

// ValidationError rejects malformed or unacceptable input. It carries a
// field -> message map which is returned verbatim as the 400 response body.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError builds a ValidationError for a single offending field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, message := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, message))
	}
	sort.Strings(parts)

	return "validation failed: " + strings.Join(parts, "; ")
}

// HTTPCode returns 400.
func (e *ValidationError) HTTPCode() int { return http.StatusBadRequest }

// Body returns the raw field map.
func (e *ValidationError) Body() any { return e.Fields }

// Unauthorized rejects a request whose credential is missing, malformed,
// expired, or replayed. The body is an opaque boolean flag naming which
// credential failed; no further detail is ever surfaced.
type Unauthorized struct {
	Access  bool
	Refresh bool
}

// NewAccessUnauthorized flags a failed access-token check.
func NewAccessUnauthorized() *Unauthorized { return &Unauthorized{Access: true} }

// NewRefreshUnauthorized flags a failed refresh-token check.
func NewRefreshUnauthorized() *Unauthorized { return &Unauthorized{Refresh: true} }

func (e *Unauthorized) Error() string {
	switch {
	case e.Refresh:
		return "unauthorized: refresh token rejected"
	case e.Access:
		return "unauthorized: access token rejected"
	default:
		return "unauthorized"
	}
}

// HTTPCode returns 401.
func (e *Unauthorized) HTTPCode() int { return http.StatusUnauthorized }

// Body returns the opaque credential flag.
func (e *Unauthorized) Body() any {
	body := map[string]bool{}
	if e.Access {
		body["access"] = true
	}
	if e.Refresh {
		body["refresh"] = true
	}

	return body
}

// AccessViolation rejects an authenticated request that targets a resource
// the requester does not own. Rendered as a bare 403.
type AccessViolation struct{}

// NewAccessViolation builds an AccessViolation.
func NewAccessViolation() *AccessViolation { return &AccessViolation{} }

func (e *AccessViolation) Error() string { return "access violation" }

// HTTPCode returns 403.
func (e *AccessViolation) HTTPCode() int { return http.StatusForbidden }

// Body returns nil; the 403 carries no body.
func (e *AccessViolation) Body() any { return nil }

// NotFound reports that a referenced entity does not exist.
type NotFound struct {
	Reason string
}

// NewNotFound builds a NotFound with a human-readable reason.
func NewNotFound(reason string) *NotFound { return &NotFound{Reason: reason} }

func (e *NotFound) Error() string { return "not found: " + e.Reason }

// HTTPCode returns 404.
func (e *NotFound) HTTPCode() int { return http.StatusNotFound }

// Body returns the reason message.
func (e *NotFound) Body() any { return map[string]string{"message": e.Reason} }

// Conflict reports a failed state precondition, e.g. liking a profile that is
// already liked. Rendered as 400 with a plain message, matching the original
// wire contract.
type Conflict struct {
	Reason string
}

// NewConflict builds a Conflict with a human-readable reason.
func NewConflict(reason string) *Conflict { return &Conflict{Reason: reason} }

func (e *Conflict) Error() string { return "conflict: " + e.Reason }

// HTTPCode returns 400.
func (e *Conflict) HTTPCode() int { return http.StatusBadRequest }

// Body returns the reason message.
func (e *Conflict) Body() any { return map[string]string{"message": e.Reason} }
