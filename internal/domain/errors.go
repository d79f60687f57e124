package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
)

// APIError carries a user-facing message alongside a sentinel. errors.Is
// against the sentinel drives the HTTP status; Error() is safe to return to
// the client verbatim.
type APIError struct {
	Message string
	Kind    error
}

func (e *APIError) Error() string { return e.Message }
func (e *APIError) Unwrap() error { return e.Kind }

// NewAPIError builds an APIError for the given sentinel.
func NewAPIError(kind error, message string) *APIError {
	return &APIError{Message: message, Kind: kind}
}
