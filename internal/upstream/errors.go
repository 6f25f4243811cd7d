package upstream

import (
	"errors"
	"net/http"
)

var (
	// ErrAuthRequired means no usable token was present; raised before any
	// network I/O.
	ErrAuthRequired = errors.New("authentication required, please log in again")

	// ErrSessionExpired means the API rejected the token. The local session
	// has already been cleared when this is returned.
	ErrSessionExpired = errors.New("session expired, please log in again")

	// ErrNotFound matches API errors with a 404 status.
	ErrNotFound = errors.New("record not found")

	// ErrUnavailable classifies transport-level failures.
	ErrUnavailable = errors.New("upstream unreachable")
)

// APIError carries the server-provided message from a failed envelope or a
// resource-specific fallback when the server sent none.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}
