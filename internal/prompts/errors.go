package prompts

import (
	"errors"
	"net/http"
)

// Domain errors for prompt operations.
var (
	ErrNotFound     = errors.New("prompt not found")
	ErrInvalid      = errors.New("title and text are required")
	ErrTitleTooLong = errors.New("title exceeds 100 characters")
	ErrForbidden    = errors.New("prompt belongs to another user")
	ErrExportKey    = errors.New("export key outside of the caller's exports")

	ErrUnauthenticated = errors.New("sign in required")
)

// MapHTTPStatus maps prompt domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalid), errors.Is(err, ErrTitleTooLong):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrExportKey):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
