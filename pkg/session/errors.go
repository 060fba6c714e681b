package session

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound indicates the session does not exist or has expired.
	ErrNotFound = errors.New("session not found")
	// ErrUnauthorized indicates the request has no logged in user.
	ErrUnauthorized = errors.New("login required")
)

// MapHTTPStatus maps session errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
