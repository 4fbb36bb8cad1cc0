package domain

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrNotFound = errors.New("resource not found")
var ErrForbidden = errors.New("access forbidden")

// ErrUnauthorized marks a 401-style rejection from the backend. Containers
// surface it on their snapshot so the shell can decide whether to log out.
var ErrUnauthorized = errors.New("authentication required")

// ErrIncompleteSession is returned when a login is attempted with an empty
// token or role. Token and role are always stored together.
var ErrIncompleteSession = errors.New("session requires both token and role")

// APIError carries the backend's HTTP status and, when present, its
// human-readable message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// Is lets errors.Is(err, ErrUnauthorized) match a 401 APIError.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}
