package internal

import (
	"errors"
	"fmt"
)

// ErrBlocked is returned when sending to a contact who has blocked the
// current user. No network call is made in that case.
var ErrBlocked = errors.New("you have been blocked by this user")

// APIError represents a non-2xx response from the backend
type APIError struct {
	Status  int
	Path    string
	Message string // server-provided message, if any
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error: %s returned %d: %s", e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("api error: %s returned %d", e.Path, e.Status)
}

// IsAuthError reports whether the server rejected the request for
// missing or invalid credentials.
func (e *APIError) IsAuthError() bool {
	return e.Status == 401 || e.Status == 403
}

// StorageError represents errors accessing the local app database
type StorageError struct {
	Key string
	Op  string // "open", "read", "write", "delete"
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ValidationError represents input rejected before any network call
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
