package core

import (
	"errors"
	"fmt"
)

// Authentication errors
var (
	// ErrInvalidCredentials covers "no such user", "wrong role" and
	// "wrong password" alike so callers cannot probe which emails are
	// registered under which role.
	ErrInvalidCredentials = errors.New("invalid email or password") // 401 Unauthorized
	ErrAccountInactive    = errors.New("account is not active")     // 403 Forbidden
	ErrUserNotFound       = errors.New("user not found")            // storage-level sentinel
)

// Token and session errors
var (
	// ErrInvalidToken covers absent, expired and inactive-owner
	// remember tokens without distinction.
	ErrInvalidToken    = errors.New("invalid remember token")      // 401
	ErrTokenNotFound   = errors.New("remember token not found")    // storage-level sentinel
	ErrSessionNotFound = errors.New("session not found")           // storage-level sentinel
	ErrCacheNotFound   = errors.New("session not found in cache")
)

// Validation errors (client input)
var (
	ErrEmailRequired    = errors.New("email is required")    // 400
	ErrPasswordRequired = errors.New("password is required") // 400
	ErrUnknownRole      = errors.New("unknown role")         // 400
)

// Config errors (server-side configuration)
var (
	ErrDBAdapterRequired   = errors.New("database adapter is required") // 500
	ErrHTTPAdapterRequired = errors.New("http adapter is required")     // 500
)

// AccountInactiveError carries the actual account status for internal
// use; how much of it reaches the end user is the caller's call.
type AccountInactiveError struct {
	Status Status
}

func (e *AccountInactiveError) Error() string {
	return fmt.Sprintf("account is not active (status %q)", e.Status)
}

// Is makes errors.Is(err, ErrAccountInactive) match.
func (e *AccountInactiveError) Is(target error) bool {
	return target == ErrAccountInactive
}
