package shared

import (
	"errors"
	"fmt"
)

var (
	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrTokenExpired     = fmt.Errorf("access token expired")
	ErrRefreshFailed    = fmt.Errorf("token refresh failed")
	ErrNoRefreshToken   = fmt.Errorf("no refresh token available")
	ErrTimeout          = fmt.Errorf("operation timed out")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrCourseNotFound     = fmt.Errorf("course not found")
	ErrRequestNotFound    = fmt.Errorf("friend request not found")

	// Import errors
	ErrImportFailed    = fmt.Errorf("import failed")
	ErrScorecardUnread = fmt.Errorf("scorecard could not be read")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

// Failure classification sentinels. Service clients wrap errors with one of
// these so callers can decide whether to offer a retry affordance.
var (
	// ErrTransient marks a failure worth retrying (network, 5xx, timeout).
	ErrTransient = fmt.Errorf("transient service error")
	// ErrTerminal marks a failure retrying cannot fix (4xx, validation, auth).
	ErrTerminal = fmt.Errorf("terminal service error")
)

// IsRetryable reports whether err carries the transient classification.
// Unclassified errors count as retryable so a flaky network never strands
// the user without a retry option.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrTerminal)
}

// Transient wraps err with the transient classification.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrTransient, err)
}

// Terminal wraps err with the terminal classification.
func Terminal(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrTerminal, err)
}
