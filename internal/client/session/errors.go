package session

import (
	"errors"
	"fmt"
)

// ErrUnauthorized matches every *AuthenticationError via errors.Is.
var ErrUnauthorized = errors.New("unauthorized")

// AuthenticationError means the caller has to log in again: the login was
// rejected, or a request got 401 and the session could not be refreshed.
// In the latter case the credential pair has already been cleared.
type AuthenticationError struct {
	Status int
	Body   string
	Reason string
	// Err is the cause, e.g. a *RefreshError.
	Err error
}

func (e *AuthenticationError) Error() string {
	msg := "authentication failed"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	return msg + ", please login again"
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

func (e *AuthenticationError) Is(target error) bool { return target == ErrUnauthorized }

// APIError is any non-2xx response other than a recoverable 401. Body holds
// the raw response so callers can show the server's message.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %d - %s", e.Status, e.Body)
}

// RefreshError means the refresh endpoint rejected the refresh token or
// answered without an access token.
type RefreshError struct {
	Status int
	Body   string
	Err    error
}

func (e *RefreshError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token refresh failed: %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("token refresh failed: %d - %s", e.Status, e.Body)
}

func (e *RefreshError) Unwrap() error { return e.Err }

// TransportError wraps failures below HTTP: DNS, connection, TLS, timeouts,
// context cancellation or a broken response body.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
