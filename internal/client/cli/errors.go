package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/healthsurv/internal/client/session"
)

// describeError turns a service error into a line for the user.
func describeError(err error) string {
	var (
		authErr *session.AuthenticationError
		apiErr  *session.APIError
		netErr  *session.TransportError
	)
	switch {
	case errors.As(err, &authErr):
		return "Not authenticated: " + authErr.Error()
	case errors.As(err, &apiErr):
		return fmt.Sprintf("Request failed (%d): %s", apiErr.Status, serverMessage(apiErr.Body))
	case errors.As(err, &netErr):
		return "Server unreachable: " + netErr.Err.Error()
	default:
		return "Error: " + err.Error()
	}
}

// serverMessage extracts "detail" or "error" from a JSON error body and
// falls back to the raw body.
func serverMessage(body string) string {
	var m map[string]any
	if err := json.Unmarshal([]byte(body), &m); err == nil {
		for _, k := range []string{"detail", "error", "message"} {
			if s, ok := m[k].(string); ok && s != "" {
				return s
			}
		}
	}
	if body == "" {
		return "no details"
	}
	return body
}
