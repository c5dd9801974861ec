// Package models defines the payloads exchanged with the surveillance
// backend and the credential pair held by the session client.
package models

// Credentials is the (access, refresh) token pair of one session.
// An empty string means the token is absent.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// Authenticated reports whether an access token is held.
func (c Credentials) Authenticated() bool {
	return c.AccessToken != ""
}

// IsZero reports whether both tokens are absent.
func (c Credentials) IsZero() bool {
	return c.AccessToken == "" && c.RefreshToken == ""
}

// LoginRequest is the body posted to the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by the login endpoint.
type LoginResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RefreshRequest is the body posted to the refresh endpoint.
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// RefreshResponse is returned by the refresh endpoint. Only the access token
// is issued; the refresh token is kept as is.
type RefreshResponse struct {
	Access string `json:"access"`
}
