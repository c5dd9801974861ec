// Package jwtinfo reads the claims of access tokens issued by the backend so
// the CLI can show who is logged in and until when.
//
// Signatures are NOT verified: the client does not hold the signing key and
// never relies on these claims for authorization or refresh decisions.
package jwtinfo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptyToken = errors.New("empty token")

// UserID accepts both the numeric and the string form of the user_id claim.
type UserID string

func (u *UserID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*u = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*u = UserID(n.String())
	return nil
}

// Claims as issued by the backend's token endpoints.
type Claims struct {
	jwt.RegisteredClaims
	UserID    UserID `json:"user_id"`
	TokenType string `json:"token_type"`
}

// Info is the displayable subset of the claims.
type Info struct {
	UserID    string
	TokenType string
	ID        string
	ExpiresAt time.Time
}

// Expired reports whether the token expiry lies before now. A token without
// exp never expires.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// Remaining returns the time left until expiry, zero when already expired or
// unknown.
func (i Info) Remaining(now time.Time) time.Duration {
	if i.ExpiresAt.IsZero() || !now.Before(i.ExpiresAt) {
		return 0
	}
	return i.ExpiresAt.Sub(now)
}

func (i Info) String() string {
	s := "user " + strconv.Quote(i.UserID)
	if i.TokenType != "" {
		s += ", " + i.TokenType + " token"
	}
	if !i.ExpiresAt.IsZero() {
		s += ", expires " + i.ExpiresAt.Format(time.RFC3339)
	}
	return s
}

// Inspect decodes token without verifying its signature.
func Inspect(token string) (Info, error) {
	if token == "" {
		return Info{}, ErrEmptyToken
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Info{}, fmt.Errorf("decode token: %w", err)
	}

	info := Info{
		UserID:    string(claims.UserID),
		TokenType: claims.TokenType,
		ID:        claims.ID,
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
