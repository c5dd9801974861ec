// Package tokenstore persists the session credential pair so it survives a
// restart of the client process.
//
// Every backend uses the same layout: two string values under the keys
// access_token and refresh_token. A missing key means the token is absent.
// Save and Clear change both keys in one operation, so a reader never sees
// one token cleared and the other kept.
package tokenstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/healthsurv/internal/client/config"
	"github.com/dmitrijs2005/healthsurv/internal/client/models"
)

const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

var ErrUnknownBackend = errors.New("unknown token store backend")

// Store is the durable mirror of the in-memory credential pair.
type Store interface {
	// Load returns the stored pair; absent keys yield empty tokens.
	Load(ctx context.Context) (models.Credentials, error)
	// Save overwrites both keys. An empty RefreshToken removes that key.
	Save(ctx context.Context, c models.Credentials) error
	// SaveAccess replaces the access token and leaves the refresh token alone.
	SaveAccess(ctx context.Context, access string) error
	// Clear removes both keys. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
	Close() error
}

// Open creates the backend selected by cfg.StoreBackend.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case "sqlite", "":
		return OpenSQLite(ctx, cfg.SQLitePath)
	case "redis":
		return OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPrefix)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.StoreBackend)
	}
}
