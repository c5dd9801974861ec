// Package metadata is the client-side key/value table. The session client
// keeps its credential pair here under the access_token and refresh_token
// keys.
package metadata

import (
	"context"
)

// Repository reads and writes raw values by key. Get returns (nil, nil) for
// an absent key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMany(ctx context.Context, keys ...string) (map[string][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
