package tokenstore

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/healthsurv/internal/client/models"
)

// MemoryStore keeps the pair in process memory only.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Load(_ context.Context) (models.Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.Credentials{
		AccessToken:  m.values[AccessTokenKey],
		RefreshToken: m.values[RefreshTokenKey],
	}, nil
}

func (m *MemoryStore) Save(_ context.Context, c models.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(AccessTokenKey, c.AccessToken)
	m.put(RefreshTokenKey, c.RefreshToken)
	return nil
}

func (m *MemoryStore) SaveAccess(_ context.Context, access string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(AccessTokenKey, access)
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, AccessTokenKey)
	delete(m.values, RefreshTokenKey)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// Keys lists the keys currently present.
func (m *MemoryStore) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return keys
}

func (m *MemoryStore) put(key, value string) {
	if value == "" {
		delete(m.values, key)
		return
	}
	m.values[key] = value
}
