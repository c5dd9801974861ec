package tokenstore

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/healthsurv/internal/client/models"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the pair as two plain string keys. Keys carry no TTL;
// the backend decides when tokens stop being valid.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// OpenRedis connects to addr and verifies the connection with PING.
func OpenRedis(ctx context.Context, addr, prefix string) (*RedisStore, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address required")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewRedisStore(client, prefix), nil
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(name string) string {
	return s.prefix + name
}

func (s *RedisStore) Load(ctx context.Context) (models.Credentials, error) {
	vals, err := s.client.MGet(ctx, s.key(AccessTokenKey), s.key(RefreshTokenKey)).Result()
	if err != nil {
		return models.Credentials{}, fmt.Errorf("redis load tokens: %w", err)
	}
	var c models.Credentials
	if v, ok := vals[0].(string); ok {
		c.AccessToken = v
	}
	if v, ok := vals[1].(string); ok {
		c.RefreshToken = v
	}
	return c, nil
}

func (s *RedisStore) Save(ctx context.Context, c models.Credentials) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		s.setOrDel(ctx, pipe, AccessTokenKey, c.AccessToken)
		s.setOrDel(ctx, pipe, RefreshTokenKey, c.RefreshToken)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save tokens: %w", err)
	}
	return nil
}

func (s *RedisStore) SaveAccess(ctx context.Context, access string) error {
	var err error
	if access == "" {
		err = s.client.Del(ctx, s.key(AccessTokenKey)).Err()
	} else {
		err = s.client.Set(ctx, s.key(AccessTokenKey), access, 0).Err()
	}
	if err != nil {
		return fmt.Errorf("redis save access token: %w", err)
	}
	return nil
}

// Clear deletes both keys with a single DEL.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key(AccessTokenKey), s.key(RefreshTokenKey)).Err(); err != nil {
		return fmt.Errorf("redis clear tokens: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) setOrDel(ctx context.Context, pipe redis.Pipeliner, name, value string) {
	if value == "" {
		pipe.Del(ctx, s.key(name))
		return
	}
	pipe.Set(ctx, s.key(name), value, 0)
}
