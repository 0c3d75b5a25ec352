// internal/session/redis.go
package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	fieldToken    = "token"
	fieldUsername = "username"
)

// RedisStore keeps the session in a Redis hash so several terminals share
// one login.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore stores the session under "storefront:session:<profile>".
func NewRedisStore(client *redis.Client, profile string) *RedisStore {
	if profile == "" {
		profile = "default"
	}
	return &RedisStore{client: client, key: "storefront:session:" + profile}
}

func (r *RedisStore) Load(ctx context.Context) (Session, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	return Session{Token: fields[fieldToken], Username: fields[fieldUsername]}, nil
}

func (r *RedisStore) Save(ctx context.Context, s Session) error {
	err := r.client.HSet(ctx, r.key, fieldToken, s.Token, fieldUsername, s.Username).Err()
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
