package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed session registry. Expiry is
// store-enforced via per-key TTL, not application-polled.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "session:",
	}
}

func (r *RedisStore) key(token string) string {
	return r.prefix + token
}

func (r *RedisStore) Put(ctx context.Context, token string, e Entry, ttl time.Duration) error {
	if token == "" || e.UserID == 0 {
		return fmt.Errorf("session: missing token or user_id")
	}
	if ttl <= 0 {
		return fmt.Errorf("session: ttl must be positive")
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("session: failed to marshal: %w", err)
	}

	return r.client.Set(ctx, r.key(token), data, ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, token string) (*Entry, error) {
	val, err := r.client.Get(ctx, r.key(token)).Result()
	if err == redis.Nil {
		return nil, nil // not found
	}
	if err != nil {
		return nil, err
	}

	var e Entry
	if err := json.Unmarshal([]byte(val), &e); err != nil {
		return nil, fmt.Errorf("session: failed to unmarshal: %w", err)
	}

	return &e, nil
}

func (r *RedisStore) Delete(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Del(ctx, r.key(token)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
