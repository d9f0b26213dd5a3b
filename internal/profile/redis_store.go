package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one hash per owner, keyed profile:<owner>.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func hashKey(owner string) string {
	return "profile:" + owner
}

func (s *RedisStore) Get(ctx context.Context, field, owner string) (string, bool, error) {
	value, err := s.client.HGet(ctx, hashKey(owner), field).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read profile field %s: %w", field, err)
	}
	return value, true, nil
}

func (s *RedisStore) GetAll(ctx context.Context, owner string) (map[string]string, error) {
	values, err := s.client.HGetAll(ctx, hashKey(owner)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read profile of %s: %w", owner, err)
	}
	return values, nil
}

func (s *RedisStore) Set(ctx context.Context, field, owner, value string) error {
	if err := s.client.HSet(ctx, hashKey(owner), field, value).Err(); err != nil {
		return fmt.Errorf("failed to write profile field %s: %w", field, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, field, owner string) error {
	if err := s.client.HDel(ctx, hashKey(owner), field).Err(); err != nil {
		return fmt.Errorf("failed to delete profile field %s: %w", field, err)
	}
	return nil
}
