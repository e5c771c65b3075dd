package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisSlot 将槽位保存为 Redis 中的单个 Key，读写均为整段快照。
type RedisSlot struct {
	client redis.UniversalClient
	key    string
}

// NewRedisSlot returns a slot stored under the given Redis key.
func NewRedisSlot(client redis.UniversalClient, key string) *RedisSlot {
	return &RedisSlot{client: client, key: key}
}

// Read returns the value under the key, or (nil, nil) when the key is absent.
func (s *RedisSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read slot %q: %w", s.key, err)
	}
	return data, nil
}

// Write replaces the value under the key. No TTL: slot data is durable.
func (s *RedisSlot) Write(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("write slot %q: %w", s.key, err)
	}
	return nil
}

// Delete removes the key; deleting an absent key succeeds.
func (s *RedisSlot) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("delete slot %q: %w", s.key, err)
	}
	return nil
}
