package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces TripWise slots inside a shared Redis database.
const DefaultRedisPrefix = "tripwise:"

// RedisStore keeps each slot as a Redis string under Prefix+key.
type RedisStore struct {
	client redis.Cmdable
	prefix string
}

// NewRedisStore wraps a connected client. An empty prefix selects
// DefaultRedisPrefix.
func NewRedisStore(client redis.Cmdable, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// DialRedis connects to addr and verifies the connection with a ping.
func DialRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func (s *RedisStore) redisKey(key Key) string {
	return s.prefix + string(key)
}

func (s *RedisStore) Read(ctx context.Context, key Key) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	v, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read slot %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStore) Write(ctx context.Context, key Key, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.redisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Remove(ctx context.Context, key Key) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("remove slot %s: %w", key, err)
	}
	return nil
}
