package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/julianstephens/tally/internal/constants"
)

// RedisBackend stores each document as a string value. A single SET replaces
// the document atomically.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend parses a redis:// URL and connects.
func NewRedisBackend(rawURL string) (*RedisBackend, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return NewRedisBackendWithClient(redis.NewClient(opts), ""), nil
}

// NewRedisBackendWithClient wraps an existing client. Keys are stored under
// prefix, which allows tests to isolate themselves.
func NewRedisBackendWithClient(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

func (b *RedisBackend) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), constants.StorageTimeout)
}

// Ping verifies the server is reachable.
func (b *RedisBackend) Ping() error {
	ctx, cancel := b.ctx()
	defer cancel()
	return b.client.Ping(ctx).Err()
}

func (b *RedisBackend) Get(key string) ([]byte, error) {
	ctx, cancel := b.ctx()
	defer cancel()

	data, err := b.client.Get(ctx, b.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return data, nil
}

func (b *RedisBackend) Set(key string, data []byte) error {
	ctx, cancel := b.ctx()
	defer cancel()
	return b.client.Set(ctx, b.prefix+key, data, 0).Err()
}

func (b *RedisBackend) Erase(key string) error {
	ctx, cancel := b.ctx()
	defer cancel()
	return b.client.Del(ctx, b.prefix+key).Err()
}

// SetMany writes every document in one MULTI/EXEC transaction.
func (b *RedisBackend) SetMany(docs map[string][]byte) error {
	ctx, cancel := b.ctx()
	defer cancel()

	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, data := range docs {
			pipe.Set(ctx, b.prefix+key, data, 0)
		}
		return nil
	})
	return err
}

// EraseMany removes several keys in one MULTI/EXEC transaction.
func (b *RedisBackend) EraseMany(keys ...string) error {
	ctx, cancel := b.ctx()
	defer cancel()

	_, err := b.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Del(ctx, b.prefix+key)
		}
		return nil
	})
	return err
}

func (b *RedisBackend) Close() error { return b.client.Close() }

func (b *RedisBackend) Location() string {
	return "redis://" + b.client.Options().Addr
}
