package bookmarks

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
)

// Store keeps one raw serialized value per key.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	// Update replaces the value with fn's result atomically per key. fn may run more than once.
	Update(ctx context.Context, key string, fn UpdateFunc) error
}

type UpdateFunc func(value string, found bool) (string, error)

// maxUpdateAttempts bounds optimistic retries when other writers keep changing the key.
const maxUpdateAttempts = 100

var ErrUpdateConflict = errors.New("bookmark update kept conflicting")

type RedisStore struct {
	Client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{Client: client}
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores the value without expiry; bookmarks persist across sessions.
func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return r.Client.Set(ctx, key, value, 0).Err()
}

// Update runs fn inside WATCH/MULTI and retries when the key changed underneath it.
func (r *RedisStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	txf := func(tx *redis.Tx) error {
		found := true
		val, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			found, err = false, nil
		}
		if err != nil {
			return err
		}

		next, err := fn(val, found)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateAttempts; i++ {
		err := r.Client.Watch(ctx, txf, key)
		if err != redis.TxFailedErr {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return fmt.Errorf("%s: %w", key, ErrUpdateConflict)
}

// MemoryStore is used when Redis is unreachable and in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Update(_ context.Context, key string, fn UpdateFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	next, err := fn(val, ok)
	if err != nil {
		return err
	}
	m.data[key] = next
	return nil
}
