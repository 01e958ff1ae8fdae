package aggregator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrCacheMiss 状态快照不在缓存中（或已过期）
var ErrCacheMiss = errors.New("state cache miss")

// KVStore 状态快照的字符串 KV 存储；测试中用内存实现替换 Redis
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// RedisKVStore 快照缓存的 Redis 实现（GET / SET EX）
type RedisKVStore struct {
	client *redis.Client
}

// NewRedisKVStore 创建 Redis 快照存储
func NewRedisKVStore(client *redis.Client) *RedisKVStore {
	return &RedisKVStore{client: client}
}

func (r *RedisKVStore) Get(ctx context.Context, key string) (string, error) {
	snapshot, err := r.client.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", ErrCacheMiss
	case err != nil:
		return "", fmt.Errorf("failed to get %s: %w", key, err)
	}
	return snapshot, nil
}

func (r *RedisKVStore) Set(ctx context.Context, key string, snapshot string, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, snapshot, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
