package aggregator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"mindtrack-chi/internal/models"

	"go.uber.org/zap"
)

// StateCache 日状态快照缓存（JSON + TTL）
// 状态由 (日期, 权重表) 决定，缓存只是加速，丢失后重新计算即可
type StateCache struct {
	kv     KVStore
	prefix string
	tag    string
	ttl    time.Duration
	logger *zap.Logger
}

// NewStateCache 创建缓存，prefix 如 "chi:state:"，tag 标识权重表（见 fusion.Weights.Tag）
func NewStateCache(kv KVStore, prefix, tag string, ttl time.Duration, logger *zap.Logger) *StateCache {
	return &StateCache{kv: kv, prefix: prefix, tag: tag, ttl: ttl, logger: logger}
}

// Key 日期对应的缓存键：prefix + tag + ":" + date
func (c *StateCache) Key(date string) string {
	if c.tag == "" {
		return c.prefix + date
	}
	return c.prefix + c.tag + ":" + date
}

// Get 读取缓存；不存在时返回 ErrCacheMiss
func (c *StateCache) Get(ctx context.Context, date string) (*models.SystemState, error) {
	raw, err := c.kv.Get(ctx, c.Key(date))
	if err != nil {
		if errors.Is(err, ErrCacheMiss) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cached state: %w", err)
	}

	var state models.SystemState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached state: %w", err)
	}
	return &state, nil
}

// Put 写入缓存
func (c *StateCache) Put(ctx context.Context, state *models.SystemState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := c.kv.Set(ctx, c.Key(state.Date), string(data), c.ttl); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	c.logger.Debug("Cached system state",
		zap.String("date", state.Date),
		zap.String("key", c.Key(state.Date)),
	)
	return nil
}
