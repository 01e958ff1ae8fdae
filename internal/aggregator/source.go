package aggregator

import (
	"context"
	"errors"

	"mindtrack-chi/internal/models"
	"mindtrack-chi/internal/pipeline"

	"go.uber.org/zap"
)

// StateSource 按日期提供完整状态
type StateSource interface {
	StateForDate(ctx context.Context, date string) (*models.SystemState, error)
}

// StateSourceFunc 函数适配
type StateSourceFunc func(ctx context.Context, date string) (*models.SystemState, error)

func (f StateSourceFunc) StateForDate(ctx context.Context, date string) (*models.SystemState, error) {
	return f(ctx, date)
}

// FromPipeline 直接调用流水线，不经过缓存
func FromPipeline(p *pipeline.Pipeline) StateSource {
	return StateSourceFunc(func(_ context.Context, date string) (*models.SystemState, error) {
		return p.StateForDate(date)
	})
}

// CachingSource 先查缓存，未命中时计算并回填；缓存故障只记日志
type CachingSource struct {
	next   StateSource
	cache  *StateCache
	logger *zap.Logger
}

// NewCachingSource 创建带缓存的状态源
func NewCachingSource(next StateSource, cache *StateCache, logger *zap.Logger) *CachingSource {
	return &CachingSource{next: next, cache: cache, logger: logger}
}

func (s *CachingSource) StateForDate(ctx context.Context, date string) (*models.SystemState, error) {
	// 非法日期不落缓存
	if _, err := pipeline.ParseDate(date); err != nil {
		return nil, err
	}

	state, err := s.cache.Get(ctx, date)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		s.logger.Warn("Failed to read state cache, recomputing",
			zap.String("date", date),
			zap.Error(err),
		)
	}

	state, err = s.next.StateForDate(ctx, date)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Put(ctx, state); err != nil {
		s.logger.Warn("Failed to write state cache",
			zap.String("date", date),
			zap.Error(err),
		)
	}
	return state, nil
}
