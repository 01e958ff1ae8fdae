package alert

import (
	"context"
	"encoding/json"
	"fmt"

	rediscommon "mindtrack-chi/common/redis"
	"mindtrack-chi/internal/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// 每次查询最多回看的流消息数
const streamScanWindow = 1000

// StreamReader 从 Redis Stream 读取已发布的告警（未启用数据库时的告警查询）
type StreamReader struct {
	client *redis.Client
	stream string
	logger *zap.Logger
}

// NewStreamReader 创建告警流读取器
func NewStreamReader(client *redis.Client, stream string, logger *zap.Logger) *StreamReader {
	return &StreamReader{client: client, stream: stream, logger: logger}
}

// ListRuleAlerts 按发布顺序倒序返回告警，date 为空时不过滤日期；重复投递的告警只保留最新一条
func (r *StreamReader) ListRuleAlerts(ctx context.Context, date string, limit int) ([]*models.RuleAlert, error) {
	if limit <= 0 {
		limit = 50
	}

	msgs, err := rediscommon.ReadLatest(ctx, r.client, r.stream, streamScanWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to read alert stream: %w", err)
	}

	alerts := make([]*models.RuleAlert, 0)
	seen := make(map[string]bool)
	for _, msg := range msgs {
		if len(alerts) >= limit {
			break
		}
		raw, ok := msg.Values["data"].(string)
		if !ok {
			continue
		}
		var a models.RuleAlert
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			r.logger.Warn("Skipping malformed alert stream entry",
				zap.String("stream", r.stream),
				zap.String("message_id", msg.ID),
				zap.Error(err),
			)
			continue
		}
		if date != "" && a.Date != date {
			continue
		}
		if seen[a.AlertID] {
			continue
		}
		seen[a.AlertID] = true
		alerts = append(alerts, &a)
	}
	return alerts, nil
}
