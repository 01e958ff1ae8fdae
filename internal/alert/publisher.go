package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	rediscommon "mindtrack-chi/common/redis"
	"mindtrack-chi/internal/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Publisher 告警发布接口
type Publisher interface {
	Publish(ctx context.Context, alert *models.RuleAlert) error
}

// StreamPublisher 将告警写入 Redis Stream
type StreamPublisher struct {
	client *redis.Client
	stream string
	logger *zap.Logger
}

// NewStreamPublisher 创建 Redis Stream 发布者
func NewStreamPublisher(client *redis.Client, stream string, logger *zap.Logger) *StreamPublisher {
	return &StreamPublisher{client: client, stream: stream, logger: logger}
}

// Publish 发布告警
func (p *StreamPublisher) Publish(ctx context.Context, alert *models.RuleAlert) error {
	id, err := rediscommon.PublishJSONToStream(ctx, p.client, p.stream, alert, alert.TriggeredAt)
	if err != nil {
		return fmt.Errorf("failed to publish alert %s to stream: %w", alert.AlertID, err)
	}
	p.logger.Debug("Rule alert published to stream",
		zap.String("stream", p.stream),
		zap.String("message_id", id),
		zap.String("rule_id", alert.RuleID),
	)
	return nil
}

// MQTTClient MQTT 发布能力（*common/mqtt.Client 满足该接口）
type MQTTClient interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
}

// MQTTPublisher 将告警发布到 MQTT 主题 <base>/<rule_id>
type MQTTPublisher struct {
	client    MQTTClient
	baseTopic string
	qos       byte
	logger    *zap.Logger
}

// NewMQTTPublisher 创建 MQTT 发布者
func NewMQTTPublisher(client MQTTClient, baseTopic string, qos byte, logger *zap.Logger) *MQTTPublisher {
	return &MQTTPublisher{
		client:    client,
		baseTopic: strings.TrimSuffix(baseTopic, "/"),
		qos:       qos,
		logger:    logger,
	}
}

// Topic 告警对应的主题
func (p *MQTTPublisher) Topic(alert *models.RuleAlert) string {
	return p.baseTopic + "/" + alert.RuleID
}

// Publish 发布告警
func (p *MQTTPublisher) Publish(ctx context.Context, alert *models.RuleAlert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}
	topic := p.Topic(alert)
	if err := p.client.Publish(topic, p.qos, false, payload); err != nil {
		return err
	}
	p.logger.Debug("Rule alert published to MQTT",
		zap.String("topic", topic),
		zap.String("rule_id", alert.RuleID),
	)
	return nil
}

// MultiPublisher 依次发布到多个目标，返回第一个错误但不中断后续发布
type MultiPublisher []Publisher

// Publish 发布告警
func (m MultiPublisher) Publish(ctx context.Context, alert *models.RuleAlert) error {
	var firstErr error
	for _, p := range m {
		if err := p.Publish(ctx, alert); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
