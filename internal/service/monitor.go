package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mindtrack-chi/internal/aggregator"
	"mindtrack-chi/internal/alert"
	"mindtrack-chi/internal/models"
	"mindtrack-chi/internal/pipeline"

	"go.uber.org/zap"
)

// AlertStore 规则告警持久化（由 repository.RuleAlertRepository 实现）
type AlertStore interface {
	CreateRuleAlert(ctx context.Context, alert *models.RuleAlert) (bool, error)
	IsRuleAlertPublished(ctx context.Context, alertID string) (bool, error)
	MarkRuleAlertPublished(ctx context.Context, alertID string, at time.Time) error
}

// MonitorService 定时计算当天状态，对触发的规则记录并发布告警
type MonitorService struct {
	source    aggregator.StateSource
	store     AlertStore      // 可为 nil
	publisher alert.Publisher // 可为 nil
	interval  time.Duration
	now       func() time.Time
	logger    *zap.Logger

	mu        sync.Mutex
	processed string // 已处理的最后一个日期
}

// NewMonitorService 创建监控服务
func NewMonitorService(
	source aggregator.StateSource,
	store AlertStore,
	publisher alert.Publisher,
	interval time.Duration,
	logger *zap.Logger,
) *MonitorService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &MonitorService{
		source:    source,
		store:     store,
		publisher: publisher,
		interval:  interval,
		now:       time.Now,
		logger:    logger,
	}
}

// Start 启动轮询，首次立即执行一次
func (m *MonitorService) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.logger.Info("Starting CHI monitor",
		zap.Duration("interval", m.interval),
	)

	m.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.tick(ctx)
		}
	}
}

func (m *MonitorService) tick(ctx context.Context) {
	date := m.now().UTC().Format(pipeline.DateLayout)
	if _, err := m.ProcessDate(ctx, date); err != nil {
		m.logger.Error("Failed to process date", zap.String("date", date), zap.Error(err))
	}
}

// ProcessDate 处理某一天，同一日期在进程内只处理一次；返回处理的告警数
func (m *MonitorService) ProcessDate(ctx context.Context, date string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if date == m.processed {
		return 0, nil
	}

	state, err := m.source.StateForDate(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("failed to compute state: %w", err)
	}

	alerts, err := alert.BuildRuleAlerts(state)
	if err != nil {
		return 0, err
	}

	// 投递失败的日期不标记为已处理，下一轮重试；已发布的告警不会重复发布
	var firstErr error
	failed := 0
	for _, a := range alerts {
		if err := m.handle(ctx, a); err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr != nil {
		return len(alerts) - failed, fmt.Errorf("failed to deliver %d of %d rule alerts: %w", failed, len(alerts), firstErr)
	}

	m.processed = date
	m.logger.Info("CHI monitor processed date",
		zap.String("date", date),
		zap.Int("chi_score", state.CHIScore),
		zap.String("risk_level", string(state.RiskLevel)),
		zap.Int("alerts", len(alerts)),
	)
	return len(alerts), nil
}

// handle 记录并发布一条告警；返回非 nil 表示需要重试
func (m *MonitorService) handle(ctx context.Context, a *models.RuleAlert) error {
	stored := false
	if m.store != nil {
		inserted, err := m.store.CreateRuleAlert(ctx, a)
		switch {
		case err != nil:
			// 存储不可用时仍然发布
			m.logger.Error("Failed to store rule alert",
				zap.String("alert_id", a.AlertID),
				zap.String("rule_id", a.RuleID),
				zap.Error(err),
			)
		case inserted:
			stored = true
		default:
			// 已记录过（例如进程重启），只有未发布成功的才重新发布
			published, err := m.store.IsRuleAlertPublished(ctx, a.AlertID)
			if err != nil {
				return err
			}
			if published {
				return nil
			}
			stored = true
		}
	}

	if m.publisher == nil {
		return nil
	}
	if err := m.publisher.Publish(ctx, a); err != nil {
		m.logger.Error("Failed to publish rule alert",
			zap.String("alert_id", a.AlertID),
			zap.String("rule_id", a.RuleID),
			zap.Error(err),
		)
		return err
	}

	if stored {
		if err := m.store.MarkRuleAlertPublished(ctx, a.AlertID, m.now().UTC()); err != nil {
			m.logger.Error("Failed to mark rule alert published",
				zap.String("alert_id", a.AlertID),
				zap.String("rule_id", a.RuleID),
				zap.Error(err),
			)
		}
	}
	return nil
}
