package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"mindtrack-chi/internal/models"

	"go.uber.org/zap"
)

const createRuleAlertsTable = `
	CREATE TABLE IF NOT EXISTS chi_rule_alerts (
		alert_id     UUID PRIMARY KEY,
		date         DATE NOT NULL,
		rule_id      VARCHAR(8) NOT NULL,
		rule_name    VARCHAR(64) NOT NULL,
		alert_level  VARCHAR(16) NOT NULL,
		chi_score    INTEGER NOT NULL,
		risk_level   VARCHAR(16) NOT NULL,
		explanation  TEXT NOT NULL,
		snapshot     JSONB NOT NULL,
		triggered_at TIMESTAMPTZ NOT NULL,
		published_at TIMESTAMPTZ,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// 旧表补齐 published_at 列
const addPublishedAtColumn = `
	ALTER TABLE chi_rule_alerts ADD COLUMN IF NOT EXISTS published_at TIMESTAMPTZ
`

// RuleAlertRepository 规则告警仓库
type RuleAlertRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewRuleAlertRepository 创建规则告警仓库
func NewRuleAlertRepository(db *sql.DB, logger *zap.Logger) *RuleAlertRepository {
	return &RuleAlertRepository{
		db:     db,
		logger: logger,
	}
}

// EnsureSchema 创建 chi_rule_alerts 表（已存在则跳过）
func (r *RuleAlertRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createRuleAlertsTable); err != nil {
		return fmt.Errorf("failed to create chi_rule_alerts table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, addPublishedAtColumn); err != nil {
		return fmt.Errorf("failed to add published_at column: %w", err)
	}
	return nil
}

// CreateRuleAlert 写入规则告警，alert_id 已存在时不做任何修改
// 返回值表示是否真正插入了新行
func (r *RuleAlertRepository) CreateRuleAlert(ctx context.Context, alert *models.RuleAlert) (bool, error) {
	if alert == nil {
		return false, fmt.Errorf("alert is required")
	}
	if alert.AlertID == "" {
		return false, fmt.Errorf("alert_id is required")
	}

	query := `
		INSERT INTO chi_rule_alerts (
			alert_id,
			date,
			rule_id,
			rule_name,
			alert_level,
			chi_score,
			risk_level,
			explanation,
			snapshot,
			triggered_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		ON CONFLICT (alert_id) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx,
		query,
		alert.AlertID,
		alert.Date,
		alert.RuleID,
		alert.RuleName,
		alert.AlertLevel,
		alert.CHIScore,
		string(alert.RiskLevel),
		alert.Explanation,
		alert.Snapshot,
		alert.TriggeredAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create rule alert: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		r.logger.Debug("Rule alert already stored",
			zap.String("alert_id", alert.AlertID),
			zap.String("rule_id", alert.RuleID),
		)
	}
	return affected > 0, nil
}

// IsRuleAlertPublished 告警是否已成功发布；不存在的告警视为未发布
func (r *RuleAlertRepository) IsRuleAlertPublished(ctx context.Context, alertID string) (bool, error) {
	query := `SELECT published_at IS NOT NULL FROM chi_rule_alerts WHERE alert_id = $1`

	var published bool
	err := r.db.QueryRowContext(ctx, query, alertID).Scan(&published)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check rule alert %s: %w", alertID, err)
	}
	return published, nil
}

// MarkRuleAlertPublished 记录告警的发布时间
func (r *RuleAlertRepository) MarkRuleAlertPublished(ctx context.Context, alertID string, at time.Time) error {
	query := `UPDATE chi_rule_alerts SET published_at = $2 WHERE alert_id = $1`

	if _, err := r.db.ExecContext(ctx, query, alertID, at); err != nil {
		return fmt.Errorf("failed to mark rule alert %s published: %w", alertID, err)
	}
	return nil
}

// ListRuleAlerts 查询告警，date 为空时返回全部日期，按触发时间倒序
func (r *RuleAlertRepository) ListRuleAlerts(ctx context.Context, date string, limit int) ([]*models.RuleAlert, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT
			alert_id,
			to_char(date, 'YYYY-MM-DD'),
			rule_id,
			rule_name,
			alert_level,
			chi_score,
			risk_level,
			explanation,
			snapshot,
			triggered_at
		FROM chi_rule_alerts
		WHERE ($1 = '' OR date = $1::date)
		ORDER BY triggered_at DESC, rule_id ASC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, date, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list rule alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]*models.RuleAlert, 0)
	for rows.Next() {
		var a models.RuleAlert
		var risk string
		var snapshot []byte
		if err := rows.Scan(
			&a.AlertID,
			&a.Date,
			&a.RuleID,
			&a.RuleName,
			&a.AlertLevel,
			&a.CHIScore,
			&risk,
			&a.Explanation,
			&snapshot,
			&a.TriggeredAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rule alert: %w", err)
		}
		a.RiskLevel = models.RiskLevel(risk)
		a.Snapshot = string(snapshot)
		alerts = append(alerts, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rule alerts: %w", err)
	}

	return alerts, nil
}
