package alert

import (
	"encoding/json"
	"fmt"

	"mindtrack-chi/internal/models"

	"github.com/google/uuid"
)

// alertNamespace 告警ID命名空间（同一天同一规则始终得到同一个ID）
var alertNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("mindtrack-chi/rule-alerts"))

// AlertID 根据日期和规则ID生成确定性的告警ID
func AlertID(date, ruleID string) string {
	return uuid.NewSHA1(alertNamespace, []byte(date+"/"+ruleID)).String()
}

// LevelFor 规则告警级别：KR2 / KR5 为 CRITICAL，其余为 WARNING
func LevelFor(ruleID string) string {
	switch ruleID {
	case "KR2", "KR5":
		return models.AlertLevelCritical
	default:
		return models.AlertLevelWarning
	}
}

// BuildRuleAlerts 为当天每条触发的规则构建一条告警
func BuildRuleAlerts(state *models.SystemState) ([]*models.RuleAlert, error) {
	if state == nil {
		return nil, fmt.Errorf("state is required")
	}

	// 序列化 sensor_snapshot
	snapshotJSON, err := json.Marshal(state.SensorSnapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sensor snapshot: %w", err)
	}

	alerts := make([]*models.RuleAlert, 0, len(state.FiredRules))
	for _, exec := range state.FiredRules {
		if !exec.Fired {
			continue
		}
		alerts = append(alerts, &models.RuleAlert{
			AlertID:     AlertID(state.Date, exec.RuleID),
			Date:        state.Date,
			RuleID:      exec.RuleID,
			RuleName:    exec.RuleName,
			AlertLevel:  LevelFor(exec.RuleID),
			CHIScore:    state.CHIScore,
			RiskLevel:   state.RiskLevel,
			Explanation: exec.Explanation,
			Snapshot:    string(snapshotJSON),
			TriggeredAt: state.Timestamp,
		})
	}
	return alerts, nil
}
