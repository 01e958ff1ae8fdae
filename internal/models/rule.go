package models

import "time"

// RuleExecution 单条知识规则的评估结果
type RuleExecution struct {
	RuleID      string    `json:"rule_id"`
	RuleName    string    `json:"rule_name"`
	Fired       bool      `json:"fired"`
	Explanation string    `json:"explanation"`
	Timestamp   time.Time `json:"timestamp"`
}

// AlertLevel 规则告警级别
const (
	AlertLevelCritical = "CRITICAL"
	AlertLevelWarning  = "WARNING"
)

// RuleAlert 规则触发告警（对应 chi_rule_alerts 表，同时发布到 Redis Stream / MQTT）
type RuleAlert struct {
	AlertID     string    `json:"alert_id" db:"alert_id"`
	Date        string    `json:"date" db:"date"`
	RuleID      string    `json:"rule_id" db:"rule_id"`
	RuleName    string    `json:"rule_name" db:"rule_name"`
	AlertLevel  string    `json:"alert_level" db:"alert_level"`
	CHIScore    int       `json:"chi_score" db:"chi_score"`
	RiskLevel   RiskLevel `json:"risk_level" db:"risk_level"`
	Explanation string    `json:"explanation" db:"explanation"`
	Snapshot    string    `json:"snapshot" db:"snapshot"` // JSONB，触发时的传感器快照
	TriggeredAt time.Time `json:"triggered_at" db:"triggered_at"`
}
