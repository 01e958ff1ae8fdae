package models

import "time"

// InterventionType 干预类型
type InterventionType string

const (
	InterventionBreathing InterventionType = "breathing"
	InterventionRest      InterventionType = "rest"
)

// InterventionLog 当天触发的干预
type InterventionLog struct {
	ID          string           `json:"id"`
	Type        InterventionType `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Timestamp   time.Time        `json:"timestamp"`
	Completed   bool             `json:"completed"`
}

// SystemState 某一天的完整快照，按需重算，不持久化
type SystemState struct {
	ID             string            `json:"id"`
	Date           string            `json:"date"`
	Timestamp      time.Time         `json:"timestamp"`
	CHIScore       int               `json:"chi_score"`
	RiskLevel      RiskLevel         `json:"risk_level"`
	SensorSnapshot SensorSnapshot    `json:"sensor_snapshot"`
	CHIResult      CHIResult         `json:"chi_result"`
	FiredRules     []RuleExecution   `json:"fired_rules"` // 全部五条规则的执行结果
	Interventions  []InterventionLog `json:"interventions"`
}
