package models

// TimelineEvent 日视图时间线
type TimelineEvent struct {
	Time  string `json:"time"` // HH:MM
	Type  string `json:"type"`
	Title string `json:"title"`
}

// DailySummary 日视图
type DailySummary struct {
	Date           string          `json:"date"`
	State          *SystemState    `json:"state"`
	Recommendation string          `json:"recommendation"`
	Risk           RiskDescriptor  `json:"risk"`
	FiredRules     []RuleExecution `json:"fired_rules"`
	RuleSummary    string          `json:"rule_summary"`
	Timeline       []TimelineEvent `json:"timeline"`
}

// DailyPoint 趋势图上的一天
type DailyPoint struct {
	Date      string    `json:"date"`
	Day       string    `json:"day"` // 月内日期，如 "07"
	CHIScore  int       `json:"chi_score"`
	RiskLevel RiskLevel `json:"risk_level"`
}

// PeriodStats 区间均值
type PeriodStats struct {
	AvgCHI    int     `json:"avg_chi"`
	AvgSleep  float64 `json:"avg_sleep"` // 一位小数
	AvgHRV    int     `json:"avg_hrv"`
	AvgStress int     `json:"avg_stress"`
}

// RiskCounts 风险等级计数
type RiskCounts struct {
	Low      int `json:"low"`
	Moderate int `json:"moderate"`
	High     int `json:"high"`
}

// Direction 环比方向
type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
)

// Comparison 与上一个等长区间的对比
type Comparison struct {
	PreviousAvgCHI int       `json:"previous_avg_chi"`
	Percentage     float64   `json:"percentage"` // 带符号，一位小数
	Direction      Direction `json:"direction"`
}

// RuleContributor 周内触发次数最多的规则
type RuleContributor struct {
	RuleName string `json:"rule_name"`
	Count    int    `json:"count"`
}

// WeeklySummary 周视图（以 EndDate 结尾的 7 天）
type WeeklySummary struct {
	StartDate        string            `json:"start_date"`
	EndDate          string            `json:"end_date"`
	Days             []DailyPoint      `json:"days"`
	Stats            PeriodStats       `json:"stats"`
	RiskCounts       RiskCounts        `json:"risk_counts"`
	HighRiskDays     int               `json:"high_risk_days"`
	LongestLowStreak int               `json:"longest_low_streak"`
	TopContributors  []RuleContributor `json:"top_contributors"`
	Comparison       Comparison        `json:"comparison"`
}

// RiskSlice 风险分布中的一块
type RiskSlice struct {
	Level RiskLevel `json:"level"`
	Count int       `json:"count"`
	Hex   string    `json:"hex"`
}

// MonthlySummary 月视图（自然月）
type MonthlySummary struct {
	Month            string       `json:"month"` // 如 "March"
	Year             int          `json:"year"`
	StartDate        string       `json:"start_date"`
	EndDate          string       `json:"end_date"`
	Days             []DailyPoint `json:"days"`
	CHITrend         []DailyPoint `json:"chi_trend"` // 每 3 天采样一次，另加最后一天
	Stats            PeriodStats  `json:"stats"`
	RiskCounts       RiskCounts   `json:"risk_counts"`
	RiskDistribution []RiskSlice  `json:"risk_distribution"`
	HighRiskDays     int          `json:"high_risk_days"`
	LongestLowStreak int          `json:"longest_low_streak"`
	Comparison       Comparison   `json:"comparison"`
}
