package evaluator

import (
	"strconv"
	"time"

	"mindtrack-chi/internal/models"
)

// RuleContext 规则评估输入：当天读数 + 融合结果
// 指针字段为 nil 表示当天没有该读数
type RuleContext struct {
	Sleep         *models.SleepRecord
	Voice         *models.VoiceSession
	Facial        *models.FacialScan
	Biometrics    models.BiometricData
	TextSentiment *models.TextSentiment
	CHIResult     models.CHIResult
	Timestamp     time.Time
}

// NewContext 由当天快照构建规则上下文
func NewContext(snap models.SensorSnapshot, chi models.CHIResult, at time.Time) RuleContext {
	sleep := snap.Sleep
	text := snap.TextSentiment
	return RuleContext{
		Sleep:         &sleep,
		Voice:         snap.Voice,
		Facial:        snap.Facial,
		Biometrics:    snap.Biometrics,
		TextSentiment: &text,
		CHIResult:     chi,
		Timestamp:     at,
	}
}

// History 之前若干天的读数（按日期升序），供趋势类规则使用；当前五条规则都不读取
type History struct {
	Snapshots []models.SensorSnapshot
}

// Len 历史天数，nil 安全
func (h *History) Len() int {
	if h == nil {
		return 0
	}
	return len(h.Snapshots)
}

// Rule 一条知识规则：独立的谓词 + 解释生成
type Rule struct {
	ID        string
	Name      string
	Predicate func(ctx RuleContext, history *History) bool
	Explain   func(ctx RuleContext, history *History, fired bool) string
}

// Execute 评估规则，解释每次都从输入重新生成
func (r Rule) Execute(ctx RuleContext, history *History) models.RuleExecution {
	fired := r.Predicate(ctx, history)
	return models.RuleExecution{
		RuleID:      r.ID,
		RuleName:    r.Name,
		Fired:       fired,
		Explanation: r.Explain(ctx, history, fired),
		Timestamp:   ctx.Timestamp,
	}
}

// 阈值
const (
	facialFatigueThreshold   = 60
	voiceStressThreshold     = 65
	biometricStressThreshold = 70
	textStressThreshold      = 70
	textStressHighThreshold  = 75
	negativeSentiment        = -30
	shortSleepHours          = 6.0
	poorSleepQuality         = 60
	stressedSleepQuality     = 50
	systemicOverloadCount    = 2
)

func facialFatigued(ctx RuleContext) bool {
	return ctx.Facial != nil && ctx.Facial.FatigueScore > facialFatigueThreshold
}

func voiceStressed(ctx RuleContext) bool {
	return ctx.Voice != nil && ctx.Voice.StressLevel > voiceStressThreshold
}

func negativeMood(ctx RuleContext) bool {
	return ctx.TextSentiment != nil && ctx.TextSentiment.SentimentScore < negativeSentiment
}

func textStressAbove(ctx RuleContext, threshold int) bool {
	return ctx.TextSentiment != nil && ctx.TextSentiment.StressIndicators > threshold
}

func formatHours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
