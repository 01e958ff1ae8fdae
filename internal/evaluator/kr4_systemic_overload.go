package evaluator

import (
	"fmt"
	"strings"
)

// KR4 五个模态中至少两个处于压力状态 → 系统性过载
var ruleKR4 = Rule{
	ID:   "KR4",
	Name: "Systemic Overload (5 Modalities)",
	Predicate: func(ctx RuleContext, _ *History) bool {
		return len(stressedModalities(ctx)) >= systemicOverloadCount
	},
	Explain: func(ctx RuleContext, _ *History, fired bool) string {
		stressed := stressedModalities(ctx)
		if fired {
			return fmt.Sprintf("ALERT: %d stressed modalities detected (%s). Systemic overload indicated. Intervention needed.",
				len(stressed), strings.Join(stressed, ", "))
		}
		if len(stressed) == 0 {
			return "Only 0 stressed modality/ies. Current stress is localized or manageable."
		}
		return fmt.Sprintf("Only %d stressed modality/ies (%s). Current stress is localized or manageable.",
			len(stressed), strings.Join(stressed, ", "))
	},
}

// stressedModalities 依次检查 facial / voice / biometric / sleep / text，返回带数值的描述
func stressedModalities(ctx RuleContext) []string {
	var stressed []string

	if facialFatigued(ctx) {
		stressed = append(stressed, fmt.Sprintf("facial (fatigue: %d%%)", ctx.Facial.FatigueScore))
	}
	if voiceStressed(ctx) {
		stressed = append(stressed, fmt.Sprintf("voice (stress: %d%%)", ctx.Voice.StressLevel))
	}
	if ctx.Biometrics.StressLevel > biometricStressThreshold {
		stressed = append(stressed, fmt.Sprintf("biometric (stress: %d%%)", ctx.Biometrics.StressLevel))
	}
	if s := ctx.Sleep; s != nil && (s.Hours < shortSleepHours || s.Quality < stressedSleepQuality) {
		stressed = append(stressed, fmt.Sprintf("sleep (%sh, %d%% quality)", formatHours(s.Hours), s.Quality))
	}
	if negativeMood(ctx) || textStressAbove(ctx, textStressThreshold) {
		stressed = append(stressed, fmt.Sprintf("text (sentiment: %d, stress: %d%%)",
			ctx.TextSentiment.SentimentScore, ctx.TextSentiment.StressIndicators))
	}

	return stressed
}
