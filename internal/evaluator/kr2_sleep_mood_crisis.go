package evaluator

import (
	"fmt"
	"strings"
)

// KR2 睡眠不足 + 负面情绪/文本高压 → 睡眠与情绪危机
// IF (hours < 6 AND quality < 60) AND (sentiment < -30 OR text stress > 75)
var ruleKR2 = Rule{
	ID:   "KR2",
	Name: "Sleep & Mood Crisis",
	Predicate: func(ctx RuleContext, _ *History) bool {
		return poorSleep(ctx) && (negativeMood(ctx) || textStressAbove(ctx, textStressHighThreshold))
	},
	Explain: func(ctx RuleContext, _ *History, fired bool) string {
		if !fired {
			return "Sleep and mood indicators are within acceptable ranges."
		}
		var details []string
		details = append(details, fmt.Sprintf("sleep: %sh, %d%% quality", formatHours(ctx.Sleep.Hours), ctx.Sleep.Quality))
		if negativeMood(ctx) {
			details = append(details, fmt.Sprintf("negative sentiment: %d", ctx.TextSentiment.SentimentScore))
		}
		if textStressAbove(ctx, textStressHighThreshold) {
			details = append(details, fmt.Sprintf("text stress: %d%%", ctx.TextSentiment.StressIndicators))
		}
		return fmt.Sprintf("CRITICAL: Combined physiological and psychological crisis detected (%s). "+
			"User lacks adequate rest while experiencing negative mood. Immediate support needed.",
			strings.Join(details, ", "))
	},
}

func poorSleep(ctx RuleContext) bool {
	return ctx.Sleep != nil && ctx.Sleep.Hours < shortSleepHours && ctx.Sleep.Quality < poorSleepQuality
}
