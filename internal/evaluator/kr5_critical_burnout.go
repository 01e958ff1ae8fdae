package evaluator

import (
	"fmt"
	"strings"
)

// KR5 四个条件同时成立 → 严重倦怠
//  1. facial.fatigue > 60 OR sentiment < -30
//  2. voice.stress > 65
//  3. text stress > 75
//  4. text stress > 70
var ruleKR5 = Rule{
	ID:   "KR5",
	Name: "Critical Burnout Alert",
	Predicate: func(ctx RuleContext, _ *History) bool {
		return (facialFatigued(ctx) || negativeMood(ctx)) &&
			voiceStressed(ctx) &&
			textStressAbove(ctx, textStressHighThreshold) &&
			textStressAbove(ctx, textStressThreshold)
	},
	Explain: func(ctx RuleContext, _ *History, fired bool) string {
		emotional := facialFatigued(ctx) || negativeMood(ctx)
		voice := voiceStressed(ctx)
		textHigh := textStressAbove(ctx, textStressHighThreshold)
		cognitive := textStressAbove(ctx, textStressThreshold)

		if !fired {
			return fmt.Sprintf("Burnout risk assessment: %s Negative emotion, %s Stressed voice, %s High text stress, %s Cognitive fatigue. Not all conditions present.",
				mark(emotional), mark(voice), mark(textHigh), mark(cognitive))
		}

		var conditions []string
		if facialFatigued(ctx) {
			conditions = append(conditions, fmt.Sprintf("facial fatigue: %d%%", ctx.Facial.FatigueScore))
		}
		if negativeMood(ctx) {
			conditions = append(conditions, fmt.Sprintf("text sentiment: %d", ctx.TextSentiment.SentimentScore))
		}
		conditions = append(conditions,
			fmt.Sprintf("voice stress: %d%%", ctx.Voice.StressLevel),
			fmt.Sprintf("text stress: %d%%", ctx.TextSentiment.StressIndicators),
		)
		return fmt.Sprintf("CRITICAL: All four burnout indicators present (%s). User is in severe psychological distress. "+
			"IMMEDIATE intervention required: breathing exercise, rest, professional support.", strings.Join(conditions, ", "))
	},
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
