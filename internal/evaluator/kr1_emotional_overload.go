package evaluator

import "fmt"

// KR1 面部疲劳 + 语音压力 → 情绪过载
// IF facial.fatigue > 60 AND voice.stress > 65
var ruleKR1 = Rule{
	ID:   "KR1",
	Name: "Emotional Overload",
	Predicate: func(ctx RuleContext, _ *History) bool {
		return facialFatigued(ctx) && voiceStressed(ctx)
	},
	Explain: func(ctx RuleContext, _ *History, fired bool) string {
		if !fired {
			return "Facial and voice metrics are within acceptable ranges."
		}
		return fmt.Sprintf("High facial fatigue (%d%%) combined with high voice stress (%d%%) indicates significant emotional strain.",
			ctx.Facial.FatigueScore, ctx.Voice.StressLevel)
	},
}
