package evaluator

import "fmt"

// KR3 文本压力指标 > 70 → 认知疲劳
var ruleKR3 = Rule{
	ID:   "KR3",
	Name: "Cognitive Fatigue Detection",
	Predicate: func(ctx RuleContext, _ *History) bool {
		return textStressAbove(ctx, textStressThreshold)
	},
	Explain: func(ctx RuleContext, _ *History, fired bool) string {
		if !fired {
			return "Text stress indicators are at normal levels. Cognitive state appears healthy."
		}
		return fmt.Sprintf("Cognitive fatigue detected: Text analysis shows elevated stress indicators (%d%%). "+
			"Word choice and typing patterns suggest mental exhaustion.", ctx.TextSentiment.StressIndicators)
	},
}
