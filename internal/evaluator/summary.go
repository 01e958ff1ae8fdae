package evaluator

import (
	"fmt"
	"strings"

	"mindtrack-chi/internal/models"
)

// FiredRules 过滤出触发的规则
func FiredRules(executions []models.RuleExecution) []models.RuleExecution {
	fired := make([]models.RuleExecution, 0, len(executions))
	for _, e := range executions {
		if e.Fired {
			fired = append(fired, e)
		}
	}
	return fired
}

// RuleSummary 规则执行结果的一句话摘要
func RuleSummary(executions []models.RuleExecution) string {
	fired := FiredRules(executions)
	if len(fired) == 0 {
		return "No concerning patterns detected. Keep up your current healthy habits."
	}

	names := make([]string, 0, len(fired))
	for _, e := range fired {
		names = append(names, e.RuleName)
	}
	return fmt.Sprintf("%d rule(s) triggered: %s. See rule log for details.", len(fired), strings.Join(names, ", "))
}
