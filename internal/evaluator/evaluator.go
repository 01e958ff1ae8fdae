package evaluator

import (
	"mindtrack-chi/internal/models"

	"go.uber.org/zap"
)

// Rules 全部知识规则，固定顺序 KR1..KR5
func Rules() []Rule {
	return []Rule{ruleKR1, ruleKR2, ruleKR3, ruleKR4, ruleKR5}
}

// ExecuteAll 依次执行全部规则；history 可为 nil
func ExecuteAll(ctx RuleContext, history *History) []models.RuleExecution {
	return executeRules(Rules(), ctx, history)
}

func executeRules(rules []Rule, ctx RuleContext, history *History) []models.RuleExecution {
	executions := make([]models.RuleExecution, 0, len(rules))
	for _, rule := range rules {
		executions = append(executions, rule.Execute(ctx, history))
	}
	return executions
}

// Evaluator 规则评估器，记录触发情况
type Evaluator struct {
	rules  []Rule
	logger *zap.Logger
}

// NewEvaluator 创建评估器，rules 为空时使用全部规则
func NewEvaluator(logger *zap.Logger, rules ...Rule) *Evaluator {
	if len(rules) == 0 {
		rules = Rules()
	}
	return &Evaluator{rules: rules, logger: logger}
}

// Evaluate 执行规则并记录触发的规则
func (e *Evaluator) Evaluate(date string, ctx RuleContext, history *History) []models.RuleExecution {
	executions := executeRules(e.rules, ctx, history)

	for _, exec := range executions {
		if !exec.Fired {
			continue
		}
		e.logger.Debug("Knowledge rule fired",
			zap.String("date", date),
			zap.String("rule_id", exec.RuleID),
			zap.String("rule_name", exec.RuleName),
			zap.Int("chi_score", ctx.CHIResult.CHIScore),
			zap.Int("history_days", history.Len()),
		)
	}

	return executions
}
