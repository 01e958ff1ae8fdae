package pipeline

import (
	"errors"
	"fmt"
	"time"

	"mindtrack-chi/internal/evaluator"
	"mindtrack-chi/internal/fusion"
	"mindtrack-chi/internal/models"
	"mindtrack-chi/internal/synthesizer"

	"go.uber.org/zap"
)

// DateLayout 日期格式 YYYY-MM-DD
const DateLayout = "2006-01-02"

// ErrInvalidDate 日期格式非法
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// ParseDate 校验并解析日期（UTC 零点）
func ParseDate(date string) (time.Time, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return day, nil
}

// Pipeline 日期 → 读数 → 模态评分 → CHI → 规则 的完整流水线
type Pipeline struct {
	engine    *fusion.Engine
	evaluator *evaluator.Evaluator
	logger    *zap.Logger
}

// NewPipeline 创建流水线
func NewPipeline(engine *fusion.Engine, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		engine:    engine,
		evaluator: evaluator.NewEvaluator(logger),
		logger:    logger,
	}
}

// Weights 当前使用的权重表
func (p *Pipeline) Weights() fusion.Weights {
	return p.engine.Weights()
}

// StateForDate 生成某一天的完整状态；同一日期多次调用结果完全一致
func (p *Pipeline) StateForDate(date string) (*models.SystemState, error) {
	if _, err := ParseDate(date); err != nil {
		return nil, err
	}

	// 时间戳由日期推出，不读取系统时钟
	at := synthesizer.At(date, 12, 0)

	snap := synthesizer.Snapshot(date)
	chi, err := p.engine.Calculate(snap, at)
	if err != nil {
		return nil, fmt.Errorf("failed to fuse chi for %s: %w", date, err)
	}

	executions := p.evaluator.Evaluate(date, evaluator.NewContext(snap, chi, at), nil)

	p.logger.Debug("System state computed",
		zap.String("date", date),
		zap.Int("chi_score", chi.CHIScore),
		zap.String("risk_level", string(chi.RiskLevel)),
		zap.Int("fired_rules", len(evaluator.FiredRules(executions))),
	)

	return &models.SystemState{
		ID:             "state_" + date,
		Date:           date,
		Timestamp:      at,
		CHIScore:       chi.CHIScore,
		RiskLevel:      chi.RiskLevel,
		SensorSnapshot: snap,
		CHIResult:      chi,
		FiredRules:     executions,
		Interventions:  synthesizer.Interventions(date),
	}, nil
}

var defaultPipeline = mustDefault()

func mustDefault() *Pipeline {
	engine, err := fusion.NewEngine(fusion.DefaultWeights)
	if err != nil {
		panic(err)
	}
	return NewPipeline(engine, zap.NewNop())
}

// StateForDate 使用默认权重表的流水线
func StateForDate(date string) (*models.SystemState, error) {
	return defaultPipeline.StateForDate(date)
}
