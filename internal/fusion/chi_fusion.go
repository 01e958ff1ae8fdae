package fusion

import (
	"errors"
	"fmt"
	"time"

	"mindtrack-chi/internal/calc"
	"mindtrack-chi/internal/models"
)

// ErrInvariant 分数越界、权重为零等不变量被破坏，属于程序缺陷
var ErrInvariant = errors.New("chi invariant violated")

// NeutralScore 缺失模态的中性分
const NeutralScore = 50

// 风险阈值
const (
	LowRiskThreshold      = 80
	ModerateRiskThreshold = 50
)

// ClassifyRisk 分数 → 风险等级：>=80 Low，>=50 Moderate，其余 High
func ClassifyRisk(score int) models.RiskLevel {
	switch {
	case score >= LowRiskThreshold:
		return models.RiskLow
	case score >= ModerateRiskThreshold:
		return models.RiskModerate
	default:
		return models.RiskHigh
	}
}

// Fuse 加权融合：round(Σ score·w / Σ w)
// 权重换算成万分位做整数运算，避免浮点误差影响 .5 的取整
func Fuse(contributions []models.CHIContribution, at time.Time) (models.CHIResult, error) {
	var weighted, total int64
	for _, c := range contributions {
		if c.Score < 0 || c.Score > 100 {
			return models.CHIResult{}, fmt.Errorf("%w: %s score %d outside [0,100]", ErrInvariant, c.Modality, c.Score)
		}
		bp := int64(calc.Round(c.Weight * 10000))
		if bp < 0 {
			return models.CHIResult{}, fmt.Errorf("%w: %s weight %v is negative", ErrInvariant, c.Modality, c.Weight)
		}
		weighted += int64(c.Score) * bp
		total += bp
	}
	if total == 0 {
		return models.CHIResult{}, fmt.Errorf("%w: total weight is zero", ErrInvariant)
	}

	// 非负整数的四舍五入
	score := int((2*weighted + total) / (2 * total))
	score = calc.ClampInt(score, 0, 100)

	return models.CHIResult{
		CHIScore:      score,
		Contributions: contributions,
		RiskLevel:     ClassifyRisk(score),
		Timestamp:     at,
	}, nil
}

// Engine 按固定权重表对一天的读数评分并融合
type Engine struct {
	weights Weights
}

// NewEngine 创建融合引擎，权重表必须合法
func NewEngine(weights Weights) (*Engine, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	return &Engine{weights: weights}, nil
}

// Weights 当前权重表
func (e *Engine) Weights() Weights {
	return e.weights
}

// Contributions 依次计算 sleep → biometric → facial → voice → behavioral 的贡献
func (e *Engine) Contributions(snap models.SensorSnapshot) []models.CHIContribution {
	sleep := snap.Sleep
	return []models.CHIContribution{
		ScoreSleep(&sleep, e.weights.Fraction(models.ModalitySleep)),
		ScoreBiometric(snap.Biometrics, e.weights.Fraction(models.ModalityBiometric)),
		ScoreFacial(snap.Facial, e.weights.Fraction(models.ModalityFacial)),
		ScoreVoice(snap.Voice, e.weights.Fraction(models.ModalityVoice)),
		ScoreBehavioral(e.weights.Fraction(models.ModalityBehavioral)),
	}
}

// Calculate 评分并融合
func (e *Engine) Calculate(snap models.SensorSnapshot, at time.Time) (models.CHIResult, error) {
	return Fuse(e.Contributions(snap), at)
}
