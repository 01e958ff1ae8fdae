package fusion

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mindtrack-chi/internal/models"
)

// ErrWeightSum 权重之和不是 100%
var ErrWeightSum = errors.New("modality weights must sum to 100 percent")

// Weights 各模态权重（整数百分比，保证总和精确为 1.0）
type Weights struct {
	Sleep      int `json:"sleep"`
	Biometric  int `json:"biometric"`
	Facial     int `json:"facial"`
	Voice      int `json:"voice"`
	Behavioral int `json:"behavioral"`
}

// DefaultWeights 默认权重表；缺失模态给 50 分且不重新归一化
var DefaultWeights = Weights{
	Sleep:      35,
	Biometric:  25,
	Facial:     20,
	Voice:      15,
	Behavioral: 5,
}

// Percent 返回模态的百分比权重
func (w Weights) Percent(m models.Modality) int {
	switch m {
	case models.ModalitySleep:
		return w.Sleep
	case models.ModalityBiometric:
		return w.Biometric
	case models.ModalityFacial:
		return w.Facial
	case models.ModalityVoice:
		return w.Voice
	case models.ModalityBehavioral:
		return w.Behavioral
	default:
		return 0
	}
}

// Fraction 返回 0-1 的权重
func (w Weights) Fraction(m models.Modality) float64 {
	return float64(w.Percent(m)) / 100
}

// Total 百分比总和
func (w Weights) Total() int {
	return w.Sleep + w.Biometric + w.Facial + w.Voice + w.Behavioral
}

// Validate 校验权重非负且总和为 100
func (w Weights) Validate() error {
	for _, m := range models.Modalities {
		if w.Percent(m) < 0 {
			return fmt.Errorf("negative weight for %s: %d", m, w.Percent(m))
		}
	}
	if total := w.Total(); total != 100 {
		return fmt.Errorf("%w: got %d", ErrWeightSum, total)
	}
	return nil
}

// String 与 ParseWeights 互逆
func (w Weights) String() string {
	parts := make([]string, 0, len(models.Modalities))
	for _, m := range models.Modalities {
		parts = append(parts, fmt.Sprintf("%s=%d", m, w.Percent(m)))
	}
	return strings.Join(parts, ",")
}

// Tag 权重表的短标识（String 的 sha1 前 8 位），用于区分不同权重表的缓存
func (w Weights) Tag() string {
	sum := sha1.Sum([]byte(w.String()))
	return hex.EncodeToString(sum[:4])
}

// ParseWeights 解析 "sleep=35,biometric=25,..."，未出现的模态沿用默认值
func ParseWeights(s string) (Weights, error) {
	w := DefaultWeights
	if strings.TrimSpace(s) == "" {
		return w, nil
	}

	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return Weights{}, fmt.Errorf("invalid weight entry %q", pair)
		}
		pct, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return Weights{}, fmt.Errorf("invalid weight for %s: %w", key, err)
		}
		switch models.Modality(strings.ToLower(strings.TrimSpace(key))) {
		case models.ModalitySleep:
			w.Sleep = pct
		case models.ModalityBiometric:
			w.Biometric = pct
		case models.ModalityFacial:
			w.Facial = pct
		case models.ModalityVoice:
			w.Voice = pct
		case models.ModalityBehavioral:
			w.Behavioral = pct
		default:
			return Weights{}, fmt.Errorf("unknown modality %q", key)
		}
	}

	if err := w.Validate(); err != nil {
		return Weights{}, err
	}
	return w, nil
}
