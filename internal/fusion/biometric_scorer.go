package fusion

import (
	"fmt"
	"strings"

	"mindtrack-chi/internal/calc"
	"mindtrack-chi/internal/models"
)

// ScoreBiometric 生理指标评分：心率、HRV 扣分后乘以 (100-压力)/100，步数 >10000 奖励 5 分
func ScoreBiometric(b models.BiometricData, weight float64) models.CHIContribution {
	score := 100.0

	switch {
	case b.HeartRate < 50 || b.HeartRate > 120:
		score -= 20
	case b.HeartRate < 60 || b.HeartRate > 100:
		score -= 10
	}

	switch {
	case b.HRV < 20:
		score -= 25
	case b.HRV < 35:
		score -= 15
	case b.HRV > 100:
		score -= 5
	}

	score *= float64(100-b.StressLevel) / 100

	if b.Steps > 10000 {
		score = min(100, score+5)
	}

	var sb strings.Builder
	if b.HeartRate < 60 {
		sb.WriteString("Low heart rate. ")
	}
	if b.HeartRate > 100 {
		sb.WriteString("Elevated heart rate. ")
	}
	if b.HRV < 30 {
		sb.WriteString("Low HRV (high stress). ")
	}
	if b.StressLevel > 70 {
		sb.WriteString("High stress level. ")
	}
	if b.Steps > 10000 {
		sb.WriteString("Good physical activity. ")
	}
	explanation := strings.TrimSpace(sb.String())
	if explanation == "" {
		explanation = fmt.Sprintf("HR: %dbpm, HRV: %d, Steps: %d", b.HeartRate, b.HRV, b.Steps)
	}

	return models.CHIContribution{
		Modality:    models.ModalityBiometric,
		Score:       calc.Round(calc.Clamp(score, 0, 100)),
		Weight:      weight,
		Explanation: explanation,
	}
}
