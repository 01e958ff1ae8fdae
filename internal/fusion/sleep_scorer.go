package fusion

import (
	"fmt"
	"strconv"

	"mindtrack-chi/internal/calc"
	"mindtrack-chi/internal/models"
)

// ScoreSleep 睡眠评分：7-9h 最佳，再乘以质量系数
func ScoreSleep(sleep *models.SleepRecord, weight float64) models.CHIContribution {
	if sleep == nil {
		return neutral(models.ModalitySleep, weight, "No sleep data available")
	}

	score := 100.0
	switch h := sleep.Hours; {
	case h < 5:
		score -= 30
	case h < 6:
		score -= 20
	case h < 7:
		score -= 10
	case h <= 9:
		score = 100
	default:
		score -= 10
	}
	score *= float64(sleep.Quality) / 100

	hours := strconv.FormatFloat(sleep.Hours, 'f', -1, 64)
	var explanation string
	switch {
	case sleep.Hours >= 7 && sleep.Hours <= 9:
		explanation = fmt.Sprintf("Good sleep: %sh with %d%% quality", hours, sleep.Quality)
	case sleep.Hours < 7:
		explanation = fmt.Sprintf("Insufficient sleep: only %sh (target: 7-9h)", hours)
	default:
		explanation = fmt.Sprintf("Excessive sleep: %sh (may indicate fatigue)", hours)
	}

	return models.CHIContribution{
		Modality:    models.ModalitySleep,
		Score:       calc.Round(calc.Clamp(score, 0, 100)),
		Weight:      weight,
		Explanation: explanation,
	}
}

// neutral 缺失读数时的中性贡献
func neutral(m models.Modality, weight float64, explanation string) models.CHIContribution {
	return models.CHIContribution{
		Modality:    m,
		Score:       NeutralScore,
		Weight:      weight,
		Explanation: explanation,
	}
}
