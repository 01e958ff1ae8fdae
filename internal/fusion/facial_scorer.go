package fusion

import (
	"strings"

	"mindtrack-chi/internal/calc"
	"mindtrack-chi/internal/models"
)

// ScoreFacial 面部评分：疲劳系数，眨眼频率与不对称度扣分
func ScoreFacial(f *models.FacialScan, weight float64) models.CHIContribution {
	if f == nil {
		return neutral(models.ModalityFacial, weight, "No facial scan data available")
	}

	score := 100 * float64(100-f.FatigueScore) / 100

	switch {
	case f.EyeBlinkRate > 25:
		score -= 15
	case f.EyeBlinkRate < 8:
		score -= 10
	}

	switch {
	case f.AsymmetryScore > 20:
		score -= 20
	case f.AsymmetryScore > 10:
		score -= 10
	}

	var sb strings.Builder
	if f.FatigueScore > 60 {
		sb.WriteString("High fatigue detected. ")
	}
	if f.EyeBlinkRate > 25 {
		sb.WriteString("Elevated blink rate (stress). ")
	}
	if f.AsymmetryScore > 15 {
		sb.WriteString("Facial asymmetry detected. ")
	}
	explanation := strings.TrimSpace(sb.String())
	if explanation == "" {
		explanation = "Facial features appear healthy."
	}

	return models.CHIContribution{
		Modality:    models.ModalityFacial,
		Score:       calc.Round(calc.Clamp(score, 0, 100)),
		Weight:      weight,
		Explanation: explanation,
	}
}
