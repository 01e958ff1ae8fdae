package fusion

import (
	"fmt"
	"strings"

	"mindtrack-chi/internal/calc"
	"mindtrack-chi/internal/models"
)

// ScoreVoice 语音评分：压力与音高稳定度相乘，音量过低/过高扣分
func ScoreVoice(v *models.VoiceSession, weight float64) models.CHIContribution {
	if v == nil {
		return neutral(models.ModalityVoice, weight, "No voice session data available")
	}

	score := 100 * float64(100-v.StressLevel) / 100
	score *= float64(v.PitchStability) / 100

	switch {
	case v.VolumeEnergy < 30:
		score -= 15
	case v.VolumeEnergy > 80:
		score -= 10
	}

	var sb strings.Builder
	if v.StressLevel > 60 {
		sb.WriteString("High stress in voice. ")
	}
	if v.PitchStability < 50 {
		sb.WriteString("Poor pitch stability. ")
	}
	if v.VolumeEnergy < 40 {
		sb.WriteString("Low energy in voice. ")
	}
	explanation := strings.TrimSpace(sb.String())
	if explanation == "" {
		explanation = fmt.Sprintf("Voice stress: %d%%", v.StressLevel)
	}

	return models.CHIContribution{
		Modality:    models.ModalityVoice,
		Score:       calc.Round(calc.Clamp(score, 0, 100)),
		Weight:      weight,
		Explanation: explanation,
	}
}
