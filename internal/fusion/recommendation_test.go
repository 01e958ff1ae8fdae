package fusion

import (
	"testing"

	"mindtrack-chi/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRecommendationFor(t *testing.T) {
	low := models.CHIResult{RiskLevel: models.RiskLow, Contributions: contributions(90, 90, 90, 90, 75)}
	assert.Equal(t, "Great! Keep maintaining your healthy habits.", RecommendationFor(low))

	high := models.CHIResult{RiskLevel: models.RiskHigh, Contributions: contributions(20, 30, 40, 10, 75)}
	assert.Contains(t, RecommendationFor(high), "Your cognitive load is high")

	facial := models.CHIResult{RiskLevel: models.RiskModerate, Contributions: contributions(80, 70, 40, 60, 75)}
	assert.Equal(t, "You seem fatigued. Take a break and rest your eyes.", RecommendationFor(facial))

	bio := models.CHIResult{RiskLevel: models.RiskModerate, Contributions: contributions(80, 30, 40, 60, 75)}
	assert.Equal(t, "Try some relaxation exercises to reduce stress and improve HRV.", RecommendationFor(bio))

	// 同分时 sleep 在 voice 之前
	tie := models.CHIResult{RiskLevel: models.RiskModerate, Contributions: contributions(45, 70, 60, 45, 75)}
	assert.Equal(t, "Consider getting more sleep tonight to improve cognitive health.", RecommendationFor(tie))

	voice := models.CHIResult{RiskLevel: models.RiskModerate, Contributions: contributions(80, 70, 60, 45, 75)}
	assert.Equal(t, "Your voice suggests stress. Try a breathing exercise.", RecommendationFor(voice))

	behavioral := models.CHIResult{RiskLevel: models.RiskModerate, Contributions: contributions(90, 90, 90, 90, 75)}
	assert.Equal(t, "Monitor your health metrics regularly.", RecommendationFor(behavioral))

	empty := models.CHIResult{RiskLevel: models.RiskModerate}
	assert.Equal(t, "Monitor your health metrics regularly.", RecommendationFor(empty))
}

func TestWeakestModality(t *testing.T) {
	m, ok := WeakestModality(models.CHIResult{Contributions: contributions(60, 60, 60, 60, 60)})
	assert.True(t, ok)
	assert.Equal(t, models.ModalitySleep, m)

	m, ok = WeakestModality(models.CHIResult{Contributions: contributions(60, 60, 60, 60, 10)})
	assert.True(t, ok)
	assert.Equal(t, models.ModalityBehavioral, m)

	m, ok = WeakestModality(models.CHIResult{Contributions: contributions(60, 60, 60, 60, 10)[2:3]})
	assert.True(t, ok)
	assert.Equal(t, models.ModalityFacial, m)

	_, ok = WeakestModality(models.CHIResult{})
	assert.False(t, ok)
}

func TestRiskDescriptor(t *testing.T) {
	low := RiskDescriptor(models.RiskLow)
	assert.Equal(t, "Low Risk", low.Label)
	assert.Equal(t, "bg-emerald-50", low.BG)
	assert.Equal(t, "#10B981", low.Hex)

	assert.Equal(t, "text-amber-600", RiskDescriptor(models.RiskModerate).Text)
	assert.Equal(t, "bg-rose-500", RiskDescriptor(models.RiskHigh).Dot)
	assert.Equal(t, "Unknown", RiskDescriptor("Severe").Label)
}
