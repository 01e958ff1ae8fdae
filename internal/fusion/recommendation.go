package fusion

import "mindtrack-chi/internal/models"

const defaultRecommendation = "Monitor your health metrics regularly."

var moderateRecommendations = map[models.Modality]string{
	models.ModalitySleep:     "Consider getting more sleep tonight to improve cognitive health.",
	models.ModalityBiometric: "Try some relaxation exercises to reduce stress and improve HRV.",
	models.ModalityFacial:    "You seem fatigued. Take a break and rest your eyes.",
	models.ModalityVoice:     "Your voice suggests stress. Try a breathing exercise.",
}

var riskDescriptors = map[models.RiskLevel]models.RiskDescriptor{
	models.RiskLow: {
		Level: models.RiskLow,
		Label: "Low Risk",
		BG:    "bg-emerald-50",
		Text:  "text-emerald-600",
		Dot:   "bg-emerald-500",
		Hex:   "#10B981",
	},
	models.RiskModerate: {
		Level: models.RiskModerate,
		Label: "Moderate Risk",
		BG:    "bg-amber-50",
		Text:  "text-amber-600",
		Dot:   "bg-amber-500",
		Hex:   "#FBBF24",
	},
	models.RiskHigh: {
		Level: models.RiskHigh,
		Label: "High Risk",
		BG:    "bg-rose-50",
		Text:  "text-rose-600",
		Dot:   "bg-rose-500",
		Hex:   "#F43F5E",
	},
}

// RiskDescriptor 风险等级的展示提示；未知等级返回灰色占位
func RiskDescriptor(level models.RiskLevel) models.RiskDescriptor {
	if d, ok := riskDescriptors[level]; ok {
		return d
	}
	return models.RiskDescriptor{
		Level: level,
		Label: "Unknown",
		BG:    "bg-slate-50",
		Text:  "text-slate-600",
		Dot:   "bg-slate-500",
		Hex:   "#64748B",
	}
}

// RecommendationFor 按风险等级给出建议；Moderate 时针对得分最低的模态
func RecommendationFor(chi models.CHIResult) string {
	switch chi.RiskLevel {
	case models.RiskLow:
		return "Great! Keep maintaining your healthy habits."
	case models.RiskHigh:
		return "Your cognitive load is high. Please take immediate action: rest, hydrate, and consider a 15-minute break."
	case models.RiskModerate:
		weakest, ok := WeakestModality(chi)
		if !ok {
			return defaultRecommendation
		}
		if text, ok := moderateRecommendations[weakest]; ok {
			return text
		}
	}
	return defaultRecommendation
}

// WeakestModality 得分最低的模态，同分按 sleep → biometric → facial → voice → behavioral 取第一个
func WeakestModality(chi models.CHIResult) (models.Modality, bool) {
	var (
		weakest models.Modality
		lowest  int
		found   bool
	)
	for _, m := range models.Modalities {
		c, ok := chi.Contribution(m)
		if !ok {
			continue
		}
		if !found || c.Score < lowest {
			weakest, lowest, found = m, c.Score, true
		}
	}
	return weakest, found
}
