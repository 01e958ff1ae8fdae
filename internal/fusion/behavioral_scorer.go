package fusion

import "mindtrack-chi/internal/models"

// BehavioralPlaceholderScore 打字行为尚未采集时的固定分
const BehavioralPlaceholderScore = 75

// ScoreBehavioral 行为评分（打字速度、错字率），目前为占位实现
func ScoreBehavioral(weight float64) models.CHIContribution {
	return models.CHIContribution{
		Modality:    models.ModalityBehavioral,
		Score:       BehavioralPlaceholderScore,
		Weight:      weight,
		Explanation: "Behavioral metrics (typing speed, typos) not yet collected",
	}
}
