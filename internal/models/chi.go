package models

import "time"

// RiskLevel 风险等级
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
)

// Modality 模态
type Modality string

const (
	ModalitySleep      Modality = "sleep"
	ModalityBiometric  Modality = "biometric"
	ModalityFacial     Modality = "facial"
	ModalityVoice      Modality = "voice"
	ModalityBehavioral Modality = "behavioral"
)

// Modalities 固定迭代顺序，同分时按此顺序取第一个
var Modalities = []Modality{
	ModalitySleep,
	ModalityBiometric,
	ModalityFacial,
	ModalityVoice,
	ModalityBehavioral,
}

// CHIContribution 单个模态对 CHI 的贡献
type CHIContribution struct {
	Modality    Modality `json:"modality"`
	Score       int      `json:"score"`  // 0-100
	Weight      float64  `json:"weight"` // 0-1
	Explanation string   `json:"explanation"`
}

// CHIResult 融合结果
type CHIResult struct {
	CHIScore      int               `json:"chi_score"`
	Contributions []CHIContribution `json:"contributions"`
	RiskLevel     RiskLevel         `json:"risk_level"`
	Timestamp     time.Time         `json:"timestamp"`
}

// Contribution 按模态查找贡献
func (r CHIResult) Contribution(m Modality) (CHIContribution, bool) {
	for _, c := range r.Contributions {
		if c.Modality == m {
			return c, true
		}
	}
	return CHIContribution{}, false
}

// RiskDescriptor 风险等级的展示提示
type RiskDescriptor struct {
	Level RiskLevel `json:"level"`
	Label string    `json:"label"`
	BG    string    `json:"bg"`
	Text  string    `json:"text"`
	Dot   string    `json:"dot"`
	Hex   string    `json:"hex"`
}
