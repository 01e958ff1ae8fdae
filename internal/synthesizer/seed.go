package synthesizer

// Seed 随机抽样的种子编号，全系统统一分配，每个用途独占一个编号
type Seed int

const (
	_ Seed = iota
	SeedSleepHours
	SeedSleepQuality
	SeedVoiceStress
	SeedVoicePitch
	SeedVoiceVolume
	SeedFacialFatigue
	SeedFacialBlink
	SeedFacialAsymmetry
	SeedHeartRate
	SeedHRV
	SeedBiometricStress
	SeedSteps
	SeedTextSentiment
	SeedTextStress
	SeedTextWordCount
	SeedTextEmotional
	SeedVoicePresence
	SeedFacialPresence
	SeedInterventionTrigger

	seedCount
)

var seedNames = map[Seed]string{
	SeedSleepHours:          "sleep_hours",
	SeedSleepQuality:        "sleep_quality",
	SeedVoiceStress:         "voice_stress",
	SeedVoicePitch:          "voice_pitch",
	SeedVoiceVolume:         "voice_volume",
	SeedFacialFatigue:       "facial_fatigue",
	SeedFacialBlink:         "facial_blink",
	SeedFacialAsymmetry:     "facial_asymmetry",
	SeedHeartRate:           "heart_rate",
	SeedHRV:                 "hrv",
	SeedBiometricStress:     "biometric_stress",
	SeedSteps:               "steps",
	SeedTextSentiment:       "text_sentiment",
	SeedTextStress:          "text_stress",
	SeedTextWordCount:       "text_word_count",
	SeedTextEmotional:       "text_emotional",
	SeedVoicePresence:       "voice_presence",
	SeedFacialPresence:      "facial_presence",
	SeedInterventionTrigger: "intervention_trigger",
}

// String 返回种子用途名称
func (s Seed) String() string {
	if name, ok := seedNames[s]; ok {
		return name
	}
	return "unknown"
}

// AllSeeds 列出全部已分配的种子
func AllSeeds() []Seed {
	seeds := make([]Seed, 0, int(seedCount)-1)
	for s := Seed(1); s < seedCount; s++ {
		seeds = append(seeds, s)
	}
	return seeds
}
