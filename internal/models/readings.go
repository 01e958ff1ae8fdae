package models

import "time"

// SleepRecord 一晚睡眠记录
type SleepRecord struct {
	ID      string  `json:"id"`
	Date    string  `json:"date"`
	Hours   float64 `json:"hours"`   // 0-24，保留一位小数
	Quality int     `json:"quality"` // 0-100
}

// VoiceSession 语音打卡（可能不存在）
type VoiceSession struct {
	ID             string `json:"id"`
	Date           string `json:"date"`
	StressLevel    int    `json:"stress_level"`
	PitchStability int    `json:"pitch_stability"`
	VolumeEnergy   int    `json:"volume_energy"`
}

// FacialScan 面部扫描（可能不存在）
type FacialScan struct {
	ID             string `json:"id"`
	Date           string `json:"date"`
	FatigueScore   int    `json:"fatigue_score"`
	EyeBlinkRate   int    `json:"eye_blink_rate"` // 次/分钟
	AsymmetryScore int    `json:"asymmetry_score"`
}

// BiometricData 可穿戴设备快照
type BiometricData struct {
	HeartRate   int       `json:"heart_rate"` // bpm
	HRV         int       `json:"hrv"`
	StressLevel int       `json:"stress_level"`
	Steps       int       `json:"steps"`
	LastSync    time.Time `json:"last_sync"`
}

// TextSentiment 文本情绪分析结果
type TextSentiment struct {
	ID               string `json:"id"`
	Date             string `json:"date"`
	SentimentScore   int    `json:"sentiment_score"` // -100..100
	StressIndicators int    `json:"stress_indicators"`
	WordCount        int    `json:"word_count"`
	EmotionalWords   int    `json:"emotional_words"`
}

// SensorSnapshot 某一天的全部传感器读数
// Voice / Facial 为 nil 表示当天没有读数
type SensorSnapshot struct {
	Sleep         SleepRecord   `json:"sleep"`
	Voice         *VoiceSession `json:"voice"`
	Facial        *FacialScan   `json:"facial"`
	Biometrics    BiometricData `json:"biometrics"`
	TextSentiment TextSentiment `json:"text_sentiment"`
}
