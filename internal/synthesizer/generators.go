package synthesizer

import (
	"math"

	"mindtrack-chi/internal/calc"
	"mindtrack-chi/internal/models"
)

// 语音/面部读数出现的概率阈值
const (
	VoicePresenceCutoff  = 0.40
	FacialPresenceCutoff = 0.60
)

// Sleep 睡眠：时长 4-10h，质量受睡眠不足拉低
func Sleep(date string) models.SleepRecord {
	hours := 7 + (Draw(date, SeedSleepHours)-0.5)*3
	quality := 70 + Draw(date, SeedSleepQuality)*25 - (9-hours)*10

	hours = calc.Clamp(hours, 4, 10)
	quality = calc.Clamp(quality, 30, 100)

	return models.SleepRecord{
		ID:      "sleep_" + date,
		Date:    date,
		Hours:   calc.Round1(hours),
		Quality: calc.Round(quality),
	}
}

// Voice 语音会话，约 40% 的日期存在
func Voice(date string) *models.VoiceSession {
	if Draw(date, SeedVoicePresence) >= VoicePresenceCutoff {
		return nil
	}
	return &models.VoiceSession{
		ID:             "voice_" + date,
		Date:           date,
		StressLevel:    calc.Round(10 + Draw(date, SeedVoiceStress)*70),
		PitchStability: calc.Round(50 + (1-Draw(date, SeedVoicePitch))*40),
		VolumeEnergy:   calc.Round(30 + Draw(date, SeedVoiceVolume)*50),
	}
}

// Facial 面部扫描，约 60% 的日期存在
func Facial(date string) *models.FacialScan {
	if Draw(date, SeedFacialPresence) >= FacialPresenceCutoff {
		return nil
	}
	return &models.FacialScan{
		ID:             "facial_" + date,
		Date:           date,
		FatigueScore:   calc.Round(10 + Draw(date, SeedFacialFatigue)*70),
		EyeBlinkRate:   calc.Round(8 + Draw(date, SeedFacialBlink)*22),
		AsymmetryScore: calc.Round(Draw(date, SeedFacialAsymmetry) * 25),
	}
}

// Biometrics 可穿戴数据，压力与 HRV 反相关
func Biometrics(date string) models.BiometricData {
	hrv := calc.Round(25 + Draw(date, SeedHRV)*75)
	stress := calc.Round(80 - float64(hrv)/2 + (Draw(date, SeedBiometricStress)-0.5)*20)

	return models.BiometricData{
		HeartRate:   calc.Round(60 + Draw(date, SeedHeartRate)*40),
		HRV:         hrv,
		StressLevel: calc.ClampInt(stress, 0, 100),
		Steps:       calc.Round(2000 + Draw(date, SeedSteps)*13000),
		LastSync:    At(date, 12, 0),
	}
}

// TextSentiment 文本情绪，压力指标与情绪词数量随情绪变差而上升
func TextSentiment(date string) models.TextSentiment {
	sentiment := calc.Clamp(35+(Draw(date, SeedTextSentiment)-0.5)*80, -100, 100)
	stress := calc.Clamp(50+Draw(date, SeedTextStress)*40-(sentiment/100)*30, 0, 100)
	emotional := Draw(date, SeedTextEmotional) * math.Max(0, (100-sentiment)/2)

	return models.TextSentiment{
		ID:               "text_" + date,
		Date:             date,
		SentimentScore:   calc.Round(sentiment),
		StressIndicators: calc.Round(stress),
		WordCount:        calc.Round(100 + Draw(date, SeedTextWordCount)*400),
		EmotionalWords:   calc.Round(emotional),
	}
}

// Snapshot 当天全部读数
func Snapshot(date string) models.SensorSnapshot {
	return models.SensorSnapshot{
		Sleep:         Sleep(date),
		Voice:         Voice(date),
		Facial:        Facial(date),
		Biometrics:    Biometrics(date),
		TextSentiment: TextSentiment(date),
	}
}
