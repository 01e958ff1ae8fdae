package fusion

import (
	"testing"

	"mindtrack-chi/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestScoreSleep(t *testing.T) {
	tests := []struct {
		name        string
		hours       float64
		quality     int
		score       int
		explanation string
	}{
		{"optimal", 8, 90, 90, "Good sleep: 8h with 90% quality"},
		{"short", 5.5, 60, 48, "Insufficient sleep: only 5.5h (target: 7-9h)"},
		{"very short", 4.2, 30, 21, "Insufficient sleep: only 4.2h (target: 7-9h)"},
		{"slightly short", 6.8, 50, 45, "Insufficient sleep: only 6.8h (target: 7-9h)"},
		{"long", 9.5, 80, 72, "Excessive sleep: 9.5h (may indicate fatigue)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ScoreSleep(&models.SleepRecord{Hours: tt.hours, Quality: tt.quality}, 0.35)
			assert.Equal(t, models.ModalitySleep, c.Modality)
			assert.Equal(t, tt.score, c.Score)
			assert.Equal(t, 0.35, c.Weight)
			assert.Equal(t, tt.explanation, c.Explanation)
		})
	}
}

func TestScoreSleep_Missing(t *testing.T) {
	c := ScoreSleep(nil, 0.35)
	assert.Equal(t, NeutralScore, c.Score)
	assert.Equal(t, "No sleep data available", c.Explanation)
}

func TestScoreBiometric(t *testing.T) {
	nominal := ScoreBiometric(models.BiometricData{HeartRate: 72, HRV: 60, StressLevel: 40, Steps: 8000}, 0.25)
	assert.Equal(t, 60, nominal.Score)
	assert.Equal(t, "HR: 72bpm, HRV: 60, Steps: 8000", nominal.Explanation)

	stressed := ScoreBiometric(models.BiometricData{HeartRate: 105, HRV: 28, StressLevel: 75, Steps: 12000}, 0.25)
	assert.Equal(t, 24, stressed.Score)
	assert.Equal(t, "Elevated heart rate. Low HRV (high stress). High stress level. Good physical activity.", stressed.Explanation)

	capped := ScoreBiometric(models.BiometricData{HeartRate: 70, HRV: 50, StressLevel: 0, Steps: 12000}, 0.25)
	assert.Equal(t, 100, capped.Score)

	extreme := ScoreBiometric(models.BiometricData{HeartRate: 45, HRV: 15, StressLevel: 100, Steps: 3000}, 0.25)
	assert.Equal(t, 0, extreme.Score)
	assert.Equal(t, "Low heart rate. Low HRV (high stress). High stress level.", extreme.Explanation)
}

func TestScoreFacial(t *testing.T) {
	healthy := ScoreFacial(&models.FacialScan{FatigueScore: 20, EyeBlinkRate: 15, AsymmetryScore: 5}, 0.2)
	assert.Equal(t, 80, healthy.Score)
	assert.Equal(t, "Facial features appear healthy.", healthy.Explanation)

	mild := ScoreFacial(&models.FacialScan{FatigueScore: 30, EyeBlinkRate: 12, AsymmetryScore: 12}, 0.2)
	assert.Equal(t, 60, mild.Score)
	assert.Equal(t, "Facial features appear healthy.", mild.Explanation)

	strained := ScoreFacial(&models.FacialScan{FatigueScore: 70, EyeBlinkRate: 28, AsymmetryScore: 22}, 0.2)
	assert.Equal(t, 0, strained.Score)
	assert.Equal(t, "High fatigue detected. Elevated blink rate (stress). Facial asymmetry detected.", strained.Explanation)
}

func TestScoreFacial_Missing(t *testing.T) {
	c := ScoreFacial(nil, 0.2)
	assert.Equal(t, models.ModalityFacial, c.Modality)
	assert.Equal(t, 50, c.Score)
	assert.Equal(t, "No facial scan data available", c.Explanation)
}

func TestScoreVoice(t *testing.T) {
	calm := ScoreVoice(&models.VoiceSession{StressLevel: 40, PitchStability: 80, VolumeEnergy: 50}, 0.15)
	assert.Equal(t, 48, calm.Score)
	assert.Equal(t, "Voice stress: 40%", calm.Explanation)

	loud := ScoreVoice(&models.VoiceSession{StressLevel: 20, PitchStability: 90, VolumeEnergy: 85}, 0.15)
	assert.Equal(t, 62, loud.Score)

	strained := ScoreVoice(&models.VoiceSession{StressLevel: 70, PitchStability: 45, VolumeEnergy: 25}, 0.15)
	assert.Equal(t, 0, strained.Score)
	assert.Equal(t, "High stress in voice. Poor pitch stability. Low energy in voice.", strained.Explanation)
}

func TestScoreVoice_Missing(t *testing.T) {
	c := ScoreVoice(nil, 0.15)
	assert.Equal(t, 50, c.Score)
	assert.Equal(t, "No voice session data available", c.Explanation)
}

func TestScoreBehavioral(t *testing.T) {
	c := ScoreBehavioral(0.05)
	assert.Equal(t, models.ModalityBehavioral, c.Modality)
	assert.Equal(t, 75, c.Score)
	assert.Contains(t, c.Explanation, "not yet collected")
}
