package synthesizer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dateRange 生成 [start, start+days) 的日期字符串
func dateRange(t *testing.T, start string, days int) []string {
	t.Helper()
	day, err := time.Parse(dateLayout, start)
	require.NoError(t, err)
	dates := make([]string, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, day.AddDate(0, 0, i).Format(dateLayout))
	}
	return dates
}

func TestAllSeeds_Unique(t *testing.T) {
	seeds := AllSeeds()
	require.Len(t, seeds, 19)

	seen := make(map[Seed]bool)
	names := make(map[string]bool)
	for _, s := range seeds {
		assert.False(t, seen[s], "seed %d allocated twice", s)
		seen[s] = true
		assert.NotEqual(t, "unknown", s.String())
		assert.False(t, names[s.String()], "seed name %s reused", s)
		names[s.String()] = true
	}
}

func TestDraw_DeterministicAndBounded(t *testing.T) {
	for _, date := range dateRange(t, "2023-01-01", 400) {
		for _, s := range AllSeeds() {
			r := Draw(date, s)
			assert.GreaterOrEqual(t, r, 0.0)
			assert.Less(t, r, 1.0)
			assert.Equal(t, r, Draw(date, s))
		}
	}
}

func TestDraw_UnparseableDate(t *testing.T) {
	assert.Equal(t, int64(20240310), dateNumber("2024-03-10"))
	assert.Equal(t, int64(0), dateNumber("not-a-date"))
	assert.Equal(t, 0.0, Draw("not-a-date", SeedSleepHours))
}

func TestSleep_ExampleDate(t *testing.T) {
	first := Sleep("2024-03-10")
	second := Sleep("2024-03-10")

	assert.Equal(t, first, second)
	assert.Equal(t, "sleep_2024-03-10", first.ID)
	assert.GreaterOrEqual(t, first.Hours, 4.0)
	assert.LessOrEqual(t, first.Hours, 10.0)
	assert.GreaterOrEqual(t, first.Quality, 30)
	assert.LessOrEqual(t, first.Quality, 100)
}

func TestReadings_Ranges(t *testing.T) {
	for _, date := range dateRange(t, "2024-01-01", 366) {
		snap := Snapshot(date)

		assert.GreaterOrEqual(t, snap.Sleep.Hours, 4.0)
		assert.LessOrEqual(t, snap.Sleep.Hours, 10.0)
		assert.Equal(t, snap.Sleep.Hours, float64(int(snap.Sleep.Hours*10+0.5))/10, "hours keep one decimal")
		assert.GreaterOrEqual(t, snap.Sleep.Quality, 30)
		assert.LessOrEqual(t, snap.Sleep.Quality, 100)

		if v := snap.Voice; v != nil {
			assert.GreaterOrEqual(t, v.StressLevel, 10)
			assert.LessOrEqual(t, v.StressLevel, 80)
			assert.GreaterOrEqual(t, v.PitchStability, 50)
			assert.LessOrEqual(t, v.PitchStability, 90)
			assert.GreaterOrEqual(t, v.VolumeEnergy, 30)
			assert.LessOrEqual(t, v.VolumeEnergy, 80)
		}
		if f := snap.Facial; f != nil {
			assert.GreaterOrEqual(t, f.FatigueScore, 10)
			assert.LessOrEqual(t, f.FatigueScore, 80)
			assert.GreaterOrEqual(t, f.EyeBlinkRate, 8)
			assert.LessOrEqual(t, f.EyeBlinkRate, 30)
			assert.GreaterOrEqual(t, f.AsymmetryScore, 0)
			assert.LessOrEqual(t, f.AsymmetryScore, 25)
		}

		b := snap.Biometrics
		assert.GreaterOrEqual(t, b.HeartRate, 60)
		assert.LessOrEqual(t, b.HeartRate, 100)
		assert.GreaterOrEqual(t, b.HRV, 25)
		assert.LessOrEqual(t, b.HRV, 100)
		assert.GreaterOrEqual(t, b.StressLevel, 0)
		assert.LessOrEqual(t, b.StressLevel, 100)
		assert.GreaterOrEqual(t, b.Steps, 2000)
		assert.LessOrEqual(t, b.Steps, 15000)
		assert.Equal(t, date+"T12:00:00Z", b.LastSync.Format(time.RFC3339))

		ts := snap.TextSentiment
		assert.GreaterOrEqual(t, ts.SentimentScore, -5)
		assert.LessOrEqual(t, ts.SentimentScore, 75)
		assert.GreaterOrEqual(t, ts.StressIndicators, 0)
		assert.LessOrEqual(t, ts.StressIndicators, 100)
		assert.GreaterOrEqual(t, ts.WordCount, 100)
		assert.LessOrEqual(t, ts.WordCount, 500)
		assert.GreaterOrEqual(t, ts.EmotionalWords, 0)
	}
}

func TestPresence_Rates(t *testing.T) {
	dates := dateRange(t, "2023-01-01", 730)
	voice, facial := 0, 0
	for _, date := range dates {
		if Voice(date) != nil {
			voice++
		}
		if Facial(date) != nil {
			facial++
		}
	}

	voiceRate := float64(voice) / float64(len(dates))
	facialRate := float64(facial) / float64(len(dates))
	assert.InDelta(t, 0.40, voiceRate, 0.10)
	assert.InDelta(t, 0.60, facialRate, 0.10)
}

func TestPresence_MatchesCutoff(t *testing.T) {
	for _, date := range dateRange(t, "2024-02-01", 60) {
		assert.Equal(t, Draw(date, SeedVoicePresence) < VoicePresenceCutoff, Voice(date) != nil)
		assert.Equal(t, Draw(date, SeedFacialPresence) < FacialPresenceCutoff, Facial(date) != nil)
	}
}

func TestInterventions(t *testing.T) {
	for _, date := range dateRange(t, "2024-01-01", 120) {
		r := Draw(date, SeedInterventionTrigger)
		logs := Interventions(date)

		switch {
		case r < 0.3:
			require.Len(t, logs, 1)
			assert.Equal(t, "int_breathing_"+date, logs[0].ID)
			assert.Equal(t, date+"T14:30:00Z", logs[0].Timestamp.Format(time.RFC3339))
		case r < 0.5:
			require.Len(t, logs, 1)
			assert.Equal(t, "Rest Reminder", logs[0].Title)
			assert.Equal(t, date+"T16:00:00Z", logs[0].Timestamp.Format(time.RFC3339))
		default:
			assert.Empty(t, logs)
			assert.NotNil(t, logs)
		}
	}
}
