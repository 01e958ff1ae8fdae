package aggregator

import (
	"fmt"
	"strconv"

	"mindtrack-chi/internal/models"
)

// Timeline 日视图时间线：睡眠、文本、情绪、语音、面部、CHI、干预
func Timeline(state *models.SystemState) []models.TimelineEvent {
	snap := state.SensorSnapshot
	text := snap.TextSentiment

	sign := ""
	if text.SentimentScore > 0 {
		sign = "+"
	}

	events := []models.TimelineEvent{
		{
			Time:  "06:00",
			Type:  "sleep",
			Title: fmt.Sprintf("Sleep: %sh (%d%% quality)", strconv.FormatFloat(snap.Sleep.Hours, 'f', -1, 64), snap.Sleep.Quality),
		},
		{
			Time:  "08:30",
			Type:  "text",
			Title: fmt.Sprintf("Text Activity: %d words (%d emotional)", text.WordCount, text.EmotionalWords),
		},
		{
			Time:  "09:00",
			Type:  "text-sentiment",
			Title: fmt.Sprintf("Mood Analysis: Sentiment %s%d (Stress: %d%%)", sign, text.SentimentScore, text.StressIndicators),
		},
	}
	if snap.Voice != nil {
		events = append(events, models.TimelineEvent{Time: "10:30", Type: "voice", Title: "Voice session recorded"})
	}
	if snap.Facial != nil {
		events = append(events, models.TimelineEvent{Time: "12:00", Type: "facial", Title: "Facial scan completed"})
	}
	events = append(events, models.TimelineEvent{
		Time:  "14:30",
		Type:  "chi",
		Title: fmt.Sprintf("CHI Score: %d (%s Risk)", state.CHIScore, state.RiskLevel),
	})
	for _, i := range state.Interventions {
		events = append(events, models.TimelineEvent{
			Time:  i.Timestamp.UTC().Format("15:04"),
			Type:  "intervention",
			Title: i.Title,
		})
	}

	return events
}
