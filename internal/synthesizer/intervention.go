package synthesizer

import "mindtrack-chi/internal/models"

const (
	breathingCutoff = 0.30
	restCutoff      = 0.50
)

// Interventions 当天触发的干预：30% 呼吸练习，20% 休息提醒
func Interventions(date string) []models.InterventionLog {
	r := Draw(date, SeedInterventionTrigger)

	switch {
	case r < breathingCutoff:
		return []models.InterventionLog{{
			ID:          "int_breathing_" + date,
			Type:        models.InterventionBreathing,
			Title:       "Breathing Exercise (4-7-8)",
			Description: "Slow breathing technique to calm the nervous system",
			Timestamp:   At(date, 14, 30),
			Completed:   true,
		}}
	case r < restCutoff:
		return []models.InterventionLog{{
			ID:          "int_rest_" + date,
			Type:        models.InterventionRest,
			Title:       "Rest Reminder",
			Description: "Take a 15-minute break away from screens",
			Timestamp:   At(date, 16, 0),
			Completed:   true,
		}}
	default:
		return []models.InterventionLog{}
	}
}
