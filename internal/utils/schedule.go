package utils

import (
	"time"

	"github.com/julianstephens/tally/internal/models"
)

// IsScheduled reports whether the frequency rule designates day as a day the
// habit must be completed on. This logic is shared between streak
// computation and the CLI's "due today" view.
func IsScheduled(freq models.Frequency, day time.Time) bool {
	switch freq.Type {
	case models.FrequencyDaily:
		return true
	case models.FrequencyWeekly, models.FrequencyCustom:
		for _, wd := range freq.Days {
			if day.Weekday() == wd {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// HasScheduledDays reports whether the rule schedules any day at all.
func HasScheduledDays(freq models.Frequency) bool {
	switch freq.Type {
	case models.FrequencyDaily:
		return true
	case models.FrequencyWeekly, models.FrequencyCustom:
		return len(freq.Days) > 0
	default:
		return false
	}
}
