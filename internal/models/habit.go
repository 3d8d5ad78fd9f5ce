package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/tally/internal/constants"
)

type FrequencyType string

const (
	FrequencyDaily  FrequencyType = "daily"
	FrequencyWeekly FrequencyType = "weekly"
	FrequencyCustom FrequencyType = "custom"
)

// Frequency decides which calendar days a habit is scheduled on. Weekly and
// custom habits are scheduled on the weekdays in Days.
type Frequency struct {
	Type FrequencyType  `json:"type"`
	Days []time.Weekday `json:"days,omitempty"`
}

// Validate checks the frequency rule is usable for scheduling.
func (f Frequency) Validate() error {
	switch f.Type {
	case FrequencyDaily:
		return nil
	case FrequencyWeekly, FrequencyCustom:
		if len(f.Days) == 0 {
			return fmt.Errorf("%s frequency requires at least one weekday", f.Type)
		}
		for _, wd := range f.Days {
			if wd < time.Sunday || wd > time.Saturday {
				return fmt.Errorf("invalid weekday %d", wd)
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown frequency %q", f.Type)
	}
}

// HabitCompletion records one calendar day for a habit. A habit holds at most
// one completion per Date.
type HabitCompletion struct {
	Date      string `json:"date"` // YYYY-MM-DD format
	Completed bool   `json:"completed"`
	Note      string `json:"note,omitempty"`
}

// Habit is a recurring practice. History is kept sorted by Date.
type Habit struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Frequency        Frequency         `json:"frequency"`
	CurrentStreak    int               `json:"currentStreak"`
	LongestStreak    int               `json:"longestStreak"`
	TotalCompletions int               `json:"totalCompletions"`
	History          []HabitCompletion `json:"completionHistory"`
	Active           bool              `json:"active"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// Validate performs the shape checks applied when loading a document.
func (h Habit) Validate() error {
	if h.ID == "" {
		return fmt.Errorf("habit without id")
	}
	if err := h.Frequency.Validate(); err != nil {
		return fmt.Errorf("habit %s: %w", h.ID, err)
	}
	if h.CurrentStreak < 0 || h.LongestStreak < 0 || h.TotalCompletions < 0 {
		return fmt.Errorf("habit %s has negative counters", h.ID)
	}
	seen := make(map[string]bool, len(h.History))
	for _, c := range h.History {
		if _, err := time.Parse(constants.DateFormat, c.Date); err != nil {
			return fmt.Errorf("habit %s has malformed date %q", h.ID, c.Date)
		}
		if seen[c.Date] {
			return fmt.Errorf("habit %s has duplicate entry for %s", h.ID, c.Date)
		}
		seen[c.Date] = true
	}
	return nil
}
