package models

import (
	"fmt"
	"time"

	"github.com/julianstephens/tally/internal/constants"
)

// ReminderSettings controls the daily journaling reminder.
type ReminderSettings struct {
	Enabled bool           `json:"enabled"`
	Time    string         `json:"time"`           // HH:MM format
	Days    []time.Weekday `json:"days,omitempty"` // empty means every day
}

// Achievement is a catalog entry as recorded in the engagement document.
// UnlockedAt is written once and never changed afterwards.
type Achievement struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
	Progress    float64    `json:"progress,omitempty"`
	Target      int        `json:"target,omitempty"`
}

// JournalEntry is a single logged accomplishment. Only Favorite and
// Reflection change after creation.
type JournalEntry struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	Accomplishment string    `json:"accomplishment"`
	Reflection     string    `json:"reflection,omitempty"`
	Category       string    `json:"category,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	Mood           int       `json:"mood,omitempty"` // 1-5, 0 when unset
	Favorite       bool      `json:"favorite,omitempty"`
}

// EngagementData is the engagement document.
type EngagementData struct {
	LastVisit          *time.Time       `json:"lastVisit,omitempty"`
	VisitCount         int              `json:"visitCount"`
	CurrentStreak      int              `json:"currentStreak"`
	LongestStreak      int              `json:"longestStreak"`
	AffirmationsViewed int              `json:"affirmationsViewed"`
	InsightsViewed     int              `json:"insightsViewed"`
	ViewedInsightIDs   []string         `json:"viewedInsightIds"`
	Achievements       []Achievement    `json:"achievements"`
	JournalEntries     []JournalEntry   `json:"journalEntries"`
	Reminders          ReminderSettings `json:"reminderSettings"`
}

// DefaultEngagement returns the schema default for the engagement document.
func DefaultEngagement() EngagementData {
	return EngagementData{
		ViewedInsightIDs: []string{},
		Achievements:     []Achievement{},
		JournalEntries:   []JournalEntry{},
		Reminders: ReminderSettings{
			Enabled: false,
			Time:    constants.DefaultReminderTime,
		},
	}
}

// Normalize fills collections that older documents may omit.
func (e *EngagementData) Normalize() {
	if e.ViewedInsightIDs == nil {
		e.ViewedInsightIDs = []string{}
	}
	if e.Achievements == nil {
		e.Achievements = []Achievement{}
	}
	if e.JournalEntries == nil {
		e.JournalEntries = []JournalEntry{}
	}
	if e.Reminders.Time == "" {
		e.Reminders.Time = constants.DefaultReminderTime
	}
}

// Validate performs the shape checks applied when loading a document.
func (e EngagementData) Validate() error {
	counters := map[string]int{
		"visitCount":         e.VisitCount,
		"currentStreak":      e.CurrentStreak,
		"longestStreak":      e.LongestStreak,
		"affirmationsViewed": e.AffirmationsViewed,
		"insightsViewed":     e.InsightsViewed,
	}
	for name, v := range counters {
		if v < 0 {
			return fmt.Errorf("%s is negative: %d", name, v)
		}
	}
	if e.LongestStreak < e.CurrentStreak {
		return fmt.Errorf("longestStreak %d below currentStreak %d", e.LongestStreak, e.CurrentStreak)
	}

	seen := make(map[string]bool, len(e.ViewedInsightIDs))
	for _, id := range e.ViewedInsightIDs {
		if seen[id] {
			return fmt.Errorf("duplicate viewed insight id %q", id)
		}
		seen[id] = true
	}

	unlocked := make(map[string]bool, len(e.Achievements))
	for _, a := range e.Achievements {
		if a.ID == "" {
			return fmt.Errorf("achievement without id")
		}
		if unlocked[a.ID] {
			return fmt.Errorf("duplicate achievement %q", a.ID)
		}
		unlocked[a.ID] = true
	}

	for _, entry := range e.JournalEntries {
		if entry.ID == "" {
			return fmt.Errorf("journal entry without id")
		}
	}
	for _, wd := range e.Reminders.Days {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("invalid reminder weekday %d", wd)
		}
	}
	return nil
}

// HasViewedInsight reports whether the insight id was already viewed.
func (e EngagementData) HasViewedInsight(id string) bool {
	for _, v := range e.ViewedInsightIDs {
		if v == id {
			return true
		}
	}
	return false
}

// HasAchievement reports whether the achievement id is already unlocked.
func (e EngagementData) HasAchievement(id string) bool {
	for _, a := range e.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}
