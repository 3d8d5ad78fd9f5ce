// Package stats recomputes summary counters from the source collections.
package stats

import (
	"strings"

	"github.com/julianstephens/tally/internal/models"
)

// Snapshot is the aggregate view that achievement conditions are evaluated
// against. It is always derived, never stored on its own.
type Snapshot struct {
	models.GoalsAndHabitsStats

	VisitCount         int `json:"visitCount"`
	CurrentStreak      int `json:"currentStreak"`
	LongestStreak      int `json:"longestStreak"`
	AffirmationsViewed int `json:"affirmationsViewed"`
	InsightsViewed     int `json:"insightsViewed"`

	JournalEntries       int `json:"journalEntries"`
	FavoriteEntries      int `json:"favoriteEntries"`
	ReflectedEntries     int `json:"reflectedEntries"`
	JournalCategories    int `json:"journalCategories"`
	UnlockedAchievements int `json:"unlockedAchievements"`

	TrackedSkills int `json:"trackedSkills"`
	SkillUses     int `json:"skillUses"`
}

// GoalStats computes the goals/habits summary in one pass.
func GoalStats(data models.GoalsData) models.GoalsAndHabitsStats {
	var s models.GoalsAndHabitsStats
	s.TotalGoals = len(data.Goals)
	for _, g := range data.Goals {
		switch g.Status {
		case models.GoalActive:
			s.ActiveGoals++
		case models.GoalCompleted:
			s.CompletedGoals++
		case models.GoalPaused:
			s.PausedGoals++
		case models.GoalAbandoned:
			s.AbandonedGoals++
		}
		s.CompletedMilestones += g.CompletedMilestones()
	}

	s.TotalHabits = len(data.Habits)
	for _, h := range data.Habits {
		if h.Active {
			s.ActiveHabits++
		}
		s.TotalHabitCompletions += h.TotalCompletions
		s.LongestHabitStreak = max(s.LongestHabitStreak, h.LongestStreak)
	}
	return s
}

// Apply replaces the stored summary of data with a fresh computation.
func Apply(data *models.GoalsData) {
	data.Stats = GoalStats(*data)
}

// Aggregate builds the full snapshot from all three documents.
func Aggregate(eng models.EngagementData, goals models.GoalsData, skills models.SkillsData) Snapshot {
	s := Snapshot{
		GoalsAndHabitsStats:  GoalStats(goals),
		VisitCount:           eng.VisitCount,
		CurrentStreak:        eng.CurrentStreak,
		LongestStreak:        eng.LongestStreak,
		AffirmationsViewed:   eng.AffirmationsViewed,
		InsightsViewed:       eng.InsightsViewed,
		JournalEntries:       len(eng.JournalEntries),
		UnlockedAchievements: len(eng.Achievements),
		TrackedSkills:        len(skills.Skills),
	}

	categories := make(map[string]bool)
	for _, e := range eng.JournalEntries {
		if e.Favorite {
			s.FavoriteEntries++
		}
		if e.Reflection != "" {
			s.ReflectedEntries++
		}
		if c := strings.ToLower(e.Category); c != "" {
			categories[c] = true
		}
	}
	s.JournalCategories = len(categories)

	for _, sk := range skills.Skills {
		s.SkillUses += sk.UsageCount
	}
	return s
}
