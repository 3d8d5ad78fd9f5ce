package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/tally/internal/models"
)

func fixture() (models.EngagementData, models.GoalsData, models.SkillsData) {
	eng := models.DefaultEngagement()
	eng.VisitCount = 9
	eng.CurrentStreak = 2
	eng.LongestStreak = 5
	eng.AffirmationsViewed = 3
	eng.InsightsViewed = 1
	eng.JournalEntries = []models.JournalEntry{
		{ID: "1", Category: "Work", Favorite: true},
		{ID: "2", Category: "work", Reflection: "learned a lot"},
		{ID: "3", Category: "health"},
		{ID: "4"},
	}
	eng.Achievements = []models.Achievement{{ID: "first-entry"}}

	goals := models.DefaultGoals()
	goals.Goals = []models.Goal{
		{ID: "g1", Status: models.GoalActive, Milestones: []models.Milestone{{ID: "m1", Completed: true}, {ID: "m2"}}},
		{ID: "g2", Status: models.GoalCompleted, Progress: 100, Milestones: []models.Milestone{{ID: "m3", Completed: true}}},
		{ID: "g3", Status: models.GoalPaused},
		{ID: "g4", Status: models.GoalAbandoned},
		{ID: "g5", Status: models.GoalActive},
	}
	goals.Habits = []models.Habit{
		{ID: "h1", Active: true, TotalCompletions: 10, LongestStreak: 7},
		{ID: "h2", Active: false, TotalCompletions: 4, LongestStreak: 9},
	}

	skills := models.DefaultSkills()
	skills.Skills["go"] = models.Skill{Name: "Go", UsageCount: 4}
	skills.Skills["sql"] = models.Skill{Name: "SQL", UsageCount: 1}
	return eng, goals, skills
}

func TestGoalStats(t *testing.T) {
	_, goals, _ := fixture()

	want := models.GoalsAndHabitsStats{
		TotalGoals:            5,
		ActiveGoals:           2,
		CompletedGoals:        1,
		PausedGoals:           1,
		AbandonedGoals:        1,
		CompletedMilestones:   2,
		TotalHabits:           2,
		ActiveHabits:          1,
		TotalHabitCompletions: 14,
		LongestHabitStreak:    9,
	}
	assert.Equal(t, want, GoalStats(goals))
}

func TestApplyOverwritesDriftedStats(t *testing.T) {
	_, goals, _ := fixture()
	goals.Stats = models.GoalsAndHabitsStats{TotalGoals: 99, LongestHabitStreak: 1}

	Apply(&goals)
	assert.Equal(t, 5, goals.Stats.TotalGoals)
	assert.Equal(t, 9, goals.Stats.LongestHabitStreak)

	before := goals.Stats
	Apply(&goals)
	assert.Equal(t, before, goals.Stats)
}

func TestAggregate(t *testing.T) {
	eng, goals, skills := fixture()

	s := Aggregate(eng, goals, skills)
	assert.Equal(t, 9, s.VisitCount)
	assert.Equal(t, 5, s.LongestStreak)
	assert.Equal(t, 4, s.JournalEntries)
	assert.Equal(t, 1, s.FavoriteEntries)
	assert.Equal(t, 1, s.ReflectedEntries)
	assert.Equal(t, 2, s.JournalCategories)
	assert.Equal(t, 1, s.UnlockedAchievements)
	assert.Equal(t, 2, s.TrackedSkills)
	assert.Equal(t, 5, s.SkillUses)
	assert.Equal(t, 1, s.CompletedGoals)
}

func TestAggregateOfDefaults(t *testing.T) {
	s := Aggregate(models.DefaultEngagement(), models.DefaultGoals(), models.DefaultSkills())
	assert.Equal(t, Snapshot{}, s)
}
