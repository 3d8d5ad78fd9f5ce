package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEngagementValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*EngagementData)
		wantErr bool
	}{
		{"default is valid", func(*EngagementData) {}, false},
		{"negative visit count", func(e *EngagementData) { e.VisitCount = -1 }, true},
		{"longest below current", func(e *EngagementData) { e.CurrentStreak = 3; e.LongestStreak = 2 }, true},
		{"duplicate insight ids", func(e *EngagementData) { e.ViewedInsightIDs = []string{"a", "a"} }, true},
		{"duplicate achievements", func(e *EngagementData) {
			e.Achievements = []Achievement{{ID: "first"}, {ID: "first"}}
		}, true},
		{"bad reminder weekday", func(e *EngagementData) { e.Reminders.Days = []time.Weekday{9} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := DefaultEngagement()
			tt.mutate(&e)
			err := e.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGoalsValidate(t *testing.T) {
	tests := []struct {
		name    string
		data    GoalsData
		wantErr bool
	}{
		{"empty", DefaultGoals(), false},
		{"unknown status", GoalsData{Goals: []Goal{{ID: "g", Status: "done"}}}, true},
		{"progress out of range", GoalsData{Goals: []Goal{{ID: "g", Status: GoalActive, Progress: 101}}}, true},
		{"weekly without days", GoalsData{Habits: []Habit{{ID: "h", Frequency: Frequency{Type: FrequencyWeekly}}}}, true},
		{"duplicate habit day", GoalsData{Habits: []Habit{{
			ID:        "h",
			Frequency: Frequency{Type: FrequencyDaily},
			History:   []HabitCompletion{{Date: "2024-01-01"}, {Date: "2024-01-01"}},
		}}}, true},
		{"malformed habit day", GoalsData{Habits: []Habit{{
			ID:        "h",
			Frequency: Frequency{Type: FrequencyDaily},
			History:   []HabitCompletion{{Date: "01/01/2024"}},
		}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGoalStatusTerminal(t *testing.T) {
	assert.True(t, GoalCompleted.Terminal())
	assert.True(t, GoalAbandoned.Terminal())
	assert.False(t, GoalActive.Terminal())
	assert.False(t, GoalPaused.Terminal())
}
