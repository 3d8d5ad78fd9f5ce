package models

import (
	"fmt"
	"time"
)

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
	GoalAbandoned GoalStatus = "abandoned"
)

// Valid reports whether s is a known status.
func (s GoalStatus) Valid() bool {
	switch s {
	case GoalActive, GoalCompleted, GoalPaused, GoalAbandoned:
		return true
	}
	return false
}

// Terminal reports whether no further mutation is allowed.
func (s GoalStatus) Terminal() bool {
	return s == GoalCompleted || s == GoalAbandoned
}

type Milestone struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Goal tracks progress toward an outcome. CompletedAt is set iff Status is
// completed, and Progress is 100 iff Status is completed.
type Goal struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category,omitempty"`
	Status      GoalStatus  `json:"status"`
	Progress    int         `json:"progress"`
	Milestones  []Milestone `json:"milestones"`
	TargetDate  string      `json:"targetDate,omitempty"` // YYYY-MM-DD format
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
}

// CompletedMilestones returns the number of completed milestones.
func (g Goal) CompletedMilestones() int {
	n := 0
	for _, m := range g.Milestones {
		if m.Completed {
			n++
		}
	}
	return n
}

// Validate performs the shape checks applied when loading a document.
func (g Goal) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("goal without id")
	}
	if !g.Status.Valid() {
		return fmt.Errorf("goal %s has unknown status %q", g.ID, g.Status)
	}
	if g.Progress < 0 || g.Progress > 100 {
		return fmt.Errorf("goal %s progress %d out of range", g.ID, g.Progress)
	}
	for _, m := range g.Milestones {
		if m.ID == "" {
			return fmt.Errorf("goal %s has milestone without id", g.ID)
		}
	}
	return nil
}
