package models

// GoalsAndHabitsStats holds counters derived from the goal and habit
// collections. It is recomputed wholesale and never edited in place.
type GoalsAndHabitsStats struct {
	TotalGoals            int `json:"totalGoals"`
	ActiveGoals           int `json:"activeGoals"`
	CompletedGoals        int `json:"completedGoals"`
	PausedGoals           int `json:"pausedGoals"`
	AbandonedGoals        int `json:"abandonedGoals"`
	CompletedMilestones   int `json:"completedMilestones"`
	TotalHabits           int `json:"totalHabits"`
	ActiveHabits          int `json:"activeHabits"`
	TotalHabitCompletions int `json:"totalHabitCompletions"`
	LongestHabitStreak    int `json:"longestHabitStreak"`
}

// GoalsData is the goals/habits document.
type GoalsData struct {
	Goals  []Goal              `json:"goals"`
	Habits []Habit             `json:"habits"`
	Stats  GoalsAndHabitsStats `json:"stats"`
}

// DefaultGoals returns the schema default for the goals/habits document.
func DefaultGoals() GoalsData {
	return GoalsData{
		Goals:  []Goal{},
		Habits: []Habit{},
	}
}

// Normalize fills collections that older documents may omit.
func (d *GoalsData) Normalize() {
	if d.Goals == nil {
		d.Goals = []Goal{}
	}
	if d.Habits == nil {
		d.Habits = []Habit{}
	}
	for i := range d.Goals {
		if d.Goals[i].Milestones == nil {
			d.Goals[i].Milestones = []Milestone{}
		}
	}
	for i := range d.Habits {
		if d.Habits[i].History == nil {
			d.Habits[i].History = []HabitCompletion{}
		}
	}
}

// Validate performs the shape checks applied when loading a document.
func (d GoalsData) Validate() error {
	for _, g := range d.Goals {
		if err := g.Validate(); err != nil {
			return err
		}
	}
	for _, h := range d.Habits {
		if err := h.Validate(); err != nil {
			return err
		}
	}
	return nil
}
