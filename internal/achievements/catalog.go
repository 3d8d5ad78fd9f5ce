package achievements

import "github.com/julianstephens/tally/internal/stats"

func visits(s stats.Snapshot) int         { return s.VisitCount }
func streak(s stats.Snapshot) int         { return s.LongestStreak }
func entries(s stats.Snapshot) int        { return s.JournalEntries }
func reflections(s stats.Snapshot) int    { return s.ReflectedEntries }
func favorites(s stats.Snapshot) int      { return s.FavoriteEntries }
func categories(s stats.Snapshot) int     { return s.JournalCategories }
func goalsCreated(s stats.Snapshot) int   { return s.TotalGoals }
func goalsCompleted(s stats.Snapshot) int { return s.CompletedGoals }
func milestones(s stats.Snapshot) int     { return s.CompletedMilestones }
func habits(s stats.Snapshot) int         { return s.TotalHabits }
func habitStreak(s stats.Snapshot) int    { return s.LongestHabitStreak }
func habitChecks(s stats.Snapshot) int    { return s.TotalHabitCompletions }
func affirmations(s stats.Snapshot) int   { return s.AffirmationsViewed }
func insights(s stats.Snapshot) int       { return s.InsightsViewed }
func skills(s stats.Snapshot) int         { return s.TrackedSkills }

// DefaultCatalog returns the built-in achievements in evaluation order.
func DefaultCatalog() []Definition {
	return []Definition{
		{ID: "first-visit", Title: "Welcome", Description: "Open tally for the first time", Icon: "👋", Target: 1, Value: visits},
		{ID: "streak-3", Title: "Warming Up", Description: "Visit 3 days in a row", Icon: "🔥", Target: 3, Value: streak},
		{ID: "streak-7", Title: "Week Warrior", Description: "Visit 7 days in a row", Icon: "📅", Target: 7, Value: streak},
		{ID: "streak-30", Title: "Unstoppable", Description: "Visit 30 days in a row", Icon: "🏆", Target: 30, Value: streak},
		{ID: "first-entry", Title: "First Win", Description: "Log your first accomplishment", Icon: "✍️", Target: 1, Value: entries},
		{ID: "entries-10", Title: "On a Roll", Description: "Log 10 accomplishments", Icon: "📝", Target: 10, Value: entries},
		{ID: "entries-50", Title: "Achiever", Description: "Log 50 accomplishments", Icon: "🌟", Target: 50, Value: entries},
		{ID: "entries-100", Title: "Centurion", Description: "Log 100 accomplishments", Icon: "💯", Target: 100, Value: entries},
		{ID: "first-reflection", Title: "Looking Back", Description: "Add a reflection to an entry", Icon: "🪞", Target: 1, Value: reflections},
		{ID: "favorites-5", Title: "Highlight Reel", Description: "Favorite 5 entries", Icon: "⭐", Target: 5, Value: favorites},
		{ID: "categories-3", Title: "Well Rounded", Description: "Log accomplishments in 3 categories", Icon: "🧭", Target: 3, Value: categories},
		{ID: "first-goal", Title: "Goal Setter", Description: "Create your first goal", Icon: "🎯", Target: 1, Value: goalsCreated},
		{ID: "goal-completed", Title: "Goal Getter", Description: "Complete a goal", Icon: "🥇", Target: 1, Value: goalsCompleted},
		{ID: "goals-5", Title: "Closer", Description: "Complete 5 goals", Icon: "🏅", Target: 5, Value: goalsCompleted},
		{ID: "milestones-10", Title: "Stepping Stones", Description: "Complete 10 milestones", Icon: "🪜", Target: 10, Value: milestones},
		{ID: "first-habit", Title: "Creature of Habit", Description: "Start tracking a habit", Icon: "🌱", Target: 1, Value: habits},
		{ID: "habit-streak-7", Title: "Habit Formed", Description: "Keep a habit streak for 7 scheduled days", Icon: "🔁", Target: 7, Value: habitStreak},
		{ID: "habit-streak-30", Title: "Second Nature", Description: "Keep a habit streak for 30 scheduled days", Icon: "🌳", Target: 30, Value: habitStreak},
		{ID: "habit-checks-100", Title: "Dedicated", Description: "Record 100 habit completions", Icon: "✅", Target: 100, Value: habitChecks},
		{ID: "affirmations-10", Title: "Positive Mindset", Description: "View 10 affirmations", Icon: "💬", Target: 10, Value: affirmations},
		{ID: "insights-5", Title: "Curious Mind", Description: "Read 5 different insights", Icon: "💡", Target: 5, Value: insights},
		{ID: "skills-5", Title: "Multi-Talented", Description: "Track 5 skills", Icon: "🧰", Target: 5, Value: skills},
	}
}
