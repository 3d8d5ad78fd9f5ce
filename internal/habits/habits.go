// Package habits manages habit completion history and per-habit streaks.
package habits

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/julianstephens/tally/internal/errors"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/utils"
)

const entity = "habit"

// Tracker records habit completions and keeps habit streaks current.
type Tracker struct {
	clock    utils.Clock
	calendar utils.Calendar
}

// NewTracker returns a Tracker that decides "today" from clock and calendar.
func NewTracker(clock utils.Clock, calendar utils.Calendar) *Tracker {
	return &Tracker{clock: clock, calendar: calendar}
}

func (t *Tracker) today() time.Time {
	return t.calendar.DayOf(t.clock.Now())
}

// Find returns the index of the habit whose ID or title matches ref. IDs may be
// shortened to a prefix of at least eight characters.
func Find(data *models.GoalsData, ref string) (int, error) {
	for i, h := range data.Habits {
		if h.ID == ref || (len(ref) >= 8 && strings.HasPrefix(h.ID, ref)) {
			return i, nil
		}
	}
	for i, h := range data.Habits {
		if strings.EqualFold(h.Title, ref) {
			return i, nil
		}
	}
	return -1, apperrors.NotFound(entity, ref)
}

// Add creates an active habit with an empty history.
func (t *Tracker) Add(data *models.GoalsData, title string, freq models.Frequency) (models.Habit, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Habit{}, apperrors.Invalid("title", nil, "is required")
	}
	if err := freq.Validate(); err != nil {
		return models.Habit{}, apperrors.Invalid("frequency", freq.Type, err.Error())
	}

	if freq.Type == models.FrequencyDaily {
		freq.Days = nil
	} else {
		days := slices.Clone(freq.Days)
		slices.Sort(days)
		freq.Days = slices.Compact(days)
	}

	habit := models.Habit{
		ID:        uuid.NewString(),
		Title:     title,
		Frequency: freq,
		History:   []models.HabitCompletion{},
		Active:    true,
		CreatedAt: t.clock.Now(),
	}
	data.Habits = append(data.Habits, habit)
	return habit, nil
}

// RecordCompletion upserts the entry for date and recomputes the habit's
// streaks. An empty date means today. Dates in the future are rejected.
func (t *Tracker) RecordCompletion(data *models.GoalsData, ref, date string, completed bool, note string) (models.Habit, error) {
	i, err := Find(data, ref)
	if err != nil {
		return models.Habit{}, err
	}
	habit := data.Habits[i]
	if !habit.Active {
		return models.Habit{}, apperrors.Transition(entity, habit.ID, "inactive", "record a completion for")
	}

	today := t.today()
	if date == "" {
		date = utils.FormatDay(today)
	}
	day, err := utils.ParseDay(date)
	if err != nil {
		return models.Habit{}, apperrors.Invalid("date", date, "must be YYYY-MM-DD")
	}
	if day.After(today) {
		return models.Habit{}, apperrors.Invalid("date", date, "is in the future")
	}

	history := make([]models.HabitCompletion, 0, len(habit.History)+1)
	replaced := false
	for _, c := range habit.History {
		if c.Date == date {
			c = models.HabitCompletion{Date: date, Completed: completed, Note: note}
			replaced = true
		}
		history = append(history, c)
	}
	if !replaced {
		history = append(history, models.HabitCompletion{Date: date, Completed: completed, Note: note})
	}
	sort.Slice(history, func(a, b int) bool { return history[a].Date < history[b].Date })
	habit.History = history

	Recompute(&habit, today)
	data.Habits[i] = habit
	return habit, nil
}

// ToggleActive flips the active flag. History and streaks are left as they are.
func (t *Tracker) ToggleActive(data *models.GoalsData, ref string) (models.Habit, error) {
	i, err := Find(data, ref)
	if err != nil {
		return models.Habit{}, err
	}
	data.Habits[i].Active = !data.Habits[i].Active
	return data.Habits[i], nil
}

// Refresh recomputes the streaks of every active habit for today and reports
// whether anything changed. Inactive habits keep their streaks frozen.
func (t *Tracker) Refresh(data *models.GoalsData) bool {
	today := t.today()
	changed := false
	for i := range data.Habits {
		if !data.Habits[i].Active {
			continue
		}
		before := data.Habits[i]
		Recompute(&data.Habits[i], today)
		h := data.Habits[i]
		if h.CurrentStreak != before.CurrentStreak || h.LongestStreak != before.LongestStreak || h.TotalCompletions != before.TotalCompletions {
			changed = true
		}
	}
	return changed
}

// DueToday returns the active habits scheduled today that have no completed
// entry for today yet.
func (t *Tracker) DueToday(data models.GoalsData) []models.Habit {
	today := t.today()
	key := utils.FormatDay(today)
	var due []models.Habit
	for _, h := range data.Habits {
		if !h.Active || !utils.IsScheduled(h.Frequency, today) {
			continue
		}
		if !completedOn(h, key) {
			due = append(due, h)
		}
	}
	return due
}

// Recompute derives the streak counters of h from its history as of today.
func Recompute(h *models.Habit, today time.Time) {
	total := 0
	for _, c := range h.History {
		if c.Completed {
			total++
		}
	}
	h.TotalCompletions = total
	h.CurrentStreak = CurrentStreak(*h, today)
	h.LongestStreak = max(h.LongestStreak, LongestRun(*h), h.CurrentStreak)
}

// CurrentStreak counts consecutive completed scheduled days ending at the
// most recent scheduled day. Today is skipped while it is still open, and
// unscheduled days never break a streak.
func CurrentStreak(h models.Habit, today time.Time) int {
	done, first := completedDays(h)
	if len(done) == 0 {
		return 0
	}

	streak := 0
	for day := today; !day.Before(first); day = day.AddDate(0, 0, -1) {
		if !utils.IsScheduled(h.Frequency, day) {
			continue
		}
		if done[utils.FormatDay(day)] {
			streak++
			continue
		}
		if day.Equal(today) {
			continue
		}
		break
	}
	return streak
}

// LongestRun returns the longest run of completed scheduled days anywhere in
// the history.
func LongestRun(h models.Habit) int {
	done, first := completedDays(h)
	if len(done) == 0 {
		return 0
	}
	last := first
	for key := range done {
		if day, err := utils.ParseDay(key); err == nil && day.After(last) {
			last = day
		}
	}

	longest, run := 0, 0
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if !utils.IsScheduled(h.Frequency, day) {
			continue
		}
		if done[utils.FormatDay(day)] {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return longest
}

// completedDays indexes the completed, scheduled entries of h and returns the
// earliest such day.
func completedDays(h models.Habit) (map[string]bool, time.Time) {
	done := make(map[string]bool)
	var first time.Time
	for _, c := range h.History {
		if !c.Completed {
			continue
		}
		day, err := utils.ParseDay(c.Date)
		if err != nil || !utils.IsScheduled(h.Frequency, day) {
			continue
		}
		done[c.Date] = true
		if first.IsZero() || day.Before(first) {
			first = day
		}
	}
	return done, first
}

func completedOn(h models.Habit, date string) bool {
	for _, c := range h.History {
		if c.Date == date {
			return c.Completed
		}
	}
	return false
}
