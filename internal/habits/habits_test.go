package habits

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/julianstephens/tally/internal/errors"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/utils"
)

// testClock is a settable clock. March 2024 starts on a Friday.
type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) setDay(d int) {
	c.now = time.Date(2024, time.March, d, 10, 0, 0, 0, time.UTC)
}

func newTracker(d int) (*Tracker, *testClock) {
	clock := &testClock{}
	clock.setDay(d)
	return NewTracker(clock, utils.NewCalendar(time.UTC)), clock
}

func mustAdd(t *testing.T, tr *Tracker, data *models.GoalsData, freq models.Frequency) models.Habit {
	t.Helper()
	h, err := tr.Add(data, "Read", freq)
	require.NoError(t, err)
	return h
}

var daily = models.Frequency{Type: models.FrequencyDaily}

func TestMissedDayBreaksStreak(t *testing.T) {
	tr, clock := newTracker(1)
	data := models.DefaultGoals()
	h := mustAdd(t, tr, &data, daily)

	for d := 1; d <= 3; d++ {
		clock.setDay(d)
		_, err := tr.RecordCompletion(&data, h.ID, "", true, "")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, data.Habits[0].CurrentStreak)

	clock.setDay(5)
	assert.True(t, tr.Refresh(&data))
	assert.Equal(t, 0, data.Habits[0].CurrentStreak)
	assert.Equal(t, 3, data.Habits[0].LongestStreak)
	assert.Equal(t, 3, data.Habits[0].TotalCompletions)
}

func TestOpenTodayDoesNotBreakStreak(t *testing.T) {
	tr, _ := newTracker(4)
	data := models.DefaultGoals()
	h := mustAdd(t, tr, &data, daily)

	for _, date := range []string{"2024-03-01", "2024-03-02", "2024-03-03"} {
		_, err := tr.RecordCompletion(&data, h.ID, date, true, "")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, data.Habits[0].CurrentStreak)

	got, err := tr.RecordCompletion(&data, h.ID, "", true, "done early")
	require.NoError(t, err)
	assert.Equal(t, 4, got.CurrentStreak)
	assert.Equal(t, 4, got.LongestStreak)
	assert.Equal(t, "2024-03-04", got.History[3].Date)
}

func TestRecordCompletionUpserts(t *testing.T) {
	tr, _ := newTracker(10)
	data := models.DefaultGoals()
	h := mustAdd(t, tr, &data, daily)

	_, err := tr.RecordCompletion(&data, h.ID, "2024-03-08", true, "first")
	require.NoError(t, err)
	_, err = tr.RecordCompletion(&data, h.ID, "2024-03-06", true, "")
	require.NoError(t, err)
	got, err := tr.RecordCompletion(&data, h.ID, "2024-03-08", false, "changed my mind")
	require.NoError(t, err)

	require.Len(t, got.History, 2)
	assert.Equal(t, "2024-03-06", got.History[0].Date)
	assert.Equal(t, models.HabitCompletion{Date: "2024-03-08", Completed: false, Note: "changed my mind"}, got.History[1])
	assert.Equal(t, 1, got.TotalCompletions)
}

func TestWeeklyHabitSkipsUnscheduledDays(t *testing.T) {
	tr, clock := newTracker(11)
	data := models.DefaultGoals()
	h := mustAdd(t, tr, &data, models.Frequency{
		Type: models.FrequencyWeekly,
		Days: []time.Weekday{time.Friday, time.Monday, time.Wednesday, time.Monday},
	})
	assert.Equal(t, []time.Weekday{time.Monday, time.Wednesday, time.Friday}, h.Frequency.Days)

	for _, date := range []string{"2024-03-04", "2024-03-06", "2024-03-08"} {
		_, err := tr.RecordCompletion(&data, h.ID, date, true, "")
		require.NoError(t, err)
	}
	// Monday the 11th is open, so the Mon/Wed/Fri run still counts.
	assert.Equal(t, 3, data.Habits[0].CurrentStreak)

	// A Sunday completion is kept but has no effect on the streak.
	got, err := tr.RecordCompletion(&data, h.ID, "2024-03-10", true, "")
	require.NoError(t, err)
	assert.Equal(t, 3, got.CurrentStreak)
	assert.Equal(t, 4, got.TotalCompletions)

	clock.setDay(12)
	tr.Refresh(&data)
	assert.Equal(t, 0, data.Habits[0].CurrentStreak)
	assert.Equal(t, 3, data.Habits[0].LongestStreak)
}

func TestLongestStreakIsMonotone(t *testing.T) {
	tr, _ := newTracker(5)
	data := models.DefaultGoals()
	h := mustAdd(t, tr, &data, daily)

	for _, date := range []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04"} {
		_, err := tr.RecordCompletion(&data, h.ID, date, true, "")
		require.NoError(t, err)
	}
	got, err := tr.RecordCompletion(&data, h.ID, "2024-03-02", false, "")
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentStreak)
	assert.Equal(t, 4, got.LongestStreak)
}

func TestRecordCompletionRejections(t *testing.T) {
	tr, _ := newTracker(5)
	data := models.DefaultGoals()
	h := mustAdd(t, tr, &data, daily)

	tests := []struct {
		name   string
		ref    string
		date   string
		target error
	}{
		{"future date", h.ID, "2024-03-06", apperrors.ErrValidation},
		{"malformed date", h.ID, "03/01/2024", apperrors.ErrValidation},
		{"unknown habit", "nope", "2024-03-01", apperrors.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := data.Habits[0]
			_, err := tr.RecordCompletion(&data, tt.ref, tt.date, true, "")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), err.Error())
			assert.Equal(t, before, data.Habits[0])
		})
	}
}

func TestToggleActiveKeepsStreak(t *testing.T) {
	tr, clock := newTracker(2)
	data := models.DefaultGoals()
	h := mustAdd(t, tr, &data, daily)

	_, err := tr.RecordCompletion(&data, h.ID, "2024-03-01", true, "")
	require.NoError(t, err)
	_, err = tr.RecordCompletion(&data, h.ID, "2024-03-02", true, "")
	require.NoError(t, err)

	got, err := tr.ToggleActive(&data, "read")
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, 2, got.CurrentStreak)

	_, err = tr.RecordCompletion(&data, h.ID, "", true, "")
	var transition *apperrors.StateTransitionError
	require.True(t, errors.As(err, &transition))
	assert.Equal(t, "inactive", transition.Status)

	clock.setDay(9)
	assert.False(t, tr.Refresh(&data))
	assert.Equal(t, 2, data.Habits[0].CurrentStreak)

	got, err = tr.ToggleActive(&data, h.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)
	assert.Len(t, got.History, 2)
}

func TestDueToday(t *testing.T) {
	tr, _ := newTracker(4) // Monday
	data := models.DefaultGoals()
	dailyHabit := mustAdd(t, tr, &data, daily)
	_, err := tr.Add(&data, "Swim", models.Frequency{Type: models.FrequencyCustom, Days: []time.Weekday{time.Tuesday}})
	require.NoError(t, err)
	_, err = tr.Add(&data, "Stretch", daily)
	require.NoError(t, err)

	due := tr.DueToday(data)
	require.Len(t, due, 2)

	_, err = tr.RecordCompletion(&data, dailyHabit.ID, "", true, "")
	require.NoError(t, err)
	due = tr.DueToday(data)
	require.Len(t, due, 1)
	assert.Equal(t, "Stretch", due[0].Title)
}

func TestAddValidation(t *testing.T) {
	tr, _ := newTracker(1)
	data := models.DefaultGoals()

	_, err := tr.Add(&data, "  ", daily)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = tr.Add(&data, "Gym", models.Frequency{Type: models.FrequencyWeekly})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = tr.Add(&data, "Gym", models.Frequency{Type: "hourly"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	assert.Empty(t, data.Habits)
}

func TestFindByTitleOrShortID(t *testing.T) {
	tr, _ := newTracker(1)
	data := models.DefaultGoals()
	h := mustAdd(t, tr, &data, daily)

	for _, ref := range []string{h.ID, h.ID[:8], "read", "READ"} {
		i, err := Find(&data, ref)
		require.NoError(t, err, ref)
		assert.Equal(t, 0, i)
	}
	_, err := Find(&data, h.ID[:3])
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
