package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/utils"
)

func day(d, hour int) time.Time {
	return time.Date(2024, time.March, d, hour, 0, 0, 0, time.UTC)
}

func TestRecordVisitScenario(t *testing.T) {
	engine := NewEngine(utils.NewCalendar(time.UTC))
	data := models.DefaultEngagement()

	assert.Equal(t, FirstVisit, engine.RecordVisit(&data, day(1, 9)))
	assert.Equal(t, 1, data.VisitCount)
	assert.Equal(t, 1, data.CurrentStreak)
	assert.Equal(t, 1, data.LongestStreak)

	assert.Equal(t, Extended, engine.RecordVisit(&data, day(2, 9)))
	assert.Equal(t, 2, data.CurrentStreak)
	assert.Equal(t, 2, data.LongestStreak)

	assert.Equal(t, Reset, engine.RecordVisit(&data, day(4, 9)))
	assert.Equal(t, 1, data.CurrentStreak)
	assert.Equal(t, 2, data.LongestStreak)
	assert.Equal(t, 3, data.VisitCount)
}

func TestRecordVisitSameDayIsIdempotent(t *testing.T) {
	engine := NewEngine(utils.NewCalendar(time.UTC))
	data := models.DefaultEngagement()

	engine.RecordVisit(&data, day(1, 8))
	before := data
	lastVisit := *data.LastVisit

	outcome := engine.RecordVisit(&data, day(1, 22))
	assert.Equal(t, SameDay, outcome)
	assert.False(t, outcome.Changed())
	assert.Equal(t, before.VisitCount, data.VisitCount)
	assert.Equal(t, before.CurrentStreak, data.CurrentStreak)
	assert.True(t, lastVisit.Equal(*data.LastVisit))
}

func TestRecordVisitBackdatedIsDropped(t *testing.T) {
	engine := NewEngine(utils.NewCalendar(time.UTC))
	data := models.DefaultEngagement()

	engine.RecordVisit(&data, day(5, 12))
	engine.RecordVisit(&data, day(6, 12))

	outcome := engine.RecordVisit(&data, day(3, 12))
	assert.Equal(t, Backdated, outcome)
	assert.Equal(t, 2, data.VisitCount)
	assert.Equal(t, 2, data.CurrentStreak)
	assert.True(t, day(6, 12).Equal(*data.LastVisit))
}

func TestRecordVisitUsesLocalCalendarDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	engine := NewEngine(utils.NewCalendar(loc))
	data := models.DefaultEngagement()

	// 23:30 and 00:30 local on consecutive days are one hour apart in UTC.
	engine.RecordVisit(&data, time.Date(2024, time.March, 9, 23, 30, 0, 0, loc))
	outcome := engine.RecordVisit(&data, time.Date(2024, time.March, 10, 0, 30, 0, 0, loc))
	assert.Equal(t, Extended, outcome)

	// Across the spring-forward transition the next day is still one day away.
	outcome = engine.RecordVisit(&data, time.Date(2024, time.March, 11, 0, 15, 0, 0, loc))
	assert.Equal(t, Extended, outcome)
	assert.Equal(t, 3, data.CurrentStreak)

	// 18:00 and 20:30 in New York straddle midnight UTC.
	evening := time.Date(2024, time.March, 12, 18, 0, 0, 0, loc)
	later := time.Date(2024, time.March, 12, 20, 30, 0, 0, loc)

	assert.Equal(t, Extended, engine.RecordVisit(&data, evening))
	assert.Equal(t, SameDay, engine.RecordVisit(&data, later))

	utcEngine := NewEngine(utils.NewCalendar(time.UTC))
	utcData := models.DefaultEngagement()
	utcEngine.RecordVisit(&utcData, evening)
	assert.Equal(t, Extended, utcEngine.RecordVisit(&utcData, later))
}

func TestLongestNeverBelowCurrent(t *testing.T) {
	engine := NewEngine(utils.NewCalendar(time.UTC))
	data := models.DefaultEngagement()

	visits := []time.Time{
		day(1, 9), day(2, 9), day(2, 20), day(3, 9), day(7, 9),
		day(6, 9), day(8, 9), day(9, 9), day(10, 9), day(11, 9), day(20, 9),
	}
	for _, v := range visits {
		engine.RecordVisit(&data, v)
		require.GreaterOrEqual(t, data.LongestStreak, data.CurrentStreak, "after visit %s", v)
	}
	assert.Equal(t, 5, data.LongestStreak)
	assert.Equal(t, 1, data.CurrentStreak)
}

func TestLive(t *testing.T) {
	engine := NewEngine(utils.NewCalendar(time.UTC))
	data := models.DefaultEngagement()
	assert.Equal(t, 0, engine.Live(data, day(1, 9)))

	engine.RecordVisit(&data, day(1, 9))
	engine.RecordVisit(&data, day(2, 9))

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"same day", day(2, 23), 2},
		{"next day", day(3, 9), 2},
		{"lapsed", day(4, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.Live(data, tt.now))
		})
	}
}
