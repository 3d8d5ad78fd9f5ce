// Package streak derives the visit streak stored in the engagement document.
package streak

import (
	"time"

	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/utils"
)

// Outcome classifies what RecordVisit did with a visit.
type Outcome int

const (
	// FirstVisit initialized the streak.
	FirstVisit Outcome = iota
	// SameDay was already counted.
	SameDay
	// Extended continued the streak from the previous calendar day.
	Extended
	// Reset started a new streak after a gap.
	Reset
	// Backdated was earlier than the last recorded visit and was dropped.
	Backdated
)

func (o Outcome) String() string {
	switch o {
	case FirstVisit:
		return "first visit"
	case SameDay:
		return "same day"
	case Extended:
		return "extended"
	case Reset:
		return "reset"
	case Backdated:
		return "backdated"
	default:
		return "unknown"
	}
}

// Changed reports whether the outcome mutated the document.
func (o Outcome) Changed() bool {
	return o == FirstVisit || o == Extended || o == Reset
}

// Engine applies visits to the engagement document's streak fields.
type Engine struct {
	calendar utils.Calendar
}

// NewEngine returns an Engine that compares visits by calendar's days.
func NewEngine(calendar utils.Calendar) *Engine {
	return &Engine{calendar: calendar}
}

// RecordVisit applies a visit at now to data.
func (e *Engine) RecordVisit(data *models.EngagementData, now time.Time) Outcome {
	if data.LastVisit == nil {
		data.CurrentStreak = 1
		data.LongestStreak = max(data.LongestStreak, 1)
		data.VisitCount++
		data.LastVisit = &now
		return FirstVisit
	}

	last := *data.LastVisit
	if now.Before(last) {
		logger.Warn("Dropping backdated visit", "visit", now, "last_visit", last)
		return Backdated
	}

	gap := utils.DaysBetween(e.calendar.DayOf(last), e.calendar.DayOf(now))
	var outcome Outcome
	switch {
	case gap <= 0:
		return SameDay
	case gap == 1:
		data.CurrentStreak++
		outcome = Extended
	default:
		data.CurrentStreak = 1
		outcome = Reset
	}

	data.LongestStreak = max(data.LongestStreak, data.CurrentStreak)
	data.VisitCount++
	data.LastVisit = &now
	return outcome
}

// Live returns the streak as it stands at now without recording a visit. A
// streak whose last visit is more than one calendar day old has lapsed.
func (e *Engine) Live(data models.EngagementData, now time.Time) int {
	if data.LastVisit == nil {
		return 0
	}
	if utils.DaysBetween(e.calendar.DayOf(*data.LastVisit), e.calendar.DayOf(now)) > 1 {
		return 0
	}
	return data.CurrentStreak
}
