package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/tally/internal/constants"
)

// Clock is the wall-clock seam. Production code uses SystemClock.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the real wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

// Calendar maps a timestamp to the calendar day it falls on.
//
// Days are returned as midnight UTC values carrying the local year, month
// and day, so two days can be compared and subtracted without DST effects.
type Calendar interface {
	DayOf(t time.Time) time.Time
}

// LocationCalendar computes calendar days in a fixed time zone.
type LocationCalendar struct {
	Location *time.Location
}

// NewCalendar returns a calendar for loc, falling back to time.Local.
func NewCalendar(loc *time.Location) LocationCalendar {
	if loc == nil {
		loc = time.Local
	}
	return LocationCalendar{Location: loc}
}

func (c LocationCalendar) DayOf(t time.Time) time.Time {
	lt := t.In(c.Location)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.UTC)
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	_, err := LoadLocation(timezone)
	return err == nil
}

// ParseDay parses a YYYY-MM-DD string into a calendar day value.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(constants.DateFormat, s)
}

// FormatDay renders a calendar day as YYYY-MM-DD.
func FormatDay(day time.Time) string {
	return day.Format(constants.DateFormat)
}

// DaysBetween returns the whole number of calendar days from a to b.
// Both arguments must be values produced by a Calendar or ParseDay.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// ParseTimeToMinutes parses a time string (HH:MM) and returns the number of minutes from midnight.
func ParseTimeToMinutes(timeStr string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := time.Parse(constants.TimeFormat, timeStr)
	return err == nil
}
