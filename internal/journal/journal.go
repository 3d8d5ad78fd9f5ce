// Package journal records accomplishments in the engagement document.
package journal

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tally/internal/constants"
	apperrors "github.com/julianstephens/tally/internal/errors"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/utils"
)

const entity = "journal entry"

// NewEntry holds the user-supplied fields of an entry. Mood 0 means unset.
type NewEntry struct {
	Accomplishment string
	Reflection     string
	Category       string
	Tags           []string
	Mood           int
}

// Journal adds and edits entries in the engagement document.
type Journal struct {
	clock    utils.Clock
	calendar utils.Calendar
}

// New returns a Journal dating entries with clock and calendar.
func New(clock utils.Clock, calendar utils.Calendar) *Journal {
	return &Journal{clock: clock, calendar: calendar}
}

// Add appends an entry dated now.
func (j *Journal) Add(data *models.EngagementData, in NewEntry) (models.JournalEntry, error) {
	text := strings.TrimSpace(in.Accomplishment)
	if text == "" {
		return models.JournalEntry{}, apperrors.Invalid("accomplishment", nil, "is required")
	}
	if in.Mood != 0 && (in.Mood < constants.MinMood || in.Mood > constants.MaxMood) {
		return models.JournalEntry{}, apperrors.Invalid("mood", in.Mood, "must be between 1 and 5")
	}

	entry := models.JournalEntry{
		ID:             uuid.NewString(),
		Date:           j.clock.Now(),
		Accomplishment: text,
		Reflection:     strings.TrimSpace(in.Reflection),
		Category:       strings.TrimSpace(in.Category),
		Tags:           normalizeTags(in.Tags),
		Mood:           in.Mood,
	}
	data.JournalEntries = append(data.JournalEntries, entry)
	return entry, nil
}

func (j *Journal) ToggleFavorite(data *models.EngagementData, id string) (models.JournalEntry, error) {
	i, err := find(data, id)
	if err != nil {
		return models.JournalEntry{}, err
	}
	data.JournalEntries[i].Favorite = !data.JournalEntries[i].Favorite
	return data.JournalEntries[i], nil
}

// EditReflection replaces the reflection text of an entry.
func (j *Journal) EditReflection(data *models.EngagementData, id, reflection string) (models.JournalEntry, error) {
	i, err := find(data, id)
	if err != nil {
		return models.JournalEntry{}, err
	}
	data.JournalEntries[i].Reflection = strings.TrimSpace(reflection)
	return data.JournalEntries[i], nil
}

// HasEntryOn reports whether any entry falls on the calendar day of t.
func (j *Journal) HasEntryOn(data models.EngagementData, t time.Time) bool {
	day := j.calendar.DayOf(t)
	for _, e := range data.JournalEntries {
		if j.calendar.DayOf(e.Date).Equal(day) {
			return true
		}
	}
	return false
}

// Filter selects entries for listing. Zero fields match everything.
type Filter struct {
	Tag       string
	Category  string
	Favorites bool
	Since     time.Time
	Limit     int
}

// List returns matching entries, newest first.
func List(data models.EngagementData, f Filter) []models.JournalEntry {
	var out []models.JournalEntry
	for i := len(data.JournalEntries) - 1; i >= 0; i-- {
		e := data.JournalEntries[i]
		if f.Favorites && !e.Favorite {
			continue
		}
		if f.Category != "" && !strings.EqualFold(e.Category, f.Category) {
			continue
		}
		if f.Tag != "" && !hasTag(e, f.Tag) {
			continue
		}
		if !f.Since.IsZero() && e.Date.Before(f.Since) {
			continue
		}
		out = append(out, e)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out
}

func find(data *models.EngagementData, id string) (int, error) {
	for i, e := range data.JournalEntries {
		if e.ID == id || (len(id) >= 8 && strings.HasPrefix(e.ID, id)) {
			return i, nil
		}
	}
	return -1, apperrors.NotFound(entity, id)
}

// normalizeTags trims, lower-cases and de-duplicates tags, keeping first
// occurrence order.
func normalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]bool, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), "#")))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func hasTag(e models.JournalEntry, tag string) bool {
	tag = strings.ToLower(strings.TrimPrefix(tag, "#"))
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
