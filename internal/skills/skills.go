// Package skills tracks competencies exercised by journal entries and goals.
package skills

import (
	"slices"
	"sort"
	"strings"

	apperrors "github.com/julianstephens/tally/internal/errors"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/utils"
)

// Usage is one recorded use of a skill.
type Usage struct {
	Name     string
	Category string
	EntryID  string
	GoalID   string
}

// Tracker records skill usage in the skills document.
type Tracker struct {
	clock utils.Clock
}

// NewTracker returns a Tracker that stamps usage with clock.
func NewTracker(clock utils.Clock) *Tracker {
	return &Tracker{clock: clock}
}

// Key returns the document key of a skill name.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Track creates the skill on first use and records the usage.
func (t *Tracker) Track(data *models.SkillsData, u Usage) (models.Skill, error) {
	key := Key(u.Name)
	if key == "" {
		return models.Skill{}, apperrors.Invalid("name", nil, "is required")
	}

	skill, ok := data.Skills[key]
	if !ok {
		skill = models.Skill{
			Name:           strings.TrimSpace(u.Name),
			LinkedEntryIDs: []string{},
			LinkedGoalIDs:  []string{},
		}
	}
	if c := strings.TrimSpace(u.Category); c != "" {
		skill.Category = c
	}

	now := t.clock.Now()
	skill.UsageCount++
	skill.LastUsed = &now
	skill.LinkedEntryIDs = link(skill.LinkedEntryIDs, u.EntryID)
	skill.LinkedGoalIDs = link(skill.LinkedGoalIDs, u.GoalID)

	if data.Skills == nil {
		data.Skills = map[string]models.Skill{}
	}
	data.Skills[key] = skill
	return skill, nil
}

// SetProficiency records a self-assessed proficiency between 0 and 100.
func (t *Tracker) SetProficiency(data *models.SkillsData, name string, value int) (models.Skill, error) {
	if value < 0 || value > 100 {
		return models.Skill{}, apperrors.Invalid("proficiency", value, "must be between 0 and 100")
	}
	key := Key(name)
	skill, ok := data.Skills[key]
	if !ok {
		return models.Skill{}, apperrors.NotFound("skill", name)
	}
	skill.Proficiency = value
	data.Skills[key] = skill
	return skill, nil
}

// Ranked returns skills ordered by usage, most used first.
func Ranked(data models.SkillsData) []models.Skill {
	out := make([]models.Skill, 0, len(data.Skills))
	for _, s := range data.Skills {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UsageCount != out[j].UsageCount {
			return out[i].UsageCount > out[j].UsageCount
		}
		return Key(out[i].Name) < Key(out[j].Name)
	})
	return out
}

func link(ids []string, id string) []string {
	ids = slices.Clone(ids)
	if ids == nil {
		ids = []string{}
	}
	if id == "" || slices.Contains(ids, id) {
		return ids
	}
	return append(ids, id)
}
