package models

import (
	"fmt"
	"time"
)

// Skill is a tracked competency linked to journal entries and goals.
type Skill struct {
	Name           string     `json:"name"`
	Category       string     `json:"category,omitempty"`
	Proficiency    int        `json:"proficiency"` // 0-100
	UsageCount     int        `json:"usageCount"`
	LastUsed       *time.Time `json:"lastUsed,omitempty"`
	LinkedEntryIDs []string   `json:"linkedEntryIds"`
	LinkedGoalIDs  []string   `json:"linkedGoalIds"`
}

// SkillsData is the skills document, keyed by lower-cased skill name.
type SkillsData struct {
	Skills map[string]Skill `json:"skills"`
}

func DefaultSkills() SkillsData {
	return SkillsData{Skills: map[string]Skill{}}
}

func (d *SkillsData) Normalize() {
	if d.Skills == nil {
		d.Skills = map[string]Skill{}
	}
}

func (d SkillsData) Validate() error {
	for key, s := range d.Skills {
		if s.Name == "" {
			return fmt.Errorf("skill %q has no name", key)
		}
		if s.Proficiency < 0 || s.Proficiency > 100 || s.UsageCount < 0 {
			return fmt.Errorf("skill %q has out of range counters", key)
		}
	}
	return nil
}
