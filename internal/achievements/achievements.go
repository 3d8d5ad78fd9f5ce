// Package achievements evaluates unlock conditions against a stats snapshot
// and records each unlock exactly once.
package achievements

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/stats"
	"github.com/julianstephens/tally/internal/utils"
)

// Definition is one catalog entry. It unlocks once Value reaches Target.
type Definition struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Target      int
	Value       func(stats.Snapshot) int
}

// Engine holds an immutable copy of the catalog it was built with.
type Engine struct {
	catalog []Definition
	clock   utils.Clock
}

// NewEngine validates and copies the catalog.
func NewEngine(catalog []Definition, clock utils.Clock) (*Engine, error) {
	seen := make(map[string]bool, len(catalog))
	for i, d := range catalog {
		switch {
		case d.ID == "":
			return nil, fmt.Errorf("achievement %d has no id", i)
		case seen[d.ID]:
			return nil, fmt.Errorf("duplicate achievement id %q", d.ID)
		case d.Target <= 0:
			return nil, fmt.Errorf("achievement %q has non-positive target %d", d.ID, d.Target)
		case d.Value == nil:
			return nil, fmt.Errorf("achievement %q has no value function", d.ID)
		}
		seen[d.ID] = true
	}
	return &Engine{
		catalog: append([]Definition(nil), catalog...),
		clock:   clock,
	}, nil
}

// Catalog returns a copy of the definitions in evaluation order.
func (e *Engine) Catalog() []Definition {
	return append([]Definition(nil), e.catalog...)
}

// Evaluate appends every satisfied, not yet unlocked achievement to data in
// catalog order and returns the new unlocks. Existing entries are never
// modified, so repeated calls with the same snapshot are no-ops.
func (e *Engine) Evaluate(data *models.EngagementData, snap stats.Snapshot) []models.Achievement {
	var unlocked []models.Achievement
	var now time.Time
	for _, d := range e.catalog {
		if data.HasAchievement(d.ID) || d.Value(snap) < d.Target {
			continue
		}
		if now.IsZero() {
			now = e.clock.Now()
		}
		at := now
		a := models.Achievement{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			Icon:        d.Icon,
			UnlockedAt:  &at,
			Progress:    1,
			Target:      d.Target,
		}
		data.Achievements = append(data.Achievements, a)
		unlocked = append(unlocked, a)
		logger.Info("Achievement unlocked", "id", d.ID, "title", d.Title)
	}
	return unlocked
}

// Progress reports every catalog entry with its current progress toward the
// target. Unlocked entries carry their recorded unlock time. The document is
// not modified.
func (e *Engine) Progress(data models.EngagementData, snap stats.Snapshot) []models.Achievement {
	recorded := make(map[string]models.Achievement, len(data.Achievements))
	for _, a := range data.Achievements {
		recorded[a.ID] = a
	}

	out := make([]models.Achievement, 0, len(e.catalog))
	for _, d := range e.catalog {
		a := models.Achievement{
			ID:          d.ID,
			Title:       d.Title,
			Description: d.Description,
			Icon:        d.Icon,
			Target:      d.Target,
			Progress:    Ratio(d.Value(snap), d.Target),
		}
		if r, ok := recorded[d.ID]; ok {
			a.UnlockedAt = r.UnlockedAt
			a.Progress = 1
		}
		out = append(out, a)
	}
	return out
}

// Feed returns the unlocked achievements ordered by unlock time. Entries
// unlocked together keep their recorded order.
func Feed(data models.EngagementData) []models.Achievement {
	out := make([]models.Achievement, 0, len(data.Achievements))
	for _, a := range data.Achievements {
		if a.UnlockedAt != nil {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UnlockedAt.Before(*out[j].UnlockedAt)
	})
	return out
}

// Ratio is min(value/target, 1), floored at 0.
func Ratio(value, target int) float64 {
	if target <= 0 || value <= 0 {
		return 0
	}
	if value >= target {
		return 1
	}
	return float64(value) / float64(target)
}
