// Package goals manages goal milestones, derived progress and the goal
// lifecycle.
//
// Status transitions:
//
//	active -> completed             (final milestone, 100% progress, or Complete)
//	active <-> paused
//	active, paused -> abandoned
//
// Completed and abandoned are terminal.
package goals

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/tally/internal/constants"
	apperrors "github.com/julianstephens/tally/internal/errors"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/utils"
)

const entity = "goal"

// NewGoal holds the user-supplied fields of a goal.
type NewGoal struct {
	Title       string
	Description string
	Category    string
	TargetDate  string
	Milestones  []string
}

// Tracker applies goal and milestone changes and enforces the status rules.
type Tracker struct {
	clock utils.Clock
}

// NewTracker returns a Tracker that stamps changes with clock.
func NewTracker(clock utils.Clock) *Tracker {
	return &Tracker{clock: clock}
}

// Find returns the index of the goal whose ID or title matches ref. IDs may be
// shortened to a prefix of at least eight characters.
func Find(data *models.GoalsData, ref string) (int, error) {
	for i, g := range data.Goals {
		if g.ID == ref || (len(ref) >= 8 && strings.HasPrefix(g.ID, ref)) {
			return i, nil
		}
	}
	for i, g := range data.Goals {
		if strings.EqualFold(g.Title, ref) {
			return i, nil
		}
	}
	return -1, apperrors.NotFound(entity, ref)
}

// Create appends a new active goal.
func (t *Tracker) Create(data *models.GoalsData, in NewGoal) (models.Goal, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Goal{}, apperrors.Invalid("title", nil, "is required")
	}
	if in.TargetDate != "" {
		if _, err := utils.ParseDay(in.TargetDate); err != nil {
			return models.Goal{}, apperrors.Invalid("targetDate", in.TargetDate, "must be YYYY-MM-DD")
		}
	}

	milestones := make([]models.Milestone, 0, len(in.Milestones))
	for _, m := range in.Milestones {
		m = strings.TrimSpace(m)
		if m == "" {
			return models.Goal{}, apperrors.Invalid("milestone", nil, "title is required")
		}
		milestones = append(milestones, models.Milestone{ID: uuid.NewString(), Title: m})
	}

	now := t.clock.Now()
	goal := models.Goal{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Status:      models.GoalActive,
		Milestones:  milestones,
		TargetDate:  in.TargetDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	data.Goals = append(data.Goals, goal)
	return goal, nil
}

// AddMilestone appends a milestone to an active or paused goal and
// re-derives its progress.
func (t *Tracker) AddMilestone(data *models.GoalsData, ref, title string) (models.Goal, error) {
	i, err := Find(data, ref)
	if err != nil {
		return models.Goal{}, err
	}
	goal := data.Goals[i]
	if goal.Status.Terminal() {
		return models.Goal{}, rejected(goal, "add a milestone to")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Goal{}, apperrors.Invalid("milestone", nil, "title is required")
	}

	goal.Milestones = append(cloneMilestones(goal.Milestones), models.Milestone{ID: uuid.NewString(), Title: title})
	goal.Progress = milestoneProgress(goal)
	goal.UpdatedAt = t.clock.Now()
	data.Goals[i] = goal
	return goal, nil
}

// CompleteMilestone marks a milestone done. Completing the last open
// milestone completes the goal. Completing an already completed milestone
// changes nothing.
func (t *Tracker) CompleteMilestone(data *models.GoalsData, ref, milestoneRef string) (models.Goal, error) {
	i, err := Find(data, ref)
	if err != nil {
		return models.Goal{}, err
	}
	goal := data.Goals[i]
	if goal.Status != models.GoalActive {
		return models.Goal{}, rejected(goal, "complete a milestone of")
	}

	m := findMilestone(goal, milestoneRef)
	if m < 0 {
		return models.Goal{}, apperrors.NotFound("milestone", milestoneRef)
	}
	if goal.Milestones[m].Completed {
		return goal, nil
	}

	now := t.clock.Now()
	goal.Milestones = cloneMilestones(goal.Milestones)
	goal.Milestones[m].Completed = true
	goal.Milestones[m].CompletedAt = &now
	goal.UpdatedAt = now

	if goal.CompletedMilestones() == len(goal.Milestones) {
		complete(&goal, now)
	} else {
		goal.Progress = milestoneProgress(goal)
	}
	data.Goals[i] = goal
	return goal, nil
}

// UpdateProgress overrides the progress of an active goal. Setting 100
// completes the goal; while milestones remain open the value is capped at 99
// and only the last milestone completes it.
func (t *Tracker) UpdateProgress(data *models.GoalsData, ref string, value int) (models.Goal, error) {
	if value < constants.MinProgress || value > constants.MaxProgress {
		return models.Goal{}, apperrors.Invalid("progress", value, "must be between 0 and 100")
	}
	i, err := Find(data, ref)
	if err != nil {
		return models.Goal{}, err
	}
	goal := data.Goals[i]
	if goal.Status != models.GoalActive {
		return models.Goal{}, rejected(goal, "update progress of")
	}

	if value == constants.MaxProgress && goal.CompletedMilestones() < len(goal.Milestones) {
		value = constants.MaxProgress - 1
	}

	now := t.clock.Now()
	goal.UpdatedAt = now
	if value == constants.MaxProgress {
		complete(&goal, now)
	} else {
		goal.Progress = value
	}
	data.Goals[i] = goal
	return goal, nil
}

// Complete explicitly completes an active goal.
func (t *Tracker) Complete(data *models.GoalsData, ref string) (models.Goal, error) {
	return t.transition(data, ref, "complete", func(g *models.Goal) bool {
		return g.Status == models.GoalActive
	}, func(g *models.Goal) {
		complete(g, t.clock.Now())
	})
}

func (t *Tracker) Pause(data *models.GoalsData, ref string) (models.Goal, error) {
	return t.transition(data, ref, "pause", func(g *models.Goal) bool {
		return g.Status == models.GoalActive
	}, func(g *models.Goal) {
		g.Status = models.GoalPaused
	})
}

func (t *Tracker) Resume(data *models.GoalsData, ref string) (models.Goal, error) {
	return t.transition(data, ref, "resume", func(g *models.Goal) bool {
		return g.Status == models.GoalPaused
	}, func(g *models.Goal) {
		g.Status = models.GoalActive
	})
}

func (t *Tracker) Abandon(data *models.GoalsData, ref string) (models.Goal, error) {
	return t.transition(data, ref, "abandon", func(g *models.Goal) bool {
		return !g.Status.Terminal()
	}, func(g *models.Goal) {
		g.Status = models.GoalAbandoned
	})
}

func (t *Tracker) transition(data *models.GoalsData, ref, op string, allowed func(*models.Goal) bool, apply func(*models.Goal)) (models.Goal, error) {
	i, err := Find(data, ref)
	if err != nil {
		return models.Goal{}, err
	}
	goal := data.Goals[i]
	if !allowed(&goal) {
		return models.Goal{}, rejected(goal, op)
	}
	apply(&goal)
	goal.UpdatedAt = t.clock.Now()
	data.Goals[i] = goal
	return goal, nil
}

func complete(g *models.Goal, now time.Time) {
	g.Status = models.GoalCompleted
	g.Progress = constants.MaxProgress
	g.CompletedAt = &now
}

// milestoneProgress derives progress from milestone completion. Progress
// stays below 100 until every milestone is done, so rounding alone never
// implies completion.
func milestoneProgress(g models.Goal) int {
	total := len(g.Milestones)
	if total == 0 {
		return g.Progress
	}
	done := g.CompletedMilestones()
	p := int(math.Round(100 * float64(done) / float64(total)))
	if done < total && p >= constants.MaxProgress {
		p = constants.MaxProgress - 1
	}
	return p
}

func findMilestone(g models.Goal, ref string) int {
	for i, m := range g.Milestones {
		if m.ID == ref || (len(ref) >= 8 && strings.HasPrefix(m.ID, ref)) {
			return i
		}
	}
	for i, m := range g.Milestones {
		if strings.EqualFold(m.Title, ref) {
			return i
		}
	}
	return -1
}

func cloneMilestones(ms []models.Milestone) []models.Milestone {
	out := make([]models.Milestone, len(ms))
	copy(out, ms)
	return out
}

func rejected(g models.Goal, op string) error {
	return apperrors.Transition(entity, g.ID, string(g.Status), op)
}
