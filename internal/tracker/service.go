// Package tracker runs every user action through the same pipeline: load the
// documents, apply one mutation, recompute stats, evaluate achievements and
// write back whatever changed.
package tracker

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/tally/internal/achievements"
	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/goals"
	"github.com/julianstephens/tally/internal/habits"
	"github.com/julianstephens/tally/internal/insights"
	"github.com/julianstephens/tally/internal/journal"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/skills"
	"github.com/julianstephens/tally/internal/stats"
	"github.com/julianstephens/tally/internal/storage"
	"github.com/julianstephens/tally/internal/streak"
	"github.com/julianstephens/tally/internal/utils"
)

// Options configures a Service. Zero values select the system clock, the
// local time zone, the default achievement catalog and the embedded content.
type Options struct {
	Clock    utils.Clock
	Location *time.Location
	Catalog  []achievements.Definition
	Content  insights.Catalog
}

// Result describes side effects of a mutating call beyond its return value.
type Result struct {
	Unlocked []models.Achievement
}

// Service runs every tracker operation against the stored documents.
type Service struct {
	mu       sync.Mutex
	store    *storage.Store
	clock    utils.Clock
	calendar utils.Calendar
	content  insights.Catalog

	streaks      *streak.Engine
	habits       *habits.Tracker
	goals        *goals.Tracker
	journal      *journal.Journal
	skills       *skills.Tracker
	achievements *achievements.Engine
}

// New builds a Service over store. It fails when the achievement catalog or
// the insight content is invalid.
func New(store *storage.Store, opts Options) (*Service, error) {
	if opts.Clock == nil {
		opts.Clock = utils.SystemClock
	}
	calendar := utils.NewCalendar(opts.Location)
	if opts.Catalog == nil {
		opts.Catalog = achievements.DefaultCatalog()
	}
	if opts.Content == nil {
		content, err := insights.Load()
		if err != nil {
			return nil, err
		}
		opts.Content = content
	}

	engine, err := achievements.NewEngine(opts.Catalog, opts.Clock)
	if err != nil {
		return nil, fmt.Errorf("invalid achievement catalog: %w", err)
	}

	return &Service{
		store:        store,
		clock:        opts.Clock,
		calendar:     calendar,
		content:      opts.Content,
		streaks:      streak.NewEngine(calendar),
		habits:       habits.NewTracker(opts.Clock, calendar),
		goals:        goals.NewTracker(opts.Clock),
		journal:      journal.New(opts.Clock, calendar),
		skills:       skills.NewTracker(opts.Clock),
		achievements: engine,
	}, nil
}

func (s *Service) Close() error {
	return s.store.Close()
}

// Content returns the read-only affirmation and insight catalog.
func (s *Service) Content() insights.Catalog {
	return s.content
}

// Today returns the current calendar day.
func (s *Service) Today() time.Time {
	return s.calendar.DayOf(s.clock.Now())
}

// state is one loaded copy of all three documents plus their encoded form
// at load time.
type state struct {
	eng    models.EngagementData
	goals  models.GoalsData
	skills models.SkillsData

	origEng, origGoals, origSkills []byte
}

func (s *Service) load() (*state, error) {
	eng, err := s.store.LoadEngagement()
	if err != nil {
		return nil, err
	}
	goalsDoc, err := s.store.LoadGoals()
	if err != nil {
		return nil, err
	}
	skillsDoc, err := s.store.LoadSkills()
	if err != nil {
		return nil, err
	}

	st := &state{eng: eng, goals: goalsDoc, skills: skillsDoc}
	if st.origEng, err = storage.Encode(eng); err != nil {
		return nil, err
	}
	if st.origGoals, err = storage.Encode(goalsDoc); err != nil {
		return nil, err
	}
	if st.origSkills, err = storage.Encode(skillsDoc); err != nil {
		return nil, err
	}
	return st, nil
}

// commit recomputes derived state and writes the documents that changed in
// one batch, so a failed write leaves every document as it was loaded and
// the whole call can be retried. The engagement document goes last for
// backends that can only write one key at a time.
func (s *Service) commit(st *state) (Result, error) {
	stats.Apply(&st.goals)
	snap := stats.Aggregate(st.eng, st.goals, st.skills)
	unlocked := s.achievements.Evaluate(&st.eng, snap)

	docs := []struct {
		key  string
		orig []byte
		doc  any
	}{
		{constants.KeyGoals, st.origGoals, st.goals},
		{constants.KeySkills, st.origSkills, st.skills},
		{constants.KeyEngagement, st.origEng, st.eng},
	}
	var writes []storage.Write
	for _, d := range docs {
		data, err := storage.Encode(d.doc)
		if err != nil {
			return Result{}, err
		}
		if bytes.Equal(data, d.orig) {
			continue
		}
		writes = append(writes, storage.Write{Key: d.key, Data: data})
	}
	if err := s.store.SaveBatch(writes); err != nil {
		return Result{}, err
	}
	for _, w := range writes {
		logger.Debug("Persisted document", "key", w.Key, "bytes", len(w.Data))
	}
	return Result{Unlocked: unlocked}, nil
}

// mutate runs fn against freshly loaded documents. A failing fn leaves
// storage untouched.
func mutate[T any](s *Service, fn func(st *state) (T, error)) (T, Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero T
	st, err := s.load()
	if err != nil {
		return zero, Result{}, err
	}
	out, err := fn(st)
	if err != nil {
		return zero, Result{}, err
	}
	res, err := s.commit(st)
	if err != nil {
		return zero, Result{}, err
	}
	return out, res, nil
}

// view runs fn against freshly loaded documents without writing.
func view[T any](s *Service, fn func(st *state) T) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.load()
	if err != nil {
		var zero T
		return zero, err
	}
	return fn(st), nil
}

// Reset erases every document.
func (s *Service) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.EraseAll(); err != nil {
		return fmt.Errorf("failed to reset: %w", err)
	}
	logger.Warn("All tracking data erased")
	return nil
}
