package tracker

import (
	"slices"
	"time"

	"github.com/julianstephens/tally/internal/achievements"
	apperrors "github.com/julianstephens/tally/internal/errors"
	"github.com/julianstephens/tally/internal/goals"
	"github.com/julianstephens/tally/internal/insights"
	"github.com/julianstephens/tally/internal/journal"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/skills"
	"github.com/julianstephens/tally/internal/stats"
	"github.com/julianstephens/tally/internal/streak"
	"github.com/julianstephens/tally/internal/utils"
)

// RecordVisit counts a visit now and brings habit streaks up to date.
func (s *Service) RecordVisit() (streak.Outcome, Result, error) {
	return mutate(s, func(st *state) (streak.Outcome, error) {
		outcome := s.streaks.RecordVisit(&st.eng, s.clock.Now())
		s.habits.Refresh(&st.goals)
		return outcome, nil
	})
}

// ViewAffirmation returns today's affirmation and counts the view.
func (s *Service) ViewAffirmation() (string, Result, error) {
	return mutate(s, func(st *state) (string, error) {
		text := insights.AffirmationFor(s.content, s.Today())
		if text == "" {
			return "", apperrors.NotFound("affirmation", utils.FormatDay(s.Today()))
		}
		st.eng.AffirmationsViewed++
		return text, nil
	})
}

// ViewInsight returns the insight with id, or the next unread one when id is
// empty. Only the first view of an id counts toward insightsViewed.
func (s *Service) ViewInsight(id string) (models.Insight, Result, error) {
	return mutate(s, func(st *state) (models.Insight, error) {
		var (
			in models.Insight
			ok bool
		)
		if id == "" {
			in, ok = insights.NextInsight(s.content, st.eng.ViewedInsightIDs, s.Today())
		} else {
			in, ok = s.content.Insight(id)
		}
		if !ok {
			return models.Insight{}, apperrors.NotFound("insight", id)
		}
		if !st.eng.HasViewedInsight(in.ID) {
			st.eng.ViewedInsightIDs = append(st.eng.ViewedInsightIDs, in.ID)
			st.eng.InsightsViewed++
		}
		return in, nil
	})
}

// AddEntry logs an accomplishment and records a use of each named skill.
func (s *Service) AddEntry(in journal.NewEntry, skillNames []string) (models.JournalEntry, Result, error) {
	return mutate(s, func(st *state) (models.JournalEntry, error) {
		entry, err := s.journal.Add(&st.eng, in)
		if err != nil {
			return models.JournalEntry{}, err
		}
		for _, name := range skillNames {
			if _, err := s.skills.Track(&st.skills, skills.Usage{Name: name, Category: entry.Category, EntryID: entry.ID}); err != nil {
				return models.JournalEntry{}, err
			}
		}
		return entry, nil
	})
}

func (s *Service) ToggleFavorite(id string) (models.JournalEntry, Result, error) {
	return mutate(s, func(st *state) (models.JournalEntry, error) {
		return s.journal.ToggleFavorite(&st.eng, id)
	})
}

func (s *Service) EditReflection(id, reflection string) (models.JournalEntry, Result, error) {
	return mutate(s, func(st *state) (models.JournalEntry, error) {
		return s.journal.EditReflection(&st.eng, id, reflection)
	})
}

// SetReminders replaces the reminder settings.
func (s *Service) SetReminders(settings models.ReminderSettings) (models.ReminderSettings, Result, error) {
	return mutate(s, func(st *state) (models.ReminderSettings, error) {
		if !utils.ValidateTimeFormat(settings.Time) {
			return models.ReminderSettings{}, apperrors.Invalid("time", settings.Time, "must be HH:MM")
		}
		days := slices.Clone(settings.Days)
		for _, d := range days {
			if d < time.Sunday || d > time.Saturday {
				return models.ReminderSettings{}, apperrors.Invalid("days", d, "is not a weekday")
			}
		}
		slices.Sort(days)
		settings.Days = slices.Compact(days)
		st.eng.Reminders = settings
		return settings, nil
	})
}

func (s *Service) AddHabit(title string, freq models.Frequency) (models.Habit, Result, error) {
	return mutate(s, func(st *state) (models.Habit, error) {
		return s.habits.Add(&st.goals, title, freq)
	})
}

// RecordHabit upserts a completion. An empty date means today.
func (s *Service) RecordHabit(ref, date string, completed bool, note string) (models.Habit, Result, error) {
	return mutate(s, func(st *state) (models.Habit, error) {
		return s.habits.RecordCompletion(&st.goals, ref, date, completed, note)
	})
}

func (s *Service) ToggleHabit(ref string) (models.Habit, Result, error) {
	return mutate(s, func(st *state) (models.Habit, error) {
		return s.habits.ToggleActive(&st.goals, ref)
	})
}

// RefreshHabits recomputes every active habit's streak for today.
func (s *Service) RefreshHabits() ([]models.Habit, Result, error) {
	return mutate(s, func(st *state) ([]models.Habit, error) {
		s.habits.Refresh(&st.goals)
		return slices.Clone(st.goals.Habits), nil
	})
}

func (s *Service) CreateGoal(in goals.NewGoal) (models.Goal, Result, error) {
	return mutate(s, func(st *state) (models.Goal, error) {
		return s.goals.Create(&st.goals, in)
	})
}

func (s *Service) AddMilestone(goalRef, title string) (models.Goal, Result, error) {
	return mutate(s, func(st *state) (models.Goal, error) {
		return s.goals.AddMilestone(&st.goals, goalRef, title)
	})
}

func (s *Service) CompleteMilestone(goalRef, milestoneRef string) (models.Goal, Result, error) {
	return mutate(s, func(st *state) (models.Goal, error) {
		return s.goals.CompleteMilestone(&st.goals, goalRef, milestoneRef)
	})
}

func (s *Service) UpdateProgress(goalRef string, value int) (models.Goal, Result, error) {
	return mutate(s, func(st *state) (models.Goal, error) {
		return s.goals.UpdateProgress(&st.goals, goalRef, value)
	})
}

func (s *Service) CompleteGoal(ref string) (models.Goal, Result, error) {
	return mutate(s, func(st *state) (models.Goal, error) {
		return s.goals.Complete(&st.goals, ref)
	})
}

func (s *Service) PauseGoal(ref string) (models.Goal, Result, error) {
	return mutate(s, func(st *state) (models.Goal, error) {
		return s.goals.Pause(&st.goals, ref)
	})
}

func (s *Service) ResumeGoal(ref string) (models.Goal, Result, error) {
	return mutate(s, func(st *state) (models.Goal, error) {
		return s.goals.Resume(&st.goals, ref)
	})
}

func (s *Service) AbandonGoal(ref string) (models.Goal, Result, error) {
	return mutate(s, func(st *state) (models.Goal, error) {
		return s.goals.Abandon(&st.goals, ref)
	})
}

// TrackSkill records a use of a skill. Linked goals must exist.
func (s *Service) TrackSkill(u skills.Usage) (models.Skill, Result, error) {
	return mutate(s, func(st *state) (models.Skill, error) {
		if u.GoalID != "" {
			i, err := goals.Find(&st.goals, u.GoalID)
			if err != nil {
				return models.Skill{}, err
			}
			u.GoalID = st.goals.Goals[i].ID
		}
		return s.skills.Track(&st.skills, u)
	})
}

func (s *Service) SetProficiency(name string, value int) (models.Skill, Result, error) {
	return mutate(s, func(st *state) (models.Skill, error) {
		return s.skills.SetProficiency(&st.skills, name, value)
	})
}

// Engagement returns the engagement document.
func (s *Service) Engagement() (models.EngagementData, error) {
	return view(s, func(st *state) models.EngagementData { return st.eng })
}

// Goals returns the goals/habits document.
func (s *Service) Goals() (models.GoalsData, error) {
	return view(s, func(st *state) models.GoalsData { return st.goals })
}

func (s *Service) Skills() (models.SkillsData, error) {
	return view(s, func(st *state) models.SkillsData { return st.skills })
}

// Snapshot returns the aggregate stats of the stored documents.
func (s *Service) Snapshot() (stats.Snapshot, error) {
	return view(s, func(st *state) stats.Snapshot {
		return stats.Aggregate(st.eng, st.goals, st.skills)
	})
}

// Feed returns unlocked achievements ordered by unlock time.
func (s *Service) Feed() ([]models.Achievement, error) {
	return view(s, func(st *state) []models.Achievement { return achievements.Feed(st.eng) })
}

// AchievementProgress returns every catalog entry with its progress.
func (s *Service) AchievementProgress() ([]models.Achievement, error) {
	return view(s, func(st *state) []models.Achievement {
		return s.achievements.Progress(st.eng, stats.Aggregate(st.eng, st.goals, st.skills))
	})
}

// DueHabits returns active habits scheduled today and not yet completed.
func (s *Service) DueHabits() ([]models.Habit, error) {
	return view(s, func(st *state) []models.Habit { return s.habits.DueToday(st.goals) })
}

// Journal lists entries matching f, newest first.
func (s *Service) Journal(f journal.Filter) ([]models.JournalEntry, error) {
	return view(s, func(st *state) []models.JournalEntry { return journal.List(st.eng, f) })
}

// LiveStreak returns the visit streak as of now without recording a visit.
func (s *Service) LiveStreak() (int, error) {
	return view(s, func(st *state) int { return s.streaks.Live(st.eng, s.clock.Now()) })
}

// NeedsReminder reports whether a reminder is enabled for today's weekday
// and no entry has been logged today.
func (s *Service) NeedsReminder() (bool, error) {
	return view(s, func(st *state) bool {
		r := st.eng.Reminders
		if !r.Enabled {
			return false
		}
		now := s.clock.Now()
		if len(r.Days) > 0 && !slices.Contains(r.Days, s.calendar.DayOf(now).Weekday()) {
			return false
		}
		return !s.journal.HasEntryOn(st.eng, now)
	})
}
