// Package reminder schedules the daily journaling reminder.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/utils"
)

const (
	reminderTag = "reminder"
	reloadTag   = "reload"

	// ReloadInterval is how often stored settings are re-read while running.
	ReloadInterval = 15 * time.Minute

	Title   = "Daily reminder"
	Message = "You haven't logged an accomplishment today. What went well?"
)

// Source reads the state reminders are based on.
type Source interface {
	Engagement() (models.EngagementData, error)
	NeedsReminder() (bool, error)
}

// Sender delivers a reminder.
type Sender interface {
	Deliver(ctx context.Context, title, text string)
}

// Scheduler fires the daily reminder with gocron.
type Scheduler struct {
	cron   *gocron.Scheduler
	source Source
	sender Sender

	mu      sync.Mutex
	current models.ReminderSettings
	ctx     context.Context
}

// New returns a Scheduler running in loc. A nil loc means time.Local.
func New(loc *time.Location, source Source, sender Sender) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	cron := gocron.NewScheduler(loc)
	cron.SingletonModeAll()
	return &Scheduler{
		cron:   cron,
		source: source,
		sender: sender,
		ctx:    context.Background(),
	}
}

// Configure replaces the reminder job with one matching settings. Disabled
// settings remove the job.
func (s *Scheduler) Configure(settings models.ReminderSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configure(settings)
}

func (s *Scheduler) configure(settings models.ReminderSettings) error {
	if settings.Enabled && !utils.ValidateTimeFormat(settings.Time) {
		return fmt.Errorf("invalid reminder time %q", settings.Time)
	}

	if err := s.cron.RemoveByTag(reminderTag); err != nil && !errors.Is(err, gocron.ErrJobNotFoundWithTag) {
		return fmt.Errorf("failed to clear reminder job: %w", err)
	}
	s.current = settings
	if !settings.Enabled {
		logger.Debug("Reminders disabled")
		return nil
	}

	_, err := s.cron.Every(1).Day().At(settings.Time).Tag(reminderTag).Do(s.fire)
	if err != nil {
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}
	logger.Debug("Reminder scheduled", "time", settings.Time, "days", settings.Days)
	return nil
}

// Check delivers a reminder now if one is due and reports whether it did.
func (s *Scheduler) Check(ctx context.Context) (bool, error) {
	need, err := s.source.NeedsReminder()
	if err != nil {
		return false, err
	}
	if need {
		s.sender.Deliver(ctx, Title, Message)
	}
	return need, nil
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	if _, err := s.Check(ctx); err != nil {
		logger.Error("Reminder check failed", "error", err)
	}
}

// reload re-reads stored settings and reschedules when they changed.
func (s *Scheduler) reload() {
	eng, err := s.source.Engagement()
	if err != nil {
		logger.Error("Failed to reload reminder settings", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sameSettings(s.current, eng.Reminders) {
		return
	}
	if err := s.configure(eng.Reminders); err != nil {
		logger.Error("Failed to apply reminder settings", "error", err)
	}
}

// NextRun returns when the reminder fires next.
func (s *Scheduler) NextRun() (time.Time, bool) {
	jobs, err := s.cron.FindJobsByTag(reminderTag)
	if err != nil || len(jobs) == 0 {
		return time.Time{}, false
	}
	return jobs[0].NextRun(), true
}

// Run applies the stored settings, then fires reminders until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	eng, err := s.source.Engagement()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.ctx = ctx
	err = s.configure(eng.Reminders)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	if _, err := s.cron.Every(ReloadInterval).Tag(reloadTag).WaitForSchedule().Do(s.reload); err != nil {
		return fmt.Errorf("failed to schedule settings reload: %w", err)
	}

	s.cron.StartAsync()
	<-ctx.Done()
	s.cron.Stop()
	return nil
}

func sameSettings(a, b models.ReminderSettings) bool {
	if a.Enabled != b.Enabled || a.Time != b.Time || len(a.Days) != len(b.Days) {
		return false
	}
	for i := range a.Days {
		if a.Days[i] != b.Days[i] {
			return false
		}
	}
	return true
}
