package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tally/internal/backup"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/notifier"
	"github.com/julianstephens/tally/internal/storage"
	"github.com/julianstephens/tally/internal/tracker"
	"github.com/julianstephens/tally/internal/utils"
)

type Context struct {
	Tracker  *tracker.Service
	Store    *storage.Store
	Notifier *notifier.Notifier
	Location *time.Location
	Clock    utils.Clock
	Out      io.Writer

	// Confirm asks a yes/no question. Nil uses an interactive prompt.
	Confirm func(title, description string) (bool, error)
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) Now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock.Now()
}

// Zone returns the configured time zone.
func (c *Context) Zone() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// Ask asks for confirmation before a destructive action.
func (c *Context) Ask(title, description string) (bool, error) {
	if c.Confirm != nil {
		return c.Confirm(title, description)
	}
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

// Announce reports achievements unlocked by a mutation.
func (c *Context) Announce(res tracker.Result) {
	if len(res.Unlocked) == 0 || c.Notifier == nil {
		return
	}
	c.Notifier.Unlocked(context.Background(), res.Unlocked)
}

// SQLitePath returns the database file when the SQLite backend is in use.
func (c *Context) SQLitePath() (string, bool) {
	if c.Store == nil {
		return "", false
	}
	b, ok := c.Store.Backend().(*storage.SQLiteBackend)
	if !ok {
		return "", false
	}
	return b.Path(), true
}

// BackupManager returns a backup manager for the SQLite database, or nil for
// other backends.
func (c *Context) BackupManager() *backup.Manager {
	path, ok := c.SQLitePath()
	if !ok {
		return nil
	}
	return backup.NewManager(path, c.Clock)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := c.BackupManager()
	if mgr == nil {
		return
	}
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

var weekdayNames = map[string]time.Weekday{
	"sun":       time.Sunday,
	"sunday":    time.Sunday,
	"mon":       time.Monday,
	"monday":    time.Monday,
	"tue":       time.Tuesday,
	"tuesday":   time.Tuesday,
	"wed":       time.Wednesday,
	"wednesday": time.Wednesday,
	"thu":       time.Thursday,
	"thursday":  time.Thursday,
	"fri":       time.Friday,
	"friday":    time.Friday,
	"sat":       time.Saturday,
	"saturday":  time.Saturday,
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var weekdays []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := weekdayNames[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		// Try parsing as number (0=Sunday, 6=Saturday)
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		weekdays = append(weekdays, time.Weekday(num))
	}
	return weekdays, nil
}

// FormatWeekdays renders weekdays as "Mon,Wed,Fri".
func FormatWeekdays(days []time.Weekday) string {
	names := make([]string, 0, len(days))
	for _, wd := range days {
		names = append(names, wd.String()[:3])
	}
	return strings.Join(names, ",")
}

// ShortID shortens a UUID for display.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
