package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/constants"
	"github.com/julianstephens/tally/internal/migration"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/storage"
	"github.com/julianstephens/tally/internal/utils"
)

type DoctorCmd struct{}

type check struct {
	name     string
	run      func(ctx *cli.Context) error
	needsDB  bool
	warnOnly bool
}

var checks = []check{
	{name: "Storage reachable", run: checkStorageReachable},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Documents valid", run: checkDocuments, needsDB: true},
	{name: "Habit integrity", run: checkHabitsIntegrity, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Clock/timezone", run: checkClock},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := true
	for _, c := range checks {
		if c.needsDB && !reachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == "Storage reachable" {
				reachable = false
			}
		}
	}

	ctx.Println()
	if hasError {
		return errors.New("one or more checks failed")
	}
	ctx.Println("All checks passed.")
	return nil
}

func checkStorageReachable(ctx *cli.Context) error {
	_, err := ctx.Tracker.Engagement()
	return err
}

type migrator interface {
	Runner() (*migration.Runner, error)
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.Backend().(migrator)
	if !ok {
		// Document stores without a schema.
		return nil
	}
	runner, err := m.Runner()
	if err != nil {
		return err
	}
	if err := runner.ValidateVersion(); err != nil {
		return err
	}
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return err
	}
	latest, err := runner.GetLatestVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("schema version %d is behind latest %d", current, latest)
	}
	return nil
}

// checkDocuments reports documents that fail to decode; those load as
// defaults and would be overwritten by the next change.
func checkDocuments(ctx *cli.Context) error {
	backend := ctx.Store.Backend()
	var bad []string
	for _, key := range constants.DocumentKeys {
		data, err := backend.Get(key)
		if errors.Is(err, storage.ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if err := storage.Check(key, data); err != nil {
			bad = append(bad, fmt.Sprintf("%s (%v)", key, err))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("unreadable documents will be reset on next write: %v", bad)
	}
	return nil
}

func checkHabitsIntegrity(ctx *cli.Context) error {
	data, err := ctx.Tracker.Goals()
	if err != nil {
		return err
	}
	seen := make(map[string]bool, len(data.Habits))
	for _, h := range data.Habits {
		if seen[h.ID] {
			return fmt.Errorf("duplicate habit id %s", h.ID)
		}
		seen[h.ID] = true
		if h.LongestStreak < h.CurrentStreak {
			return fmt.Errorf("habit %s has longest streak %d below current %d", h.Title, h.LongestStreak, h.CurrentStreak)
		}
		total := 0
		for _, c := range h.History {
			if c.Completed {
				total++
			}
		}
		if total != h.TotalCompletions {
			return fmt.Errorf("habit %s total %d does not match history %d", h.Title, h.TotalCompletions, total)
		}
	}
	for _, g := range data.Goals {
		if (g.Status == models.GoalCompleted) != (g.CompletedAt != nil) {
			return fmt.Errorf("goal %s completion time does not match status %s", g.Title, g.Status)
		}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := ctx.BackupManager()
	if mgr == nil {
		return errors.New("automatic backups are only taken for the SQLite backend")
	}
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found in %s", mgr.Dir())
	}
	if age := ctx.Now().Sub(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %s old", age.Round(time.Hour))
	}
	return nil
}

func checkClock(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if !utils.ValidateTimezone(ctx.Zone().String()) {
		return fmt.Errorf("invalid timezone %q", ctx.Zone().String())
	}
	eng, err := ctx.Tracker.Engagement()
	if err == nil && eng.LastVisit != nil && eng.LastVisit.After(now.Add(time.Minute)) {
		return fmt.Errorf("last visit %s is in the future", eng.LastVisit.Format(time.RFC3339))
	}
	return nil
}
