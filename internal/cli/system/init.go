package system

import (
	"fmt"

	"github.com/julianstephens/tally/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Erase all existing tracking data before initialization."`
	Yes   bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	location := ctx.Store.Backend().Location()

	if c.Force {
		if !c.Yes {
			ok, err := ctx.Ask("Erase all tracking data?", "Journal entries, goals, habits, skills and achievements at "+location+" will be deleted.")
			if err != nil {
				return err
			}
			if !ok {
				ctx.Println("Init cancelled.")
				return nil
			}
		}
		// Keep a copy before wiping.
		ctx.PerformAutomaticBackup()
		if err := ctx.Tracker.Reset(); err != nil {
			return err
		}
		ctx.Printf("Erased existing data at: %s\n", location)
	}

	// Loading verifies the documents are readable; missing ones load as defaults.
	if _, err := ctx.Tracker.Snapshot(); err != nil {
		return fmt.Errorf("failed to read storage: %w", err)
	}
	ctx.Printf("Initialized tally storage at: %s\n", location)
	return nil
}

type ResetCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		ok, err := ctx.Ask("Reset all progress?", "This erases every journal entry, goal, habit, skill and achievement.")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Reset cancelled.")
			return nil
		}
	}
	ctx.PerformAutomaticBackup()
	if err := ctx.Tracker.Reset(); err != nil {
		return err
	}
	ctx.Println(cli.DangerStyle.Render("All tracking data erased."))
	return nil
}
