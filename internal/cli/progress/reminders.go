package progress

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/reminder"
)

type RemindersCmd struct {
	Show RemindersShowCmd `cmd:"" help:"Show reminder settings." default:"1"`
	Set  RemindersSetCmd  `cmd:"" help:"Change reminder settings."`
	Run  RemindersRunCmd  `cmd:"" help:"Run the reminder scheduler in the foreground."`
}

type RemindersShowCmd struct{}

func (c *RemindersShowCmd) Run(ctx *cli.Context) error {
	eng, err := ctx.Tracker.Engagement()
	if err != nil {
		return err
	}
	r := eng.Reminders
	state := "disabled"
	if r.Enabled {
		state = "enabled"
	}
	days := "every day"
	if len(r.Days) > 0 {
		days = cli.FormatWeekdays(r.Days)
	}
	ctx.Printf("Reminders %s at %s (%s)\n", state, r.Time, days)

	due, err := ctx.Tracker.NeedsReminder()
	if err != nil {
		return err
	}
	if due {
		ctx.Println(cli.WarningStyle.Render("No accomplishment logged yet today."))
	}
	return nil
}

type RemindersSetCmd struct {
	Enable  bool   `help:"Enable reminders." xor:"state"`
	Disable bool   `help:"Disable reminders." xor:"state"`
	Time    string `help:"Reminder time in HH:MM format."`
	Days    string `help:"Comma-separated weekdays (empty for every day)."`
}

func (c *RemindersSetCmd) Run(ctx *cli.Context) error {
	eng, err := ctx.Tracker.Engagement()
	if err != nil {
		return err
	}
	settings := eng.Reminders
	if c.Enable {
		settings.Enabled = true
	}
	if c.Disable {
		settings.Enabled = false
	}
	if c.Time != "" {
		settings.Time = c.Time
	}
	if c.Days != "" {
		days, err := cli.ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		settings.Days = days
	}

	saved, res, err := ctx.Tracker.SetReminders(settings)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Reminder settings saved (enabled: %t, time: %s)\n", saved.Enabled, saved.Time)
	ctx.Announce(res)
	return nil
}

type RemindersRunCmd struct {
	Once bool `help:"Check once and exit instead of running the scheduler."`
}

func (c *RemindersRunCmd) Run(ctx *cli.Context) error {
	sched := reminder.New(ctx.Zone(), ctx.Tracker, ctx.Notifier)

	if c.Once {
		sent, err := sched.Check(context.Background())
		if err != nil {
			return err
		}
		if !sent {
			ctx.Println("Nothing to remind about.")
		}
		return nil
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng, err := ctx.Tracker.Engagement()
	if err != nil {
		return err
	}
	if !eng.Reminders.Enabled {
		ctx.Println(cli.WarningStyle.Render("Reminders are disabled; waiting for them to be enabled."))
	} else {
		ctx.Printf("Reminding daily at %s. Press Ctrl+C to stop.\n", eng.Reminders.Time)
	}
	return sched.Run(runCtx)
}
