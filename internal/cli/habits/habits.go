package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/utils"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits."`
	Mark   HabitMarkCmd   `cmd:"" help:"Record a habit for a day."`
	Toggle HabitToggleCmd `cmd:"" help:"Pause or resume a habit."`
	Today  HabitTodayCmd  `cmd:"" help:"Show habits still due today." default:"1"`
}

type HabitAddCmd struct {
	Title string `arg:"" help:"Habit title."`
	Every string `help:"Frequency: daily, weekly or custom." default:"daily" enum:"daily,weekly,custom"`
	Days  string `help:"Comma-separated weekdays for weekly or custom habits." default:""`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	days, err := cli.ParseWeekdays(c.Days)
	if err != nil {
		return err
	}
	habit, res, err := ctx.Tracker.AddHabit(c.Title, models.Frequency{
		Type: models.FrequencyType(c.Every),
		Days: days,
	})
	if err != nil {
		return err
	}
	ctx.Printf("Added habit: %s (%s)\n", habit.Title, FormatFrequency(habit.Frequency))
	ctx.Announce(res)
	return nil
}

type HabitListCmd struct {
	All bool `help:"Include paused habits."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	// Bring streaks up to date before showing them.
	habits, res, err := ctx.Tracker.RefreshHabits()
	if err != nil {
		return err
	}

	shown := 0
	for _, h := range habits {
		if !h.Active && !c.All {
			continue
		}
		status := ""
		if !h.Active {
			status = cli.MutedStyle.Render(" [PAUSED]")
		}
		ctx.Printf("%s %s%s\n", cli.ShortID(h.ID), h.Title, status)
		ctx.Printf("    %s  streak %d  best %d  total %d\n", FormatFrequency(h.Frequency), h.CurrentStreak, h.LongestStreak, h.TotalCompletions)
		shown++
	}
	if shown == 0 {
		ctx.Println("No habits found.")
	}
	ctx.Announce(res)
	return nil
}

type HabitMarkCmd struct {
	Habit  string `arg:"" help:"Habit ID or title."`
	Date   string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
	Note   string `help:"Optional note for this entry." default:""`
	Missed bool   `help:"Record the day as not completed."`
}

func (c *HabitMarkCmd) Run(ctx *cli.Context) error {
	habit, res, err := ctx.Tracker.RecordHabit(c.Habit, c.Date, !c.Missed, c.Note)
	if err != nil {
		return err
	}
	day := c.Date
	if day == "" {
		day = utils.FormatDay(ctx.Tracker.Today())
	}
	if c.Missed {
		ctx.Printf("Marked %s as missed on %s\n", habit.Title, day)
	} else {
		ctx.Printf("✓ Marked %s done on %s (streak %d)\n", habit.Title, day, habit.CurrentStreak)
	}
	ctx.Announce(res)
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit ID or title."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	habit, res, err := ctx.Tracker.ToggleHabit(c.Habit)
	if err != nil {
		return err
	}
	if habit.Active {
		ctx.Printf("Resumed habit: %s\n", habit.Title)
	} else {
		ctx.Printf("Paused habit: %s\n", habit.Title)
	}
	ctx.Announce(res)
	return nil
}

type HabitTodayCmd struct{}

func (c *HabitTodayCmd) Run(ctx *cli.Context) error {
	due, err := ctx.Tracker.DueHabits()
	if err != nil {
		return err
	}
	if len(due) == 0 {
		ctx.Println(cli.SuccessStyle.Render("All habits done for today."))
		return nil
	}
	ctx.Printf("Due today (%s):\n", utils.FormatDay(ctx.Tracker.Today()))
	for _, h := range due {
		ctx.Printf("  [ ] %s  %s\n", h.Title, cli.MutedStyle.Render(fmt.Sprintf("streak %d", h.CurrentStreak)))
	}
	return nil
}

// FormatFrequency formats a frequency into a human-readable string
func FormatFrequency(f models.Frequency) string {
	switch f.Type {
	case models.FrequencyDaily:
		return "daily"
	case models.FrequencyWeekly:
		return "weekly on " + cli.FormatWeekdays(f.Days)
	case models.FrequencyCustom:
		return "on " + cli.FormatWeekdays(f.Days)
	default:
		return strings.ToLower(string(f.Type))
	}
}
