package progress

import (
	"encoding/json"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/tally/internal/cli"
)

type StatsCmd struct {
	JSON bool `help:"Print the raw snapshot as JSON."`
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	snap, err := ctx.Tracker.Snapshot()
	if err != nil {
		return err
	}
	if c.JSON {
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return err
		}
		ctx.Println(string(data))
		return nil
	}

	live, err := ctx.Tracker.LiveStreak()
	if err != nil {
		return err
	}

	ctx.Println(cli.TitleStyle.Render("Engagement"))
	ctx.Printf("  Visits:            %s\n", humanize.Comma(int64(snap.VisitCount)))
	ctx.Printf("  Current streak:    %d\n", live)
	ctx.Printf("  Longest streak:    %d\n", snap.LongestStreak)
	ctx.Printf("  Affirmations seen: %d\n", snap.AffirmationsViewed)
	ctx.Printf("  Insights read:     %d\n", snap.InsightsViewed)
	ctx.Println(cli.TitleStyle.Render("Journal"))
	ctx.Printf("  Entries:           %d (%d favorite, %d reflected)\n", snap.JournalEntries, snap.FavoriteEntries, snap.ReflectedEntries)
	ctx.Printf("  Categories:        %d\n", snap.JournalCategories)
	ctx.Println(cli.TitleStyle.Render("Goals"))
	ctx.Printf("  Total:             %d (%d active, %d completed, %d paused, %d abandoned)\n",
		snap.TotalGoals, snap.ActiveGoals, snap.CompletedGoals, snap.PausedGoals, snap.AbandonedGoals)
	ctx.Printf("  Milestones done:   %d\n", snap.CompletedMilestones)
	ctx.Println(cli.TitleStyle.Render("Habits"))
	ctx.Printf("  Total:             %d (%d active)\n", snap.TotalHabits, snap.ActiveHabits)
	ctx.Printf("  Completions:       %s\n", humanize.Comma(int64(snap.TotalHabitCompletions)))
	ctx.Printf("  Longest streak:    %d\n", snap.LongestHabitStreak)
	ctx.Println(cli.TitleStyle.Render("Skills"))
	ctx.Printf("  Tracked:           %d (%s uses)\n", snap.TrackedSkills, humanize.Comma(int64(snap.SkillUses)))
	ctx.Printf("  Achievements:      %d\n", snap.UnlockedAchievements)
	return nil
}
