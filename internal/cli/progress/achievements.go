package progress

import (
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/tally/internal/cli"
)

type AchievementsCmd struct {
	Locked bool `help:"Only show achievements not yet unlocked."`
}

func (c *AchievementsCmd) Run(ctx *cli.Context) error {
	all, err := ctx.Tracker.AchievementProgress()
	if err != nil {
		return err
	}

	unlocked := 0
	for _, a := range all {
		if a.UnlockedAt != nil {
			unlocked++
			if c.Locked {
				continue
			}
			ctx.Printf("%s %s %s\n", cli.SuccessStyle.Render("✓"), a.Icon, a.Title)
			continue
		}
		ctx.Printf("  %s %-22s %s %d%%\n", a.Icon, a.Title, cli.Bar(int(a.Progress*100), 20), int(a.Progress*100))
	}
	ctx.Println()
	ctx.Println(cli.MutedStyle.Render(humanize.Comma(int64(unlocked)) + " of " + humanize.Comma(int64(len(all))) + " unlocked"))
	return nil
}

type FeedCmd struct {
	Limit int `help:"Show at most this many unlocks." default:"10"`
}

func (c *FeedCmd) Run(ctx *cli.Context) error {
	feed, err := ctx.Tracker.Feed()
	if err != nil {
		return err
	}
	if len(feed) == 0 {
		ctx.Println("No achievements unlocked yet.")
		return nil
	}

	now := ctx.Now()
	// Feed is oldest first; show the most recent.
	for i := len(feed) - 1; i >= 0 && (c.Limit <= 0 || len(feed)-i <= c.Limit); i-- {
		a := feed[i]
		ctx.Printf("%s %-22s %s\n", a.Icon, a.Title, cli.MutedStyle.Render(humanize.RelTime(*a.UnlockedAt, now, "ago", "from now")))
	}
	return nil
}
