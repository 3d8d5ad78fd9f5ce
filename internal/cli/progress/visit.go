package progress

import (
	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/streak"
)

type VisitCmd struct{}

func (c *VisitCmd) Run(ctx *cli.Context) error {
	outcome, res, err := ctx.Tracker.RecordVisit()
	if err != nil {
		return err
	}
	// First visit of a new day takes the daily backup.
	if outcome == streak.FirstVisit || outcome == streak.Extended || outcome == streak.Reset {
		ctx.PerformAutomaticBackup()
	}

	eng, err := ctx.Tracker.Engagement()
	if err != nil {
		return err
	}

	switch outcome {
	case streak.FirstVisit:
		ctx.Println(cli.TitleStyle.Render("Welcome to tally!"))
	case streak.Extended:
		ctx.Println(cli.SuccessStyle.Render("Streak extended!"))
	case streak.Reset:
		ctx.Println(cli.WarningStyle.Render("Streak restarted. Every day is a new start."))
	case streak.Backdated:
		ctx.Println(cli.WarningStyle.Render("Clock is behind the last visit; nothing recorded."))
	}
	ctx.Printf("Current streak: %d day(s)  Longest: %d  Visits: %d\n", eng.CurrentStreak, eng.LongestStreak, eng.VisitCount)

	ctx.Announce(res)
	return nil
}
