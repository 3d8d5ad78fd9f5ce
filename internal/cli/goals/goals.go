package goals

import (
	"github.com/julianstephens/tally/internal/cli"
	goaltracker "github.com/julianstephens/tally/internal/goals"
	"github.com/julianstephens/tally/internal/models"
	"github.com/julianstephens/tally/internal/tracker"
)

type GoalCmd struct {
	Create    GoalCreateCmd    `cmd:"" help:"Create a goal."`
	List      GoalListCmd      `cmd:"" help:"List goals." default:"1"`
	Show      GoalShowCmd      `cmd:"" help:"Show a goal and its milestones."`
	Milestone GoalMilestoneCmd `cmd:"" help:"Manage milestones."`
	Progress  GoalProgressCmd  `cmd:"" help:"Set progress directly (0-100)."`
	Complete  GoalCompleteCmd  `cmd:"" help:"Mark a goal completed."`
	Pause     GoalPauseCmd     `cmd:"" help:"Pause a goal."`
	Resume    GoalResumeCmd    `cmd:"" help:"Resume a paused goal."`
	Abandon   GoalAbandonCmd   `cmd:"" help:"Abandon a goal."`
}

type GoalCreateCmd struct {
	Title       string   `arg:"" help:"Goal title."`
	Description string   `help:"Goal description." default:""`
	Category    string   `help:"Goal category." default:""`
	Target      string   `help:"Target date in YYYY-MM-DD format." default:""`
	Milestones  []string `help:"Comma-separated milestone titles." sep:","`
}

func (c *GoalCreateCmd) Run(ctx *cli.Context) error {
	goal, res, err := ctx.Tracker.CreateGoal(goaltracker.NewGoal{
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		TargetDate:  c.Target,
		Milestones:  c.Milestones,
	})
	if err != nil {
		return err
	}
	ctx.Printf("Created goal %s: %s (%d milestones)\n", cli.ShortID(goal.ID), goal.Title, len(goal.Milestones))
	ctx.Announce(res)
	return nil
}

type GoalListCmd struct {
	Status string `help:"Only goals with this status." default:"" enum:",active,completed,paused,abandoned"`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	data, err := ctx.Tracker.Goals()
	if err != nil {
		return err
	}
	shown := 0
	for _, g := range data.Goals {
		if c.Status != "" && g.Status != models.GoalStatus(c.Status) {
			continue
		}
		ctx.Printf("%s %-30s %s %3d%%  %s\n", cli.ShortID(g.ID), g.Title, cli.Bar(g.Progress, 20), g.Progress, statusLabel(g.Status))
		shown++
	}
	if shown == 0 {
		ctx.Println("No goals found.")
	}
	return nil
}

type GoalShowCmd struct {
	Goal string `arg:"" help:"Goal ID or title."`
}

func (c *GoalShowCmd) Run(ctx *cli.Context) error {
	data, err := ctx.Tracker.Goals()
	if err != nil {
		return err
	}
	i, err := goaltracker.Find(&data, c.Goal)
	if err != nil {
		return err
	}
	g := data.Goals[i]

	ctx.Println(cli.TitleStyle.Render(g.Title))
	if g.Description != "" {
		ctx.Println(g.Description)
	}
	ctx.Printf("Status: %s  Progress: %s %d%%\n", statusLabel(g.Status), cli.Bar(g.Progress, 20), g.Progress)
	if g.TargetDate != "" {
		ctx.Printf("Target: %s\n", g.TargetDate)
	}
	for _, m := range g.Milestones {
		box := "[ ]"
		if m.Completed {
			box = "[x]"
		}
		ctx.Printf("  %s %s  %s\n", box, m.Title, cli.MutedStyle.Render(cli.ShortID(m.ID)))
	}
	return nil
}

type GoalMilestoneCmd struct {
	Add  MilestoneAddCmd  `cmd:"" help:"Add a milestone."`
	Done MilestoneDoneCmd `cmd:"" help:"Complete a milestone."`
}

type MilestoneAddCmd struct {
	Goal  string `arg:"" help:"Goal ID or title."`
	Title string `arg:"" help:"Milestone title."`
}

func (c *MilestoneAddCmd) Run(ctx *cli.Context) error {
	goal, res, err := ctx.Tracker.AddMilestone(c.Goal, c.Title)
	if err != nil {
		return err
	}
	ctx.Printf("Added milestone to %s (%d%%)\n", goal.Title, goal.Progress)
	ctx.Announce(res)
	return nil
}

type MilestoneDoneCmd struct {
	Goal      string `arg:"" help:"Goal ID or title."`
	Milestone string `arg:"" help:"Milestone ID or title."`
}

func (c *MilestoneDoneCmd) Run(ctx *cli.Context) error {
	goal, res, err := ctx.Tracker.CompleteMilestone(c.Goal, c.Milestone)
	if err != nil {
		return err
	}
	report(ctx, goal, res)
	return nil
}

type GoalProgressCmd struct {
	Goal  string `arg:"" help:"Goal ID or title."`
	Value int    `arg:"" help:"Progress percentage."`
}

func (c *GoalProgressCmd) Run(ctx *cli.Context) error {
	goal, res, err := ctx.Tracker.UpdateProgress(c.Goal, c.Value)
	if err != nil {
		return err
	}
	report(ctx, goal, res)
	return nil
}

type GoalCompleteCmd struct {
	Goal string `arg:"" help:"Goal ID or title."`
}

func (c *GoalCompleteCmd) Run(ctx *cli.Context) error {
	return transition(ctx, c.Goal, ctx.Tracker.CompleteGoal)
}

type GoalPauseCmd struct {
	Goal string `arg:"" help:"Goal ID or title."`
}

func (c *GoalPauseCmd) Run(ctx *cli.Context) error {
	return transition(ctx, c.Goal, ctx.Tracker.PauseGoal)
}

type GoalResumeCmd struct {
	Goal string `arg:"" help:"Goal ID or title."`
}

func (c *GoalResumeCmd) Run(ctx *cli.Context) error {
	return transition(ctx, c.Goal, ctx.Tracker.ResumeGoal)
}

type GoalAbandonCmd struct {
	Goal string `arg:"" help:"Goal ID or title."`
}

func (c *GoalAbandonCmd) Run(ctx *cli.Context) error {
	return transition(ctx, c.Goal, ctx.Tracker.AbandonGoal)
}

func transition(ctx *cli.Context, ref string, fn func(string) (models.Goal, tracker.Result, error)) error {
	goal, res, err := fn(ref)
	if err != nil {
		return err
	}
	report(ctx, goal, res)
	return nil
}

func report(ctx *cli.Context, goal models.Goal, res tracker.Result) {
	ctx.Printf("%s  %s %d%%  %s\n", goal.Title, cli.Bar(goal.Progress, 20), goal.Progress, statusLabel(goal.Status))
	if goal.Status == models.GoalCompleted {
		ctx.Println(cli.SuccessStyle.Render("🎉 Goal completed!"))
	}
	ctx.Announce(res)
}

func statusLabel(s models.GoalStatus) string {
	switch s {
	case models.GoalCompleted:
		return cli.SuccessStyle.Render(string(s))
	case models.GoalPaused:
		return cli.WarningStyle.Render(string(s))
	case models.GoalAbandoned:
		return cli.MutedStyle.Render(string(s))
	default:
		return string(s)
	}
}
