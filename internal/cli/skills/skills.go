package skills

import (
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/tally/internal/cli"
	skilltracker "github.com/julianstephens/tally/internal/skills"
)

type SkillCmd struct {
	Track SkillTrackCmd `cmd:"" help:"Record a use of a skill."`
	List  SkillListCmd  `cmd:"" help:"List skills by usage." default:"1"`
	Level SkillLevelCmd `cmd:"" help:"Set a skill's proficiency (0-100)."`
}

type SkillTrackCmd struct {
	Name     string `arg:"" help:"Skill name."`
	Category string `help:"Skill category." default:""`
	Goal     string `help:"Link the use to a goal (ID or title)." default:""`
}

func (c *SkillTrackCmd) Run(ctx *cli.Context) error {
	skill, res, err := ctx.Tracker.TrackSkill(skilltracker.Usage{
		Name:     c.Name,
		Category: c.Category,
		GoalID:   c.Goal,
	})
	if err != nil {
		return err
	}
	ctx.Printf("✓ Used %s for the %s time\n", skill.Name, humanize.Ordinal(skill.UsageCount))
	ctx.Announce(res)
	return nil
}

type SkillListCmd struct{}

func (c *SkillListCmd) Run(ctx *cli.Context) error {
	data, err := ctx.Tracker.Skills()
	if err != nil {
		return err
	}
	ranked := skilltracker.Ranked(data)
	if len(ranked) == 0 {
		ctx.Println("No skills tracked yet.")
		return nil
	}
	now := ctx.Now()
	for _, s := range ranked {
		last := "never"
		if s.LastUsed != nil {
			last = humanize.RelTime(*s.LastUsed, now, "ago", "from now")
		}
		ctx.Printf("%-20s %s %3d  uses %-4d %s\n", s.Name, cli.Bar(s.Proficiency, 10), s.Proficiency, s.UsageCount, cli.MutedStyle.Render(last))
	}
	return nil
}

type SkillLevelCmd struct {
	Name  string `arg:"" help:"Skill name."`
	Value int    `arg:"" help:"Proficiency from 0 to 100."`
}

func (c *SkillLevelCmd) Run(ctx *cli.Context) error {
	skill, res, err := ctx.Tracker.SetProficiency(c.Name, c.Value)
	if err != nil {
		return err
	}
	ctx.Printf("%s proficiency set to %d\n", skill.Name, skill.Proficiency)
	ctx.Announce(res)
	return nil
}
