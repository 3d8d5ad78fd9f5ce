package progress

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/models"
)

type AffirmationCmd struct{}

func (c *AffirmationCmd) Run(ctx *cli.Context) error {
	text, res, err := ctx.Tracker.ViewAffirmation()
	if err != nil {
		return err
	}
	ctx.Println(cli.BoxStyle.Render(text))
	ctx.Announce(res)
	return nil
}

type InsightCmd struct {
	ID   string `arg:"" optional:"" help:"Insight ID (default: next unread)."`
	List bool   `help:"List all insights instead of showing one."`
}

func (c *InsightCmd) Run(ctx *cli.Context) error {
	if c.List {
		eng, err := ctx.Tracker.Engagement()
		if err != nil {
			return err
		}
		for _, in := range ctx.Tracker.Content().Insights() {
			mark := " "
			if eng.HasViewedInsight(in.ID) {
				mark = "✓"
			}
			ctx.Printf("%s %-24s %s\n", mark, in.ID, in.Title)
		}
		return nil
	}

	in, res, err := ctx.Tracker.ViewInsight(c.ID)
	if err != nil {
		return err
	}
	ctx.Println(cli.TitleStyle.Render(in.Title))
	if in.Category != "" {
		ctx.Println(cli.MutedStyle.Render(in.Category))
	}
	ctx.Println()
	ctx.Println(in.Body)
	if in.Interactive != nil {
		ctx.Println()
		ctx.Println(RenderInteractive(in.Interactive))
	}
	ctx.Announce(res)
	return nil
}

// RenderInteractive formats an insight's exercise as plain text.
func RenderInteractive(i models.Interactive) string {
	var b strings.Builder
	switch v := i.(type) {
	case models.Quiz:
		fmt.Fprintf(&b, "Quiz: %s\n", v.Question)
		for n, opt := range v.Options {
			fmt.Fprintf(&b, "  %c) %s\n", 'a'+n, opt)
		}
	case models.SelfAssessment:
		fmt.Fprintf(&b, "Self-assessment: %s (rate %d-%d)\n", v.Prompt, v.ScaleMin, v.ScaleMax)
		for _, s := range v.Statements {
			fmt.Fprintf(&b, "  - %s\n", s)
		}
	case models.Scenario:
		fmt.Fprintf(&b, "Scenario: %s\n", v.Situation)
		for n, ch := range v.Choices {
			fmt.Fprintf(&b, "  %d. %s\n", n+1, ch.Text)
		}
	case models.ReflectionPrompt:
		fmt.Fprintf(&b, "Reflect: %s\n", v.Prompt)
		for _, f := range v.Followups {
			fmt.Fprintf(&b, "  - %s\n", f)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
