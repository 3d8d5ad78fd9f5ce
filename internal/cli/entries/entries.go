package entries

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/journal"
	"github.com/julianstephens/tally/internal/utils"
)

type JournalCmd struct {
	Add     JournalAddCmd     `cmd:"" help:"Log an accomplishment."`
	List    JournalListCmd    `cmd:"" help:"List journal entries." default:"1"`
	Fav     JournalFavCmd     `cmd:"" help:"Toggle an entry's favorite flag."`
	Reflect JournalReflectCmd `cmd:"" help:"Set the reflection on an entry."`
}

type JournalAddCmd struct {
	Text       string   `arg:"" help:"What you accomplished."`
	Reflection string   `help:"Optional reflection." default:""`
	Category   string   `help:"Entry category." default:""`
	Tags       []string `help:"Comma-separated tags." sep:","`
	Mood       int      `help:"Mood from 1 to 5 (0 to leave unset)." default:"0"`
	Skills     []string `help:"Comma-separated skills practiced." sep:","`
}

func (c *JournalAddCmd) Run(ctx *cli.Context) error {
	entry, res, err := ctx.Tracker.AddEntry(journal.NewEntry{
		Accomplishment: c.Text,
		Reflection:     c.Reflection,
		Category:       c.Category,
		Tags:           c.Tags,
		Mood:           c.Mood,
	}, c.Skills)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Logged entry %s\n", cli.ShortID(entry.ID))
	ctx.Announce(res)
	return nil
}

type JournalListCmd struct {
	Tag       string `help:"Only entries with this tag." default:""`
	Category  string `help:"Only entries in this category." default:""`
	Favorites bool   `help:"Only favorite entries."`
	Since     string `help:"Only entries on or after this date (YYYY-MM-DD)." default:""`
	Limit     int    `help:"Show at most this many entries." default:"20"`
}

func (c *JournalListCmd) Run(ctx *cli.Context) error {
	f := journal.Filter{
		Tag:       c.Tag,
		Category:  c.Category,
		Favorites: c.Favorites,
		Limit:     c.Limit,
	}
	if c.Since != "" {
		day, err := utils.ParseDay(c.Since)
		if err != nil {
			return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", c.Since)
		}
		f.Since = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, ctx.Zone())
	}

	list, err := ctx.Tracker.Journal(f)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		ctx.Println("No journal entries found.")
		return nil
	}

	now := ctx.Now()
	for _, e := range list {
		star := " "
		if e.Favorite {
			star = "★"
		}
		ctx.Printf("%s %s  %s  %s\n", star, cli.ShortID(e.ID), e.Accomplishment,
			cli.MutedStyle.Render(humanize.RelTime(e.Date, now, "ago", "from now")))
		var meta []string
		if e.Category != "" {
			meta = append(meta, e.Category)
		}
		for _, t := range e.Tags {
			meta = append(meta, "#"+t)
		}
		if e.Mood > 0 {
			meta = append(meta, fmt.Sprintf("mood %d/5", e.Mood))
		}
		if len(meta) > 0 {
			ctx.Printf("    %s\n", cli.MutedStyle.Render(strings.Join(meta, " ")))
		}
		if e.Reflection != "" {
			ctx.Printf("    %s\n", cli.WarningStyle.Render(e.Reflection))
		}
	}
	return nil
}

type JournalFavCmd struct {
	ID string `arg:"" help:"Entry ID or ID prefix."`
}

func (c *JournalFavCmd) Run(ctx *cli.Context) error {
	entry, res, err := ctx.Tracker.ToggleFavorite(c.ID)
	if err != nil {
		return err
	}
	if entry.Favorite {
		ctx.Printf("★ Marked %s as favorite\n", cli.ShortID(entry.ID))
	} else {
		ctx.Printf("Removed %s from favorites\n", cli.ShortID(entry.ID))
	}
	ctx.Announce(res)
	return nil
}

type JournalReflectCmd struct {
	ID         string `arg:"" help:"Entry ID or ID prefix."`
	Reflection string `arg:"" help:"Reflection text (empty to clear)."`
}

func (c *JournalReflectCmd) Run(ctx *cli.Context) error {
	entry, res, err := ctx.Tracker.EditReflection(c.ID, c.Reflection)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Updated reflection on %s\n", cli.ShortID(entry.ID))
	ctx.Announce(res)
	return nil
}
