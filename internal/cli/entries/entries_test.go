package entries

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/tally/internal/cli/clitest"
)

func TestJournalAddAndList(t *testing.T) {
	ctx, out, clock := clitest.New(t)

	add := &JournalAddCmd{
		Text:     "Shipped the release",
		Category: "Work",
		Tags:     []string{"#Release", "release", "team"},
		Mood:     4,
		Skills:   []string{"Go"},
	}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("journal add failed: %v", err)
	}
	if !strings.Contains(out.String(), "Logged entry") || !strings.Contains(out.String(), "First Win") {
		t.Errorf("unexpected output %q", out.String())
	}

	clock.T = clock.T.Add(48 * time.Hour)
	if err := (&JournalAddCmd{Text: "Cooked dinner", Category: "Home"}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := (&JournalListCmd{Limit: 20}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	if strings.Index(got, "Cooked dinner") > strings.Index(got, "Shipped the release") {
		t.Errorf("entries should be newest first: %q", got)
	}
	if !strings.Contains(got, "#release #team") || !strings.Contains(got, "mood 4/5") {
		t.Errorf("expected normalized tags and mood: %q", got)
	}
	if !strings.Contains(got, "2 days ago") {
		t.Errorf("expected relative date: %q", got)
	}

	out.Reset()
	if err := (&JournalListCmd{Tag: "release"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "Cooked dinner") {
		t.Errorf("tag filter leaked entries: %q", out.String())
	}

	out.Reset()
	if err := (&JournalListCmd{Since: "2024-03-02"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "Shipped") || !strings.Contains(out.String(), "Cooked dinner") {
		t.Errorf("since filter wrong: %q", out.String())
	}

	if err := (&JournalListCmd{Since: "yesterday"}).Run(ctx); err == nil {
		t.Error("expected invalid since date to fail")
	}

	skills, err := ctx.Tracker.Skills()
	if err != nil {
		t.Fatal(err)
	}
	if s, ok := skills.Skills["go"]; !ok || s.UsageCount != 1 || len(s.LinkedEntryIDs) != 1 {
		t.Errorf("expected skill use linked to the entry, got %+v", skills.Skills)
	}
}

func TestJournalAddValidation(t *testing.T) {
	ctx, _, _ := clitest.New(t)

	if err := (&JournalAddCmd{Text: "   "}).Run(ctx); err == nil {
		t.Error("blank accomplishment should fail")
	}
	if err := (&JournalAddCmd{Text: "ok", Mood: 6}).Run(ctx); err == nil {
		t.Error("mood out of range should fail")
	}
	eng, _ := ctx.Tracker.Engagement()
	if len(eng.JournalEntries) != 0 {
		t.Errorf("rejected entries must not be stored, got %d", len(eng.JournalEntries))
	}
}

func TestJournalFavAndReflect(t *testing.T) {
	ctx, out, _ := clitest.New(t)
	if err := (&JournalAddCmd{Text: "Fixed the bug"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	eng, _ := ctx.Tracker.Engagement()
	id := eng.JournalEntries[0].ID

	out.Reset()
	if err := (&JournalFavCmd{ID: id[:8]}).Run(ctx); err != nil {
		t.Fatalf("fav by prefix failed: %v", err)
	}
	if !strings.Contains(out.String(), "Marked") {
		t.Errorf("unexpected output %q", out.String())
	}
	out.Reset()
	if err := (&JournalFavCmd{ID: id}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Removed") {
		t.Errorf("second toggle should unfavorite: %q", out.String())
	}

	out.Reset()
	if err := (&JournalReflectCmd{ID: id, Reflection: "Root cause was a race"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Looking Back") {
		t.Errorf("expected first-reflection unlock: %q", out.String())
	}

	if err := (&JournalFavCmd{ID: "abc"}).Run(ctx); err == nil {
		t.Error("short unknown id should fail")
	}
}
