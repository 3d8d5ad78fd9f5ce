package progress

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/tally/internal/cli/clitest"
	"github.com/julianstephens/tally/internal/models"
)

func TestVisitCmd(t *testing.T) {
	ctx, out, clock := clitest.New(t)

	if err := (&VisitCmd{}).Run(ctx); err != nil {
		t.Fatalf("visit failed: %v", err)
	}
	if !strings.Contains(out.String(), "Welcome to tally!") {
		t.Errorf("expected welcome message, got %q", out.String())
	}
	if !strings.Contains(out.String(), "Welcome - Open tally for the first time") {
		t.Errorf("expected first-visit unlock, got %q", out.String())
	}

	out.Reset()
	clock.T = clock.T.Add(24 * time.Hour)
	if err := (&VisitCmd{}).Run(ctx); err != nil {
		t.Fatalf("visit failed: %v", err)
	}
	if !strings.Contains(out.String(), "Streak extended!") || !strings.Contains(out.String(), "Current streak: 2") {
		t.Errorf("unexpected output %q", out.String())
	}

	// Same day again: nothing changes and nothing is announced.
	out.Reset()
	if err := (&VisitCmd{}).Run(ctx); err != nil {
		t.Fatalf("visit failed: %v", err)
	}
	if strings.Contains(out.String(), "Achievement unlocked") {
		t.Errorf("same-day visit should not unlock anything: %q", out.String())
	}
	if !strings.Contains(out.String(), "Visits: 2") {
		t.Errorf("same-day visit should not count: %q", out.String())
	}
}

func TestAffirmationCmdCountsViews(t *testing.T) {
	ctx, out, _ := clitest.New(t)

	for i := 0; i < 2; i++ {
		if err := (&AffirmationCmd{}).Run(ctx); err != nil {
			t.Fatalf("affirmation failed: %v", err)
		}
	}
	if out.Len() == 0 {
		t.Error("expected affirmation text")
	}
	eng, err := ctx.Tracker.Engagement()
	if err != nil {
		t.Fatal(err)
	}
	if eng.AffirmationsViewed != 2 {
		t.Errorf("AffirmationsViewed = %d, want 2", eng.AffirmationsViewed)
	}
}

func TestInsightCmd(t *testing.T) {
	ctx, out, _ := clitest.New(t)

	if err := (&InsightCmd{}).Run(ctx); err != nil {
		t.Fatalf("insight failed: %v", err)
	}
	eng, _ := ctx.Tracker.Engagement()
	if eng.InsightsViewed != 1 || len(eng.ViewedInsightIDs) != 1 {
		t.Fatalf("expected one viewed insight, got %+v", eng.ViewedInsightIDs)
	}
	first := eng.ViewedInsightIDs[0]

	// Viewing the same insight again does not count twice.
	if err := (&InsightCmd{ID: first}).Run(ctx); err != nil {
		t.Fatalf("insight by id failed: %v", err)
	}
	eng, _ = ctx.Tracker.Engagement()
	if eng.InsightsViewed != 1 {
		t.Errorf("InsightsViewed = %d, want 1", eng.InsightsViewed)
	}

	out.Reset()
	if err := (&InsightCmd{List: true}).Run(ctx); err != nil {
		t.Fatalf("insight list failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ "+first) {
		t.Errorf("list should mark %s as read: %q", first, out.String())
	}

	if err := (&InsightCmd{ID: "no-such-insight"}).Run(ctx); err == nil {
		t.Error("expected error for unknown insight")
	}
}

func TestRenderInteractive(t *testing.T) {
	tests := []struct {
		name string
		in   models.Interactive
		want string
	}{
		{"quiz", models.Quiz{Question: "Q?", Options: []string{"one", "two"}}, "b) two"},
		{"self assessment", models.SelfAssessment{Prompt: "Rate", Statements: []string{"s1"}, ScaleMin: 1, ScaleMax: 5}, "rate 1-5"},
		{"scenario", models.Scenario{Situation: "S", Choices: []models.ScenarioChoice{{Text: "go"}}}, "1. go"},
		{"reflection", models.ReflectionPrompt{Prompt: "Why?", Followups: []string{"How?"}}, "- How?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderInteractive(tt.in)
			if !strings.Contains(got, tt.want) {
				t.Errorf("RenderInteractive = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestStatsCmd(t *testing.T) {
	ctx, out, _ := clitest.New(t)
	if err := (&VisitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}

	out.Reset()
	if err := (&StatsCmd{}).Run(ctx); err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if !strings.Contains(out.String(), "Visits:            1") {
		t.Errorf("unexpected stats output %q", out.String())
	}

	out.Reset()
	if err := (&StatsCmd{JSON: true}).Run(ctx); err != nil {
		t.Fatalf("stats --json failed: %v", err)
	}
	if !strings.Contains(out.String(), `"visitCount": 1`) {
		t.Errorf("unexpected json output %q", out.String())
	}
}

func TestAchievementsAndFeed(t *testing.T) {
	ctx, out, clock := clitest.New(t)

	if err := (&FeedCmd{Limit: 10}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No achievements unlocked yet.") {
		t.Errorf("unexpected feed output %q", out.String())
	}

	if err := (&VisitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	clock.T = clock.T.Add(2 * time.Hour)

	out.Reset()
	if err := (&FeedCmd{Limit: 10}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Welcome") || !strings.Contains(out.String(), "2 hours ago") {
		t.Errorf("unexpected feed output %q", out.String())
	}

	out.Reset()
	if err := (&AchievementsCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "1 of 22 unlocked") {
		t.Errorf("unexpected achievements output %q", out.String())
	}

	out.Reset()
	if err := (&AchievementsCmd{Locked: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(out.String(), "✓") {
		t.Errorf("--locked should hide unlocked achievements: %q", out.String())
	}
}

func TestRemindersSetAndShow(t *testing.T) {
	ctx, out, _ := clitest.New(t)

	if err := (&RemindersSetCmd{Enable: true, Time: "07:30", Days: "mon,fri"}).Run(ctx); err != nil {
		t.Fatalf("reminders set failed: %v", err)
	}
	out.Reset()
	if err := (&RemindersShowCmd{}).Run(ctx); err != nil {
		t.Fatalf("reminders show failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Reminders enabled at 07:30 (Mon,Fri)") {
		t.Errorf("unexpected output %q", got)
	}
	// Start is a Friday with no entries yet.
	if !strings.Contains(got, "No accomplishment logged yet today.") {
		t.Errorf("expected due notice, got %q", got)
	}

	if err := (&RemindersSetCmd{Time: "25:00"}).Run(ctx); err == nil {
		t.Error("expected invalid time to be rejected")
	}
	if err := (&RemindersSetCmd{Days: "someday"}).Run(ctx); err == nil {
		t.Error("expected invalid weekday to be rejected")
	}
}

func TestRemindersRunOnce(t *testing.T) {
	ctx, out, _ := clitest.New(t)

	if err := (&RemindersRunCmd{Once: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Nothing to remind about.") {
		t.Errorf("disabled reminders should not fire: %q", out.String())
	}

	if err := (&RemindersSetCmd{Enable: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&RemindersRunCmd{Once: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Daily reminder:") {
		t.Errorf("expected reminder to be delivered, got %q", out.String())
	}
}
