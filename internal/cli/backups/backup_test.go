package backups

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/tally/internal/cli/clitest"
	"github.com/julianstephens/tally/internal/storage"
)

func TestBackupCreateAndList(t *testing.T) {
	ctx, out, clock := clitest.NewSQLite(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("unexpected output %q", out.String())
	}

	if _, _, err := ctx.Tracker.RecordVisit(); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Backup created: tally-") {
		t.Errorf("unexpected output %q", out.String())
	}

	clock.T = clock.T.Add(3 * time.Hour)
	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "1 total") || !strings.Contains(out.String(), "kB") {
		t.Errorf("unexpected list output %q", out.String())
	}
}

func TestBackupRequiresSQLite(t *testing.T) {
	ctx, _, _ := clitest.New(t)
	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("expected error for memory backend")
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, out, clock := clitest.NewSQLite(t)
	dbPath, _ := ctx.SQLitePath()

	if _, _, err := ctx.Tracker.RecordVisit(); err != nil {
		t.Fatal(err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	backups, err := ctx.BackupManager().List()
	if err != nil || len(backups) != 1 {
		t.Fatalf("expected one backup, got %v (%v)", backups, err)
	}
	name := filepath.Base(backups[0].Path)

	clock.T = clock.T.Add(24 * time.Hour)
	if _, _, err := ctx.Tracker.RecordVisit(); err != nil {
		t.Fatal(err)
	}

	clitest.Answer(ctx, false)
	out.Reset()
	if err := (&BackupRestoreCmd{BackupFile: name}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("unexpected output %q", out.String())
	}

	out.Reset()
	if err := (&BackupRestoreCmd{BackupFile: name, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Database restored successfully") || !strings.Contains(out.String(), "Previous database saved as:") {
		t.Errorf("unexpected output %q", out.String())
	}

	// Reopen the restored database: it holds the first visit only.
	b := storage.NewSQLiteBackend(dbPath)
	if err := b.Open(); err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	eng, err := storage.New(b).LoadEngagement()
	if err != nil {
		t.Fatal(err)
	}
	if eng.VisitCount != 1 {
		t.Errorf("restored visitCount = %d, want 1", eng.VisitCount)
	}

	if err := (&BackupRestoreCmd{BackupFile: "missing.db", Yes: true}).Run(ctx); err == nil {
		t.Error("expected missing backup to fail")
	}
}
