package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/tally/internal/storage"
)

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []time.Weekday
		wantErr bool
	}{
		{"empty", "", nil, false},
		{"short names", "mon,wed,fri", []time.Weekday{time.Monday, time.Wednesday, time.Friday}, false},
		{"long names and spaces", "Sunday, Saturday", []time.Weekday{time.Sunday, time.Saturday}, false},
		{"numbers", "0,6", []time.Weekday{time.Sunday, time.Saturday}, false},
		{"out of range number", "7", nil, true},
		{"unknown name", "funday", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeekdays(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeekdays(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseWeekdays(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseWeekdays(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFormatWeekdays(t *testing.T) {
	got := FormatWeekdays([]time.Weekday{time.Monday, time.Wednesday})
	if got != "Mon,Wed" {
		t.Errorf("FormatWeekdays = %q, want %q", got, "Mon,Wed")
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("ShortID = %q", got)
	}
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID = %q", got)
	}
}

func TestBar(t *testing.T) {
	tests := []struct {
		percent int
		filled  int
	}{
		{0, 0},
		{50, 5},
		{100, 10},
		{150, 10},
		{-5, 0},
	}
	for _, tt := range tests {
		bar := Bar(tt.percent, 10)
		if n := strings.Count(bar, "█"); n != tt.filled {
			t.Errorf("Bar(%d) filled %d cells, want %d", tt.percent, n, tt.filled)
		}
		if n := strings.Count(bar, "░"); n != 10-tt.filled {
			t.Errorf("Bar(%d) left %d empty cells, want %d", tt.percent, n, 10-tt.filled)
		}
	}
}

func TestBackupManagerOnlyForSQLite(t *testing.T) {
	ctx := &Context{Store: storage.New(storage.NewMemoryBackend())}
	if ctx.BackupManager() != nil {
		t.Error("expected no backup manager for the memory backend")
	}
	// Must not panic or fail without a database file.
	ctx.PerformAutomaticBackup()

	ctx = &Context{Store: storage.New(storage.NewSQLiteBackend("/tmp/x/tally.db"))}
	path, ok := ctx.SQLitePath()
	if !ok || path != "/tmp/x/tally.db" {
		t.Errorf("SQLitePath = %q, %v", path, ok)
	}
}
