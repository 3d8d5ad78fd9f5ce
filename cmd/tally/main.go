package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/tally/internal/cli"
	"github.com/julianstephens/tally/internal/cli/backups"
	"github.com/julianstephens/tally/internal/cli/entries"
	"github.com/julianstephens/tally/internal/cli/goals"
	"github.com/julianstephens/tally/internal/cli/habits"
	"github.com/julianstephens/tally/internal/cli/progress"
	"github.com/julianstephens/tally/internal/cli/skills"
	"github.com/julianstephens/tally/internal/cli/system"
	"github.com/julianstephens/tally/internal/constants"
	apperrors "github.com/julianstephens/tally/internal/errors"
	"github.com/julianstephens/tally/internal/keyring"
	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/notifier"
	"github.com/julianstephens/tally/internal/storage"
	"github.com/julianstephens/tally/internal/tracker"
	"github.com/julianstephens/tally/internal/utils"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite path, file://<dir>, redis:// URL, memory: or PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use TALLY_DB_CONNECTION, .pgpass or the OS keyring." type:"string" default:"${default_config}" env:"TALLY_CONFIG"`
	Timezone string `help:"IANA time zone used to decide calendar days." default:"${default_timezone}" env:"TALLY_TIMEZONE"`
	Debug    bool   `help:"Enable debug logging to stderr." env:"TALLY_DEBUG"`

	Init         system.InitCmd           `cmd:"" help:"Initialize tally storage."`
	Doctor       system.DoctorCmd         `cmd:"" help:"Run health checks and diagnostics."`
	Visit        progress.VisitCmd        `cmd:"" help:"Record today's visit and show your streak." default:"1"`
	Journal      entries.JournalCmd       `cmd:"" help:"Log and browse accomplishments."`
	Affirmation  progress.AffirmationCmd  `cmd:"" help:"Show today's affirmation."`
	Insight      progress.InsightCmd      `cmd:"" help:"Read an insight."`
	Habit        habits.HabitCmd          `cmd:"" help:"Manage habits and habit tracking."`
	Goal         goals.GoalCmd            `cmd:"" help:"Manage goals and milestones."`
	Skill        skills.SkillCmd          `cmd:"" help:"Track skills."`
	Achievements progress.AchievementsCmd `cmd:"" help:"Show achievement progress."`
	Feed         progress.FeedCmd         `cmd:"" help:"Show recently unlocked achievements."`
	Stats        progress.StatsCmd        `cmd:"" help:"Show aggregate statistics."`
	Reminders    progress.RemindersCmd    `cmd:"" help:"Configure and run the daily reminder."`
	Backup       backups.BackupCmd        `cmd:"" help:"Manage database backups."`
	Reset        system.ResetCmd          `cmd:"" help:"Erase all tracking data."`
	Keyring      system.KeyringCmd        `cmd:"" help:"Manage database credentials in the OS keyring."`
	Notify       system.NotifyCmd         `cmd:"" hidden:"" help:"Send a test notification."`
}

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Engagement and progress tracker: streaks, journal, habits, goals and achievements"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":          constants.Version,
			"default_config":   constants.DefaultConfigPath,
			"default_timezone": constants.DefaultTimezone,
		},
	)

	location, err := resolveLocation(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir(location)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	loc, err := utils.LoadLocation(CLI.Timezone)
	if err != nil {
		apperrors.Fatal(err)
	}

	backend, err := storage.OpenBackend(location)
	if err != nil {
		apperrors.Fatal(err)
	}
	store := storage.New(backend)

	svc, err := tracker.New(store, tracker.Options{Location: loc})
	if err != nil {
		apperrors.Fatal(err)
	}
	defer svc.Close()

	appCtx := &cli.Context{
		Tracker:  svc,
		Store:    store,
		Notifier: notifier.New(os.Stdout),
		Location: loc,
		Clock:    utils.SystemClock,
	}

	logger.Debug("Running command", "command", ctx.Command(), "backend", backend.Location())
	if err := ctx.Run(appCtx); err != nil {
		svc.Close()
		apperrors.Fatal(err)
	}
}

// resolveLocation applies the PostgreSQL credential rules. With the default
// config, TALLY_DB_CONNECTION or a keyring entry selects PostgreSQL.
func resolveLocation(config string) (string, error) {
	if config == constants.DefaultConfigPath {
		if conn := os.Getenv("TALLY_DB_CONNECTION"); conn != "" {
			// Passwords are allowed here; the environment is the secure channel.
			return conn, nil
		}
		conn, err := keyring.GetConnectionString()
		if err == nil {
			return conn, nil
		}
		if !errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("Keyring lookup failed", "error", err)
		}
		return config, nil
	}

	if storage.IsPostgres(config) {
		if err := storage.ValidateConnString(config); err != nil {
			if errors.Is(err, storage.ErrEmbeddedCredentials) {
				return "", fmt.Errorf("PostgreSQL connection strings with embedded credentials are NOT allowed on the command line; use TALLY_DB_CONNECTION, .pgpass or 'tally keyring set'")
			}
			return "", err
		}
	}
	return config, nil
}

// configDir is where logs are written: next to the SQLite database, or the
// default config directory for other backends.
func configDir(location string) string {
	if !storage.IsRemote(location) && location != "memory:" && !strings.HasPrefix(location, "file://") {
		if path, err := storage.ExpandPath(location); err == nil {
			return filepath.Dir(path)
		}
	}
	path, err := storage.ExpandPath(constants.DefaultConfigPath)
	if err != nil {
		return "."
	}
	return filepath.Dir(path)
}
