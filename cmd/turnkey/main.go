package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/turnkey/internal/cli"
	"github.com/julianstephens/turnkey/internal/cli/backups"
	"github.com/julianstephens/turnkey/internal/cli/settings"
	"github.com/julianstephens/turnkey/internal/cli/system"
	"github.com/julianstephens/turnkey/internal/cli/turns"
	"github.com/julianstephens/turnkey/internal/constants"
	apperrors "github.com/julianstephens/turnkey/internal/errors"
	"github.com/julianstephens/turnkey/internal/keyring"
	"github.com/julianstephens/turnkey/internal/logger"
	"github.com/julianstephens/turnkey/internal/scheduler"
	"github.com/julianstephens/turnkey/internal/tracker"
	"github.com/julianstephens/turnkey/internal/validation"
)

var CLI struct {
	Version       kong.VersionFlag
	Config        string `help:"Database path, PostgreSQL connection string, or 'keyring' to use the stored connection string. Connection strings must NOT embed a password; use the keyring, the TURNKEY_DB_CONNECTION environment variable, or .pgpass instead." env:"TURNKEY_CONFIG" default:"~/.config/turnkey/turnkey.db"`
	InstallOffset int    `help:"Turns made at installation, credited to each arch." env:"TURNKEY_INSTALL_OFFSET" default:"0"`
	Debug         bool   `help:"Log debug output to stderr." env:"TURNKEY_DEBUG"`

	Init    system.InitCmd    `cmd:"" help:"Initialize turnkey storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Status  turns.StatusCmd   `cmd:"" help:"Show turn progress and what is due." default:"1"`
	Log     turns.LogCmd      `cmd:"" help:"Log a turn for top, bottom, or both arches."`
	Undo    turns.UndoCmd     `cmd:"" help:"Remove a logged turn (the newest by default)."`
	Edit    turns.EditCmd     `cmd:"" help:"Change the day or note of a logged turn."`
	History turns.HistoryCmd  `cmd:"" help:"Show logged turns, newest first."`
	Import  system.ImportCmd  `cmd:"" help:"Import turns from a legacy JSON export."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive TUI."`
	Backup  struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check whether the OS keyring is usable."`
	} `cmd:"" help:"Manage the connection string kept in the OS keyring."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Reset    settings.ResetCmd    `cmd:"" help:"Delete every logged turn and restore default settings."`
}

// commands that work on a loaded turn log
var trackerCommands = map[string]bool{
	"status":   true,
	"log":      true,
	"undo":     true,
	"edit":     true,
	"history":  true,
	"import":   true,
	"tui":      true,
	"settings": true,
	"reset":    true,
}

func main() {
	ctx := kong.Parse(&CLI, options()...)
	apperrors.Fatal(run(ctx))
}

// run wires storage and the tracker for the selected command. Returning
// instead of exiting lets the store close on every path.
func run(ctx *kong.Context) error {
	command := strings.Fields(ctx.Command())[0]

	if err := validation.ValidateOffset(CLI.InstallOffset); err != nil {
		return fmt.Errorf("--install-offset (or %s): %w", constants.EnvInstallOffset, err)
	}

	// keyring management must work even when the keyring holds nothing yet
	if command == "keyring" {
		initLogger(CLI.Config)
		return ctx.Run(&cli.Context{})
	}

	target, source, err := keyring.ResolveTarget(CLI.Config)
	if err != nil {
		return fmt.Errorf("failed to resolve storage target: %w", err)
	}
	initLogger(target)
	logger.Debug("Storage target resolved", "source", source)

	store, err := cli.OpenStore(target, source)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("Failed to close store", "error", err)
		}
	}()

	sched := scheduler.New(CLI.InstallOffset)
	appCtx := &cli.Context{
		Store:     store,
		Scheduler: sched,
	}

	// init creates the store and doctor reports on a broken one itself
	if command != "init" && command != "doctor" {
		if err := store.Load(); err != nil {
			return err
		}
	}

	if trackerCommands[command] {
		appCtx.Tracker = tracker.New(store, sched, nil)
		if err := appCtx.Tracker.Load(); err != nil {
			return err
		}
	}

	return ctx.Run(appCtx)
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name(constants.AppName),
		kong.Description("Orthodontic expander turn tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":       constants.Version,
			"history_limit": strconv.Itoa(constants.DefaultHistoryLimit),
		},
	}
}

func initLogger(target string) {
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: cli.ConfigDir(target)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
		logger.Discard()
	}
}
