package system

import (
	"fmt"
	"os"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/turnkey/internal/backup"
	"github.com/julianstephens/turnkey/internal/cli"
	"github.com/julianstephens/turnkey/internal/constants"
	"github.com/julianstephens/turnkey/internal/models"
	"github.com/julianstephens/turnkey/internal/storage"
	"github.com/julianstephens/turnkey/internal/storage/sqlite"
	"github.com/julianstephens/turnkey/internal/utils"
	"github.com/julianstephens/turnkey/internal/validation"
)

// listProcesses is replaced in tests
var listProcesses = ps.Processes

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	fail := func(name string, err error) {
		fmt.Printf("❌ %s: FAIL\n", name)
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	}
	warn := func(name string, err error) {
		fmt.Printf("⚠ %s: WARNING\n", name)
		for _, line := range strings.Split(strings.TrimSpace(err.Error()), "\n") {
			fmt.Printf("   %s\n", line)
		}
	}
	ok := func(name string) { fmt.Printf("✓ %s: OK\n", name) }
	skip := func(name, why string) { fmt.Printf("⊘ %s: SKIPPED (%s)\n", name, why) }

	// Check 1: DB reachable
	dbReachable := false
	if err := checkDBReachable(ctx); err != nil {
		fail("Database reachable", err)
	} else {
		ok("Database reachable")
		dbReachable = true
	}

	// Checks 2-3: schema version and pending migrations
	_, isMigrator := ctx.Store.(storage.Migrator)
	switch {
	case !dbReachable:
		skip("Schema version", "database not reachable")
		skip("Migrations complete", "database not reachable")
	case !isMigrator:
		skip("Schema version", "backend has no schema")
		skip("Migrations complete", "backend has no schema")
	default:
		if err := checkSchemaVersion(ctx); err != nil {
			fail("Schema version", err)
		} else {
			ok("Schema version")
		}
		if err := checkMigrationsComplete(ctx); err != nil {
			fail("Migrations complete", err)
		} else {
			ok("Migrations complete")
		}
	}

	// Check 4: Backups present (warning only)
	if _, isSQLite := ctx.Store.(*sqlite.Store); !isSQLite {
		skip("Backups present", "only SQLite databases are backed up")
	} else if err := checkBackupsPresent(ctx); err != nil {
		warn("Backups present", err)
	} else {
		ok("Backups present")
	}

	// Checks 5-7 read stored data
	var settings models.Settings
	settingsLoaded := false
	if !dbReachable {
		skip("Settings valid", "database not reachable")
	} else {
		s, loaded, err := checkSettings(ctx)
		if err != nil {
			fail("Settings valid", err)
		} else {
			ok("Settings valid")
		}
		settings, settingsLoaded = s, loaded
	}

	if !settingsLoaded {
		skip("History integrity", "settings unavailable")
		skip("Clock/timezone", "settings unavailable")
	} else {
		if err := checkHistory(ctx, settings); err != nil {
			warn("History integrity", err)
		} else {
			ok("History integrity")
		}
		if err := checkClockTimezone(settings); err != nil {
			fail("Clock/timezone", err)
		} else {
			ok("Clock/timezone")
		}
	}

	// Check 8: Other processes (warning only)
	if err := checkOtherProcesses(); err != nil {
		warn("Single instance", err)
	} else {
		ok("Single instance")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	// For SQLite, also try a simple query
	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := ctx.Store.(storage.Migrator).SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	pending, err := ctx.Store.(storage.Migrator).PendingMigrations()
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	names := make([]string, 0, len(pending))
	for _, m := range pending {
		names = append(names, fmt.Sprintf("%03d_%s", m.Version, m.Name))
	}
	return fmt.Errorf("%d pending migration(s): %s - run '%s migrate'",
		len(pending), strings.Join(names, ", "), constants.AppName)
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}

	return nil
}

// checkSettings reports whether settings could be read at all, separately
// from whether they are valid.
func checkSettings(ctx *cli.Context) (models.Settings, bool, error) {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return settings, false, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, true, validation.ValidateSettings(settings)
}

// checkHistory validates the raw stored rows, which the tracker would
// otherwise filter on load.
func checkHistory(ctx *cli.Context, settings models.Settings) error {
	turns, err := ctx.Store.ListTurns()
	if err != nil {
		return fmt.Errorf("failed to list turns: %w", err)
	}

	legacy := 0
	for _, e := range turns {
		if e.SourceOrDefault() == models.SourceLegacy {
			legacy++
		}
	}
	if legacy > 0 {
		fmt.Printf("ℹ %d of %d turns were imported from a legacy export\n", legacy, len(turns))
	}

	offset := 0
	if ctx.Scheduler != nil {
		offset = ctx.Scheduler.Offset()
	}
	today := utils.ClockFromSettings(settings).Today()
	result := validation.New(offset).ValidateHistory(settings, turns, today)
	if result.HasConflicts() {
		return fmt.Errorf("%s", result.FormatReport())
	}
	return nil
}

func checkClockTimezone(settings models.Settings) error {
	now, err := utils.NowInTimezone(settings.Timezone)
	if err != nil {
		return err
	}

	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	return nil
}

// checkOtherProcesses warns when another turnkey process could be holding
// the database open.
func checkOtherProcesses() error {
	procs, err := listProcesses()
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	self := os.Getpid()
	var others []string
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.TrimSuffix(p.Executable(), ".exe") == constants.AppName {
			others = append(others, fmt.Sprint(p.Pid()))
		}
	}
	if len(others) > 0 {
		return fmt.Errorf("another %s process is running (pid %s); stop it before restoring a backup",
			constants.AppName, strings.Join(others, ", "))
	}
	return nil
}
