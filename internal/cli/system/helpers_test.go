package system

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/turnkey/internal/cli"
	"github.com/julianstephens/turnkey/internal/logger"
	"github.com/julianstephens/turnkey/internal/scheduler"
	"github.com/julianstephens/turnkey/internal/storage/sqlite"
	"github.com/julianstephens/turnkey/internal/tracker"
	"github.com/julianstephens/turnkey/internal/utils"
)

func setupTestDB(t *testing.T) (*cli.Context, string) {
	t.Helper()
	logger.Discard()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	sched := scheduler.New(0)
	svc := tracker.New(store, sched, utils.FixedClock("2024-03-10"))
	if err := svc.Load(); err != nil {
		t.Fatalf("failed to load tracker: %v", err)
	}

	return &cli.Context{Store: store, Scheduler: sched, Tracker: svc}, dbPath
}
