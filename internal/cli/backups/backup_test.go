package backups

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/julianstephens/turnkey/internal/backup"
	"github.com/julianstephens/turnkey/internal/cli"
	"github.com/julianstephens/turnkey/internal/logger"
	"github.com/julianstephens/turnkey/internal/models"
	"github.com/julianstephens/turnkey/internal/scheduler"
	"github.com/julianstephens/turnkey/internal/storage"
	"github.com/julianstephens/turnkey/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, string) {
	logger.Discard()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return &cli.Context{Store: store, Scheduler: scheduler.New(0)}, dbPath
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, dbPath := setupTestDB(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list on empty backup dir failed: %v", err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create failed: %v", err)
	}

	backups, err := backup.NewManager(dbPath).ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(backups))
	}

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("backup list failed: %v", err)
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, dbPath := setupTestDB(t)

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	backups, err := backup.NewManager(dbPath).ListBackups()
	if err != nil || len(backups) != 1 {
		t.Fatalf("ListBackups = %v, %v", backups, err)
	}

	turn := models.TurnEvent{ID: "after-backup", Day: "2024-01-01", Arch: models.TrackTop}
	if err := ctx.Store.InsertTurns([]models.TurnEvent{turn}); err != nil {
		t.Fatal(err)
	}

	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(backups[0].Path), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	restored := sqlite.NewStore(dbPath)
	if err := restored.Load(); err != nil {
		t.Fatalf("failed to load restored database: %v", err)
	}
	defer restored.Close()

	turns, err := restored.ListTurns()
	if err != nil {
		t.Fatal(err)
	}
	if len(turns) != 0 {
		t.Errorf("restored database should predate the turn, got %d turns", len(turns))
	}
}

func TestBackupRestore_MissingFile(t *testing.T) {
	ctx, _ := setupTestDB(t)

	cmd := &BackupRestoreCmd{BackupFile: "turnkey-20000101-0000.db", Yes: true}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected error for missing backup")
	}
}

func TestBackupRequiresSQLite(t *testing.T) {
	logger.Discard()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "turnkey.json"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	ctx := &cli.Context{Store: store}

	if err := (&BackupCreateCmd{}).Run(ctx); !errors.Is(err, errNotFileBackend) {
		t.Errorf("expected errNotFileBackend, got %v", err)
	}
}
