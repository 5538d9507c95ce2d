package system

import (
	"path/filepath"
	"testing"

	"github.com/julianstephens/turnkey/internal/cli"
	"github.com/julianstephens/turnkey/internal/storage"
	"github.com/julianstephens/turnkey/internal/storage/sqlite"
)

func TestMigrateCmd(t *testing.T) {
	ctx, _ := setupTestDB(t)

	db := ctx.Store.(*sqlite.Store).GetDB()
	if _, err := db.Exec("UPDATE schema_version SET version = 1"); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("ALTER TABLE turns DROP COLUMN source"); err != nil {
		t.Fatal(err)
	}

	if err := (&MigrateCmd{DryRun: true}).Run(ctx); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	current, latest, err := ctx.Store.(storage.Migrator).SchemaVersion()
	if err != nil {
		t.Fatal(err)
	}
	if current != 1 || latest < 2 {
		t.Fatalf("dry run changed the schema: current %d latest %d", current, latest)
	}

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	current, latest, _ = ctx.Store.(storage.Migrator).SchemaVersion()
	if current != latest {
		t.Errorf("schema at %d, want %d", current, latest)
	}

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Errorf("migrate on an up to date database failed: %v", err)
	}
}

func TestMigrateCmd_JSONStore(t *testing.T) {
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "turnkey.json"))
	ctx := &cli.Context{Store: store}

	if err := (&MigrateCmd{}).Run(ctx); err == nil {
		t.Error("expected error for a backend without migrations")
	}
}
