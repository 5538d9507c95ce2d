package system

import (
	"fmt"

	"github.com/julianstephens/turnkey/internal/cli"
	"github.com/julianstephens/turnkey/internal/storage"
)

type MigrateCmd struct {
	DryRun bool `help:"List pending migrations without applying them."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return fmt.Errorf("migrate only supports the SQLite and PostgreSQL backends")
	}

	if c.DryRun {
		pending, err := migrator.PendingMigrations()
		if err != nil {
			return fmt.Errorf("failed to read migrations: %w", err)
		}
		if len(pending) == 0 {
			fmt.Println("No migrations to apply. Database is up to date.")
			return nil
		}
		fmt.Printf("%d pending migration(s):\n", len(pending))
		for _, m := range pending {
			fmt.Printf("  %03d %s\n", m.Version, m.Name)
		}
		return nil
	}

	count, err := migrator.Migrate(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}

	return nil
}
