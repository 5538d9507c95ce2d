package storage

import (
	"github.com/julianstephens/turnkey/internal/migration"
	"github.com/julianstephens/turnkey/internal/models"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Turns
	// ListTurns returns every stored turn in no particular order.
	ListTurns() ([]models.TurnEvent, error)
	// InsertTurns stores all of turns or none of them.
	InsertTurns([]models.TurnEvent) error
	// DeleteTurn removes a turn. Deleting a missing id is not an error.
	DeleteTurn(id string) error
	// UpdateTurn rewrites the day and note of an existing turn.
	UpdateTurn(models.TurnEvent) error
	ClearTurns() error

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by the SQL backends, which carry a versioned schema.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	// SchemaVersion returns the database's version and the newest embedded one.
	SchemaVersion() (current, latest int, err error)
	PendingMigrations() ([]migration.Migration, error)
}
