package postgres

import (
	"fmt"

	pq "github.com/lib/pq"

	apperrors "github.com/julianstephens/turnkey/internal/errors"
	"github.com/julianstephens/turnkey/internal/models"
)

func (s *Store) ListTurns() ([]models.TurnEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, day, arch, note, source, created_at
		FROM turns ORDER BY day DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	turns := []models.TurnEvent{}
	for rows.Next() {
		var e models.TurnEvent
		var arch string
		if err := rows.Scan(&e.ID, &e.Day, &arch, &e.Note, &e.Source, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Arch = models.Track(arch)
		turns = append(turns, e)
	}
	return turns, rows.Err()
}

// InsertTurns bulk loads turns with COPY inside one transaction.
func (s *Store) InsertTurns(turns []models.TurnEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(pq.CopyIn("turns", "id", "day", "arch", "note", "source", "created_at"))
	if err != nil {
		return err
	}

	for _, e := range turns {
		if _, err := stmt.Exec(e.ID, e.Day, string(e.Arch), e.Note, e.SourceOrDefault(), e.CreatedAt.UTC()); err != nil {
			stmt.Close()
			return fmt.Errorf("inserting turn %s: %w", e.ID, err)
		}
	}
	// an argument-less Exec flushes the COPY buffer
	if _, err := stmt.Exec(); err != nil {
		stmt.Close()
		return fmt.Errorf("flushing turns: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) DeleteTurn(id string) error {
	_, err := s.db.Exec("DELETE FROM turns WHERE id = $1", id)
	return err
}

func (s *Store) UpdateTurn(turn models.TurnEvent) error {
	res, err := s.db.Exec("UPDATE turns SET day = $1, note = $2 WHERE id = $3", turn.Day, turn.Note, turn.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("turn %s: %w", turn.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (s *Store) ClearTurns() error {
	_, err := s.db.Exec("DELETE FROM turns")
	return err
}
