package sqlite

import (
	"fmt"
	"time"

	apperrors "github.com/julianstephens/turnkey/internal/errors"
	"github.com/julianstephens/turnkey/internal/models"
)

func (s *Store) ListTurns() ([]models.TurnEvent, error) {
	exists, err := s.tableExists("turns")
	if err != nil {
		return nil, err
	}
	if !exists {
		return []models.TurnEvent{}, nil
	}

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
		var arch, createdAt string
		if err := rows.Scan(&e.ID, &e.Day, &arch, &e.Note, &e.Source, &createdAt); err != nil {
			return nil, err
		}
		e.Arch = models.Track(arch)
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for turn %s: %w", e.ID, err)
		}
		turns = append(turns, e)
	}
	return turns, rows.Err()
}

func (s *Store) InsertTurns(turns []models.TurnEvent) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO turns (id, day, arch, note, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, e := range turns {
		_, err := stmt.Exec(e.ID, e.Day, string(e.Arch), e.Note, e.SourceOrDefault(),
			e.CreatedAt.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("inserting turn %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

func (s *Store) DeleteTurn(id string) error {
	_, err := s.db.Exec("DELETE FROM turns WHERE id = ?", id)
	return err
}

func (s *Store) UpdateTurn(turn models.TurnEvent) error {
	res, err := s.db.Exec("UPDATE turns SET day = ?, note = ? WHERE id = ?", turn.Day, turn.Note, turn.ID)
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
