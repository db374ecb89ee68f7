// Package stores persists board snapshots in named save slots, one
// serialized board per slot.
package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNoSuchSave is returned when a slot does not exist.
var ErrNoSuchSave = errors.New("no such save slot")

// A SavedGame is one stored snapshot.
type SavedGame struct {
	Slot      string
	VariantID int
	Board     string
	MoveCount int
	CreatedAt time.Time
}

// SaveStore is a sqlite-backed save-slot store. It is safe for concurrent
// use; database/sql serializes access to the file.
type SaveStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the save database at path.
func Open(path string) (*SaveStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening save db: %w", err)
	}
	s := &SaveStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating save db: %w", err)
	}
	return s, nil
}

func (s *SaveStore) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS saves (
		slot TEXT PRIMARY KEY,
		variant_id INTEGER NOT NULL,
		board TEXT NOT NULL,
		move_count INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`)
	return err
}

// Save stores sv, replacing any previous snapshot in the same slot.
func (s *SaveStore) Save(ctx context.Context, sv *SavedGame) error {
	createdAt := sv.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO saves (slot, variant_id, board, move_count, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
			variant_id = excluded.variant_id,
			board = excluded.board,
			move_count = excluded.move_count,
			created_at = excluded.created_at`,
		sv.Slot, sv.VariantID, sv.Board, sv.MoveCount, createdAt)
	return err
}

// Load fetches the snapshot in the given slot.
func (s *SaveStore) Load(ctx context.Context, slot string) (*SavedGame, error) {
	sv := &SavedGame{}
	err := s.db.QueryRowContext(ctx,
		`SELECT slot, variant_id, board, move_count, created_at
		 FROM saves WHERE slot = ?`, slot).
		Scan(&sv.Slot, &sv.VariantID, &sv.Board, &sv.MoveCount, &sv.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchSave, slot)
	}
	if err != nil {
		return nil, err
	}
	return sv, nil
}

// List returns all snapshots, newest first.
func (s *SaveStore) List(ctx context.Context) ([]SavedGame, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slot, variant_id, board, move_count, created_at
		 FROM saves ORDER BY created_at DESC, slot`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saves []SavedGame
	for rows.Next() {
		var sv SavedGame
		if err := rows.Scan(&sv.Slot, &sv.VariantID, &sv.Board,
			&sv.MoveCount, &sv.CreatedAt); err != nil {
			return nil, err
		}
		saves = append(saves, sv)
	}
	return saves, rows.Err()
}

// Delete removes a slot.
func (s *SaveStore) Delete(ctx context.Context, slot string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, slot)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNoSuchSave, slot)
	}
	return nil
}

// Close closes the underlying database.
func (s *SaveStore) Close() error {
	return s.db.Close()
}
