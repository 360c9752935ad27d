package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-companion/internal/state"

	_ "github.com/mattn/go-sqlite3"
)

// DB es la base local del dispositivo.
type DB struct {
	*sql.DB
}

// Open abre (o crea) el archivo sqlite y el esquema. path ":memory:" sirve para tests.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// sqlite serializa escrituras; una conexión evita "database is locked"
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if _, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS state_snapshots (
		user_id TEXT NOT NULL,
		slice TEXT NOT NULL,
		payload BLOB NOT NULL,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (user_id, slice)
	);`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &DB{db}, nil
}

// SnapshotStore implementa state.SnapshotStore sobre sqlite.
type SnapshotStore struct {
	db  *DB
	now func() time.Time
}

func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db, now: time.Now}
}

func (s *SnapshotStore) Save(ctx context.Context, userID string, sl state.Slice, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO state_snapshots (user_id, slice, payload, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, slice) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, strings.TrimSpace(userID), string(sl), payload, s.now().UTC())
	return err
}

func (s *SnapshotStore) Load(ctx context.Context, userID string, sl state.Slice) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM state_snapshots WHERE user_id = ? AND slice = ?`,
		strings.TrimSpace(userID), string(sl),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}
