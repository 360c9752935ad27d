package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pet-companion/internal/state"
)

// SnapshotsRepo implementa state.SnapshotStore sobre la tabla state_snapshots.
type SnapshotsRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewSnapshotsRepo(db *sql.DB) *SnapshotsRepo {
	return &SnapshotsRepo{db: db, now: time.Now}
}

func (r *SnapshotsRepo) Save(ctx context.Context, userID string, sl state.Slice, payload []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO state_snapshots (user_id, slice, payload, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, slice) DO UPDATE
		SET payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
	`,
		strings.TrimSpace(userID),
		string(sl),
		string(payload),
		r.now().UTC(),
	)
	return err
}

func (r *SnapshotsRepo) Load(ctx context.Context, userID string, sl state.Slice) ([]byte, bool, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, false, nil
	}

	var payload string
	err := r.db.QueryRowContext(ctx, `
		SELECT payload::text
		FROM state_snapshots
		WHERE user_id = $1 AND slice = $2
	`, userID, string(sl)).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(payload), true, nil
}
