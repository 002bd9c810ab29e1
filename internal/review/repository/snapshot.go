package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/talentgrid/talentgrid-backend/internal/review/session"
	"github.com/talentgrid/talentgrid-backend/pkg/database"
	"github.com/talentgrid/talentgrid-backend/pkg/errors"
)

// snapshotRow mirrors the session_snapshots table. The session payload is
// stored as a single JSONB document; the session id and timestamps are
// lifted into columns for lookups.
type snapshotRow struct {
	SessionID string    `db:"session_id"`
	Payload   []byte    `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// SnapshotRepository persists session snapshots in PostgreSQL
type SnapshotRepository struct {
	db *database.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository(db *database.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Save upserts the snapshot for its session. One row per session; saving
// again replaces the previous snapshot.
func (r *SnapshotRepository) Save(ctx context.Context, snap *session.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO session_snapshots (session_id, payload, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (session_id)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, snap.SessionID, payload); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Load returns the stored snapshot for the session
func (r *SnapshotRepository) Load(ctx context.Context, sessionID string) (*session.Snapshot, error) {
	var row snapshotRow

	query := `
		SELECT session_id, payload, created_at, updated_at
		FROM session_snapshots
		WHERE session_id = $1
	`

	err := r.db.GetContext(ctx, &row, query, sessionID)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("session snapshot")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap session.Snapshot
	if err := json.Unmarshal(row.Payload, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snap, nil
}

// Delete removes the snapshot for the session. Deleting a missing
// snapshot is not an error.
func (r *SnapshotRepository) Delete(ctx context.Context, sessionID string) error {
	query := `DELETE FROM session_snapshots WHERE session_id = $1`

	if _, err := r.db.ExecContext(ctx, query, sessionID); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	return nil
}
