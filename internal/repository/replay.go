package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"replay-coach/internal/domain"
)

// ReplayRepository stores the authoritative per-game records. The parsed
// fingerprint and any comparison result are serialized as JSON; the
// analytics engine never queries inside them.
type ReplayRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewReplayRepository(db *sql.DB, logger zerolog.Logger) *ReplayRepository {
	return &ReplayRepository{db: db, logger: logger}
}

func (r *ReplayRepository) Save(ctx context.Context, replay *domain.Replay) error {
	fingerprint, err := json.Marshal(replay.Fingerprint)
	if err != nil {
		return fmt.Errorf("failed to marshal fingerprint: %w", err)
	}

	var comparison sql.NullString
	if replay.Comparison != nil {
		b, err := json.Marshal(replay.Comparison)
		if err != nil {
			return fmt.Errorf("failed to marshal comparison: %w", err)
		}
		comparison = sql.NullString{String: string(b), Valid: true}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO replays (id, user_id, filename, uploaded_at, player_name, fingerprint, comparison, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			filename    = excluded.filename,
			player_name = excluded.player_name,
			fingerprint = excluded.fingerprint,
			comparison  = excluded.comparison,
			updated_at  = excluded.updated_at`,
		replay.ID, replay.UserID, replay.Filename, replay.UploadedAt, replay.PlayerName,
		string(fingerprint), comparison, replay.CreatedAt, replay.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert replay %s: %w", replay.ID, err)
	}
	return nil
}

func (r *ReplayRepository) Get(ctx context.Context, userID, id string) (*domain.Replay, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, filename, uploaded_at, player_name, fingerprint, comparison, created_at, updated_at
		FROM replays
		WHERE user_id = ? AND id = ?`, userID, id)
	return scanReplay(row)
}

// ListIDs returns the ids of one user's replays in upload order.
func (r *ReplayRepository) ListIDs(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id FROM replays WHERE user_id = ? ORDER BY uploaded_at, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *ReplayRepository) Count(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM replays WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

func (r *ReplayRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM replays WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("failed to delete replay %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReplay(row rowScanner) (*domain.Replay, error) {
	var (
		replay      domain.Replay
		fingerprint string
		comparison  sql.NullString
		uploadedAt  time.Time
	)
	err := row.Scan(&replay.ID, &replay.UserID, &replay.Filename, &uploadedAt,
		&replay.PlayerName, &fingerprint, &comparison, &replay.CreatedAt, &replay.UpdatedAt)
	if err != nil {
		return nil, err
	}
	replay.UploadedAt = uploadedAt

	if err := json.Unmarshal([]byte(fingerprint), &replay.Fingerprint); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fingerprint for %s: %w", replay.ID, err)
	}
	if comparison.Valid {
		if err := json.Unmarshal([]byte(comparison.String), &replay.Comparison); err != nil {
			return nil, fmt.Errorf("failed to unmarshal comparison for %s: %w", replay.ID, err)
		}
	}
	return &replay, nil
}
