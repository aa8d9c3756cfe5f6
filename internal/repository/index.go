package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"replay-coach/internal/constants"
	"replay-coach/internal/domain"
)

// IndexRepository stores one ReplayIndex document per user: denormalized
// entry rows plus a version/count row. Writes are last-writer-wins at the
// granularity of one user's index.
type IndexRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewIndexRepository(db *sql.DB, logger zerolog.Logger) *IndexRepository {
	return &IndexRepository{db: db, logger: logger}
}

// Get loads a user's full index with entries in upload order. A user with
// no index yet gets an empty version-0 document.
func (r *IndexRepository) Get(ctx context.Context, userID string) (*domain.ReplayIndex, error) {
	index := &domain.ReplayIndex{UserID: userID}

	err := r.db.QueryRowContext(ctx, `
		SELECT version, entry_count, updated_at FROM replay_indexes WHERE user_id = ?`, userID).
		Scan(&index.Version, &index.Count, &index.UpdatedAt)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT replay_id, filename, uploaded_at, game_time,
		       player_name, player_race, opponent_name, opponent_race, matchup, result,
		       duration_seconds, map_name, reference_build_id, comparison_score,
		       production_score, supply_score, vision_score,
		       supply_block_seconds, production_idle_seconds, detected_build
		FROM replay_index_entries
		WHERE user_id = ?
		ORDER BY uploaded_at, replay_id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		entry, err := scanIndexEntry(rows)
		if err != nil {
			return nil, err
		}
		index.Entries = append(index.Entries, entry)
	}
	return index, rows.Err()
}

// UpsertEntry writes one entry and bumps the index version.
func (r *IndexRepository) UpsertEntry(ctx context.Context, userID string, entry domain.ReplayIndexEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := upsertEntryTx(ctx, tx, userID, entry); err != nil {
		return err
	}
	if err := r.bumpVersion(ctx, tx, userID); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteEntry removes one entry (when its parent replay is deleted) and
// bumps the index version.
func (r *IndexRepository) DeleteEntry(ctx context.Context, userID, replayID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM replay_index_entries WHERE user_id = ? AND replay_id = ?`, userID, replayID); err != nil {
		return fmt.Errorf("failed to delete index entry %s: %w", replayID, err)
	}
	if err := r.bumpVersion(ctx, tx, userID); err != nil {
		return err
	}
	return tx.Commit()
}

// Replace swaps a user's entire entry set for a freshly rebuilt one.
func (r *IndexRepository) Replace(ctx context.Context, userID string, entries []domain.ReplayIndexEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM replay_index_entries WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear index entries: %w", err)
	}

	for i := 0; i < len(entries); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(entries))
		for _, entry := range entries[i:end] {
			if err := upsertEntryTx(ctx, tx, userID, entry); err != nil {
				return err
			}
		}
	}

	if err := r.bumpVersion(ctx, tx, userID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *IndexRepository) bumpVersion(ctx context.Context, tx *sql.Tx, userID string) error {
	var count int
	if err := tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM replay_index_entries WHERE user_id = ?`, userID).Scan(&count); err != nil {
		return err
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO replay_indexes (user_id, version, entry_count, updated_at)
		VALUES (?, 1, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			version     = version + 1,
			entry_count = excluded.entry_count,
			updated_at  = excluded.updated_at`,
		userID, count, time.Now())
	if err != nil {
		return fmt.Errorf("failed to bump index version: %w", err)
	}
	return nil
}

func upsertEntryTx(ctx context.Context, tx *sql.Tx, userID string, e domain.ReplayIndexEntry) error {
	now := time.Now()
	_, err := tx.ExecContext(ctx, `
		INSERT INTO replay_index_entries (
			replay_id, user_id, filename, uploaded_at, game_time,
			player_name, player_race, opponent_name, opponent_race, matchup, result,
			duration_seconds, map_name, reference_build_id, comparison_score,
			production_score, supply_score, vision_score,
			supply_block_seconds, production_idle_seconds, detected_build,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (replay_id) DO UPDATE SET
			filename                = excluded.filename,
			uploaded_at             = excluded.uploaded_at,
			game_time               = excluded.game_time,
			player_name             = excluded.player_name,
			player_race             = excluded.player_race,
			opponent_name           = excluded.opponent_name,
			opponent_race           = excluded.opponent_race,
			matchup                 = excluded.matchup,
			result                  = excluded.result,
			duration_seconds        = excluded.duration_seconds,
			map_name                = excluded.map_name,
			reference_build_id      = excluded.reference_build_id,
			comparison_score        = excluded.comparison_score,
			production_score        = excluded.production_score,
			supply_score            = excluded.supply_score,
			vision_score            = excluded.vision_score,
			supply_block_seconds    = excluded.supply_block_seconds,
			production_idle_seconds = excluded.production_idle_seconds,
			detected_build          = excluded.detected_build,
			updated_at              = excluded.updated_at`,
		e.ID, userID, e.Filename, e.UploadedAt, nullTime(e.GameTime),
		e.PlayerName, string(e.PlayerRace), e.OpponentName, string(e.OpponentRace), e.Matchup, string(e.Result),
		e.DurationSeconds, e.Map, nullString(e.ReferenceBuildID), nullInt(e.ComparisonScore),
		nullInt(e.ProductionScore), nullInt(e.SupplyScore), nullInt(e.VisionScore),
		nullFloat(e.SupplyBlockSeconds), nullFloat(e.ProductionIdleSeconds), nullString(e.DetectedBuild),
		now, now)
	if err != nil {
		return fmt.Errorf("failed to upsert index entry %s: %w", e.ID, err)
	}
	return nil
}

func scanIndexEntry(row rowScanner) (domain.ReplayIndexEntry, error) {
	var (
		e            domain.ReplayIndexEntry
		gameTime     sql.NullTime
		playerRace   string
		opponentRace string
		result       string
		refBuild     sql.NullString
		cmpScore     sql.NullInt64
		prodScore    sql.NullInt64
		supplyScore  sql.NullInt64
		visionScore  sql.NullInt64
		blockSec     sql.NullFloat64
		idleSec      sql.NullFloat64
		detected     sql.NullString
	)
	err := row.Scan(&e.ID, &e.Filename, &e.UploadedAt, &gameTime,
		&e.PlayerName, &playerRace, &e.OpponentName, &opponentRace, &e.Matchup, &result,
		&e.DurationSeconds, &e.Map, &refBuild, &cmpScore,
		&prodScore, &supplyScore, &visionScore,
		&blockSec, &idleSec, &detected)
	if err != nil {
		return e, err
	}

	e.PlayerRace = domain.Race(playerRace)
	e.OpponentRace = domain.Race(opponentRace)
	e.Result = domain.GameResult(result)
	if gameTime.Valid {
		t := gameTime.Time
		e.GameTime = &t
	}
	e.ReferenceBuildID = fromNullString(refBuild)
	e.ComparisonScore = fromNullInt(cmpScore)
	e.ProductionScore = fromNullInt(prodScore)
	e.SupplyScore = fromNullInt(supplyScore)
	e.VisionScore = fromNullInt(visionScore)
	e.SupplyBlockSeconds = fromNullFloat(blockSec)
	e.ProductionIdleSeconds = fromNullFloat(idleSec)
	e.DetectedBuild = fromNullString(detected)
	return e, nil
}

func nullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func fromNullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func fromNullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
