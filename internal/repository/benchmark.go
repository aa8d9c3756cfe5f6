package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"replay-coach/internal/domain"
)

// BenchmarkRepository stores coach-curated reference builds, keyed by
// matchup. Phase benchmarks are serialized as one JSON document per
// build.
type BenchmarkRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewBenchmarkRepository(db *sql.DB, logger zerolog.Logger) *BenchmarkRepository {
	return &BenchmarkRepository{db: db, logger: logger}
}

func (r *BenchmarkRepository) Save(ctx context.Context, build *domain.ReferenceBuild) error {
	phases, err := json.Marshal(build.Phases)
	if err != nil {
		return fmt.Errorf("failed to marshal phases: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO reference_builds (id, name, matchup, phases, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name       = excluded.name,
			matchup    = excluded.matchup,
			phases     = excluded.phases,
			updated_at = excluded.updated_at`,
		build.ID, build.Name, build.Matchup, string(phases), build.CreatedAt, build.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert reference build %s: %w", build.ID, err)
	}
	return nil
}

func (r *BenchmarkRepository) Get(ctx context.Context, id string) (*domain.ReferenceBuild, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, matchup, phases, created_at, updated_at
		FROM reference_builds WHERE id = ?`, id)
	return scanBuild(row)
}

func (r *BenchmarkRepository) ListByMatchup(ctx context.Context, matchup string) ([]domain.ReferenceBuild, error) {
	query := `SELECT id, name, matchup, phases, created_at, updated_at FROM reference_builds`
	args := []any{}
	if matchup != "" {
		query += ` WHERE matchup = ?`
		args = append(args, matchup)
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var builds []domain.ReferenceBuild
	for rows.Next() {
		build, err := scanBuild(rows)
		if err != nil {
			return nil, err
		}
		builds = append(builds, *build)
	}
	return builds, rows.Err()
}

func (r *BenchmarkRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reference_builds WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reference build %s: %w", id, err)
	}
	return nil
}

func scanBuild(row rowScanner) (*domain.ReferenceBuild, error) {
	var (
		build  domain.ReferenceBuild
		phases string
	)
	err := row.Scan(&build.ID, &build.Name, &build.Matchup, &phases, &build.CreatedAt, &build.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(phases), &build.Phases); err != nil {
		return nil, fmt.Errorf("failed to unmarshal phases for %s: %w", build.ID, err)
	}
	return &build, nil
}
