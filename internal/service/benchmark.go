package service

import (
	"context"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"replay-coach/internal/domain"
	"replay-coach/internal/repository"
)

// BenchmarkService manages coach-curated reference builds.
type BenchmarkService struct {
	benchRepo *repository.BenchmarkRepository
	logger    zerolog.Logger
}

func NewBenchmarkService(benchRepo *repository.BenchmarkRepository, logger zerolog.Logger) *BenchmarkService {
	return &BenchmarkService{benchRepo: benchRepo, logger: logger}
}

// Save creates or updates a reference build. Expected phase values must
// be non-negative; a benchmark that asks for negative workers is a
// caller bug, not sparse data.
func (s *BenchmarkService) Save(ctx context.Context, build *domain.ReferenceBuild) (*domain.ReferenceBuild, error) {
	if build.Name == "" {
		return nil, fmt.Errorf("reference build name is required")
	}
	for phase, bench := range build.Phases {
		if bench.WorkerCount < 0 || bench.BaseCount < 0 || bench.GasBuildings < 0 || bench.ArmySupply < 0 {
			return nil, fmt.Errorf("phase %s has negative expectations", phase)
		}
	}

	now := time.Now()
	if build.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return nil, fmt.Errorf("failed to generate build id: %w", err)
		}
		build.ID = id
		build.CreatedAt = now
	}
	build.UpdatedAt = now

	if err := s.benchRepo.Save(ctx, build); err != nil {
		return nil, err
	}

	s.logger.Info().Str("build_id", build.ID).Str("name", build.Name).Str("matchup", build.Matchup).Msg("reference build saved")
	return build, nil
}

func (s *BenchmarkService) Get(ctx context.Context, id string) (*domain.ReferenceBuild, error) {
	return s.benchRepo.Get(ctx, id)
}

func (s *BenchmarkService) List(ctx context.Context, matchup string) ([]domain.ReferenceBuild, error) {
	return s.benchRepo.ListByMatchup(ctx, matchup)
}

func (s *BenchmarkService) Delete(ctx context.Context, id string) error {
	return s.benchRepo.Delete(ctx, id)
}
