package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"replay-coach/internal/analytics"
	"replay-coach/internal/config"
	"replay-coach/internal/constants"
	"replay-coach/internal/domain"
	"replay-coach/internal/repository"
)

// AnalyticsService answers the read-side questions: trends over time,
// nemesis opponents, matchup records, per-identity summaries, and
// benchmark comparisons. All heavy lifting is in the pure analytics
// package; this layer only fetches inputs and persists comparison
// results.
type AnalyticsService struct {
	cfg        analytics.Config
	replaySvc  *ReplayService
	replayRepo *repository.ReplayRepository
	indexRepo  *repository.IndexRepository
	benchRepo  *repository.BenchmarkRepository
	logger     zerolog.Logger
}

func NewAnalyticsService(appCfg *config.Config, replaySvc *ReplayService, replayRepo *repository.ReplayRepository, indexRepo *repository.IndexRepository, benchRepo *repository.BenchmarkRepository, logger zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{
		cfg:        appCfg.Analytics,
		replaySvc:  replaySvc,
		replayRepo: replayRepo,
		indexRepo:  indexRepo,
		benchRepo:  benchRepo,
		logger:     logger,
	}
}

// Trends builds a trend series for one user. An empty matchup means the
// whole collection; otherwise entries are pre-filtered by canonical
// matchup string.
func (s *AnalyticsService) Trends(ctx context.Context, userID string, period domain.Period, matchup string) (*domain.TimeSeriesData, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	index, err := s.replaySvc.GetIndex(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load index: %w", err)
	}

	var series domain.TimeSeriesData
	if matchup != "" {
		series = analytics.BuildMatchupTimeSeries(index.Entries, matchup, period)
	} else {
		series = analytics.BuildTimeSeries(index.Entries, period)
	}

	s.logger.Debug().
		Str("user_id", userID).
		Str("period", string(period)).
		Str("matchup", matchup).
		Int("bucket_count", len(series.Points)).
		Msg("trend series built")

	return &series, nil
}

func (s *AnalyticsService) Nemesis(ctx context.Context, userID string) (*domain.NemesisSummary, error) {
	index, err := s.replaySvc.GetIndex(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load index: %w", err)
	}
	return analytics.FindNemesis(index.Entries, s.cfg.NemesisMinGames), nil
}

func (s *AnalyticsService) Matchups(ctx context.Context, userID string) ([]domain.MatchupStats, error) {
	index, err := s.replaySvc.GetIndex(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load index: %w", err)
	}
	return analytics.MatchupBreakdown(index.Entries), nil
}

func (s *AnalyticsService) PlayerStats(ctx context.Context, userID string) ([]domain.PlayerStatsSummary, error) {
	index, err := s.replaySvc.GetIndex(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load index: %w", err)
	}
	return analytics.PlayerSummaries(index.Entries, s.cfg.NemesisMinGames), nil
}

// Compare scores one replay against one reference build, stores the
// result on the replay record, and refreshes the replay's index entry so
// lists pick up the new comparison score.
func (s *AnalyticsService) Compare(ctx context.Context, userID, replayID, buildID string) (*domain.BuildComparison, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	replay, err := s.replayRepo.Get(ctx, userID, replayID)
	if err != nil {
		return nil, fmt.Errorf("failed to load replay %s: %w", replayID, err)
	}
	if replay.Fingerprint == nil || replay.Fingerprint.Economy == nil || len(replay.Fingerprint.Economy.PhaseSnapshots) == 0 {
		return nil, fmt.Errorf("replay %s has no phase snapshots to compare", replayID)
	}

	build, err := s.benchRepo.Get(ctx, buildID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reference build %s: %w", buildID, err)
	}

	diffs, score := s.cfg.ScoreExecution(replay.Fingerprint.Economy.PhaseSnapshots, *build)
	comparison := &domain.BuildComparison{
		ReferenceBuildID: build.ID,
		PhaseDiffs:       diffs,
		Score:            score,
		ComparedAt:       time.Now(),
	}

	replay.Comparison = comparison
	replay.UpdatedAt = time.Now()
	if err := s.replayRepo.Save(ctx, replay); err != nil {
		return nil, fmt.Errorf("failed to save comparison: %w", err)
	}

	entry := analytics.BuildIndexEntry(*replay)
	if err := s.indexRepo.UpsertEntry(ctx, userID, entry); err != nil {
		return nil, fmt.Errorf("failed to refresh index entry: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("replay_id", replayID).
		Str("build_id", buildID).
		Int("total", score.Total).
		Str("grade", score.Grade).
		Msg("replay compared against reference build")

	return comparison, nil
}
