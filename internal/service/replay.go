package service

import (
	"context"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"replay-coach/internal/analytics"
	"replay-coach/internal/api"
	"replay-coach/internal/constants"
	"replay-coach/internal/domain"
	"replay-coach/internal/repository"
)

// ReplayService owns the ingestion pipeline: parse an uploaded replay
// into a fingerprint, persist the full record, and keep the user's index
// in step with it.
type ReplayService struct {
	parser     *api.ParserClient
	replayRepo *repository.ReplayRepository
	indexRepo  *repository.IndexRepository
	logger     zerolog.Logger
}

func NewReplayService(parser *api.ParserClient, replayRepo *repository.ReplayRepository, indexRepo *repository.IndexRepository, logger zerolog.Logger) *ReplayService {
	return &ReplayService{parser: parser, replayRepo: replayRepo, indexRepo: indexRepo, logger: logger}
}

// Upload parses a replay file, stores the full record, and adds its index
// entry.
func (s *ReplayService) Upload(ctx context.Context, userID, filename string, data []byte) (*domain.Replay, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate replay id: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Str("filename", filename).Int("size", len(data)).Msg("parsing uploaded replay")

	fingerprint, err := s.parser.ParseReplay(ctx, filename, data)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("filename", filename).Msg("replay parse failed")
		return nil, fmt.Errorf("failed to parse replay: %w", err)
	}

	now := time.Now()
	replay := &domain.Replay{
		ID:          id,
		UserID:      userID,
		Filename:    filename,
		UploadedAt:  now,
		Fingerprint: fingerprint,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.replayRepo.Save(ctx, replay); err != nil {
		return nil, fmt.Errorf("failed to save replay: %w", err)
	}

	entry := analytics.BuildIndexEntry(*replay)
	if err := s.indexRepo.UpsertEntry(ctx, userID, entry); err != nil {
		return nil, fmt.Errorf("failed to index replay: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("replay_id", id).
		Str("matchup", entry.Matchup).
		Str("result", string(entry.Result)).
		Msg("replay ingested")

	return replay, nil
}

// Delete removes a replay and its index entry.
func (s *ReplayService) Delete(ctx context.Context, userID, replayID string) error {
	if err := s.replayRepo.Delete(ctx, userID, replayID); err != nil {
		return fmt.Errorf("failed to delete replay %s: %w", replayID, err)
	}
	if err := s.indexRepo.DeleteEntry(ctx, userID, replayID); err != nil {
		return fmt.Errorf("failed to delete index entry %s: %w", replayID, err)
	}
	s.logger.Info().Str("user_id", userID).Str("replay_id", replayID).Msg("replay deleted")
	return nil
}

// RebuildIndex re-derives every index entry for a user from the
// authoritative replay records. Reads fan out with a bounded errgroup;
// the reduction itself is per-record and needs no locking. The rebuilt
// set replaces the old one wholesale, last writer wins.
func (s *ReplayService) RebuildIndex(ctx context.Context, userID string) (*domain.ReplayIndex, error) {
	ids, err := s.replayRepo.ListIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list replays: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Int("replay_count", len(ids)).Msg("rebuilding replay index")

	entries := make([]domain.ReplayIndexEntry, len(ids))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(constants.RebuildFanout)

	for i, id := range ids {
		g.Go(func() error {
			replay, err := s.replayRepo.Get(gCtx, userID, id)
			if err != nil {
				return fmt.Errorf("failed to load replay %s: %w", id, err)
			}
			entries[i] = analytics.BuildIndexEntry(*replay)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := s.indexRepo.Replace(ctx, userID, entries); err != nil {
		return nil, fmt.Errorf("failed to replace index: %w", err)
	}

	index, err := s.indexRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", userID).
		Int64("version", index.Version).
		Int("entry_count", index.Count).
		Msg("replay index rebuilt")

	return index, nil
}

// GetIndex returns the user's current index, verifying its count against
// the authoritative records.
func (s *ReplayService) GetIndex(ctx context.Context, userID string) (*domain.ReplayIndex, error) {
	index, err := s.indexRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	count, err := s.replayRepo.Count(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count != index.Count {
		s.logger.Warn().
			Str("user_id", userID).
			Int("index_count", index.Count).
			Int("replay_count", count).
			Msg("replay index out of step with records, rebuilding")
		return s.RebuildIndex(ctx, userID)
	}
	return index, nil
}

// SupplyTimeline returns a dense supply timeline for charting. The
// parser's dense timeline wins when present; otherwise the sparse supply
// checkpoints are interpolated at the given interval.
func (s *ReplayService) SupplyTimeline(ctx context.Context, userID, replayID string, intervalSeconds int) ([]domain.TimelinePoint, error) {
	replay, err := s.replayRepo.Get(ctx, userID, replayID)
	if err != nil {
		return nil, fmt.Errorf("failed to load replay %s: %w", replayID, err)
	}
	fp := replay.Fingerprint
	if fp == nil {
		return nil, nil
	}

	if len(fp.SupplyTimeline) > 0 {
		return analytics.InterpolateCheckpoints(fp.SupplyTimeline, int(fp.Metadata.DurationSeconds), intervalSeconds)
	}
	if fp.Economy == nil || len(fp.Economy.SupplyCheckpoints) == 0 {
		return nil, nil
	}
	return analytics.InterpolateCheckpoints(fp.Economy.SupplyCheckpoints, int(fp.Metadata.DurationSeconds), intervalSeconds)
}
