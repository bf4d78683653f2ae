package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/salesight/salesight/internal/analytics"
	"github.com/salesight/salesight/internal/cache"
	"github.com/salesight/salesight/internal/domain"
	"github.com/salesight/salesight/internal/repository"
)

// AnalyticsService computes snapshots on demand with a cache-aside layer in
// front. Keys include the repository version, so a stale hit is impossible
// after any write.
type AnalyticsService struct {
	repo   *repository.SalesRepository
	engine *analytics.Engine
	cache  cache.SnapshotCache
}

func NewAnalyticsService(repo *repository.SalesRepository, engine *analytics.Engine, snapCache cache.SnapshotCache) *AnalyticsService {
	return &AnalyticsService{
		repo:   repo,
		engine: engine,
		cache:  snapCache,
	}
}

// Snapshot returns the full analytics aggregate for the user's filtered
// records.
func (s *AnalyticsService) Snapshot(ctx context.Context, userID string, filter domain.FilterCriteria) (*domain.AnalyticsSnapshot, error) {
	version, err := s.repo.Version(ctx, userID)
	if err != nil {
		return nil, err
	}

	if snap, ok, err := s.cache.Get(ctx, userID, version, filter); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("snapshot cache read failed")
	} else if ok {
		return snap, nil
	}

	records, err := s.repo.View(ctx, userID, filter, domain.SortSpec{})
	if err != nil {
		return nil, err
	}

	snap := s.engine.Snapshot(records)

	if err := s.cache.Set(ctx, userID, version, filter, snap); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("snapshot cache write failed")
	}

	return snap, nil
}

// Forecast projects revenue from the current snapshot.
func (s *AnalyticsService) Forecast(ctx context.Context, userID string, filter domain.FilterCriteria) (*domain.Forecast, error) {
	snap, err := s.Snapshot(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return s.engine.Forecast(snap), nil
}

// GuidanceFor returns the merchandising guidance for one combined segment.
func (s *AnalyticsService) GuidanceFor(combined string, revenue float64) domain.SegmentGuidance {
	return s.engine.GuidanceFor(combined, revenue)
}
