package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/salesight/salesight/internal/cache"
	"github.com/salesight/salesight/internal/domain"
	"github.com/salesight/salesight/internal/ingest"
	"github.com/salesight/salesight/internal/repository"
	"github.com/salesight/salesight/internal/storage"
)

// SalesService owns the upload-to-append path and the record views.
type SalesService struct {
	pipeline *ingest.Pipeline
	repo     *repository.SalesRepository
	cache    cache.SnapshotCache
	archive  storage.BatchArchiver
}

func NewSalesService(pipeline *ingest.Pipeline, repo *repository.SalesRepository, snapCache cache.SnapshotCache, archive storage.BatchArchiver) *SalesService {
	return &SalesService{
		pipeline: pipeline,
		repo:     repo,
		cache:    snapCache,
		archive:  archive,
	}
}

// Upload parses and normalizes a batch of files and appends the resulting
// records to the user's set. A batch is all-or-nothing: one undecodable file
// rejects the whole upload.
func (s *SalesService) Upload(ctx context.Context, userID string, files []domain.UploadedFile) (*domain.UploadResult, error) {
	records, err := s.pipeline.Process(files)
	if err != nil {
		return nil, err
	}

	appended, err := s.repo.Append(ctx, userID, records)
	if err != nil {
		return nil, fmt.Errorf("failed to append records: %w", err)
	}

	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("snapshot cache invalidation failed")
	}

	// Archive failures must not reject an already accepted batch.
	if err := s.archive.ArchiveBatch(ctx, userID, files); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("raw batch archive failed")
	}

	log.Info().
		Str("user_id", userID).
		Int("files", len(files)).
		Int("records", len(appended)).
		Msg("upload accepted")

	return &domain.UploadResult{
		Files:    len(files),
		Parsed:   len(records),
		Appended: len(appended),
	}, nil
}

// View returns the user's records with the filter and sort applied.
func (s *SalesService) View(ctx context.Context, userID string, filter domain.FilterCriteria, sortSpec domain.SortSpec) ([]domain.SalesRecord, error) {
	return s.repo.View(ctx, userID, filter, sortSpec)
}

// Clear drops every record the user has.
func (s *SalesService) Clear(ctx context.Context, userID string) error {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return err
	}
	if err := s.cache.InvalidateUser(ctx, userID); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("snapshot cache invalidation failed")
	}
	log.Info().Str("user_id", userID).Msg("sales data cleared")
	return nil
}
