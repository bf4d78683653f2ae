package storage

import (
	"context"

	"github.com/salesight/salesight/internal/domain"
)

// BatchArchiver keeps a copy of every raw uploaded batch so a questionable
// normalization can always be traced back to its source file.
type BatchArchiver interface {
	ArchiveBatch(ctx context.Context, userID string, files []domain.UploadedFile) error
}

type noopArchiver struct{}

// NewNoopArchiver is used when the archive is disabled.
func NewNoopArchiver() BatchArchiver {
	return &noopArchiver{}
}

func (n *noopArchiver) ArchiveBatch(ctx context.Context, userID string, files []domain.UploadedFile) error {
	return nil
}
