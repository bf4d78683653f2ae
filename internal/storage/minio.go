package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog/log"

	"github.com/salesight/salesight/internal/config"
	"github.com/salesight/salesight/internal/domain"
)

// MinioArchiver stores raw batches in an S3-compatible bucket under
// {userID}/{yyyymmdd}/{filename}.
type MinioArchiver struct {
	client *minio.Client
	bucket string
	now    func() time.Time
}

func NewMinioArchiver(cfg config.ArchiveConfig) (*MinioArchiver, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("archive endpoint must be provided")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("archive credentials must be provided")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("archive bucket must be provided")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	return &MinioArchiver{
		client: client,
		bucket: cfg.Bucket,
		now:    time.Now,
	}, nil
}

func (a *MinioArchiver) ArchiveBatch(ctx context.Context, userID string, files []domain.UploadedFile) error {
	day := a.now().UTC().Format("20060102")

	for _, f := range files {
		key := path.Join(userID, day, f.Filename)
		_, err := a.client.PutObject(ctx, a.bucket, key,
			bytes.NewReader(f.Data), int64(len(f.Data)),
			minio.PutObjectOptions{ContentType: "application/octet-stream"})
		if err != nil {
			return fmt.Errorf("failed to archive %s: %w", f.Filename, err)
		}
		log.Debug().Str("key", key).Int("bytes", len(f.Data)).Msg("archived uploaded file")
	}

	return nil
}

var _ BatchArchiver = (*MinioArchiver)(nil)
