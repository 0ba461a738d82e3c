package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/juegoteca/backend/internal/config"
)

// CoverStore keeps game cover images in a MinIO bucket and hands out
// presigned GET URLs for them.
type CoverStore struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

// NewCoverStore creates the MinIO client and ensures the bucket exists.
func NewCoverStore(cfg config.MinIOConfig) (*CoverStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	s := &CoverStore{client: mc, bucket: cfg.Bucket, expiry: cfg.URLExpiry}
	// ensure bucket exists (idempotent)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		exist, xerr := mc.BucketExists(ctx, s.bucket)
		if xerr != nil || !exist {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}
	return s, nil
}

// UploadCover stores the image under covers/<gameID> and returns a presigned
// GET URL for it. Re-uploading for the same game overwrites the old object.
func (s *CoverStore) UploadCover(ctx context.Context, gameID string, r io.Reader, size int64, contentType string) (string, error) {
	key := path.Join("covers", gameID)
	if _, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return "", fmt.Errorf("minio put: %w", err)
	}
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, key, s.expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("minio presign: %w", err)
	}
	return presigned.String(), nil
}
