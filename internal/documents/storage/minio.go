// Package storage wraps MinIO object storage for dealership documents.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/seanmc2314/sarah-ai-sales-sub001/platform/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// PresignedURLTTL is the expiration time for presigned download URLs.
const PresignedURLTTL = 15 * time.Minute

var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"text/csv":        true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       true,
}

// Service stores and serves document objects in a single bucket.
type Service struct {
	client      *minio.Client
	bucket      string
	maxFileSize int64
}

// New creates the MinIO-backed document store and ensures the bucket exists.
func New(ctx context.Context, cfg config.StorageConfig) (*Service, error) {
	if !cfg.IsMinIOEnabled() {
		return nil, fmt.Errorf("minio is not configured")
	}

	client, err := minio.New(cfg.GetMinIOEndpoint(), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.GetMinIOAccessKey(), cfg.GetMinIOSecretKey(), ""),
		Secure: cfg.GetMinIOUseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	s := &Service{
		client:      client,
		bucket:      cfg.GetMinioBucketDocuments(),
		maxFileSize: cfg.GetMinIOMaxFileSize(),
	}
	if err := s.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket %s: %w", s.bucket, err)
		}
	}
	return nil
}

// ValidateUpload checks content type and size before any bytes move.
func (s *Service) ValidateUpload(contentType string, sizeBytes int64) error {
	if !allowedContentTypes[contentType] {
		return fmt.Errorf("content type %q is not allowed", contentType)
	}
	if sizeBytes <= 0 {
		return fmt.Errorf("file is empty")
	}
	if sizeBytes > s.maxFileSize {
		return fmt.Errorf("file exceeds the %d byte limit", s.maxFileSize)
	}
	return nil
}

// Upload streams the file into the bucket under a collision-free key scoped
// to the dealership.
func (s *Service) Upload(ctx context.Context, dealershipID uuid.UUID, fileName, contentType string, sizeBytes int64, reader io.Reader) (string, error) {
	ext := path.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	key := fmt.Sprintf("dealerships/%s/%s_%s%s", dealershipID, base, uuid.New().String()[:8], ext)

	_, err := s.client.PutObject(ctx, s.bucket, key, reader, sizeBytes, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload object: %w", err)
	}
	return key, nil
}

// PresignedDownloadURL returns a short-lived GET URL that forces a download
// filename.
func (s *Service) PresignedDownloadURL(ctx context.Context, objectKey, fileName string) (string, time.Time, error) {
	params := make(url.Values)
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	expiresAt := time.Now().Add(PresignedURLTTL)
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, objectKey, PresignedURLTTL, params)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate presigned download url: %w", err)
	}
	return presigned.String(), expiresAt, nil
}

// Remove deletes the object.
func (s *Service) Remove(ctx context.Context, objectKey string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}
