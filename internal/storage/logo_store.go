package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"pkbmadmin/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

// MinioLogoStore keeps tenant logos in an S3-compatible bucket.
type MinioLogoStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
	log       *logrus.Logger
}

func NewMinioLogoStore(ctx context.Context, cfg config.MinioConfig, log *logrus.Logger) (*MinioLogoStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	store := &MinioLogoStore{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
		log:       log,
	}
	if store.publicURL == "" {
		store.publicURL = client.EndpointURL().String()
	}
	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *MinioLogoStore) ensureBucket(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", s.bucket, err)
	}
	if !found {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", s.bucket, err)
		}
		s.log.WithField("bucket", s.bucket).Info("Created logo bucket")
	}
	return nil
}

func (s *MinioLogoStore) PutLogo(ctx context.Context, tenantID, filename, contentType string, data []byte) (string, error) {
	object := logoObjectName(tenantID, filename)
	_, err := s.client.PutObject(ctx, s.bucket, object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{"tenant_id": tenantID, "object": object}).Error("Failed to upload logo")
		return "", fmt.Errorf("failed to upload logo: %w", err)
	}
	return objectURL(s.publicURL, s.bucket, object), nil
}

// logoObjectName builds tenants/<tenant>/logo-<uuid><ext>. Only the extension of
// the client's filename is kept.
func logoObjectName(tenantID, filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(strings.ReplaceAll(filename, "\\", "/"))))
	if len(ext) > 6 || strings.ContainsAny(ext, " ?#%") {
		ext = ""
	}
	return fmt.Sprintf("tenants/%s/logo-%s%s", tenantID, uuid.NewString(), ext)
}

func objectURL(base, bucket, object string) string {
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + object
}
