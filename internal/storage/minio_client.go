package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/xid"

	"postpilot/internal/config"
	"postpilot/internal/logger"
)

type Storage interface {
	UploadMedia(ctx context.Context, fileName string, file io.Reader, size int64, contentType string) (string, string, error)
	RemoveMedia(ctx context.Context, objectName string) error
	PublicURL(objectName string) string
}

type MinIOClient struct {
	client *minio.Client
	cfg    config.MinIO
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	m := &MinIOClient{client: client, cfg: cfg.MinIO}
	if err := m.ensureBucket(context.Background()); err != nil {
		return nil, err
	}
	return m, nil
}

// ensureBucket creates the bucket on first run and opens it for anonymous
// reads, since persisted post URLs must be fetchable without credentials.
func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.cfg.BucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket %q: %w", m.cfg.BucketName, err)
	}
	if exists {
		return nil
	}

	err = m.client.MakeBucket(ctx, m.cfg.BucketName, minio.MakeBucketOptions{Region: m.cfg.Region})
	if err != nil {
		return fmt.Errorf("failed to create bucket %q: %w", m.cfg.BucketName, err)
	}

	policy := fmt.Sprintf(`{
		"Version": "2012-10-17",
		"Statement": [{
			"Effect": "Allow",
			"Principal": {"AWS": ["*"]},
			"Action": ["s3:GetObject"],
			"Resource": ["arn:aws:s3:::%s/*"]
		}]
	}`, m.cfg.BucketName)

	if err := m.client.SetBucketPolicy(ctx, m.cfg.BucketName, policy); err != nil {
		return fmt.Errorf("failed to set public-read policy on %q: %w", m.cfg.BucketName, err)
	}

	logger.Sugar.Infow("bucket created", "bucket", m.cfg.BucketName)
	return nil
}

// UploadMedia stores the file under a collision-resistant object name
// (unix-nano timestamp + xid + original extension) and returns the object
// name together with its public URL.
func (m *MinIOClient) UploadMedia(ctx context.Context, fileName string, file io.Reader, size int64, contentType string) (string, string, error) {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	if contentType == "" {
		contentType = mime.TypeByExtension(fileExt)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := time.Now()
	objectName := fmt.Sprintf("%d-%s%s", now.UnixNano(), xid.New().String(), fileExt)

	_, err := m.client.PutObject(ctx, m.cfg.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	return objectName, m.PublicURL(objectName), nil
}

func (m *MinIOClient) RemoveMedia(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.cfg.BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove from MinIO: %w", err)
	}
	return nil
}

// PublicURL builds the anonymous-read URL for an object. The bucket policy
// set in ensureBucket keeps these fetchable without an auth header.
func (m *MinIOClient) PublicURL(objectName string) string {
	scheme := "http"
	if m.cfg.UseSSL {
		scheme = "https"
	}
	host := m.cfg.PublicHost
	if host == "" {
		host = m.cfg.Endpoint
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, host, m.cfg.BucketName, objectName)
}
