package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"portfolioCMS/internal/config"
)

type Storage interface {
	UploadImage(ctx context.Context, ownerID, fileName string, file io.Reader, size int64) (objectKey, contentType string, err error)
	DeleteImage(ctx context.Context, objectKey string) error
	ObjectURL(ctx context.Context, objectKey string) (string, error)
	EnsureBucket(ctx context.Context) error
}

type MinIOClient struct {
	client *minio.Client
	config config.MinIO
}

func NewMinIOClient(cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	return &MinIOClient{client: client, config: cfg}, nil
}

// EnsureBucket creates the media bucket when it does not exist yet.
func (m *MinIOClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.config.BucketName)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", m.config.BucketName, err)
	}
	if exists {
		return nil
	}

	if err := m.client.MakeBucket(ctx, m.config.BucketName, minio.MakeBucketOptions{Region: m.config.Region}); err != nil {
		// another instance may have created it in between
		if resp := minio.ToErrorResponse(err); resp.Code == "BucketAlreadyOwnedByYou" || resp.Code == "BucketAlreadyExists" {
			return nil
		}
		return fmt.Errorf("make bucket %q: %w", m.config.BucketName, err)
	}
	return nil
}

func objectKeyFor(ownerID, fileName string, now time.Time) (string, string) {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	contentType := mime.TypeByExtension(fileExt)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectKey := fmt.Sprintf("media/%s/%d/%02d/%s%s",
		ownerID,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		fileExt)

	return objectKey, contentType
}

func (m *MinIOClient) UploadImage(ctx context.Context, ownerID, fileName string, file io.Reader, size int64) (string, string, error) {
	now := time.Now()
	objectKey, contentType := objectKeyFor(ownerID, fileName, now)

	_, err := m.client.PutObject(ctx, m.config.BucketName, objectKey, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"owner-id":          ownerID,
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("upload to minio: %w", err)
	}

	return objectKey, contentType, nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectKey string) error {
	err := m.client.RemoveObject(ctx, m.config.BucketName, objectKey, minio.RemoveObjectOptions{GovernanceBypass: true})
	if err != nil {
		return fmt.Errorf("delete from minio: %w", err)
	}
	return nil
}

// ObjectURL returns a presigned link when MINIO_PRESIGN_URLS is set, otherwise the
// public address of the object.
func (m *MinIOClient) ObjectURL(ctx context.Context, objectKey string) (string, error) {
	if m.config.PresignURLs {
		u, err := m.client.PresignedGetObject(ctx, m.config.BucketName, objectKey, m.config.URLExpiry, nil)
		if err != nil {
			return "", fmt.Errorf("presign %q: %w", objectKey, err)
		}
		return u.String(), nil
	}
	return PublicURL(m.config.PublicEndpoint, m.config.BucketName, objectKey)
}

func PublicURL(endpoint, bucket, objectKey string) (string, error) {
	base, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse public endpoint: %w", err)
	}
	if base.Host == "" {
		return "", fmt.Errorf("invalid public endpoint %q, host missing", endpoint)
	}
	base.Path = path.Join("/", base.Path, bucket, objectKey)
	return base.String(), nil
}
