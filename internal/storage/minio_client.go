// Package storage keeps auction images in a MinIO (S3 compatible) bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"auction-marketplace/internal/biddingerrors"
	"auction-marketplace/internal/config"
	"auction-marketplace/internal/models"
	"auction-marketplace/utils"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// DefaultImagePath is served for auctions without an uploaded image
const DefaultImagePath = "/static/images/" + models.DefaultAuctionImage

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

//go:generate mockgen -source=minio_client.go -destination=mock_minio_client.go -package=storage

// ImageStore stores auction images and resolves their public URLs
type ImageStore interface {
	UploadImage(ctx context.Context, auctionID uint, fileName string, file io.Reader, size int64) (string, error)
	DeleteImage(ctx context.Context, objectName string) error
	ImageURL(objectName string) string
}

// MinIOClient implements ImageStore on a MinIO bucket
type MinIOClient struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

// NewMinIOClient connects to the configured endpoint and creates the bucket when missing
func NewMinIOClient(ctx context.Context, cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIOEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIOAccessKey, cfg.MinIOSecretKey, ""),
		Secure: cfg.MinIOUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	store := newMinIOClient(client, cfg.MinIOBucket, cfg.MinIOEndpoint, cfg.MinIOUseSSL)
	if err := store.ensureBucket(ctx); err != nil {
		return nil, err
	}
	utils.Info("minio connected", map[string]any{"endpoint": cfg.MinIOEndpoint, "bucket": cfg.MinIOBucket})
	return store, nil
}

func newMinIOClient(client *minio.Client, bucket, endpoint string, secure bool) *MinIOClient {
	scheme := "http"
	if secure {
		scheme = "https"
	}
	return &MinIOClient{
		client:  client,
		bucket:  bucket,
		baseURL: fmt.Sprintf("%s://%s", scheme, strings.TrimSuffix(endpoint, "/")),
	}
}

func (m *MinIOClient) ensureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("minio bucket check %s: %w", m.bucket, err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("minio make bucket %s: %w", m.bucket, err)
	}
	return nil
}

// UploadImage stores the file and returns its object name
func (m *MinIOClient) UploadImage(ctx context.Context, auctionID uint, fileName string, file io.Reader, size int64) (string, error) {
	now := time.Now().UTC()
	objectName, err := ObjectName(auctionID, fileName, now)
	if err != nil {
		return "", err
	}

	contentType := mime.TypeByExtension(filepath.Ext(objectName))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = m.client.PutObject(ctx, m.bucket, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": filepath.Base(fileName),
				"auction-id":        fmt.Sprint(auctionID),
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", fmt.Errorf("minio upload %s: %w", objectName, err)
	}
	return objectName, nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.bucket, objectName, minio.RemoveObjectOptions{GovernanceBypass: true})
	if err != nil {
		return fmt.Errorf("minio delete %s: %w", objectName, err)
	}
	return nil
}

// ImageURL is the path-style public URL of an object
func (m *MinIOClient) ImageURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", m.baseURL, m.bucket, objectName)
}

// ObjectName builds auctions/<id>/<yyyy>/<mm>/<uuid><ext> and rejects non-image extensions
func ObjectName(auctionID uint, fileName string, now time.Time) (string, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("storage: %w - %q", biddingerrors.ErrInvalidImage, filepath.Base(fileName))
	}
	return fmt.Sprintf("auctions/%d/%d/%02d/%s%s",
		auctionID,
		now.Year(),
		now.Month(),
		uuid.New().String(),
		ext), nil
}

// PublicURL resolves an auction's image field, falling back to the default image
func PublicURL(store ImageStore, objectName string) string {
	if objectName == "" || objectName == models.DefaultAuctionImage || store == nil {
		return DefaultImagePath
	}
	return store.ImageURL(objectName)
}
