package minio

import (
	"bytes"
	"context"
	"fmt"

	"mentora/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Client wraps the MinIO client with the bucket used for raw material
// archiving.
type Client struct {
	mc     *minio.Client
	bucket string
}

// NewClient connects to the MinIO endpoint described by cfg and makes sure
// the archive bucket exists.
func NewClient(ctx context.Context, cfg *config.MinIOConfig) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create MinIO client: %w", err)
	}

	exists, err := mc.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("MinIO health check failed: %w", err)
	}
	if !exists {
		if err := mc.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("cannot create bucket '%s': %w", cfg.Bucket, err)
		}
	}

	return &Client{mc: mc, bucket: cfg.Bucket}, nil
}

// Archive stores the raw bytes of an upload under its object name,
// overwriting any previous version.
func (c *Client) Archive(ctx context.Context, name string, data []byte, contentType string) error {
	_, err := c.mc.PutObject(ctx, c.bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("cannot archive '%s': %w", name, err)
	}
	return nil
}

// HealthCheck verifies connectivity and credentials against the endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	if c == nil || c.mc == nil {
		return fmt.Errorf("MinIO client is not initialized")
	}
	if _, err := c.mc.ListBuckets(ctx); err != nil {
		return fmt.Errorf("MinIO health check failed: %w", err)
	}
	return nil
}
