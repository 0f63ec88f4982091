// Package storage uploads user-supplied images to S3-compatible object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrNotConfigured is returned when no storage endpoint is set.
var ErrNotConfigured = errors.New("object storage not configured")

// PresignTTL is how long returned object URLs stay valid.
const PresignTTL = 24 * time.Hour

// Object describes a stored upload.
type Object struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// Uploader stores objects and returns a URL clients can fetch them from.
type Uploader interface {
	Put(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (Object, error)
}

// Config holds the MinIO connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// MinioUploader is an Uploader backed by one MinIO bucket.
type MinioUploader struct {
	cli    *minio.Client
	bucket string
}

// NewMinio connects to MinIO and creates the bucket when it does not exist.
func NewMinio(ctx context.Context, cfg Config) (*MinioUploader, error) {
	if cfg.Endpoint == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}
	}

	return &MinioUploader{cli: cli, bucket: cfg.Bucket}, nil
}

// ObjectName returns a collision-free object key that keeps filename's extension.
func ObjectName(filename string) string {
	return uuid.New().String() + strings.ToLower(filepath.Ext(filename))
}

// Put uploads r under a fresh object name and returns a presigned GET URL.
func (u *MinioUploader) Put(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (Object, error) {
	name := ObjectName(filename)

	info, err := u.cli.PutObject(ctx, u.bucket, name, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return Object{}, fmt.Errorf("put object: %w", err)
	}

	url, err := u.cli.PresignedGetObject(ctx, u.bucket, name, PresignTTL, nil)
	if err != nil {
		return Object{}, fmt.Errorf("presign object: %w", err)
	}

	return Object{Key: name, URL: url.String(), Size: info.Size, ContentType: contentType}, nil
}
