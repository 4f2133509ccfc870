package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storage-market-indexer/conf"
)

// Storage object store for exported snapshots
type Storage interface {
	Save(ctx context.Context, key string, data []byte) error
	// Get returns ErrNotFound when the key does not exist
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete is a no-op for a missing key
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

var (
	ErrNotFound = errors.New("object not found")
	ErrInvalid  = errors.New("invalid storage configuration")
)

// Storage types
const (
	TypeLocal = "local"
	TypeOSS   = "oss"
	TypeS3    = "s3"
	TypeMinIO = "minio"
)

// NewStorage create storage instance by configuration
func NewStorage(cfg conf.StorageConfig) (Storage, error) {
	switch strings.ToLower(cfg.Type) {
	case "", TypeLocal:
		return NewLocalStorage(cfg.Local.BasePath)
	case TypeOSS:
		return NewOSSStorage(cfg.OSS.Endpoint, cfg.OSS.AccessKey, cfg.OSS.SecretKey, cfg.OSS.Bucket)
	case TypeS3:
		return NewS3Storage(cfg.S3.Region, cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey, cfg.S3.Bucket)
	case TypeMinIO:
		return NewMinIOStorage(cfg.MinIO.Endpoint, cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, cfg.MinIO.Bucket, cfg.MinIO.UseSSL)
	default:
		return nil, fmt.Errorf("%w: unknown storage type %q", ErrInvalid, cfg.Type)
	}
}
