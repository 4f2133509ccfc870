package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSSStorage Alibaba Cloud OSS storage
type OSSStorage struct {
	bucket *oss.Bucket
}

// NewOSSStorage create OSS storage instance
func NewOSSStorage(endpoint, accessKey, secretKey, bucketName string) (*OSSStorage, error) {
	if endpoint == "" || accessKey == "" || secretKey == "" || bucketName == "" {
		return nil, ErrInvalid
	}

	client, err := oss.New(endpoint, accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create oss client: %w", err)
	}

	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to get bucket: %w", err)
	}

	return &OSSStorage{bucket: bucket}, nil
}

func (s *OSSStorage) Save(ctx context.Context, key string, data []byte) error {
	if err := s.bucket.PutObject(key, bytes.NewReader(data), oss.WithContext(ctx), oss.ContentType(contentType(key))); err != nil {
		return fmt.Errorf("failed to upload to oss: %w", err)
	}
	return nil
}

func (s *OSSStorage) Get(ctx context.Context, key string) ([]byte, error) {
	body, err := s.bucket.GetObject(key, oss.WithContext(ctx))
	if err != nil {
		var ossErr oss.ServiceError
		if errors.As(err, &ossErr) && ossErr.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get from oss: %w", err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read oss object: %w", err)
	}
	return data, nil
}

func (s *OSSStorage) Delete(ctx context.Context, key string) error {
	if err := s.bucket.DeleteObject(key, oss.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete from oss: %w", err)
	}
	return nil
}

func (s *OSSStorage) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := s.bucket.IsObjectExist(key, oss.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("failed to check oss object: %w", err)
	}
	return exists, nil
}
