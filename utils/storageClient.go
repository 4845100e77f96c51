package utils

import (
	"encoding/json"
	"fmt"
	"log"

	"aerocert/config"

	"github.com/go-resty/resty/v2"
)

// BlobStore is the durable named-object storage the artifact pipeline writes
// to. May fail transiently; callers are expected to degrade, not retry.
type BlobStore interface {
	Upload(bucket, path string, data []byte, contentType string, upsert bool) error
	GetPublicURL(bucket, path string) string
	Delete(bucket string, paths []string) error
	ListBuckets() ([]string, error)
}

// StorageClient talks to the object-storage REST API
type StorageClient struct {
	baseURL string
	apiKey  string
	client  *resty.Client
}

// NewStorageClient builds a client from application configuration
func NewStorageClient() *StorageClient {
	return &StorageClient{
		baseURL: config.AppConfig.StorageApiURL,
		apiKey:  config.AppConfig.StorageApiKey,
		client:  resty.New(),
	}
}

// Upload stores an object. With upsert set, an existing object under the same
// path is overwritten instead of rejected.
func (s *StorageClient) Upload(bucket, path string, data []byte, contentType string, upsert bool) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.baseURL, bucket, path)

	req := s.client.R().
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", contentType).
		SetBody(data)
	if upsert {
		req.SetHeader("x-upsert", "true")
	}

	resp, err := req.Post(url)
	if err != nil {
		return fmt.Errorf("storage upload failed: %w", err)
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("storage upload failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// GetPublicURL composes the public download URL for an object
func (s *StorageClient) GetPublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, bucket, path)
}

// Delete removes objects from a bucket
func (s *StorageClient) Delete(bucket string, paths []string) error {
	url := fmt.Sprintf("%s/storage/v1/object/%s", s.baseURL, bucket)

	resp, err := s.client.R().
		SetHeader("Authorization", "Bearer "+s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string][]string{"prefixes": paths}).
		Delete(url)
	if err != nil {
		return fmt.Errorf("storage delete failed: %w", err)
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("storage delete failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}

// ListBuckets returns the bucket names visible to the configured key
func (s *StorageClient) ListBuckets() ([]string, error) {
	url := fmt.Sprintf("%s/storage/v1/bucket", s.baseURL)

	resp, err := s.client.R().
		SetHeader("Authorization", "Bearer "+s.apiKey).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("bucket listing failed: %w", err)
	}
	if resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("bucket listing failed with status %d", resp.StatusCode())
	}

	var buckets []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(resp.Body(), &buckets); err != nil {
		return nil, fmt.Errorf("bucket listing returned invalid body: %w", err)
	}

	names := make([]string, len(buckets))
	for i, b := range buckets {
		names[i] = b.Name
	}
	log.Printf("Storage reports %d bucket(s)", len(names))
	return names, nil
}
