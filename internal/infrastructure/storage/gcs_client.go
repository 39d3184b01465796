package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"photohive/internal/domain/service"
	apperrors "photohive/pkg/errors"
	"photohive/pkg/logger"
)

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
	publicURL  string
}

var _ service.BlobStore = (*CloudStorageClient)(nil)

// NewCloudStorageClient connects to Google Cloud Storage. An empty
// credentialsPath falls back to application default credentials.
func NewCloudStorageClient(ctx context.Context, bucketName, publicURL, credentialsPath string) (*CloudStorageClient, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	if publicURL == "" {
		publicURL = fmt.Sprintf("https://storage.googleapis.com/%s", bucketName)
	}

	storageClient := &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
		publicURL:  publicURL,
	}

	if err := storageClient.setBucketCORS(ctx); err != nil {
		logger.Warn("Failed to set CORS configuration on bucket %s: %v", bucketName, err)
	}

	return storageClient, nil
}

// setBucketCORS lets browsers load images straight from the bucket.
func (c *CloudStorageClient) setBucketCORS(ctx context.Context) error {
	bucket := c.client.Bucket(c.bucketName)

	corsConfig := storage.CORS{
		MaxAge:          3600,
		Methods:         []string{"GET", "HEAD"},
		Origins:         []string{"*"},
		ResponseHeaders: []string{"Content-Type"},
	}

	bucketAttrs, err := bucket.Attrs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bucket attributes: %w", err)
	}

	if len(bucketAttrs.CORS) == 0 {
		bucketUpdate := storage.BucketAttrsToUpdate{
			CORS: []storage.CORS{corsConfig},
		}

		if _, err := bucket.Update(ctx, bucketUpdate); err != nil {
			return fmt.Errorf("failed to update bucket CORS: %w", err)
		}
	}

	return nil
}

func (c *CloudStorageClient) Put(ctx context.Context, key string, data []byte, contentType string) error {
	obj := c.client.Bucket(c.bucketName).Object(key)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(wc, bytes.NewReader(data)); err != nil {
		_ = wc.Close()
		return apperrors.BlobStoreUnavailable("Storage: upload failed.", fmt.Errorf("copy %s to GCS: %w", key, err))
	}

	// The object is only committed by Close.
	if err := wc.Close(); err != nil {
		return apperrors.BlobStoreUnavailable("Storage: upload failed.", fmt.Errorf("close writer for %s: %w", key, err))
	}

	return nil
}

func (c *CloudStorageClient) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.client.Bucket(c.bucketName).Object(key).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, apperrors.BlobStoreUnavailable("Storage: lookup failed.", err)
	}
	return true, nil
}

func (c *CloudStorageClient) List(ctx context.Context, prefix string) ([]string, error) {
	it := c.client.Bucket(c.bucketName).Objects(ctx, &storage.Query{Prefix: prefix})

	var keys []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, apperrors.BlobStoreUnavailable("Storage: listing failed.", err)
		}
		keys = append(keys, attrs.Name)
	}

	return keys, nil
}

func (c *CloudStorageClient) URL(key string) string {
	return c.publicURL + "/" + key
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
