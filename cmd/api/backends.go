package main

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"photohive/internal/adapter/repository"
	domainrepo "photohive/internal/domain/repository"
	"photohive/internal/domain/service"
	"photohive/internal/infrastructure/storage"
	"photohive/pkg/config"
	"photohive/pkg/logger"
)

type backends struct {
	photoRepo domainrepo.PhotoRepository
	blobStore service.BlobStore
}

func (b *backends) Close() {
	if b.photoRepo != nil {
		if err := b.photoRepo.Close(); err != nil {
			logger.Warn("Failed to close metadata store: %v", err)
		}
	}
	if b.blobStore != nil {
		if err := b.blobStore.Close(); err != nil {
			logger.Warn("Failed to close blob store: %v", err)
		}
	}
}

// openBackends connects the blob store and metadata store selected by cfg.
func openBackends(ctx context.Context, cfg *config.Config) (*backends, error) {
	b := &backends{}

	blobStore, err := openBlobStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	b.blobStore = blobStore

	photoRepo, err := openPhotoRepository(ctx, cfg)
	if err != nil {
		b.Close()
		return nil, err
	}
	b.photoRepo = photoRepo

	return b, nil
}

func openBlobStore(ctx context.Context, cfg *config.Config) (service.BlobStore, error) {
	switch cfg.BlobBackend {
	case config.BlobBackendGCS:
		logger.Info("Using Cloud Storage bucket %s", cfg.BucketName)
		client, err := storage.NewCloudStorageClient(ctx, cfg.BucketName, cfg.BucketPublicURL, cfg.GCPCredentialsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Cloud Storage: %w", err)
		}
		return client, nil
	case config.BlobBackendS3:
		logger.Info("Using S3 bucket %s (region %s)", cfg.BucketName, cfg.AWSRegion)
		client, err := storage.NewS3Storage(ctx, storage.S3Config{
			Region:          cfg.AWSRegion,
			Bucket:          cfg.BucketName,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
			Endpoint:        cfg.S3Endpoint,
			PublicURL:       cfg.BucketPublicURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3: %w", err)
		}
		return client, nil
	}
	return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
}

func openPhotoRepository(ctx context.Context, cfg *config.Config) (domainrepo.PhotoRepository, error) {
	switch cfg.MetadataBackend {
	case config.MetadataBackendFirestore:
		var opts []option.ClientOption
		if cfg.GCPCredentialsPath != "" {
			logger.Info("Using service account from file: %s", cfg.GCPCredentialsPath)
			opts = append(opts, option.WithCredentialsFile(cfg.GCPCredentialsPath))
		}
		client, err := firestore.NewClient(ctx, cfg.GCPProjectID, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create Firestore client: %w", err)
		}
		logger.Info("Using Firestore collection %s", cfg.MetadataTable)
		return repository.NewFirestorePhotoRepository(client, cfg.MetadataTable), nil
	case config.MetadataBackendBadger:
		logger.Info("Using Badger store at %s", cfg.BadgerPath)
		repo, err := repository.NewBadgerPhotoRepository(cfg.BadgerPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open Badger store: %w", err)
		}
		return repo, nil
	}
	return nil, fmt.Errorf("unknown metadata backend %q", cfg.MetadataBackend)
}
