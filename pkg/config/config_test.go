package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("METADATA_BACKEND", "badger")
	t.Setenv("BLOB_BACKEND", "S3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BlobBackendS3, cfg.BlobBackend)
	assert.Equal(t, MetadataBackendBadger, cfg.MetadataBackend)
	assert.Equal(t, 100, cfg.ThumbnailHeight)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "photos", cfg.MetadataTable)
	assert.Equal(t, int64(50_000_000), cfg.MaxImagePixels)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("METADATA_BACKEND", "badger")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("THUMBNAIL_HEIGHT", "64")
	t.Setenv("BUCKET_PUBLIC_URL", "https://cdn.example.com/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 64, cfg.ThumbnailHeight)
	assert.Equal(t, "https://cdn.example.com", cfg.BucketPublicURL)
}

func TestValidateRejectsUnknownBackends(t *testing.T) {
	cfg := &Config{BlobBackend: "ftp", MetadataBackend: MetadataBackendBadger, BadgerPath: "x", BucketName: "b", ThumbnailHeight: 100, JPEGQuality: 90, MaxImagePixels: 1000}
	assert.Error(t, cfg.Validate())

	cfg.BlobBackend = BlobBackendGCS
	cfg.MetadataBackend = "dynamo"
	assert.Error(t, cfg.Validate())

	cfg.MetadataBackend = MetadataBackendFirestore
	assert.Error(t, cfg.Validate(), "firestore needs a project id")

	cfg.GCPProjectID = "proj"
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsNonPositivePixelLimit(t *testing.T) {
	t.Setenv("METADATA_BACKEND", "badger")
	t.Setenv("MAX_IMAGE_PIXELS", "0")

	_, err := Load()
	assert.Error(t, err)
}
