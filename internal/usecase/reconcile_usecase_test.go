package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photohive/internal/domain/entity"
	"photohive/internal/domain/service"
)

func TestReconcileReportsDrift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	healthy := f.create(t, "alice", "cat")
	deleted := f.create(t, "bob")
	require.NoError(t, f.uc.DeletePhoto(ctx, deleted))

	// A create that died after the full image upload.
	f.blobs.FailPrefix = service.ThumbnailPrefix
	f.blobs.FailErr = fmt.Errorf("no credentials")
	f.uc.newID = func() (string, error) { return "ORPHAN0001", nil }
	_, err := f.uc.CreatePhoto(ctx, CreatePhotoInput{Username: "carol", Image: jpegPayload(t, 20, 10)})
	require.Error(t, err)
	f.blobs.FailPrefix = ""

	require.NoError(t, f.blobs.Put(ctx, "robots.txt", []byte("x"), "text/plain"))
	require.NoError(t, f.repo.Put(ctx, &entity.Photo{ID: "BROKEN0001", Username: "dave", Tags: []string{}}))

	report, err := NewReconcileUseCase(f.repo, f.blobs).Reconcile(ctx)
	require.NoError(t, err)

	assert.Equal(t, 6, report.BlobsScanned)
	assert.Equal(t, 3, report.RecordsScanned)
	assert.Equal(t, []string{"ORPHAN0001.jpg"}, report.OrphanedBlobs)
	assert.Equal(t, []string{".thumbnails/BROKEN0001.jpg", "BROKEN0001.jpg"}, report.MissingBlobs)
	assert.Equal(t, []string{"robots.txt"}, report.ForeignBlobs)

	assert.NotContains(t, report.OrphanedBlobs, service.ImageKey(healthy))
	assert.NotContains(t, report.OrphanedBlobs, service.ImageKey(deleted), "soft-deleted photos still own their blobs")
}
