package repository

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photohive/internal/domain/entity"
	domainrepo "photohive/internal/domain/repository"
	"photohive/pkg/errors"
)

// These tests talk to a Firestore emulator, e.g.
// gcloud emulators firestore start --host-port=localhost:8081
// FIRESTORE_EMULATOR_HOST=localhost:8081 go test ./internal/adapter/repository/
func emulatorRepo(t *testing.T) (domainrepo.PhotoRepository, *firestore.Client, string) {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "photohive-test")
	require.NoError(t, err)

	collection := "photos-" + uuid.NewString()
	repo := NewFirestorePhotoRepository(client, collection)
	t.Cleanup(func() { _ = repo.Close() })
	return repo, client, collection
}

func TestFirestoreCreateRejectsExistingID(t *testing.T) {
	repo, _, _ := emulatorRepo(t)
	ctx := context.Background()

	photo := samplePhoto("FSAAAAAAA1", "alice", "cat")
	photo.Tags = nil
	require.NoError(t, repo.Create(ctx, photo))
	assert.Nil(t, photo.Tags)

	err := repo.Create(ctx, samplePhoto("FSAAAAAAA1", "mallory"))
	assert.True(t, errors.Is(err, errors.CodeConflict))

	got, err := repo.GetByID(ctx, "FSAAAAAAA1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, []string{}, got.Tags)
}

func TestFirestoreUpdateFlagOnMissingIDIsNoop(t *testing.T) {
	repo, _, _ := emulatorRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.UpdateFlag(ctx, "FSMISSING1", entity.FieldIsDeleted, true))

	_, err := repo.GetByID(ctx, "FSMISSING1")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestFirestoreScanFiltersAndProjects(t *testing.T) {
	repo, _, _ := emulatorRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, samplePhoto("FSAAAAAAA1", "alice", "beach")))
	require.NoError(t, repo.Create(ctx, samplePhoto("FSAAAAAAA2", "bob", "city")))
	require.NoError(t, repo.Create(ctx, samplePhoto("FSAAAAAAA3", "carol", "beach")))
	require.NoError(t, repo.UpdateFlag(ctx, "FSAAAAAAA3", entity.FieldIsDeleted, true))

	filter := domainrepo.And(
		domainrepo.Eq(entity.FieldIsDeleted, false),
		domainrepo.Contains(entity.FieldTags, "beach"),
	)
	photos, err := repo.Scan(ctx, filter, entity.FieldID, entity.FieldThumbURL)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "FSAAAAAAA1", photos[0].ID)
	assert.NotEmpty(t, photos[0].ThumbURL)
	assert.Empty(t, photos[0].Username, "unselected fields are not returned")
	assert.Empty(t, photos[0].ImageURL)
}

func TestFirestoreScanFailsOnUnreadableRecord(t *testing.T) {
	repo, client, collection := emulatorRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, samplePhoto("FSAAAAAAA1", "alice")))
	_, err := client.Collection(collection).Doc("FSBROKEN01").Set(ctx, map[string]interface{}{
		entity.FieldID:        "FSBROKEN01",
		entity.FieldUsername:  42,
		entity.FieldIsDeleted: false,
	})
	require.NoError(t, err)

	_, err = repo.Scan(ctx, domainrepo.Eq(entity.FieldIsDeleted, false))
	assert.True(t, errors.Is(err, errors.CodeMetadataStoreUnavailable))
}
