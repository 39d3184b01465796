package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photohive/internal/domain/entity"
	domainrepo "photohive/internal/domain/repository"
	"photohive/pkg/errors"
)

func tempRepo(t *testing.T) domainrepo.PhotoRepository {
	t.Helper()
	repo, err := NewBadgerPhotoRepository(filepath.Join(t.TempDir(), "badger"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func samplePhoto(id, username string, tags ...string) *entity.Photo {
	return &entity.Photo{
		ID:          id,
		LastUpdated: time.Now().UTC().Truncate(time.Millisecond),
		Username:    username,
		Tags:        tags,
		ImageURL:    "https://bucket/" + id + ".jpg",
		ThumbURL:    "https://bucket/.thumbnails/" + id + ".jpg",
	}
}

func TestBadgerCreateAndGet(t *testing.T) {
	repo := tempRepo(t)
	ctx := context.Background()

	photo := samplePhoto("AAAAAAAAA1", "alice", "cat", "dog")
	require.NoError(t, repo.Create(ctx, photo))

	got, err := repo.GetByID(ctx, "AAAAAAAAA1")
	require.NoError(t, err)
	assert.Equal(t, photo.Username, got.Username)
	assert.Equal(t, photo.Tags, got.Tags)
	assert.Equal(t, photo.ImageURL, got.ImageURL)
	assert.True(t, photo.LastUpdated.Equal(got.LastUpdated))
	assert.False(t, got.IsDeleted)
}

func TestBadgerWritesLeaveCallerUntouched(t *testing.T) {
	repo := tempRepo(t)
	ctx := context.Background()

	photo := samplePhoto("AAAAAAAAA7", "alice")
	photo.Tags = nil
	require.NoError(t, repo.Create(ctx, photo))
	assert.Nil(t, photo.Tags)

	require.NoError(t, repo.Put(ctx, photo))
	assert.Nil(t, photo.Tags)

	got, err := repo.GetByID(ctx, "AAAAAAAAA7")
	require.NoError(t, err)
	assert.NotNil(t, got.Tags)
	assert.Empty(t, got.Tags)
}

func TestBadgerCreateRejectsExistingID(t *testing.T) {
	repo := tempRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, samplePhoto("AAAAAAAAA1", "alice")))

	err := repo.Create(ctx, samplePhoto("AAAAAAAAA1", "mallory"))
	assert.True(t, errors.Is(err, errors.CodeConflict))

	got, err := repo.GetByID(ctx, "AAAAAAAAA1")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestBadgerPutOverwrites(t *testing.T) {
	repo := tempRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, samplePhoto("AAAAAAAAA1", "alice")))
	require.NoError(t, repo.Put(ctx, samplePhoto("AAAAAAAAA1", "alice", "beach")))

	got, err := repo.GetByID(ctx, "AAAAAAAAA1")
	require.NoError(t, err)
	assert.Equal(t, []string{"beach"}, got.Tags)
}

func TestBadgerGetMissing(t *testing.T) {
	repo := tempRepo(t)

	_, err := repo.GetByID(context.Background(), "NOPE000000")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestBadgerScanFiltersAndProjects(t *testing.T) {
	repo := tempRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, samplePhoto("AAAAAAAAA1", "alice", "cat")))
	require.NoError(t, repo.Create(ctx, samplePhoto("AAAAAAAAA2", "bob", "dog")))
	deleted := samplePhoto("AAAAAAAAA3", "carol", "cat")
	deleted.IsDeleted = true
	require.NoError(t, repo.Create(ctx, deleted))

	filter := domainrepo.And(
		domainrepo.Eq(entity.FieldIsDeleted, false),
		domainrepo.Or(
			domainrepo.Contains(entity.FieldTags, "cat"),
			domainrepo.Contains(entity.FieldUsername, "cat"),
		),
	)

	photos, err := repo.Scan(ctx, filter, entity.FieldID, entity.FieldTags)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "AAAAAAAAA1", photos[0].ID)
	assert.Equal(t, []string{"cat"}, photos[0].Tags)
	assert.Empty(t, photos[0].Username, "username was not projected")
	assert.Empty(t, photos[0].ImageURL)

	all, err := repo.Scan(ctx, domainrepo.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestBadgerUpdateFlag(t *testing.T) {
	repo := tempRepo(t)
	ctx := context.Background()

	photo := samplePhoto("AAAAAAAAA1", "alice")
	photo.LastUpdated = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, photo))

	require.NoError(t, repo.UpdateFlag(ctx, "AAAAAAAAA1", entity.FieldIsDeleted, true))
	require.NoError(t, repo.UpdateFlag(ctx, "AAAAAAAAA1", entity.FieldIsDeleted, true))

	got, err := repo.GetByID(ctx, "AAAAAAAAA1")
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)
	assert.True(t, got.LastUpdated.After(photo.LastUpdated))
	assert.Equal(t, "alice", got.Username)
}

func TestBadgerUpdateFlagOnMissingIDIsNoop(t *testing.T) {
	repo := tempRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.UpdateFlag(ctx, "GHOST00000", entity.FieldIsDeleted, true))

	_, err := repo.GetByID(ctx, "GHOST00000")
	assert.True(t, errors.Is(err, errors.CodeNotFound), "no record may be created")
}

func TestBadgerUpdateFlagRejectsNonFlag(t *testing.T) {
	repo := tempRepo(t)

	err := repo.UpdateFlag(context.Background(), "AAAAAAAAA1", entity.FieldUsername, true)
	assert.Error(t, err)
}

func TestBadgerHonoursCancelledContext(t *testing.T) {
	repo := tempRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Create(ctx, samplePhoto("AAAAAAAAA1", "alice"))
	assert.True(t, errors.Is(err, errors.CodeMetadataStoreUnavailable))

	_, err = repo.GetByID(context.Background(), "AAAAAAAAA1")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}
