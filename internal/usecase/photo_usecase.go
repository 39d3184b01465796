package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"photohive/internal/domain/entity"
	"photohive/internal/domain/repository"
	"photohive/internal/domain/service"
	"photohive/pkg/errors"
	"photohive/pkg/logger"
	"photohive/pkg/utils"
)

// CreateStage is a step of the photo create flow. Blob uploads always run
// before the metadata write, so a stored record never points at a missing
// blob. A failure after an upload leaves that blob orphaned.
type CreateStage string

const (
	StageValidating     CreateStage = "validating"
	StageEncoding       CreateStage = "encoding"
	StageUploadingFull  CreateStage = "image-upload"
	StageUploadingThumb CreateStage = "thumbnail-upload"
	StagePersisting     CreateStage = "metadata-write"
	StageDone           CreateStage = "done"
)

// StageError records the step at which a create failed.
type StageError struct {
	Stage   CreateStage
	PhotoID string
	Err     error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("create photo %s failed at %s: %v", e.PhotoID, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FailedStage returns the stage carried by err, if any.
func FailedStage(err error) (CreateStage, bool) {
	var stageErr *StageError
	if stderrors.As(err, &stageErr) {
		return stageErr.Stage, true
	}
	return "", false
}

var (
	listFields   = []string{entity.FieldID, entity.FieldLastUpdated, entity.FieldUsername, entity.FieldTags, entity.FieldThumbURL}
	detailFields = []string{entity.FieldID, entity.FieldLastUpdated, entity.FieldUsername, entity.FieldTags, entity.FieldImageURL}
)

type PhotoUseCase struct {
	photoRepo repository.PhotoRepository
	blobStore service.BlobStore
	images    ImageProcessor

	newID func() (string, error)
	now   func() time.Time
}

func NewPhotoUseCase(
	photoRepo repository.PhotoRepository,
	blobStore service.BlobStore,
	images ImageProcessor,
) *PhotoUseCase {
	return &PhotoUseCase{
		photoRepo: photoRepo,
		blobStore: blobStore,
		images:    images,
		newID:     utils.GeneratePhotoID,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type CreatePhotoInput struct {
	Username string
	Tags     []string
	Image    string
}

func (uc *PhotoUseCase) CreatePhoto(ctx context.Context, input CreatePhotoInput) (string, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || strings.TrimSpace(input.Image) == "" {
		return "", errors.BadRequest("Invalid request. Missing required fields.", nil)
	}

	id, err := uc.newID()
	if err != nil {
		return "", errors.Internal("Failed to generate photo id", err)
	}

	imageKey := service.ImageKey(id)
	thumbKey := service.ThumbnailKey(id)
	photo := &entity.Photo{
		ID:          id,
		LastUpdated: uc.now(),
		Username:    username,
		Tags:        entity.NormalizeTags(input.Tags),
		ImageURL:    uc.blobStore.URL(imageKey),
		ThumbURL:    uc.blobStore.URL(thumbKey),
		IsDeleted:   false,
	}

	result, err := uc.images.Process(input.Image)
	if err != nil {
		logger.WarnContext(ctx, "Rejected image for photo %s: %v", id, err)
		return "", err
	}

	if err := uc.checkContext(ctx, id, StageUploadingFull); err != nil {
		return "", err
	}
	if err := uc.blobStore.Put(ctx, imageKey, result.Image, service.ContentTypeJPEG); err != nil {
		return "", uc.fail(ctx, id, StageUploadingFull, errors.BlobStoreUnavailable("Storage: Image upload failed.", err))
	}

	if err := uc.checkContext(ctx, id, StageUploadingThumb); err != nil {
		return "", err
	}
	if err := uc.blobStore.Put(ctx, thumbKey, result.Thumbnail, service.ContentTypeJPEG); err != nil {
		return "", uc.fail(ctx, id, StageUploadingThumb, errors.BlobStoreUnavailable("Storage: Thumbnail upload failed.", err))
	}

	if err := uc.checkContext(ctx, id, StagePersisting); err != nil {
		return "", err
	}
	if err := uc.photoRepo.Create(ctx, photo); err != nil {
		return "", uc.fail(ctx, id, StagePersisting, errors.MetadataStoreUnavailable("Metadata store: Upload failed.", err))
	}

	logger.InfoContext(ctx, "Photo %s created by %s (%dx%d, %d tags)", id, username, result.Width, result.Height, len(photo.Tags))
	return id, nil
}

// checkContext stops the flow between steps once the request is gone.
func (uc *PhotoUseCase) checkContext(ctx context.Context, id string, next CreateStage) error {
	if err := ctx.Err(); err != nil {
		return uc.fail(ctx, id, next, errors.Internal("Request cancelled.", err))
	}
	return nil
}

func (uc *PhotoUseCase) fail(ctx context.Context, id string, stage CreateStage, appErr *errors.AppError) error {
	logger.LogPhotoError(ctx, id, string(stage), appErr.Err)
	appErr.Err = &StageError{Stage: stage, PhotoID: id, Err: appErr.Err}
	return appErr
}

// GetPhoto returns the detail projection of a visible photo. Soft-deleted
// photos and malformed ids are reported as not found.
func (uc *PhotoUseCase) GetPhoto(ctx context.Context, id string) (*entity.Photo, error) {
	if !utils.IsPhotoID(id) {
		return nil, errors.NotFound("Key", nil)
	}
	photo, err := uc.photoRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errors.CodeNotFound) {
			return nil, errors.NotFound("Key", err)
		}
		logger.ErrorContext(ctx, "Failed to get photo %s: %v", id, err)
		return nil, err
	}
	if photo.IsDeleted {
		return nil, errors.NotFound("Key", nil)
	}
	return photo.Project(detailFields...), nil
}

// ListPhotos returns visible photos, newest first. A non-empty search keeps
// photos tagged with exactly that term or whose username contains it.
func (uc *PhotoUseCase) ListPhotos(ctx context.Context, search string) ([]*entity.Photo, error) {
	filter := repository.Eq(entity.FieldIsDeleted, false)
	if search != "" {
		filter = repository.And(
			filter,
			repository.Or(
				repository.Contains(entity.FieldTags, search),
				repository.Contains(entity.FieldUsername, search),
			),
		)
	}

	photos, err := uc.photoRepo.Scan(ctx, filter, listFields...)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list photos (search=%q): %v", search, err)
		return nil, err
	}

	sort.SliceStable(photos, func(i, j int) bool {
		if photos[i].LastUpdated.Equal(photos[j].LastUpdated) {
			return photos[i].ID < photos[j].ID
		}
		return photos[i].LastUpdated.After(photos[j].LastUpdated)
	})
	return photos, nil
}

// SearchTags returns the distinct tags of all visible photos, optionally
// narrowed to those containing search, in alphabetical order.
func (uc *PhotoUseCase) SearchTags(ctx context.Context, search string) ([]string, error) {
	photos, err := uc.photoRepo.Scan(ctx, repository.Eq(entity.FieldIsDeleted, false), entity.FieldTags)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to scan tags (search=%q): %v", search, err)
		return nil, err
	}

	seen := make(map[string]struct{})
	tags := []string{}
	for _, photo := range photos {
		for _, tag := range photo.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			if search == "" || strings.Contains(tag, search) {
				tags = append(tags, tag)
			}
		}
	}

	sort.Strings(tags)
	return tags, nil
}

// DeletePhoto flags the photo as deleted. Its blobs and record stay in place.
// Deleting an unknown or already deleted id succeeds. Ids that cannot have
// been generated never reach the store.
func (uc *PhotoUseCase) DeletePhoto(ctx context.Context, id string) error {
	if !utils.IsPhotoID(id) {
		logger.Debug("Ignoring delete of malformed photo id %q", id)
		return nil
	}
	if err := uc.photoRepo.UpdateFlag(ctx, id, entity.FieldIsDeleted, true); err != nil {
		logger.ErrorContext(ctx, "Failed to delete photo %s: %v", id, err)
		return err
	}
	logger.InfoContext(ctx, "Photo %s marked as deleted", id)
	return nil
}
