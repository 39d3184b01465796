package repository

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"photohive/internal/domain/entity"
	"photohive/internal/domain/repository"
	"photohive/pkg/errors"
	"photohive/pkg/logger"
)

type firestorePhotoRepository struct {
	client     *firestore.Client
	collection string
}

func NewFirestorePhotoRepository(client *firestore.Client, collection string) repository.PhotoRepository {
	return &firestorePhotoRepository{
		client:     client,
		collection: collection,
	}
}

func (r *firestorePhotoRepository) Create(ctx context.Context, photo *entity.Photo) error {
	_, err := r.client.Collection(r.collection).Doc(photo.ID).Create(ctx, storedPhoto(photo))
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Conflict(fmt.Sprintf("Photo %s already exists", photo.ID))
		}
		return errors.MetadataStoreUnavailable("Metadata store: upload failed.", err)
	}
	return nil
}

func (r *firestorePhotoRepository) Put(ctx context.Context, photo *entity.Photo) error {
	_, err := r.client.Collection(r.collection).Doc(photo.ID).Set(ctx, storedPhoto(photo))
	if err != nil {
		return errors.MetadataStoreUnavailable("Metadata store: upload failed.", err)
	}
	return nil
}

func (r *firestorePhotoRepository) GetByID(ctx context.Context, id string) (*entity.Photo, error) {
	doc, err := r.client.Collection(r.collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Key", err)
		}
		return nil, errors.MetadataStoreUnavailable("Metadata store: lookup failed.", err)
	}

	var photo entity.Photo
	if err := doc.DataTo(&photo); err != nil {
		return nil, errors.MetadataStoreUnavailable("Metadata store: failed to parse photo.", err)
	}

	return &photo, nil
}

// Scan pushes the filter's top-level equality terms down as Where clauses and
// reads only the projected and filtered attributes; the full filter is then
// evaluated on each document.
func (r *firestorePhotoRepository) Scan(ctx context.Context, filter repository.Filter, fields ...string) ([]*entity.Photo, error) {
	query := r.client.Collection(r.collection).Query

	for _, eq := range filter.Equalities() {
		query = query.Where(eq.Field, "==", eq.Value)
	}

	if len(fields) > 0 {
		query = query.Select(selectPaths(fields, filter.Fields())...)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	photos := []*entity.Photo{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.MetadataStoreUnavailable("Metadata store: scan failed.", err)
		}

		var photo entity.Photo
		if err := doc.DataTo(&photo); err != nil {
			logger.Error("Failed to parse photo %s: %v", doc.Ref.ID, err)
			return nil, errors.MetadataStoreUnavailable("Metadata store: failed to parse photo.", err)
		}
		if photo.ID == "" {
			photo.ID = doc.Ref.ID
		}

		if filter.Match(&photo) {
			photos = append(photos, photo.Project(fields...))
		}
	}

	return photos, nil
}

func (r *firestorePhotoRepository) UpdateFlag(ctx context.Context, id string, field string, value bool) error {
	_, err := r.client.Collection(r.collection).Doc(id).Update(ctx, []firestore.Update{
		{Path: field, Value: value},
		{Path: entity.FieldLastUpdated, Value: time.Now().UTC()},
	})
	if err != nil {
		// Update never creates a document; a missing one is left alone.
		if status.Code(err) == codes.NotFound {
			logger.Debug("UpdateFlag on missing photo %s ignored", id)
			return nil
		}
		return errors.MetadataStoreUnavailable("Metadata store: update failed.", err)
	}
	return nil
}

func (r *firestorePhotoRepository) Close() error {
	return r.client.Close()
}

func selectPaths(groups ...[]string) []string {
	var paths []string
	seen := map[string]bool{}
	for _, group := range groups {
		for _, f := range group {
			if !seen[f] {
				seen[f] = true
				paths = append(paths, f)
			}
		}
	}
	return paths
}
