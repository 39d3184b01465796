package repository

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	"photohive/internal/domain/entity"
	"photohive/internal/domain/repository"
	"photohive/pkg/errors"
)

const badgerPhotoPrefix = "photo/"

// badgerPhotoRepository keeps photo records in an embedded Badger database as
// JSON values under photo/<id>.
type badgerPhotoRepository struct {
	db *badger.DB
}

func NewBadgerPhotoRepository(path string) (repository.PhotoRepository, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create metadata directory: %w", err)
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &badgerPhotoRepository{db: db}, nil
}

func photoKey(id string) []byte {
	return []byte(badgerPhotoPrefix + id)
}

func (r *badgerPhotoRepository) Create(ctx context.Context, photo *entity.Photo) error {
	if err := ctx.Err(); err != nil {
		return errors.MetadataStoreUnavailable("Metadata store: upload failed.", err)
	}

	data, err := marshalPhoto(photo)
	if err != nil {
		return errors.MetadataStoreUnavailable("Metadata store: upload failed.", err)
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		_, getErr := txn.Get(photoKey(photo.ID))
		if getErr == nil {
			return errors.Conflict(fmt.Sprintf("Photo %s already exists", photo.ID))
		}
		if !stderrors.Is(getErr, badger.ErrKeyNotFound) {
			return getErr
		}
		return txn.Set(photoKey(photo.ID), data)
	})
	if err != nil {
		if errors.Is(err, errors.CodeConflict) {
			return err
		}
		return errors.MetadataStoreUnavailable("Metadata store: upload failed.", err)
	}
	return nil
}

func (r *badgerPhotoRepository) Put(ctx context.Context, photo *entity.Photo) error {
	if err := ctx.Err(); err != nil {
		return errors.MetadataStoreUnavailable("Metadata store: upload failed.", err)
	}

	data, err := marshalPhoto(photo)
	if err != nil {
		return errors.MetadataStoreUnavailable("Metadata store: upload failed.", err)
	}

	if err := r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(photoKey(photo.ID), data)
	}); err != nil {
		return errors.MetadataStoreUnavailable("Metadata store: upload failed.", err)
	}
	return nil
}

func (r *badgerPhotoRepository) GetByID(ctx context.Context, id string) (*entity.Photo, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.MetadataStoreUnavailable("Metadata store: lookup failed.", err)
	}

	var photo entity.Photo
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(photoKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &photo)
		})
	})
	if err != nil {
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return nil, errors.NotFound("Key", err)
		}
		return nil, errors.MetadataStoreUnavailable("Metadata store: lookup failed.", err)
	}

	return &photo, nil
}

func (r *badgerPhotoRepository) Scan(ctx context.Context, filter repository.Filter, fields ...string) ([]*entity.Photo, error) {
	photos := []*entity.Photo{}

	err := r.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(badgerPhotoPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var photo entity.Photo
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &photo)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}

			if filter.Match(&photo) {
				photos = append(photos, photo.Project(fields...))
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.MetadataStoreUnavailable("Metadata store: scan failed.", err)
	}

	return photos, nil
}

func (r *badgerPhotoRepository) UpdateFlag(ctx context.Context, id string, field string, value bool) error {
	if field != entity.FieldIsDeleted {
		return errors.BadRequest(fmt.Sprintf("Attribute %s is not a flag", field), nil)
	}
	if err := ctx.Err(); err != nil {
		return errors.MetadataStoreUnavailable("Metadata store: update failed.", err)
	}

	err := r.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(photoKey(id))
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		var photo entity.Photo
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &photo)
		}); err != nil {
			return err
		}

		photo.IsDeleted = value
		photo.LastUpdated = time.Now().UTC()

		data, err := marshalPhoto(&photo)
		if err != nil {
			return err
		}
		return txn.Set(photoKey(id), data)
	})
	if err != nil {
		return errors.MetadataStoreUnavailable("Metadata store: update failed.", err)
	}
	return nil
}

func (r *badgerPhotoRepository) Close() error {
	return r.db.Close()
}

func marshalPhoto(photo *entity.Photo) ([]byte, error) {
	return json.Marshal(storedPhoto(photo))
}
