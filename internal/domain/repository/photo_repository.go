package repository

import (
	"context"

	"photohive/internal/domain/entity"
)

type PhotoRepository interface {
	// Create stores a new record and fails with a CONFLICT error when the id
	// is already taken.
	Create(ctx context.Context, photo *entity.Photo) error
	Put(ctx context.Context, photo *entity.Photo) error
	GetByID(ctx context.Context, id string) (*entity.Photo, error)
	// Scan walks every record, keeps those matching filter and returns them
	// with only the given fields populated (all fields when none are given).
	Scan(ctx context.Context, filter Filter, fields ...string) ([]*entity.Photo, error)
	// UpdateFlag sets a single boolean attribute and refreshes lastUpdated.
	// A missing id is not an error and creates nothing.
	UpdateFlag(ctx context.Context, id string, field string, value bool) error
	Close() error
}
