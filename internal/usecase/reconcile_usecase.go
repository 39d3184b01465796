package usecase

import (
	"context"
	"sort"

	"photohive/internal/domain/entity"
	"photohive/internal/domain/repository"
	"photohive/internal/domain/service"
	"photohive/pkg/errors"
	"photohive/pkg/logger"
)

// ReconcileReport describes how the blob store and the metadata store have
// drifted apart. It is informational only; nothing is deleted.
//
// OrphanedBlobs are photo-layout keys with no metadata record, left behind by
// creates that failed after an upload. MissingBlobs are keys referenced by a
// record but absent from the blob store; any entry there is a broken
// invariant. ForeignBlobs are keys outside the photo layout.
type ReconcileReport struct {
	BlobsScanned   int      `json:"blobsScanned"`
	RecordsScanned int      `json:"recordsScanned"`
	OrphanedBlobs  []string `json:"orphanedBlobs"`
	MissingBlobs   []string `json:"missingBlobs"`
	ForeignBlobs   []string `json:"foreignBlobs"`
}

type ReconcileUseCase struct {
	photoRepo repository.PhotoRepository
	blobStore service.BlobStore
}

func NewReconcileUseCase(photoRepo repository.PhotoRepository, blobStore service.BlobStore) *ReconcileUseCase {
	return &ReconcileUseCase{
		photoRepo: photoRepo,
		blobStore: blobStore,
	}
}

func (uc *ReconcileUseCase) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	records, err := uc.photoRepo.Scan(ctx, repository.Filter{}, entity.FieldID)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(records))
	for _, r := range records {
		known[r.ID] = struct{}{}
	}

	keys, err := uc.blobStore.List(ctx, "")
	if err != nil {
		return nil, err
	}
	present := make(map[string]struct{}, len(keys))

	report := &ReconcileReport{
		BlobsScanned:   len(keys),
		RecordsScanned: len(records),
		OrphanedBlobs:  []string{},
		MissingBlobs:   []string{},
		ForeignBlobs:   []string{},
	}

	for _, key := range keys {
		present[key] = struct{}{}
		id, _, ok := service.PhotoIDFromKey(key)
		if !ok {
			report.ForeignBlobs = append(report.ForeignBlobs, key)
			continue
		}
		if _, ok := known[id]; !ok {
			report.OrphanedBlobs = append(report.OrphanedBlobs, key)
		}
	}

	for id := range known {
		for _, key := range []string{service.ImageKey(id), service.ThumbnailKey(id)} {
			if _, ok := present[key]; !ok {
				report.MissingBlobs = append(report.MissingBlobs, key)
			}
		}
	}

	sort.Strings(report.OrphanedBlobs)
	sort.Strings(report.MissingBlobs)
	sort.Strings(report.ForeignBlobs)

	if len(report.MissingBlobs) > 0 {
		logger.ErrorContext(ctx, "%d photo records reference missing blobs", len(report.MissingBlobs))
	}
	logger.InfoContext(ctx, "Reconcile scanned %d blobs and %d records: %d orphaned, %d missing",
		report.BlobsScanned, report.RecordsScanned, len(report.OrphanedBlobs), len(report.MissingBlobs))

	if err := ctx.Err(); err != nil {
		return nil, errors.Internal("Reconcile cancelled.", err)
	}
	return report, nil
}
