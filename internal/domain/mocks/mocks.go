package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"photohive/internal/domain/entity"
	"photohive/internal/domain/repository"
	"photohive/internal/domain/service"
	"photohive/pkg/errors"
)

// MockPhotoRepository is an in-memory PhotoRepository for tests. Set the
// *Err fields to make the matching method fail.
type MockPhotoRepository struct {
	mu     sync.RWMutex
	photos map[string]*entity.Photo

	CreateErr error
	ScanErr   error
	Writes    int
}

var _ repository.PhotoRepository = (*MockPhotoRepository)(nil)

func NewMockPhotoRepository() *MockPhotoRepository {
	return &MockPhotoRepository{photos: make(map[string]*entity.Photo)}
}

func (m *MockPhotoRepository) Create(ctx context.Context, photo *entity.Photo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateErr != nil {
		return m.CreateErr
	}
	if _, ok := m.photos[photo.ID]; ok {
		return errors.Conflict("Photo " + photo.ID + " already exists")
	}
	m.photos[photo.ID] = photo.Project()
	m.Writes++
	return nil
}

func (m *MockPhotoRepository) Put(ctx context.Context, photo *entity.Photo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.photos[photo.ID] = photo.Project()
	m.Writes++
	return nil
}

func (m *MockPhotoRepository) GetByID(ctx context.Context, id string) (*entity.Photo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	photo, ok := m.photos[id]
	if !ok {
		return nil, errors.NotFound("Key", nil)
	}
	return photo.Project(), nil
}

func (m *MockPhotoRepository) Scan(ctx context.Context, filter repository.Filter, fields ...string) ([]*entity.Photo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.ScanErr != nil {
		return nil, m.ScanErr
	}

	ids := make([]string, 0, len(m.photos))
	for id := range m.photos {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := []*entity.Photo{}
	for _, id := range ids {
		if photo := m.photos[id]; filter.Match(photo) {
			out = append(out, photo.Project(fields...))
		}
	}
	return out, nil
}

func (m *MockPhotoRepository) UpdateFlag(ctx context.Context, id string, field string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	photo, ok := m.photos[id]
	if !ok {
		return nil
	}
	if field == entity.FieldIsDeleted {
		photo.IsDeleted = value
	}
	photo.LastUpdated = time.Now().UTC()
	m.Writes++
	return nil
}

func (m *MockPhotoRepository) Close() error {
	return nil
}

// Len returns the number of stored records, deleted ones included.
func (m *MockPhotoRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.photos)
}

// MockBlobStore is an in-memory BlobStore. FailKeys makes Put fail for the
// listed keys; FailPrefix for every key with that prefix.
type MockBlobStore struct {
	mu      sync.RWMutex
	objects map[string][]byte

	Root       string
	FailKeys   map[string]error
	FailPrefix string
	FailErr    error
}

var _ service.BlobStore = (*MockBlobStore)(nil)

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{
		objects:  make(map[string][]byte),
		Root:     "https://photohive-storage.s3.amazonaws.com",
		FailKeys: make(map[string]error),
	}
}

func (m *MockBlobStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err, ok := m.FailKeys[key]; ok {
		return errors.BlobStoreUnavailable("Storage: upload failed.", err)
	}
	if m.FailPrefix != "" && strings.HasPrefix(key, m.FailPrefix) {
		return errors.BlobStoreUnavailable("Storage: upload failed.", m.FailErr)
	}
	m.objects[key] = append([]byte(nil), data...)
	return nil
}

func (m *MockBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[key]
	return ok, nil
}

func (m *MockBlobStore) List(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := []string{}
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MockBlobStore) URL(key string) string {
	return m.Root + "/" + key
}

func (m *MockBlobStore) Close() error {
	return nil
}

// Get returns the stored bytes of key.
func (m *MockBlobStore) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[key]
	return data, ok
}

func (m *MockBlobStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
