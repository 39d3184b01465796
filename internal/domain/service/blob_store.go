package service

import (
	"context"
	"strings"
)

const (
	ThumbnailPrefix = ".thumbnails/"
	ImageExt        = ".jpg"
	ContentTypeJPEG = "image/jpeg"
)

// BlobStore is a flat key to bytes store. Put overwrites existing keys.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Exists(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]string, error)
	// URL returns the public URL of key, <bucket-root>/<key>.
	URL(key string) string
	Close() error
}

func ImageKey(id string) string {
	return id + ImageExt
}

func ThumbnailKey(id string) string {
	return ThumbnailPrefix + id + ImageExt
}

// PhotoIDFromKey reverses ImageKey and ThumbnailKey. ok is false for keys
// outside the layout.
func PhotoIDFromKey(key string) (id string, thumbnail bool, ok bool) {
	if !strings.HasSuffix(key, ImageExt) {
		return "", false, false
	}
	name := strings.TrimSuffix(key, ImageExt)
	if strings.HasPrefix(name, ThumbnailPrefix) {
		name = strings.TrimPrefix(name, ThumbnailPrefix)
		thumbnail = true
	}
	if name == "" || strings.Contains(name, "/") {
		return "", false, false
	}
	return name, thumbnail, true
}
