package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLayout(t *testing.T) {
	assert.Equal(t, "ABC123XYZ0.jpg", ImageKey("ABC123XYZ0"))
	assert.Equal(t, ".thumbnails/ABC123XYZ0.jpg", ThumbnailKey("ABC123XYZ0"))
}

func TestPhotoIDFromKey(t *testing.T) {
	id, thumb, ok := PhotoIDFromKey("ABC123XYZ0.jpg")
	assert.True(t, ok)
	assert.False(t, thumb)
	assert.Equal(t, "ABC123XYZ0", id)

	id, thumb, ok = PhotoIDFromKey(".thumbnails/ABC123XYZ0.jpg")
	assert.True(t, ok)
	assert.True(t, thumb)
	assert.Equal(t, "ABC123XYZ0", id)

	for _, key := range []string{"notes.txt", ".jpg", "other/dir/x.jpg", ".thumbnails/.jpg"} {
		_, _, ok := PhotoIDFromKey(key)
		assert.False(t, ok, key)
	}
}
