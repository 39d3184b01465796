package repository

import "photohive/internal/domain/entity"

// storedPhoto returns the copy of photo that is written to a store. Tags are
// always stored as a list, never null. The caller's value is left untouched.
func storedPhoto(photo *entity.Photo) *entity.Photo {
	record := photo.Project()
	if record.Tags == nil {
		record.Tags = []string{}
	}
	return record
}
