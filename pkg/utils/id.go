package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// PhotoIDAlphabet is digits followed by uppercase ASCII letters.
	PhotoIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	PhotoIDLength   = 10
)

// GeneratePhotoID returns a random 10-character id over PhotoIDAlphabet.
// Ids are not checked against existing records here; the metadata write
// refuses an id that is already taken.
func GeneratePhotoID() (string, error) {
	return gonanoid.Generate(PhotoIDAlphabet, PhotoIDLength)
}

// IsPhotoID reports whether s has the shape of a generated photo id.
func IsPhotoID(s string) bool {
	if len(s) != PhotoIDLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if !(ch >= '0' && ch <= '9' || ch >= 'A' && ch <= 'Z') {
			return false
		}
	}
	return true
}
