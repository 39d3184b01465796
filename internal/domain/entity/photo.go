package entity

import (
	"strings"
	"time"
)

// Attribute names of a photo record in the metadata store.
const (
	FieldID          = "id"
	FieldLastUpdated = "lastUpdated"
	FieldUsername    = "username"
	FieldTags        = "tags"
	FieldImageURL    = "imageUrl"
	FieldThumbURL    = "thumbUrl"
	FieldIsDeleted   = "isDeleted"
)

type Photo struct {
	ID          string    `json:"id" firestore:"id"`
	LastUpdated time.Time `json:"lastUpdated" firestore:"lastUpdated"`
	Username    string    `json:"username" firestore:"username"`
	Tags        []string  `json:"tags" firestore:"tags"`
	ImageURL    string    `json:"imageUrl,omitempty" firestore:"imageUrl"`
	ThumbURL    string    `json:"thumbUrl,omitempty" firestore:"thumbUrl"`
	IsDeleted   bool      `json:"isDeleted" firestore:"isDeleted"`
}

// Project returns a copy of p holding only the named attributes. No fields
// means a full copy.
func (p *Photo) Project(fields ...string) *Photo {
	cp := *p
	if p.Tags != nil {
		cp.Tags = append(make([]string, 0, len(p.Tags)), p.Tags...)
	}
	if len(fields) == 0 {
		return &cp
	}

	keep := make(map[string]bool, len(fields))
	for _, f := range fields {
		keep[f] = true
	}

	out := &Photo{}
	if keep[FieldID] {
		out.ID = cp.ID
	}
	if keep[FieldLastUpdated] {
		out.LastUpdated = cp.LastUpdated
	}
	if keep[FieldUsername] {
		out.Username = cp.Username
	}
	if keep[FieldTags] {
		out.Tags = cp.Tags
	}
	if keep[FieldImageURL] {
		out.ImageURL = cp.ImageURL
	}
	if keep[FieldThumbURL] {
		out.ThumbURL = cp.ThumbURL
	}
	if keep[FieldIsDeleted] {
		out.IsDeleted = cp.IsDeleted
	}
	return out
}

// NormalizeTags trims tags, drops empty ones and removes duplicates compared
// case-insensitively. The first spelling of a tag wins and input order is
// kept. The result is never nil.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}
