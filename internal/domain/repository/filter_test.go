package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"photohive/internal/domain/entity"
)

func TestFilterMatch(t *testing.T) {
	alice := &entity.Photo{ID: "A000000001", Username: "alice", Tags: []string{"cat", "dog"}}
	bob := &entity.Photo{ID: "B000000001", Username: "bobcat", Tags: []string{"sky"}, IsDeleted: true}
	carol := &entity.Photo{ID: "C000000001", Username: "carol", Tags: []string{"catalog"}}

	search := func(term string) Filter {
		return And(
			Eq(entity.FieldIsDeleted, false),
			Or(Contains(entity.FieldTags, term), Contains(entity.FieldUsername, term)),
		)
	}

	assert.True(t, search("cat").Match(alice))
	assert.False(t, search("cat").Match(bob), "deleted records never match")
	assert.False(t, search("cat").Match(carol), "tag containment is membership, not substring")
	assert.True(t, search("aro").Match(carol), "username containment is substring")
	assert.False(t, search("Cat").Match(alice), "matching is case-sensitive")

	assert.True(t, Filter{}.Match(alice), "zero filter matches everything")
	assert.True(t, Or().Match(alice))
	assert.False(t, Eq(entity.FieldIsDeleted, "false").Match(alice), "type mismatch never matches")
	assert.False(t, Contains("unknown", "x").Match(alice))
}

func TestFilterEqualities(t *testing.T) {
	f := And(
		Eq(entity.FieldIsDeleted, false),
		Or(Eq(entity.FieldUsername, "alice"), Contains(entity.FieldTags, "cat")),
		And(Eq(entity.FieldUsername, "bob")),
	)

	eqs := f.Equalities()
	assert.Len(t, eqs, 2)
	assert.Equal(t, entity.FieldIsDeleted, eqs[0].Field)
	assert.Equal(t, entity.FieldUsername, eqs[1].Field)

	assert.Empty(t, Or(Eq(entity.FieldIsDeleted, false)).Equalities())
}

func TestFilterFields(t *testing.T) {
	f := And(
		Eq(entity.FieldIsDeleted, false),
		Or(Contains(entity.FieldTags, "cat"), Contains(entity.FieldUsername, "cat"), Contains(entity.FieldTags, "dog")),
	)
	assert.Equal(t, []string{entity.FieldIsDeleted, entity.FieldTags, entity.FieldUsername}, f.Fields())
	assert.Empty(t, Filter{}.Fields())
}
