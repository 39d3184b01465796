package repository

import (
	"strings"

	"photohive/internal/domain/entity"
)

type FilterOp int

const (
	OpAnd FilterOp = iota
	OpOr
	OpEq
	OpContains
)

// Filter is a predicate over photo attributes, built with And, Or, Eq and
// Contains. The zero value matches every record.
type Filter struct {
	Op       FilterOp
	Field    string
	Value    interface{}
	Children []Filter
}

func And(filters ...Filter) Filter {
	return Filter{Op: OpAnd, Children: filters}
}

func Or(filters ...Filter) Filter {
	return Filter{Op: OpOr, Children: filters}
}

// Eq matches records whose boolean or string attribute equals value.
func Eq(field string, value interface{}) Filter {
	return Filter{Op: OpEq, Field: field, Value: value}
}

// Contains is a substring test on string attributes and a membership test on
// set attributes. Both are case-sensitive.
func Contains(field string, value string) Filter {
	return Filter{Op: OpContains, Field: field, Value: value}
}

// Match evaluates the filter against p.
func (f Filter) Match(p *entity.Photo) bool {
	switch f.Op {
	case OpAnd:
		for _, child := range f.Children {
			if !child.Match(p) {
				return false
			}
		}
		return true
	case OpOr:
		if len(f.Children) == 0 {
			return true
		}
		for _, child := range f.Children {
			if child.Match(p) {
				return true
			}
		}
		return false
	case OpEq:
		return attributeEquals(p, f.Field, f.Value)
	case OpContains:
		needle, _ := f.Value.(string)
		return attributeContains(p, f.Field, needle)
	}
	return false
}

// Equalities returns the equality terms that every matching record must
// satisfy, i.e. Eq filters reachable through And nodes only. Stores use them
// to narrow a scan before evaluating the full filter.
func (f Filter) Equalities() []Filter {
	switch f.Op {
	case OpEq:
		return []Filter{f}
	case OpAnd:
		var out []Filter
		for _, child := range f.Children {
			out = append(out, child.Equalities()...)
		}
		return out
	}
	return nil
}

func attributeEquals(p *entity.Photo, field string, value interface{}) bool {
	switch field {
	case entity.FieldIsDeleted:
		b, ok := value.(bool)
		return ok && p.IsDeleted == b
	case entity.FieldID:
		s, ok := value.(string)
		return ok && p.ID == s
	case entity.FieldUsername:
		s, ok := value.(string)
		return ok && p.Username == s
	case entity.FieldImageURL:
		s, ok := value.(string)
		return ok && p.ImageURL == s
	case entity.FieldThumbURL:
		s, ok := value.(string)
		return ok && p.ThumbURL == s
	}
	return false
}

func attributeContains(p *entity.Photo, field, needle string) bool {
	switch field {
	case entity.FieldTags:
		for _, tag := range p.Tags {
			if tag == needle {
				return true
			}
		}
		return false
	case entity.FieldID:
		return strings.Contains(p.ID, needle)
	case entity.FieldUsername:
		return strings.Contains(p.Username, needle)
	case entity.FieldImageURL:
		return strings.Contains(p.ImageURL, needle)
	case entity.FieldThumbURL:
		return strings.Contains(p.ThumbURL, needle)
	}
	return false
}

// Fields lists the attributes the filter reads, without duplicates.
func (f Filter) Fields() []string {
	var out []string
	seen := map[string]bool{}
	var walk func(Filter)
	walk = func(f Filter) {
		if f.Field != "" && !seen[f.Field] {
			seen[f.Field] = true
			out = append(out, f.Field)
		}
		for _, child := range f.Children {
			walk(child)
		}
	}
	walk(f)
	return out
}
