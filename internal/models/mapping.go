package models

import (
	"fmt"
	"maps"
	"slices"
)

// MappingKind distinguishes category-level from vendor-level mappings.
type MappingKind string

const (
	MappingCategory MappingKind = "category"
	MappingVendor   MappingKind = "vendor"
)

// UnresolvedMapping is a category or vendor with no configured tag.
// Two values with the same Kind and Key describe the same mapping.
type UnresolvedMapping struct {
	Kind             MappingKind
	Key              string
	SuggestedTag     string
	SuggestedPurpose string
}

// MappingKey is the identity of an UnresolvedMapping.
type MappingKey struct {
	Kind MappingKind
	Key  string
}

// Identity returns the (kind, key) pair identifying the mapping.
func (u UnresolvedMapping) Identity() MappingKey {
	return MappingKey{Kind: u.Kind, Key: u.Key}
}

func (u UnresolvedMapping) String() string {
	return fmt.Sprintf("%s:%s", u.Kind, u.Key)
}

// VendorOverride assigns a tag, and optionally a purpose, to a description.
type VendorOverride struct {
	Tag     string `yaml:"tag"`
	Purpose string `yaml:"purpose,omitempty"`
}

// MappingSnapshot is a read-only view of the mapping store for one
// conversion pass. Callers reload it between passes.
type MappingSnapshot struct {
	Owner            string
	Tags             []string
	CategoryMap      map[string]string
	VendorOverrides  map[string]VendorOverride
	SkipDescriptions map[string]struct{}
	IncomeCategories map[string]struct{}
}

// NewMappingSnapshot returns an empty snapshot with all maps allocated.
func NewMappingSnapshot(owner string) *MappingSnapshot {
	return &MappingSnapshot{
		Owner:            owner,
		CategoryMap:      make(map[string]string),
		VendorOverrides:  make(map[string]VendorOverride),
		SkipDescriptions: make(map[string]struct{}),
		IncomeCategories: make(map[string]struct{}),
	}
}

// CategoryTag returns the tag mapped to a bank category.
func (s *MappingSnapshot) CategoryTag(category string) (string, bool) {
	tag, ok := s.CategoryMap[category]
	return tag, ok
}

// VendorOverride returns the override configured for a description.
func (s *MappingSnapshot) VendorOverride(description string) (VendorOverride, bool) {
	o, ok := s.VendorOverrides[description]
	return o, ok
}

// IsSkipped reports whether transactions with this description are ignored.
func (s *MappingSnapshot) IsSkipped(description string) bool {
	_, ok := s.SkipDescriptions[description]
	return ok
}

// IsIncomeCategory reports whether the category is always income.
func (s *MappingSnapshot) IsIncomeCategory(category string) bool {
	_, ok := s.IncomeCategories[category]
	return ok
}

// HasTag reports whether tag is one of the configured output tags.
func (s *MappingSnapshot) HasTag(tag string) bool {
	return slices.Contains(s.Tags, tag)
}

// SortedSkipDescriptions returns the skip set in lexical order.
func (s *MappingSnapshot) SortedSkipDescriptions() []string {
	return slices.Sorted(maps.Keys(s.SkipDescriptions))
}

// SortedIncomeCategories returns the income categories in lexical order.
func (s *MappingSnapshot) SortedIncomeCategories() []string {
	return slices.Sorted(maps.Keys(s.IncomeCategories))
}

// Clone returns a deep copy so that a caller may mutate it freely.
func (s *MappingSnapshot) Clone() *MappingSnapshot {
	if s == nil {
		return nil
	}
	return &MappingSnapshot{
		Owner:            s.Owner,
		Tags:             slices.Clone(s.Tags),
		CategoryMap:      maps.Clone(s.CategoryMap),
		VendorOverrides:  maps.Clone(s.VendorOverrides),
		SkipDescriptions: maps.Clone(s.SkipDescriptions),
		IncomeCategories: maps.Clone(s.IncomeCategories),
	}
}

// SetOf builds a string set from a slice.
func SetOf(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
