package categorizer

import (
	"fjacquet/bank-budget/internal/models"
)

// unresolvedTracker collects unresolved mappings for a single Convert call,
// deduplicated by (kind, key) and kept in first-encounter order.
type unresolvedTracker struct {
	seen  map[models.MappingKey]struct{}
	items []models.UnresolvedMapping
}

func newUnresolvedTracker() *unresolvedTracker {
	return &unresolvedTracker{
		seen:  make(map[models.MappingKey]struct{}),
		items: make([]models.UnresolvedMapping, 0),
	}
}

// add records m unless a mapping with the same identity was already seen.
// It reports whether m was new.
func (u *unresolvedTracker) add(m models.UnresolvedMapping) bool {
	id := m.Identity()
	if _, ok := u.seen[id]; ok {
		return false
	}
	u.seen[id] = struct{}{}
	u.items = append(u.items, m)
	return true
}

func (u *unresolvedTracker) list() []models.UnresolvedMapping {
	return u.items
}
