package store

import (
	"fjacquet/bank-budget/internal/models"
)

// MockStore is an in-memory MappingStore for testing.
type MockStore struct {
	Snapshot *models.MappingSnapshot

	// Error flags for testing error conditions
	LoadError error
	SaveError error

	SaveCalls int
}

// NewMockStore returns a MockStore seeded with a copy of snap, or with the
// defaults when snap is nil.
func NewMockStore(snap *models.MappingSnapshot) *MockStore {
	if snap == nil {
		snap = DefaultSnapshot()
	}
	return &MockStore{Snapshot: snap.Clone()}
}

// Load returns a copy of the stored snapshot.
func (m *MockStore) Load() (*models.MappingSnapshot, error) {
	if m.LoadError != nil {
		return nil, m.LoadError
	}
	if m.Snapshot == nil {
		m.Snapshot = DefaultSnapshot()
	}
	return m.Snapshot.Clone(), nil
}

// Save replaces the stored snapshot.
func (m *MockStore) Save(snap *models.MappingSnapshot) error {
	if m.SaveError != nil {
		return m.SaveError
	}
	m.SaveCalls++
	m.Snapshot = snap.Clone()
	return nil
}

func (m *MockStore) mutate(fn func(snap *models.MappingSnapshot)) error {
	snap, err := m.Load()
	if err != nil {
		return err
	}
	fn(snap)
	return m.Save(snap)
}

func (m *MockStore) UpsertCategory(category, tag string) error {
	return m.mutate(func(snap *models.MappingSnapshot) { snap.CategoryMap[category] = tag })
}

func (m *MockStore) UpsertVendor(vendor, tag, purpose string) error {
	return m.mutate(func(snap *models.MappingSnapshot) {
		snap.VendorOverrides[vendor] = models.VendorOverride{Tag: tag, Purpose: purpose}
	})
}

func (m *MockStore) AddSkipDescription(description string) error {
	return m.mutate(func(snap *models.MappingSnapshot) { snap.SkipDescriptions[description] = struct{}{} })
}

func (m *MockStore) RemoveSkipDescription(description string) error {
	return m.mutate(func(snap *models.MappingSnapshot) { delete(snap.SkipDescriptions, description) })
}

func (m *MockStore) SetOwner(owner string) error {
	return m.mutate(func(snap *models.MappingSnapshot) { snap.Owner = owner })
}

var _ MappingStore = (*MockStore)(nil)
var _ MappingStore = (*YAMLStore)(nil)
