// Package store persists the user's mapping tables (category mappings,
// vendor overrides, skip list, income categories, owner and output tags).
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"fjacquet/bank-budget/internal/logging"
	"fjacquet/bank-budget/internal/models"
	"fjacquet/bank-budget/internal/parsererror"
	"fjacquet/bank-budget/internal/validation"

	"gopkg.in/yaml.v3"
)

// MappingStore loads and persists mapping snapshots. Every mutator persists
// immediately; callers reload a snapshot to see the change.
type MappingStore interface {
	Load() (*models.MappingSnapshot, error)
	Save(snap *models.MappingSnapshot) error
	UpsertCategory(category, tag string) error
	UpsertVendor(vendor, tag, purpose string) error
	AddSkipDescription(description string) error
	RemoveSkipDescription(description string) error
	SetOwner(owner string) error
}

// DefaultFileName is the mapping file name inside the application directory.
const DefaultFileName = "mappings.yaml"

// mappingFile is the on-disk layout. Pointer fields distinguish an absent key
// (keep the default) from an explicitly empty one.
type mappingFile struct {
	Owner            *string                `yaml:"owner,omitempty"`
	OutputTags       *[]string              `yaml:"output_tags,omitempty"`
	CategoryMappings map[string]string      `yaml:"category_mappings,omitempty"`
	VendorOverrides  map[string]vendorEntry `yaml:"vendor_overrides,omitempty"`
	SkipDescriptions *[]string              `yaml:"skip_descriptions,omitempty"`
	IncomeCategories *[]string              `yaml:"income_categories,omitempty"`
}

// vendorEntry accepts the legacy "назначение" key as an alias of "purpose",
// so JSON mapping files from older versions load unchanged.
type vendorEntry struct {
	Tag           string `yaml:"tag"`
	Purpose       string `yaml:"purpose,omitempty"`
	LegacyPurpose string `yaml:"назначение,omitempty"`
}

func (v vendorEntry) override() models.VendorOverride {
	purpose := v.Purpose
	if purpose == "" {
		purpose = v.LegacyPurpose
	}
	return models.VendorOverride{Tag: v.Tag, Purpose: purpose}
}

// YAMLStore is a MappingStore backed by a single YAML file.
type YAMLStore struct {
	path   string
	logger logging.Logger
	mu     sync.Mutex
}

// NewYAMLStore creates a store for the file at path. A leading "~" is
// expanded to the user's home directory. An empty path selects
// DefaultPath().
func NewYAMLStore(path string, logger logging.Logger) *YAMLStore {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if path == "" {
		path = DefaultPath()
	}
	return &YAMLStore{
		path:   expandHome(path),
		logger: logger,
	}
}

// DefaultPath returns $HOME/.bank-budget/mappings.yaml, or the bare file name
// when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(home, ".bank-budget", DefaultFileName)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Path returns the resolved file path.
func (s *YAMLStore) Path() string {
	return s.path
}

// Exists reports whether the mapping file is present on disk.
func (s *YAMLStore) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load returns the built-in defaults overlaid with the file contents.
// A missing file yields the defaults; an unreadable or corrupt file is an
// error.
func (s *YAMLStore) Load() (*models.MappingSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *YAMLStore) load() (*models.MappingSnapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("Mapping file not found, using defaults",
				logging.Field{Key: logging.FieldFile, Value: s.path})
			return DefaultSnapshot(), nil
		}
		return nil, &parsererror.StoreError{Path: s.path, Op: "load", Err: err}
	}

	if info, err := os.Stat(s.path); err == nil {
		if err := validation.FilePermissions(info.Mode()); err != nil {
			s.logger.WithError(err).Warn("Mapping file is readable by other users",
				logging.Field{Key: logging.FieldFile, Value: s.path})
		}
	}

	var file mappingFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &parsererror.StoreError{Path: s.path, Op: "load", Err: err}
	}

	snap := merge(DefaultSnapshot(), file)

	s.logger.Debug("Loaded mapping file",
		logging.Field{Key: logging.FieldFile, Value: s.path},
		logging.Field{Key: "categories", Value: len(snap.CategoryMap)},
		logging.Field{Key: "vendors", Value: len(snap.VendorOverrides)},
	)

	return snap, nil
}

// merge overlays file on defaults. Category mappings and vendor overrides are
// merged key by key; the other keys replace the default value when present.
func merge(defaults *models.MappingSnapshot, file mappingFile) *models.MappingSnapshot {
	snap := defaults

	if file.Owner != nil {
		snap.Owner = *file.Owner
	}
	if file.OutputTags != nil {
		snap.Tags = slices.Clone(*file.OutputTags)
	}
	for category, tag := range file.CategoryMappings {
		snap.CategoryMap[category] = tag
	}
	for vendor, entry := range file.VendorOverrides {
		snap.VendorOverrides[vendor] = entry.override()
	}
	if file.SkipDescriptions != nil {
		snap.SkipDescriptions = models.SetOf(*file.SkipDescriptions...)
	}
	if file.IncomeCategories != nil {
		snap.IncomeCategories = models.SetOf(*file.IncomeCategories...)
	}

	return snap
}

// Save writes the full snapshot, creating parent directories as needed.
func (s *YAMLStore) Save(snap *models.MappingSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(snap)
}

func (s *YAMLStore) save(snap *models.MappingSnapshot) error {
	if snap == nil {
		return &parsererror.StoreError{Path: s.path, Op: "save", Err: errors.New("nil snapshot")}
	}

	owner := snap.Owner
	tags := slices.Clone(snap.Tags)
	if tags == nil {
		tags = []string{}
	}
	skip := snap.SortedSkipDescriptions()
	income := snap.SortedIncomeCategories()

	file := mappingFile{
		Owner:            &owner,
		OutputTags:       &tags,
		CategoryMappings: maps.Clone(snap.CategoryMap),
		VendorOverrides:  make(map[string]vendorEntry, len(snap.VendorOverrides)),
		SkipDescriptions: &skip,
		IncomeCategories: &income,
	}
	for vendor, o := range snap.VendorOverrides {
		file.VendorOverrides[vendor] = vendorEntry{Tag: o.Tag, Purpose: o.Purpose}
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return &parsererror.StoreError{Path: s.path, Op: "save", Err: err}
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return &parsererror.StoreError{Path: s.path, Op: "save", Err: fmt.Errorf("creating directory: %w", err)}
		}
	}

	if err := os.WriteFile(s.path, data, models.PermissionConfigFile); err != nil {
		return &parsererror.StoreError{Path: s.path, Op: "save", Err: err}
	}

	s.logger.Debug("Saved mapping file", logging.Field{Key: logging.FieldFile, Value: s.path})
	return nil
}

// update loads the current state, applies fn and persists the result.
// fn returns false when nothing changed, in which case nothing is written.
func (s *YAMLStore) update(fn func(snap *models.MappingSnapshot) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.load()
	if err != nil {
		return err
	}
	if !fn(snap) {
		return nil
	}
	return s.save(snap)
}

// UpsertCategory maps a bank category to a tag.
func (s *YAMLStore) UpsertCategory(category, tag string) error {
	if category == "" {
		return fmt.Errorf("category must not be empty")
	}
	err := s.update(func(snap *models.MappingSnapshot) bool {
		snap.CategoryMap[category] = tag
		return true
	})
	if err == nil {
		s.logger.Info("Category mapping saved",
			logging.Field{Key: logging.FieldCategory, Value: category},
			logging.Field{Key: logging.FieldTag, Value: tag},
		)
	}
	return err
}

// UpsertVendor sets the override for a description. An empty purpose keeps
// the description as purpose.
func (s *YAMLStore) UpsertVendor(vendor, tag, purpose string) error {
	if vendor == "" {
		return fmt.Errorf("vendor must not be empty")
	}
	err := s.update(func(snap *models.MappingSnapshot) bool {
		snap.VendorOverrides[vendor] = models.VendorOverride{Tag: tag, Purpose: purpose}
		return true
	})
	if err == nil {
		s.logger.Info("Vendor override saved",
			logging.Field{Key: logging.FieldDescription, Value: vendor},
			logging.Field{Key: logging.FieldTag, Value: tag},
		)
	}
	return err
}

// AddSkipDescription adds a description to the skip list.
func (s *YAMLStore) AddSkipDescription(description string) error {
	return s.update(func(snap *models.MappingSnapshot) bool {
		if snap.IsSkipped(description) {
			return false
		}
		snap.SkipDescriptions[description] = struct{}{}
		return true
	})
}

// RemoveSkipDescription removes a description from the skip list.
func (s *YAMLStore) RemoveSkipDescription(description string) error {
	return s.update(func(snap *models.MappingSnapshot) bool {
		if !snap.IsSkipped(description) {
			return false
		}
		delete(snap.SkipDescriptions, description)
		return true
	})
}

// SetOwner changes the owner written on every output row.
func (s *YAMLStore) SetOwner(owner string) error {
	return s.update(func(snap *models.MappingSnapshot) bool {
		if snap.Owner == owner {
			return false
		}
		snap.Owner = owner
		return true
	})
}
