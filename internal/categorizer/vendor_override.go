package categorizer

import (
	"fjacquet/bank-budget/internal/logging"
	"fjacquet/bank-budget/internal/models"
)

// VendorOverrideStrategy assigns tags from per-description overrides.
// It has priority over category mappings.
type VendorOverrideStrategy struct {
	logger logging.Logger
}

// NewVendorOverrideStrategy creates a new VendorOverrideStrategy instance.
func NewVendorOverrideStrategy(logger logging.Logger) *VendorOverrideStrategy {
	return &VendorOverrideStrategy{logger: logger}
}

// Name returns the name of this strategy for logging and debugging.
func (s *VendorOverrideStrategy) Name() string {
	return "VendorOverride"
}

// Categorize looks the description up in the vendor overrides. The override
// purpose replaces the description when it is set.
func (s *VendorOverrideStrategy) Categorize(tx models.RawTransaction, snap *models.MappingSnapshot) (Assignment, bool) {
	override, ok := snap.VendorOverride(tx.Description)
	if !ok {
		return Assignment{}, false
	}

	purpose := override.Purpose
	if purpose == "" {
		purpose = tx.Description
	}

	s.logger.Debug("Transaction tagged using vendor override",
		logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
		logging.Field{Key: logging.FieldDescription, Value: tx.Description},
		logging.Field{Key: logging.FieldTag, Value: override.Tag},
	)

	return Assignment{Tag: override.Tag, Purpose: purpose}, true
}
