package categorizer

import (
	"fjacquet/bank-budget/internal/logging"
	"fjacquet/bank-budget/internal/models"
)

// CategoryMappingStrategy assigns tags from the bank category.
// Lookups are exact; "Супермаркеты" and "супермаркеты" are different keys.
type CategoryMappingStrategy struct {
	logger logging.Logger
}

// NewCategoryMappingStrategy creates a new CategoryMappingStrategy instance.
func NewCategoryMappingStrategy(logger logging.Logger) *CategoryMappingStrategy {
	return &CategoryMappingStrategy{logger: logger}
}

// Name returns the name of this strategy for logging and debugging.
func (s *CategoryMappingStrategy) Name() string {
	return "CategoryMapping"
}

// Categorize looks the bank category up in the category map. The purpose is
// always the raw description.
func (s *CategoryMappingStrategy) Categorize(tx models.RawTransaction, snap *models.MappingSnapshot) (Assignment, bool) {
	tag, ok := snap.CategoryTag(tx.Category)
	if !ok {
		return Assignment{}, false
	}

	s.logger.Debug("Transaction tagged using category mapping",
		logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
		logging.Field{Key: logging.FieldCategory, Value: tx.Category},
		logging.Field{Key: logging.FieldTag, Value: tag},
	)

	return Assignment{Tag: tag, Purpose: tx.Description}, true
}
