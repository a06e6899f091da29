package categorizer

import (
	"fjacquet/bank-budget/internal/models"
)

// Assignment is the tag and purpose a strategy gives to a transaction.
type Assignment struct {
	Tag     string
	Purpose string
}

// TaggingStrategy defines one way of assigning a tag to a transaction.
// Strategies run in priority order; the first one that matches wins.
type TaggingStrategy interface {
	// Categorize returns the assignment for tx and whether the strategy matched.
	// Strategies only read the snapshot and never fail on dirty rows.
	Categorize(tx models.RawTransaction, snap *models.MappingSnapshot) (Assignment, bool)

	// Name returns the name of this strategy for logging and debugging purposes.
	Name() string
}
