// Package categorizer classifies raw bank transactions into income and
// expense budget records. Tags are resolved by an ordered chain of
// strategies (vendor overrides first, then category mappings); transactions
// no strategy can tag get the unknown tag and are reported as unresolved
// mappings so that the caller can ask the user and run again.
package categorizer

import (
	"fjacquet/bank-budget/internal/dateutils"
	"fjacquet/bank-budget/internal/logging"
	"fjacquet/bank-budget/internal/models"
)

// Options tunes the engine. Zero values fall back to the defaults.
type Options struct {
	// UnknownTag is assigned when no strategy matches.
	UnknownTag string
	// TransferCategory is the bank category whose unmapped rows are escalated
	// per description as vendor candidates.
	TransferCategory string
}

// DefaultOptions returns the standard engine options.
func DefaultOptions() Options {
	return Options{
		UnknownTag:       models.UnknownTag,
		TransferCategory: models.TransferCategory,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.UnknownTag == "" {
		o.UnknownTag = d.UnknownTag
	}
	if o.TransferCategory == "" {
		o.TransferCategory = d.TransferCategory
	}
	return o
}

// Categorizer is the classification engine. It holds no per-call state and
// is safe to reuse across passes.
type Categorizer struct {
	strategies []TaggingStrategy
	opts       Options
	logger     logging.Logger
}

// NewCategorizer creates a Categorizer with the standard strategy chain.
func NewCategorizer(opts Options, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	return &Categorizer{
		strategies: []TaggingStrategy{
			NewVendorOverrideStrategy(logger),
			NewCategoryMappingStrategy(logger),
		},
		opts:   opts.withDefaults(),
		logger: logger,
	}
}

// Options returns the effective options.
func (c *Categorizer) Options() Options {
	return c.opts
}

// Convert classifies raw against snap. It returns the emitted transactions in
// input order and the unresolved mappings in first-encounter order; both
// slices are non-nil. Dirty rows are dropped or tagged unknown, never
// reported as errors.
//
// snap must not be nil.
func (c *Categorizer) Convert(raw []models.RawTransaction, snap *models.MappingSnapshot) ([]models.NormalizedTransaction, []models.UnresolvedMapping) {
	if snap == nil {
		panic("categorizer: Convert called with nil mapping snapshot")
	}

	stats := models.NewConversionStats()
	unresolved := newUnresolvedTracker()
	result := make([]models.NormalizedTransaction, 0, len(raw))

	for _, tx := range raw {
		stats.Total++

		out, ok := c.convertSingle(tx, snap, unresolved, stats)
		if !ok {
			continue
		}

		if out.IsIncome() {
			stats.Income++
		} else {
			stats.Expense++
		}
		if out.Tag == c.opts.UnknownTag {
			stats.Unknown++
		}
		result = append(result, out)
	}

	stats.Unresolved = len(unresolved.list())
	stats.LogSummary(c.logger)

	return result, unresolved.list()
}

func (c *Categorizer) convertSingle(
	tx models.RawTransaction,
	snap *models.MappingSnapshot,
	unresolved *unresolvedTracker,
	stats *models.ConversionStats,
) (models.NormalizedTransaction, bool) {
	if tx.Status != models.StatusOK {
		stats.Drop(models.DropStatus)
		c.logger.Debug("Dropping transaction with non-OK status",
			logging.Field{Key: logging.FieldStatus, Value: tx.Status},
			logging.Field{Key: logging.FieldDescription, Value: tx.Description},
		)
		return models.NormalizedTransaction{}, false
	}

	if snap.IsSkipped(tx.Description) {
		stats.Drop(models.DropSkipList)
		c.logger.Debug("Dropping transaction on skip list",
			logging.Field{Key: logging.FieldDescription, Value: tx.Description},
		)
		return models.NormalizedTransaction{}, false
	}

	amount := models.ParseAmount(tx.Amount)
	if amount.IsZero() {
		stats.Drop(models.DropZeroAmount)
		return models.NormalizedTransaction{}, false
	}

	kind := models.KindExpense
	if snap.IsIncomeCategory(tx.Category) || amount.IsPositive() {
		kind = models.KindIncome
	}

	assignment := c.assign(tx, snap, unresolved)

	return models.NormalizedTransaction{
		Owner:   snap.Owner,
		Date:    dateutils.NormalizeDate(tx.OperationDate),
		Amount:  amount.Abs(),
		Purpose: assignment.Purpose,
		Tag:     assignment.Tag,
		Kind:    kind,
	}, true
}

// assign runs the strategy chain and falls back to the unknown tag.
func (c *Categorizer) assign(tx models.RawTransaction, snap *models.MappingSnapshot, unresolved *unresolvedTracker) Assignment {
	for _, strategy := range c.strategies {
		if a, ok := strategy.Categorize(tx, snap); ok {
			return a
		}
	}

	c.recordUnresolved(tx, snap, unresolved)
	return Assignment{Tag: c.opts.UnknownTag, Purpose: tx.Description}
}

func (c *Categorizer) recordUnresolved(tx models.RawTransaction, snap *models.MappingSnapshot, unresolved *unresolvedTracker) {
	if tx.Category != "" {
		if _, mapped := snap.CategoryTag(tx.Category); !mapped {
			if unresolved.add(models.UnresolvedMapping{
				Kind:         models.MappingCategory,
				Key:          tx.Category,
				SuggestedTag: c.opts.UnknownTag,
			}) {
				c.logger.Info("Unmapped bank category",
					logging.Field{Key: logging.FieldCategory, Value: tx.Category},
				)
			}
		}
	}

	if tx.Category == c.opts.TransferCategory && tx.Description != "" {
		if _, overridden := snap.VendorOverride(tx.Description); !overridden {
			if unresolved.add(models.UnresolvedMapping{
				Kind:             models.MappingVendor,
				Key:              tx.Description,
				SuggestedTag:     c.opts.UnknownTag,
				SuggestedPurpose: tx.Description,
			}) {
				c.logger.Info("Unmapped transfer counterparty",
					logging.Field{Key: logging.FieldDescription, Value: tx.Description},
				)
			}
		}
	}
}
