// Package resolver closes the feedback loop: it asks the user (optionally
// helped by an AI suggestion) for tags of unresolved categories and vendors
// and persists the answers to the mapping store.
package resolver

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/bank-budget/internal/logging"
	"fjacquet/bank-budget/internal/models"
	"fjacquet/bank-budget/internal/store"
)

// Resolution is the user's answer for one unresolved mapping.
type Resolution struct {
	Mapping models.UnresolvedMapping
	Tag     string
	Purpose string // vendors only
	Skip    bool
}

// Prompter collects resolutions for a worklist.
type Prompter interface {
	Ask(ctx context.Context, items []models.UnresolvedMapping, tags []string) ([]Resolution, error)
}

// Apply persists resolutions. Category answers become category mappings,
// vendor answers become vendor overrides with the description as default
// purpose. Skipped answers and answers left on unknownTag are not stored.
// It returns the number of mappings written.
func Apply(s store.MappingStore, resolutions []Resolution, unknownTag string, logger logging.Logger) (int, error) {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	applied := 0
	for _, r := range resolutions {
		tag := strings.TrimSpace(r.Tag)
		if r.Skip || tag == "" || tag == unknownTag {
			logger.Debug("Leaving mapping unresolved",
				logging.Field{Key: logging.FieldMapping, Value: r.Mapping.String()})
			continue
		}

		var err error
		switch r.Mapping.Kind {
		case models.MappingCategory:
			err = s.UpsertCategory(r.Mapping.Key, tag)
		case models.MappingVendor:
			purpose := strings.TrimSpace(r.Purpose)
			if purpose == "" {
				purpose = r.Mapping.Key
			}
			err = s.UpsertVendor(r.Mapping.Key, tag, purpose)
		default:
			err = fmt.Errorf("unknown mapping kind %q", r.Mapping.Kind)
		}
		if err != nil {
			return applied, fmt.Errorf("saving %s: %w", r.Mapping, err)
		}
		applied++
	}

	logger.Info("Applied mapping resolutions",
		logging.Field{Key: logging.FieldCount, Value: applied},
		logging.Field{Key: "skipped", Value: len(resolutions) - applied},
	)
	return applied, nil
}

// Defaults turns a worklist into resolutions that keep the suggestions.
func Defaults(items []models.UnresolvedMapping) []Resolution {
	out := make([]Resolution, 0, len(items))
	for _, m := range items {
		out = append(out, Resolution{Mapping: m, Tag: m.SuggestedTag, Purpose: m.SuggestedPurpose})
	}
	return out
}
