// Package common contains the conversion pipeline shared by the commands.
package common

import (
	"context"
	"fmt"
	"slices"

	"fjacquet/bank-budget/internal/categorizer"
	"fjacquet/bank-budget/internal/container"
	"fjacquet/bank-budget/internal/logging"
	"fjacquet/bank-budget/internal/models"
	"fjacquet/bank-budget/internal/resolver"
	"fjacquet/bank-budget/internal/store"
	"fjacquet/bank-budget/internal/writer"
)

// TransactionReader loads the raw rows of a bank export.
type TransactionReader interface {
	ReadTransactions(path string) ([]models.RawTransaction, error)
}

// Pipeline runs read, classify, resolve and format for one export.
// A nil Prompter makes the run non-interactive; a nil Suggester skips AI
// suggestions.
type Pipeline struct {
	Reader      TransactionReader
	Store       store.MappingStore
	Categorizer *categorizer.Categorizer
	Suggester   resolver.Suggester
	Prompter    resolver.Prompter
	Logger      logging.Logger
}

// Result is the outcome of a pipeline run.
type Result struct {
	Output writer.OrderedOutput
	// Unresolved lists the mappings still missing after the run.
	Unresolved []models.UnresolvedMapping
	// Applied counts mappings saved from the user's answers.
	Applied int
	Read    int
}

// NewPipeline builds a pipeline from the container's components.
func NewPipeline(c *container.Container, prompter resolver.Prompter) *Pipeline {
	return &Pipeline{
		Reader:      c.GetReader(),
		Store:       c.GetStore(),
		Categorizer: c.GetCategorizer(),
		Suggester:   c.GetSuggester(),
		Prompter:    prompter,
		Logger:      c.GetLogger(),
	}
}

// Run converts the export at input. In interactive mode unresolved mappings
// are offered to the prompter, answers are saved and the export is
// classified again against the reloaded mappings.
func (p *Pipeline) Run(ctx context.Context, input string) (Result, error) {
	logger := p.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	raw, err := p.Reader.ReadTransactions(input)
	if err != nil {
		return Result{}, fmt.Errorf("error reading %s: %w", input, err)
	}

	snap, err := p.Store.Load()
	if err != nil {
		return Result{}, fmt.Errorf("error loading mappings: %w", err)
	}

	txs, unresolved := p.Categorizer.Convert(raw, snap)
	result := Result{Read: len(raw)}

	if len(unresolved) > 0 && p.Prompter != nil {
		unknownTag := p.Categorizer.Options().UnknownTag
		tags := promptTags(snap.Tags, unknownTag)

		worklist := resolver.SuggestAll(ctx, p.Suggester, unresolved, tags, logger)
		answers, err := p.Prompter.Ask(ctx, worklist, tags)
		if err != nil {
			return Result{}, fmt.Errorf("error asking for mappings: %w", err)
		}

		applied, err := resolver.Apply(p.Store, answers, unknownTag, logger)
		if err != nil {
			return Result{}, err
		}
		result.Applied = applied

		if applied > 0 {
			if snap, err = p.Store.Load(); err != nil {
				return Result{}, fmt.Errorf("error reloading mappings: %w", err)
			}
			txs, unresolved = p.Categorizer.Convert(raw, snap)
		}
	}

	result.Output = writer.Format(txs)
	result.Unresolved = unresolved

	if len(unresolved) > 0 {
		logger.Warn("Some mappings are still unresolved",
			logging.Field{Key: logging.FieldCount, Value: len(unresolved)})
	}
	return result, nil
}

// promptTags returns the selectable tags with the unknown tag last.
func promptTags(tags []string, unknownTag string) []string {
	out := slices.DeleteFunc(slices.Clone(tags), func(t string) bool { return t == unknownTag })
	return append(out, unknownTag)
}
