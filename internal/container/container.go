// Package container provides dependency injection for the bank-budget
// application. It builds every component from the configuration once so
// that commands receive their collaborators explicitly.
package container

import (
	"context"
	"fmt"
	"time"

	"fjacquet/bank-budget/internal/categorizer"
	"fjacquet/bank-budget/internal/config"
	"fjacquet/bank-budget/internal/logging"
	"fjacquet/bank-budget/internal/reader"
	"fjacquet/bank-budget/internal/resolver"
	"fjacquet/bank-budget/internal/sheets"
	"fjacquet/bank-budget/internal/store"
	"fjacquet/bank-budget/internal/writer"
)

// Container holds all application dependencies. It is immutable after
// creation; fields are reached through getters.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       store.MappingStore
	categorizer *categorizer.Categorizer
	reader      *reader.Reader
	writer      *writer.CSVWriter

	// nil when AI suggestions are disabled
	suggester *resolver.GeminiSuggester
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	return build(cfg, logger, store.NewYAMLStore(cfg.Mappings.File, logger))
}

// NewContainerWithStore wires the dependencies around an existing store.
// Tests use it with store.MockStore.
func NewContainerWithStore(cfg *config.Config, s store.MappingStore, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if s == nil {
		return nil, fmt.Errorf("mapping store cannot be nil")
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return build(cfg, logger, s)
}

func build(cfg *config.Config, logger logging.Logger, s store.MappingStore) (*Container, error) {
	cat := categorizer.NewCategorizer(categorizer.Options{
		UnknownTag:       cfg.Categorization.UnknownTag,
		TransferCategory: cfg.Categorization.TransferCategory,
	}, logger)

	var suggester *resolver.GeminiSuggester
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		var err error
		suggester, err = resolver.NewGeminiSuggester(context.Background(), cfg.AI.APIKey, cfg.AI.Model,
			time.Duration(cfg.AI.TimeoutSeconds)*time.Second, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create AI suggester: %w", err)
		}
		logger.Info("AI suggestions enabled", logging.Field{Key: "model", Value: cfg.AI.Model})
	} else {
		logger.Debug("AI suggestions disabled")
	}

	c := &Container{
		logger:      logger,
		config:      cfg,
		store:       s,
		categorizer: cat,
		reader:      reader.NewReader(logger),
		writer:      writer.NewCSVWriter(cfg.CSV.DelimiterRune(), logger),
		suggester:   suggester,
	}

	logger.Debug("Container initialized successfully",
		logging.Field{Key: "ai_enabled", Value: suggester != nil})
	return c, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the mapping store.
func (c *Container) GetStore() store.MappingStore {
	return c.store
}

// GetCategorizer returns the classification engine.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetReader returns the bank export reader.
func (c *Container) GetReader() *reader.Reader {
	return c.reader
}

// GetWriter returns the budget CSV writer.
func (c *Container) GetWriter() *writer.CSVWriter {
	return c.writer
}

// GetSuggester returns the AI suggester, or nil when AI is disabled.
func (c *Container) GetSuggester() resolver.Suggester {
	if c.suggester == nil {
		return nil
	}
	return c.suggester
}

// NewPublisher creates a Google Sheets publisher from the sheets settings.
// Credentials are only read when publishing is requested.
func (c *Container) NewPublisher(ctx context.Context) (*sheets.Publisher, error) {
	return sheets.NewPublisher(ctx, c.config.Sheets, c.logger)
}

// Close releases the AI client, if any.
func (c *Container) Close() error {
	if c.suggester != nil {
		if err := c.suggester.Close(); err != nil {
			return fmt.Errorf("failed to close AI client: %w", err)
		}
	}
	return nil
}
