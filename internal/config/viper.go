// Package config provides Viper-based hierarchical configuration management.
//
// Precedence, highest first: environment variables (BUDGET_ prefix, plus
// GEMINI_API_KEY), the config file, built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/bank-budget/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the application.
const EnvPrefix = "BUDGET"

// Config represents the complete application configuration.
type Config struct {
	Log            LogConfig            `mapstructure:"log" yaml:"log"`
	CSV            CSVConfig            `mapstructure:"csv" yaml:"csv"`
	Mappings       MappingsConfig       `mapstructure:"mappings" yaml:"mappings"`
	Categorization CategorizationConfig `mapstructure:"categorization" yaml:"categorization"`
	AI             AIConfig             `mapstructure:"ai" yaml:"ai"`
	Sheets         SheetsConfig         `mapstructure:"sheets" yaml:"sheets"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// CSVConfig controls the budget CSV output. Input exports are always
// semicolon separated.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// DelimiterRune returns the configured delimiter as a rune.
func (c CSVConfig) DelimiterRune() rune {
	r := []rune(c.Delimiter)
	if len(r) == 0 {
		return ','
	}
	return r[0]
}

type MappingsConfig struct {
	// File is the mapping store path; empty selects $HOME/.bank-budget/mappings.yaml.
	File string `mapstructure:"file" yaml:"file"`
}

type CategorizationConfig struct {
	UnknownTag       string `mapstructure:"unknown_tag" yaml:"unknown_tag"`
	TransferCategory string `mapstructure:"transfer_category" yaml:"transfer_category"`
}

type AIConfig struct {
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
	Model          string `mapstructure:"model" yaml:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
}

type SheetsConfig struct {
	SpreadsheetID   string `mapstructure:"spreadsheet_id" yaml:"spreadsheet_id"`
	IncomeRange     string `mapstructure:"income_range" yaml:"income_range"`
	ExpenseRange    string `mapstructure:"expense_range" yaml:"expense_range"`
	CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"`
}

// Validate checks the settings needed to publish to Google Sheets.
func (c SheetsConfig) Validate() error {
	var errs []error
	if c.SpreadsheetID == "" {
		errs = append(errs, errors.New("sheets.spreadsheet_id is required"))
	}
	if c.CredentialsFile == "" {
		errs = append(errs, errors.New("sheets.credentials_file is required"))
	}
	if c.IncomeRange == "" || c.ExpenseRange == "" {
		errs = append(errs, errors.New("sheets.income_range and sheets.expense_range are required"))
	}
	return errors.Join(errs...)
}

// InitializeConfig loads the configuration. When configFile is empty the
// standard locations are searched and a missing file is not an error.
func InitializeConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.bank-budget")
		v.AddConfigPath(".bank-budget")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// 5. The API key is also read from the unprefixed variable
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY", EnvPrefix+"_AI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GEMINI_API_KEY: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("mappings.file", "")

	v.SetDefault("categorization.unknown_tag", models.UnknownTag)
	v.SetDefault("categorization.transfer_category", models.TransferCategory)

	v.SetDefault("ai.enabled", false)
	v.SetDefault("ai.model", "gemini-2.0-flash")
	v.SetDefault("ai.timeout_seconds", 30)
	v.SetDefault("ai.api_key", "")

	v.SetDefault("sheets.spreadsheet_id", "")
	v.SetDefault("sheets.income_range", models.SectionTitleIncome+"!A:F")
	v.SetDefault("sheets.expense_range", models.SectionTitleExpense+"!A:F")
	v.SetDefault("sheets.credentials_file", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if strings.TrimSpace(config.Categorization.UnknownTag) == "" {
		return fmt.Errorf("categorization.unknown_tag must not be empty")
	}

	if config.AI.Enabled {
		if config.AI.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY required when AI is enabled")
		}

		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
	}

	return nil
}
