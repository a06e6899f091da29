// Package root contains the root command for the application
package root

import (
	"errors"
	"fmt"

	"fjacquet/bank-budget/internal/config"
	"fjacquet/bank-budget/internal/container"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input    string
	Output   string
	Config   string
	LogLevel string
}

var (
	// SharedFlags is filled by the persistent flags of Cmd.
	SharedFlags = CommonFlags{}

	// AppContainer is built before any subcommand runs.
	AppContainer *container.Container

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "bank-budget",
		Short: "Turn bank transaction exports into an income/expense budget.",
		Long: `bank-budget reads a bank export (semicolon separated CSV or XLSX), tags every
transaction from your saved mappings and writes a two-section budget CSV.
Unknown bank categories and transfer recipients can be resolved interactively
and are remembered for the next run.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if AppContainer == nil {
				return
			}
			if err := AppContainer.Close(); err != nil {
				AppContainer.GetLogger().WithError(err).Warn("Failed to release resources")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input bank export (.csv or .xlsx)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output budget CSV file")
	Cmd.PersistentFlags().StringVar(&SharedFlags.Config, "config", "", "Config file (default $HOME/.bank-budget/config.yaml)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Override log level (trace, debug, info, warn, error)")
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.InitializeConfig(SharedFlags.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return err
	}
	AppContainer = c
	return nil
}

// GetContainer returns the application container.
func GetContainer() (*container.Container, error) {
	if AppContainer == nil {
		return nil, errors.New("application container not initialized")
	}
	return AppContainer, nil
}

// RequireInput returns the --input value or an error when it is missing.
func RequireInput() (string, error) {
	if SharedFlags.Input == "" {
		return "", errors.New("input file is required (--input)")
	}
	return SharedFlags.Input, nil
}
