// Package convert handles the bank export to budget CSV command
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"

	"fjacquet/bank-budget/cmd/common"
	"fjacquet/bank-budget/cmd/root"
	"fjacquet/bank-budget/internal/container"
	"fjacquet/bank-budget/internal/logging"
	"fjacquet/bank-budget/internal/resolver"
	"fjacquet/bank-budget/internal/validation"
	"fjacquet/bank-budget/internal/writer"

	"github.com/spf13/cobra"
)

type options struct {
	input       string
	output      string
	interactive bool
	accessible  bool
	clipboard   string
	sheets      bool
}

var flags options

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a bank export into a budget CSV",
	Long: `Convert a bank export into a budget CSV with an income and an expense section.
With --interactive, unknown categories and transfer recipients are asked for
and saved before the export is classified again.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}

		opts := flags
		opts.input = root.SharedFlags.Input
		opts.output = root.SharedFlags.Output

		var prompter resolver.Prompter
		if opts.interactive {
			prompter = resolver.HuhPrompter{Accessible: opts.accessible}
		}
		return run(cmd.Context(), c, opts, prompter, writer.SystemClipboard{}, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().BoolVar(&flags.interactive, "interactive", false, "Ask for unknown categories and recipients and save the answers")
	Cmd.Flags().BoolVar(&flags.accessible, "accessible", false, "Use plain prompts instead of the interactive form")
	Cmd.Flags().StringVar(&flags.clipboard, "clipboard", "", "Copy rows to the clipboard: all, income or expense")
	Cmd.Flags().BoolVar(&flags.sheets, "sheets", false, "Append rows to the configured Google spreadsheet")
}

func run(ctx context.Context, c *container.Container, opts options, prompter resolver.Prompter, clip writer.Clipboard, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.input == "" {
		return errors.New("input file is required (--input)")
	}
	if opts.output == "" && opts.clipboard == "" && !opts.sheets {
		return errors.New("nothing to do: set --output, --clipboard or --sheets")
	}

	if err := validation.InputFile(opts.input); err != nil {
		return err
	}
	if opts.output != "" {
		if err := validation.OutputFile(opts.output); err != nil {
			return err
		}
	}

	var section writer.ClipboardSection
	if opts.clipboard != "" {
		var err error
		if section, err = writer.ParseClipboardSection(opts.clipboard); err != nil {
			return err
		}
	}
	if opts.sheets {
		if err := c.GetConfig().Sheets.Validate(); err != nil {
			return fmt.Errorf("google sheets publishing is not configured: %w", err)
		}
	}

	logger := c.GetLogger().WithField(logging.FieldInputFile, opts.input)
	result, err := common.NewPipeline(c, prompter).Run(ctx, opts.input)
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := c.GetWriter().WriteFile(result.Output, opts.output); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote %d income and %d expense rows to %s\n",
			len(result.Output.Income), len(result.Output.Expense), opts.output)
	}

	if section != "" {
		if err := clip.WriteAll(writer.ClipboardText(result.Output, section)); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintf(stdout, "Copied %s rows to the clipboard\n", section)
	}

	if opts.sheets {
		publisher, err := c.NewPublisher(ctx)
		if err != nil {
			return err
		}
		if err := publisher.Publish(ctx, result.Output); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Appended rows to Google Sheets")
	}

	if result.Applied > 0 {
		fmt.Fprintf(stdout, "Saved %d new mappings\n", result.Applied)
	}
	if n := len(result.Unresolved); n > 0 {
		fmt.Fprintf(stdout, "%d mappings are still unresolved; run with --interactive to resolve them\n", n)
	}

	logger.Info("Conversion completed successfully",
		logging.Field{Key: logging.FieldCount, Value: result.Output.Len()})
	return nil
}
