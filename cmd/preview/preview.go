// Package preview shows how an export would be classified without writing
// anything.
package preview

import (
	"context"
	"fmt"
	"io"
	"strings"

	"fjacquet/bank-budget/cmd/common"
	"fjacquet/bank-budget/cmd/root"
	"fjacquet/bank-budget/internal/container"
	"fjacquet/bank-budget/internal/models"
	"fjacquet/bank-budget/internal/validation"
	"fjacquet/bank-budget/internal/writer"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginTop(1)
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	unknownStyle = cellStyle.Foreground(lipgloss.Color("205"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Cmd represents the preview command
var Cmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the classified budget without writing files",
	Long: `Classify a bank export with the saved mappings and print the income and
expense sections and the list of unresolved categories and recipients.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		input, err := root.RequireInput()
		if err != nil {
			return err
		}
		return run(cmd.Context(), c, input, cmd.OutOrStdout())
	},
}

func run(ctx context.Context, c *container.Container, input string, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := validation.InputFile(input); err != nil {
		return err
	}
	result, err := common.NewPipeline(c, nil).Run(ctx, input)
	if err != nil {
		return err
	}

	unknownTag := c.GetCategorizer().Options().UnknownTag
	var b strings.Builder
	for _, kind := range []models.TransactionKind{models.KindIncome, models.KindExpense} {
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", writer.SectionTitle(kind), len(result.Output.Section(kind)))))
		b.WriteString("\n")
		b.WriteString(sectionTable(result.Output.Rows(kind), unknownTag).Render())
		b.WriteString("\n")
	}

	if len(result.Unresolved) > 0 {
		b.WriteString(titleStyle.Render(fmt.Sprintf("Unresolved (%d)", len(result.Unresolved))))
		b.WriteString("\n")
		b.WriteString(unresolvedTable(result.Unresolved).Render())
		b.WriteString("\n")
	}

	_, err = io.WriteString(stdout, b.String())
	return err
}

func sectionTable(rows []writer.Row, unknownTag string) *table.Table {
	tagColumn := len(models.OutputHeaders) - 2

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(models.OutputHeaders...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == tagColumn && row >= 0 && row < len(rows) && rows[row].Tag == unknownTag:
				return unknownStyle
			default:
				return cellStyle
			}
		})
	for _, r := range rows {
		t.Row(r.Fields()...)
	}
	return t
}

func unresolvedTable(items []models.UnresolvedMapping) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("Kind", "Key").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, m := range items {
		t.Row(string(m.Kind), m.Key)
	}
	return t
}
