// Package mappings manages the saved category mappings, vendor overrides
// and skip list.
package mappings

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"fjacquet/bank-budget/cmd/root"
	"fjacquet/bank-budget/internal/store"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	force bool
)

// fileStore is implemented by stores backed by a file on disk.
type fileStore interface {
	Path() string
	Exists() bool
}

// Cmd represents the mappings command
var Cmd = &cobra.Command{
	Use:   "mappings",
	Short: "Inspect and edit saved mappings",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print owner, tags, category mappings, vendor overrides and skip list",
	Args:  cobra.NoArgs,
	RunE: withStore(func(s store.MappingStore, out io.Writer, _ []string) error {
		return list(s, out)
	}),
}

var setCategoryCmd = &cobra.Command{
	Use:   "set-category <category> <tag>",
	Short: "Map a bank category to a budget tag",
	Args:  cobra.ExactArgs(2),
	RunE:  withStore(setCategory),
}

var setVendorCmd = &cobra.Command{
	Use:   "set-vendor <description> <tag> [purpose]",
	Short: "Tag every transaction with this exact description",
	Args:  cobra.RangeArgs(2, 3),
	RunE:  withStore(setVendor),
}

var skipCmd = &cobra.Command{
	Use:   "skip",
	Short: "Manage descriptions that are left out of the budget",
}

var skipAddCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Leave transactions with this description out of the budget",
	Args:  cobra.ExactArgs(1),
	RunE:  withStore(skipAdd),
}

var skipRemoveCmd = &cobra.Command{
	Use:   "remove <description>",
	Short: "Include transactions with this description again",
	Args:  cobra.ExactArgs(1),
	RunE:  withStore(skipRemove),
}

var ownerCmd = &cobra.Command{
	Use:   "owner <name>",
	Short: "Set the owner written in the first output column",
	Args:  cobra.ExactArgs(1),
	RunE:  withStore(setOwner),
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in mappings to the mapping file",
	Args:  cobra.NoArgs,
	RunE: withStore(func(s store.MappingStore, out io.Writer, _ []string) error {
		return initFile(s, out, force)
	}),
}

func init() {
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing mapping file")

	skipCmd.AddCommand(skipAddCmd, skipRemoveCmd)
	Cmd.AddCommand(listCmd, setCategoryCmd, setVendorCmd, skipCmd, ownerCmd, initCmd)
}

func withStore(fn func(s store.MappingStore, out io.Writer, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := root.GetContainer()
		if err != nil {
			return err
		}
		return fn(c.GetStore(), cmd.OutOrStdout(), args)
	}
}

func list(s store.MappingStore, out io.Writer) error {
	snap, err := s.Load()
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Owner: %s\n", snap.Owner)
	fmt.Fprintf(&b, "Tags: %s\n", strings.Join(snap.Tags, ", "))
	fmt.Fprintf(&b, "Income categories: %s\n", strings.Join(snap.SortedIncomeCategories(), ", "))

	categories := slices.Sorted(maps.Keys(snap.CategoryMap))
	b.WriteString(titleStyle.Render(fmt.Sprintf("Category mappings (%d)", len(categories))))
	b.WriteString("\n")
	t := newTable("Category", "Tag")
	for _, c := range categories {
		t.Row(c, snap.CategoryMap[c])
	}
	b.WriteString(t.Render())
	b.WriteString("\n")

	vendors := slices.Sorted(maps.Keys(snap.VendorOverrides))
	b.WriteString(titleStyle.Render(fmt.Sprintf("Vendor overrides (%d)", len(vendors))))
	b.WriteString("\n")
	t = newTable("Description", "Tag", "Purpose")
	for _, v := range vendors {
		o := snap.VendorOverrides[v]
		t.Row(v, o.Tag, o.Purpose)
	}
	b.WriteString(t.Render())
	b.WriteString("\n")

	skips := snap.SortedSkipDescriptions()
	b.WriteString(titleStyle.Render(fmt.Sprintf("Skipped descriptions (%d)", len(skips))))
	b.WriteString("\n")
	for _, d := range skips {
		fmt.Fprintf(&b, "  %s\n", d)
	}

	_, err = io.WriteString(out, b.String())
	return err
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func setCategory(s store.MappingStore, out io.Writer, args []string) error {
	category, tag := args[0], args[1]
	if err := s.UpsertCategory(category, tag); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s -> %s\n", category, tag)
	return warnUnknownTag(s, out, tag)
}

func setVendor(s store.MappingStore, out io.Writer, args []string) error {
	description, tag := args[0], args[1]
	purpose := description
	if len(args) == 3 && strings.TrimSpace(args[2]) != "" {
		purpose = args[2]
	}
	if err := s.UpsertVendor(description, tag, purpose); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s -> %s (%s)\n", description, tag, purpose)
	return warnUnknownTag(s, out, tag)
}

func warnUnknownTag(s store.MappingStore, out io.Writer, tag string) error {
	snap, err := s.Load()
	if err != nil {
		return err
	}
	if !snap.HasTag(tag) {
		fmt.Fprintf(out, "note: %q is not one of the configured tags\n", tag)
	}
	return nil
}

func skipAdd(s store.MappingStore, out io.Writer, args []string) error {
	if err := s.AddSkipDescription(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(out, "Skipping %q\n", args[0])
	return nil
}

func skipRemove(s store.MappingStore, out io.Writer, args []string) error {
	if err := s.RemoveSkipDescription(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(out, "No longer skipping %q\n", args[0])
	return nil
}

func setOwner(s store.MappingStore, out io.Writer, args []string) error {
	owner := strings.TrimSpace(args[0])
	if owner == "" {
		return fmt.Errorf("owner must not be empty")
	}
	if err := s.SetOwner(owner); err != nil {
		return err
	}
	fmt.Fprintf(out, "Owner set to %s\n", owner)
	return nil
}

func initFile(s store.MappingStore, out io.Writer, overwrite bool) error {
	location := "mapping store"
	if fs, ok := s.(fileStore); ok {
		location = fs.Path()
		if fs.Exists() && !overwrite {
			return fmt.Errorf("%s already exists (use --force to overwrite)", location)
		}
	}
	if err := s.Save(store.DefaultSnapshot()); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote default mappings to %s\n", location)
	return nil
}
