package resolver

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"fjacquet/bank-budget/internal/models"

	"github.com/charmbracelet/huh"
)

// HuhPrompter asks for every unresolved mapping in a terminal form.
type HuhPrompter struct {
	// Accessible switches huh to plain prompts for screen readers and dumb
	// terminals.
	Accessible bool
}

// Ask shows one group per mapping: a tag select and, for vendors, a
// purpose input. A final confirmation lets the user discard all answers.
// Aborting the form returns no resolutions and no error.
func (p HuhPrompter) Ask(ctx context.Context, items []models.UnresolvedMapping, tags []string) ([]Resolution, error) {
	if len(items) == 0 {
		return nil, nil
	}

	resolutions := Defaults(items)
	groups := make([]*huh.Group, 0, len(items)+1)
	for i := range resolutions {
		groups = append(groups, mappingGroup(&resolutions[i], i+1, len(items), tags))
	}

	save := true
	groups = append(groups, huh.NewGroup(
		huh.NewConfirm().
			Title("Сохранить сопоставления?").
			Affirmative("Сохранить").
			Negative("Пропустить").
			Value(&save),
	))

	form := huh.NewForm(groups...).WithAccessible(p.Accessible)
	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	if !save {
		for i := range resolutions {
			resolutions[i].Skip = true
		}
	}
	return resolutions, nil
}

func mappingGroup(r *Resolution, n, total int, tags []string) *huh.Group {
	label := "Категория"
	if r.Mapping.Kind == models.MappingVendor {
		label = "Получатель"
	}

	fields := []huh.Field{
		huh.NewSelect[string]().
			Title(fmt.Sprintf("[%d/%d] %s: %s", n, total, label, r.Mapping.Key)).
			Options(huh.NewOptions(tagOptions(tags, r.Tag)...)...).
			Value(&r.Tag),
	}
	if r.Mapping.Kind == models.MappingVendor {
		fields = append(fields, huh.NewInput().
			Title("Назначение").
			Value(&r.Purpose))
	}
	return huh.NewGroup(fields...)
}

// tagOptions lists the allowed tags, making sure the current value is
// selectable even when it is not one of them.
func tagOptions(tags []string, current string) []string {
	opts := slices.Clone(tags)
	if current != "" && !slices.Contains(opts, current) {
		opts = append(opts, current)
	}
	return opts
}
