package mappings

import (
	"bytes"
	"path/filepath"
	"testing"

	"fjacquet/bank-budget/internal/models"
	"fjacquet/bank-budget/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	snap := models.NewMappingSnapshot("Кирилл")
	snap.Tags = []string{"Еда", "Подарок"}
	snap.CategoryMap["Супермаркеты"] = "Еда"
	snap.VendorOverrides["Анна С."] = models.VendorOverride{Tag: "Подарок", Purpose: "ДР Анны"}
	snap.SkipDescriptions = models.SetOf("Между своими счетами")
	snap.IncomeCategories = models.SetOf("Пополнения")

	var out bytes.Buffer
	require.NoError(t, list(store.NewMockStore(snap), &out))

	text := out.String()
	assert.Contains(t, text, "Owner: Кирилл")
	assert.Contains(t, text, "Tags: Еда, Подарок")
	assert.Contains(t, text, "Income categories: Пополнения")
	assert.Contains(t, text, "Category mappings (1)")
	assert.Contains(t, text, "Супермаркеты")
	assert.Contains(t, text, "ДР Анны")
	assert.Contains(t, text, "Между своими счетами")
}

func TestEditCommands(t *testing.T) {
	snap := models.NewMappingSnapshot("Кирилл")
	snap.Tags = []string{"Еда", "Подарок"}
	s := store.NewMockStore(snap)
	var out bytes.Buffer

	require.NoError(t, setCategory(s, &out, []string{"Кино", "Развлечения"}))
	require.NoError(t, setVendor(s, &out, []string{"Анна С.", "Подарок"}))
	require.NoError(t, setVendor(s, &out, []string{"Иван П.", "Подарок", "Долг"}))
	require.NoError(t, skipAdd(s, &out, []string{"Между своими счетами"}))
	require.NoError(t, setOwner(s, &out, []string{" Анна "}))

	got := s.Snapshot
	assert.Equal(t, "Развлечения", got.CategoryMap["Кино"])
	assert.Equal(t, models.VendorOverride{Tag: "Подарок", Purpose: "Анна С."}, got.VendorOverrides["Анна С."])
	assert.Equal(t, "Долг", got.VendorOverrides["Иван П."].Purpose)
	assert.True(t, got.IsSkipped("Между своими счетами"))
	assert.Equal(t, "Анна", got.Owner)
	assert.Contains(t, out.String(), `note: "Развлечения" is not one of the configured tags`)

	require.NoError(t, skipRemove(s, &out, []string{"Между своими счетами"}))
	assert.False(t, s.Snapshot.IsSkipped("Между своими счетами"))

	assert.Error(t, setOwner(s, &out, []string{"  "}))
}

func TestInitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.yaml")
	s := store.NewYAMLStore(path, nil)
	var out bytes.Buffer

	require.NoError(t, initFile(s, &out, false))
	assert.FileExists(t, path)
	assert.Contains(t, out.String(), path)

	err := initFile(s, &out, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	require.NoError(t, initFile(s, &out, true))

	snap, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, store.DefaultSnapshot().Owner, snap.Owner)
}

func TestInitFile_MockStore(t *testing.T) {
	s := store.NewMockStore(models.NewMappingSnapshot("Анна"))
	require.NoError(t, initFile(s, &bytes.Buffer{}, false))
	assert.Equal(t, 1, s.SaveCalls)
	assert.Equal(t, store.DefaultOwner, s.Snapshot.Owner)
}
