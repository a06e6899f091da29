package preview

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/bank-budget/internal/config"
	"fjacquet/bank-budget/internal/container"
	"fjacquet/bank-budget/internal/logging"
	"fjacquet/bank-budget/internal/models"
	"fjacquet/bank-budget/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = `Дата операции;Статус;Сумма операции;Категория;Описание
"05.12.2025 12:00:00";"OK";"-1500,00";"Супермаркеты";"Пятёрочка"
"06.12.2025 10:00:00";"OK";"-700,00";"Переводы";"Анна С."
"02.12.2025 09:00:00";"OK";"20000,00";"Пополнения";"Зарплата"
`

func TestRun(t *testing.T) {
	snap := models.NewMappingSnapshot("Кирилл")
	snap.CategoryMap["Супермаркеты"] = "Еда"
	snap.CategoryMap["Пополнения"] = "Зарплата"
	s := store.NewMockStore(snap)

	c, err := container.NewContainerWithStore(&config.Config{}, s, logging.NewMockLogger())
	require.NoError(t, err)

	input := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(input, []byte(export), 0600))

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), c, input, &out))

	text := out.String()
	assert.Contains(t, text, "Доход (1)")
	assert.Contains(t, text, "Расход (2)")
	assert.Contains(t, text, "Пятёрочка")
	assert.Contains(t, text, "Unresolved (2)")
	assert.Contains(t, text, "Переводы")
	assert.Contains(t, text, "Анна С.")
	assert.Equal(t, 0, s.SaveCalls, "preview never writes mappings")
}

func TestRun_MissingFile(t *testing.T) {
	c, err := container.NewContainerWithStore(&config.Config{}, store.NewMockStore(nil), nil)
	require.NoError(t, err)

	err = run(context.Background(), c, filepath.Join(t.TempDir(), "missing.csv"), &bytes.Buffer{})
	assert.Error(t, err)
}
