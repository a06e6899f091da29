package categorizer

import (
	"testing"

	"fjacquet/bank-budget/internal/logging"
	"fjacquet/bank-budget/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *models.MappingSnapshot {
	snap := models.NewMappingSnapshot("Кирилл")
	snap.Tags = []string{"Еда", "Транспорт", "Кафе", "Зарплата", "Подарки"}
	snap.CategoryMap["Супермаркеты"] = "Еда"
	snap.CategoryMap["Такси"] = "Транспорт"
	snap.CategoryMap["Рестораны"] = "Кафе"
	snap.VendorOverrides["Кофейня Зерно"] = models.VendorOverride{Tag: "Кафе", Purpose: "Кофе"}
	snap.VendorOverrides["Иван П."] = models.VendorOverride{Tag: "Подарки"}
	snap.SkipDescriptions = models.SetOf("Между своими счетами")
	snap.IncomeCategories = models.SetOf("Зарплата")
	return snap
}

func raw(date, status, amount, category, description string) models.RawTransaction {
	return models.RawTransaction{
		OperationDate: date,
		Status:        status,
		Amount:        amount,
		Category:      category,
		Description:   description,
	}
}

func newTestCategorizer() (*Categorizer, *logging.MockLogger) {
	logger := logging.NewMockLogger()
	return NewCategorizer(Options{}, logger), logger
}

func TestConvert_EndToEndSupermarket(t *testing.T) {
	c, _ := newTestCategorizer()

	out, unresolved := c.Convert([]models.RawTransaction{
		raw("27.12.2025 14:03:11", "OK", "-1234,56", "Супермаркеты", "Пятёрочка"),
	}, testSnapshot())

	require.Len(t, out, 1)
	assert.Empty(t, unresolved)

	tx := out[0]
	assert.Equal(t, "Кирилл", tx.Owner)
	assert.Equal(t, "27.12.2025", tx.Date)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "Пятёрочка", tx.Purpose)
	assert.Equal(t, "Еда", tx.Tag)
	assert.Equal(t, "", tx.Comment)
	assert.Equal(t, models.KindExpense, tx.Kind)
	assert.Equal(t, "1234,56", models.FormatAmount(tx.Amount))
}

func TestConvert_Filtering(t *testing.T) {
	tests := []struct {
		name string
		tx   models.RawTransaction
	}{
		{"non-OK status", raw("01.12.2025", "FAILED", "-100", "Супермаркеты", "Магнит")},
		{"empty status", raw("01.12.2025", "", "-100", "Супермаркеты", "Магнит")},
		{"lowercase ok is not OK", raw("01.12.2025", "ok", "-100", "Супермаркеты", "Магнит")},
		{"skip list", raw("01.12.2025", "OK", "-5000", "Переводы", "Между своими счетами")},
		{"zero amount", raw("01.12.2025", "OK", "0,00", "Супермаркеты", "Магнит")},
		{"empty amount", raw("01.12.2025", "OK", "", "Супермаркеты", "Магнит")},
		{"malformed amount", raw("01.12.2025", "OK", "abc", "Кино", "Синема")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCategorizer()

			out, unresolved := c.Convert([]models.RawTransaction{tt.tx}, testSnapshot())

			assert.Empty(t, out)
			assert.Empty(t, unresolved, "dropped rows never produce unresolved mappings")
		})
	}
}

func TestConvert_Kind(t *testing.T) {
	tests := []struct {
		name     string
		tx       models.RawTransaction
		expected models.TransactionKind
	}{
		{"positive amount is income", raw("01.12.2025", "OK", "150", "Кэшбэк", "Банк"), models.KindIncome},
		{"negative amount is expense", raw("01.12.2025", "OK", "-150", "Такси", "Яндекс Go"), models.KindExpense},
		{"income category overrides sign", raw("01.12.2025", "OK", "-50000", "Зарплата", "ООО Ромашка"), models.KindIncome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestCategorizer()

			out, _ := c.Convert([]models.RawTransaction{tt.tx}, testSnapshot())

			require.Len(t, out, 1)
			assert.Equal(t, tt.expected, out[0].Kind)
			assert.True(t, out[0].Amount.IsPositive())
		})
	}
}

func TestConvert_IncomeCategoryNegativeAmountIsUnsigned(t *testing.T) {
	c, _ := newTestCategorizer()

	out, _ := c.Convert([]models.RawTransaction{
		raw("01.12.2025", "OK", "-50 000,00", "Зарплата", "ООО Ромашка"),
	}, testSnapshot())

	require.Len(t, out, 1)
	assert.Equal(t, models.KindIncome, out[0].Kind)
	assert.True(t, out[0].Amount.Equal(decimal.NewFromInt(50000)))
}

func TestConvert_VendorOverrideTakesPrecedence(t *testing.T) {
	c, _ := newTestCategorizer()

	out, unresolved := c.Convert([]models.RawTransaction{
		raw("02.12.2025", "OK", "-250", "Рестораны", "Кофейня Зерно"),
		raw("03.12.2025", "OK", "-3000", "Переводы", "Иван П."),
	}, testSnapshot())

	require.Len(t, out, 2)
	assert.Empty(t, unresolved)

	assert.Equal(t, "Кафе", out[0].Tag)
	assert.Equal(t, "Кофе", out[0].Purpose, "override purpose replaces the description")

	assert.Equal(t, "Подарки", out[1].Tag)
	assert.Equal(t, "Иван П.", out[1].Purpose, "empty override purpose keeps the description")
}

func TestConvert_UnknownCategoryIsRecordedOnce(t *testing.T) {
	c, _ := newTestCategorizer()

	out, unresolved := c.Convert([]models.RawTransaction{
		raw("01.12.2025", "OK", "-500", "Кино", "Синема Парк"),
		raw("02.12.2025", "OK", "-700", "Кино", "Каро"),
		raw("03.12.2025", "OK", "-100", "Аптеки", "Ригла"),
	}, testSnapshot())

	require.Len(t, out, 3)
	for _, tx := range out {
		assert.Equal(t, models.UnknownTag, tx.Tag)
		assert.NotEmpty(t, tx.Purpose)
	}

	assert.Equal(t, []models.UnresolvedMapping{
		{Kind: models.MappingCategory, Key: "Кино", SuggestedTag: models.UnknownTag},
		{Kind: models.MappingCategory, Key: "Аптеки", SuggestedTag: models.UnknownTag},
	}, unresolved)
}

func TestConvert_TransferRecordsCategoryAndVendor(t *testing.T) {
	c, _ := newTestCategorizer()

	_, unresolved := c.Convert([]models.RawTransaction{
		raw("01.12.2025", "OK", "-1000", "Переводы", "Анна С."),
		raw("02.12.2025", "OK", "-2000", "Переводы", "Анна С."),
		raw("03.12.2025", "OK", "-3000", "Переводы", "Пётр К."),
		raw("04.12.2025", "OK", "-4000", "Переводы", ""),
	}, testSnapshot())

	assert.Equal(t, []models.UnresolvedMapping{
		{Kind: models.MappingCategory, Key: "Переводы", SuggestedTag: models.UnknownTag},
		{Kind: models.MappingVendor, Key: "Анна С.", SuggestedTag: models.UnknownTag, SuggestedPurpose: "Анна С."},
		{Kind: models.MappingVendor, Key: "Пётр К.", SuggestedTag: models.UnknownTag, SuggestedPurpose: "Пётр К."},
	}, unresolved)
}

func TestConvert_MappedTransferCategoryDoesNotEscalateVendors(t *testing.T) {
	c, _ := newTestCategorizer()
	snap := testSnapshot()
	snap.CategoryMap["Переводы"] = "Подарки"

	out, unresolved := c.Convert([]models.RawTransaction{
		raw("01.12.2025", "OK", "-1000", "Переводы", "Анна С."),
	}, snap)

	require.Len(t, out, 1)
	assert.Equal(t, "Подарки", out[0].Tag)
	assert.Empty(t, unresolved)
}

func TestConvert_EmptyCategoryIsNotRecorded(t *testing.T) {
	c, _ := newTestCategorizer()

	out, unresolved := c.Convert([]models.RawTransaction{
		raw("01.12.2025", "OK", "-10", "", "Что-то"),
	}, testSnapshot())

	require.Len(t, out, 1)
	assert.Equal(t, models.UnknownTag, out[0].Tag)
	assert.Empty(t, unresolved)
}

func TestConvert_ExactMatchOnly(t *testing.T) {
	c, _ := newTestCategorizer()

	out, unresolved := c.Convert([]models.RawTransaction{
		raw("01.12.2025", "OK", "-10", "супермаркеты", "Магнит"),
	}, testSnapshot())

	require.Len(t, out, 1)
	assert.Equal(t, models.UnknownTag, out[0].Tag)
	require.Len(t, unresolved, 1)
	assert.Equal(t, "супермаркеты", unresolved[0].Key)
}

func TestConvert_Idempotent(t *testing.T) {
	c, _ := newTestCategorizer()
	snap := testSnapshot()
	input := []models.RawTransaction{
		raw("01.12.2025", "OK", "-10", "Кино", "Каро"),
		raw("02.12.2025", "OK", "-20", "Переводы", "Анна С."),
		raw("03.12.2025", "OK", "300", "Супермаркеты", "Возврат"),
	}

	out1, unresolved1 := c.Convert(input, snap)
	out2, unresolved2 := c.Convert(input, snap)

	assert.Equal(t, out1, out2)
	assert.Equal(t, unresolved1, unresolved2)
}

func TestConvert_OutputPreservesInputOrder(t *testing.T) {
	c, _ := newTestCategorizer()

	out, _ := c.Convert([]models.RawTransaction{
		raw("27.12.2025", "OK", "-1", "Такси", "B"),
		raw("05.12.2025", "OK", "-2", "Такси", "A"),
		raw("01.01.2026", "OK", "3", "Такси", "C"),
	}, testSnapshot())

	require.Len(t, out, 3)
	assert.Equal(t, "B", out[0].Purpose)
	assert.Equal(t, "A", out[1].Purpose)
	assert.Equal(t, "C", out[2].Purpose)
}

func TestConvert_EmptyInput(t *testing.T) {
	c, _ := newTestCategorizer()

	out, unresolved := c.Convert(nil, testSnapshot())

	assert.NotNil(t, out)
	assert.NotNil(t, unresolved)
	assert.Empty(t, out)
	assert.Empty(t, unresolved)
}

func TestConvert_NilSnapshotPanics(t *testing.T) {
	c, _ := newTestCategorizer()

	assert.Panics(t, func() {
		c.Convert([]models.RawTransaction{raw("01.12.2025", "OK", "-1", "Такси", "A")}, nil)
	})
}

func TestConvert_DoesNotMutateSnapshot(t *testing.T) {
	c, _ := newTestCategorizer()
	snap := testSnapshot()
	before := snap.Clone()

	c.Convert([]models.RawTransaction{
		raw("01.12.2025", "OK", "-10", "Кино", "Каро"),
		raw("02.12.2025", "OK", "-20", "Переводы", "Анна С."),
	}, snap)

	assert.Equal(t, before, snap)
}

func TestConvert_CustomOptions(t *testing.T) {
	c := NewCategorizer(Options{UnknownTag: "???", TransferCategory: "Transfers"}, logging.NewMockLogger())

	out, unresolved := c.Convert([]models.RawTransaction{
		raw("01.12.2025", "OK", "-10", "Transfers", "Bob"),
	}, testSnapshot())

	require.Len(t, out, 1)
	assert.Equal(t, "???", out[0].Tag)
	require.Len(t, unresolved, 2)
	assert.Equal(t, models.MappingVendor, unresolved[1].Kind)
	assert.Equal(t, "???", unresolved[1].SuggestedTag)
}

func TestConvert_LogsSummary(t *testing.T) {
	c, logger := newTestCategorizer()

	c.Convert([]models.RawTransaction{
		raw("01.12.2025", "OK", "-10", "Кино", "Каро"),
		raw("01.12.2025", "DECLINED", "-10", "Кино", "Каро"),
	}, testSnapshot())

	require.True(t, logger.HasEntry("INFO", "Conversion summary"))
	total, _ := logger.FieldValue("Conversion summary", "total")
	unknown, _ := logger.FieldValue("Conversion summary", "unknown")
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, unknown)
	assert.True(t, logger.HasEntry("INFO", "Unmapped bank category"))
}

func TestNewCategorizer_Defaults(t *testing.T) {
	c := NewCategorizer(Options{}, nil)

	assert.Equal(t, DefaultOptions(), c.Options())
	assert.Len(t, c.strategies, 2)
	assert.Equal(t, "VendorOverride", c.strategies[0].Name())
	assert.Equal(t, "CategoryMapping", c.strategies[1].Name())
}
