package store

import (
	"fjacquet/bank-budget/internal/models"
)

// DefaultOwner is used until the user sets their own name.
const DefaultOwner = "Кирилл"

// DefaultSnapshot returns the built-in mapping tables used when no mapping
// file exists yet. Each call returns a fresh copy.
//
// These defaults intentionally differ from the ones shipped by earlier
// versions: "Переводы" has no category mapping, so every transfer recipient
// is asked about as a vendor mapping instead of landing in "Неизвестно", and
// "Доставка" and "Учёба" are part of the output tags. A migrated mapping file
// that still maps "Переводы" keeps the old behaviour.
func DefaultSnapshot() *models.MappingSnapshot {
	snap := models.NewMappingSnapshot(DefaultOwner)

	snap.Tags = []string{
		"Зп", "Возврат", "Транспорт", "Еда", "Развлечения",
		"Дом", "Здоровье", "Подарок", "Доставка", "Учёба", models.UnknownTag,
	}

	snap.CategoryMap = map[string]string{
		"Супермаркеты":      "Еда",
		"Фастфуд":           "Еда",
		"Рестораны":         "Еда",
		"Местный транспорт": "Транспорт",
		"Аптеки":            "Здоровье",
		"Тренировки":        "Здоровье",
		"Цифровые товары":   "Развлечения",
		"Маркетплейсы":      "Еда",
		"Мобильная связь":   "Дом",
		"Связь":             "Дом",
		"Зарплата":          "Зп",
		"Бонусы":            "Зп",
		"Проценты":          "Зп",
		"Сервис":            "Доставка",
		"Госуслуги":         "Дом",
		"Ремонт и мебель":   "Дом",
		"Искусство":         "Развлечения",
		"Доставка":          "Развлечения",
		"Финансы":           models.UnknownTag,
	}

	for _, v := range []struct{ vendor, tag, purpose string }{
		{"Boosty.to", "Развлечения", "Boosty"},
		{"СДЭК", "Доставка", "СДЭК"},
		{"Ozon.ru", "Дом", "Подписка на озон"},
		{"Московский метрополитен", "Транспорт", "Метро"},
		{"ВкусВилл", "Еда", "ВкусВилл"},
		{"Вкусно — и точка", "Еда", "Макдоналдс"},
		{"ИгроМагаз", "Развлечения", "Игры"},
		{"YoBody Fitness", "Здоровье", "Спортзал"},
		{"Яндекс 360", "Дом", "Яндекс 360"},
		{"МТС", "Развлечения", "Стим"},
		{"Plati.Market", "Развлечения", "Игры"},
		{"Ароматный мир", "Еда", "Ароматный мир"},
		{"Магнит", "Еда", "Магнит"},
		{"Перекрёсток", "Еда", "Перекрёсток"},
		{"Пятёрочка", "Еда", "Пятёрочка"},
		{"Почта России", "Доставка", "Почта России"},
		{"DNS", "Дом", "DNS"},
		{"Яндекс Сервисы", "Развлечения", "Яндекс"},
		{"Альфа-Банк", "Еда", "Перекрёсток"},
		{"Вайлдберриз Банк", models.UnknownTag, "Wildberries"},
		{"Дмитрий Ц.", "Здоровье", "Тренер"},
		{"Сергей Ц.", "Учёба", "C++"},
		{"Сая И.", "Учёба", "Японский"},
		{"Перевод юридическому лицу", "Здоровье", "Психолог"},
		{"Наталья С.", "Дом", "Аренда"},
		{"Кирилл Е.", "Еда", "Озон"},
		{"Kirill E.", "Развлечения", "Оплата с киргизской карты"},
		{"Операция в других кредитных организациях YANDEXBANK_C2A G. MOSKVA RUS", "Транспорт", "Такси"},
	} {
		snap.VendorOverrides[v.vendor] = models.VendorOverride{Tag: v.tag, Purpose: v.purpose}
	}

	snap.SkipDescriptions = models.SetOf("Между своими счетами", "Елизавета У.")
	snap.IncomeCategories = models.SetOf("Зарплата", "Бонусы", "Проценты")

	return snap
}
