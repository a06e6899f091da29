package models

// Bank export values
const (
	// StatusOK marks a settled operation; every other status is dropped.
	StatusOK = "OK"

	// TransferCategory is the bank category for person-to-person transfers.
	// Unmapped transfers are escalated per description as vendor candidates.
	TransferCategory = "Переводы"
)

// Tags
const (
	// UnknownTag is assigned to transactions that no mapping could resolve.
	UnknownTag = "Неизвестно"
)

// Output sections
const (
	SectionTitleIncome  = "Доход"
	SectionTitleExpense = "Расход"
)

// Output column headers, in row order.
const (
	HeaderOwner   = "Чей"
	HeaderDate    = "Дата"
	HeaderAmount  = "Сумма"
	HeaderPurpose = "Назначение"
	HeaderTag     = "Тег"
	HeaderComment = "Комментарий"
)

// OutputHeaders lists the six fixed output columns.
var OutputHeaders = []string{
	HeaderOwner, HeaderDate, HeaderAmount, HeaderPurpose, HeaderTag, HeaderComment,
}

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
