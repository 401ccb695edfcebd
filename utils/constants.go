package utils

const (
	// Split types
	SplitTypeEqual      = "equal"
	SplitTypePercentage = "percentage"
	SplitTypeCustom     = "custom"
	SplitTypeItemized   = "itemized"

	// Balance statuses
	StatusOwedMoney = "owed_money"
	StatusOwesMoney = "owes_money"
	StatusSettled   = "settled"

	// Error messages
	ErrInvalidRequest = "Invalid request"

	// Precision for monetary calculations
	MoneyPrecision = 100.0

	// Balances within this band of zero count as settled
	SettledEpsilon = 0.01

	// Default currency for expenses
	DefaultCurrency = "USD"

	// Default expense type
	DefaultExpenseType = "general"
)
