// models/models.go
package models

// Member represents a group member as supplied by the membership store.
// Immutable for the duration of a split computation.
type Member struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
}

// Expense represents a shared expense paid by one member of a group
type Expense struct {
	ID          int64   `json:"expenseId"`
	GroupID     int64   `json:"groupId"`
	PayerID     int64   `json:"payerId"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
	ExpenseDate string  `json:"expenseDate"`
	Location    string  `json:"location,omitempty"`
	Type        string  `json:"type"`
	SplitType   string  `json:"splitType"`
}

// Share represents one member's allocated portion of an expense.
// The shares of an expense always sum to exactly the expense amount.
type Share struct {
	ExpenseID   int64   `json:"expenseId,omitempty"`
	UserID      int64   `json:"userId"`
	UserName    string  `json:"userName"`
	ShareAmount float64 `json:"shareAmount"`
	Percentage  float64 `json:"percentage"`
}

// Item represents a receipt line in an itemized split. An empty AssignedUsers
// set means the price is pooled and split among all group members.
type Item struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	AssignedUsers []int64 `json:"assignedUsers,omitempty"`
}

// Balance is a member's net position within a group, derived on demand from
// the expense and share history, never persisted.
type Balance struct {
	UserID  int64   `json:"userId"`
	Name    string  `json:"name"`
	Paid    float64 `json:"paid"`
	Owes    float64 `json:"owes"`
	Balance float64 `json:"balance"`
	Status  string  `json:"status"`
}

// Settlement is a suggested transfer between two members. Advisory only.
type Settlement struct {
	FromUserID int64   `json:"fromUserId"`
	FromName   string  `json:"fromName"`
	ToUserID   int64   `json:"toUserId"`
	ToName     string  `json:"toName"`
	Amount     float64 `json:"amount"`
}

// SettlementResult bundles the suggested transfers with the balance snapshot
// they were derived from
type SettlementResult struct {
	Settlements []Settlement       `json:"settlements"`
	Balances    map[int64]*Balance `json:"balances"`
}

// SplitConfig is the strategy-specific allocation input. Exactly one concrete
// config type exists per split type; the engine dispatches on the dynamic type.
type SplitConfig interface {
	SplitType() string
}

// EqualConfig splits the total equally among all members except the excluded
type EqualConfig struct {
	ExcludedUsers []int64
}

func (EqualConfig) SplitType() string { return "equal" }

// PercentageConfig allocates by per-user percentages that must sum to 100
type PercentageConfig struct {
	Percentages map[int64]float64
}

func (PercentageConfig) SplitType() string { return "percentage" }

// CustomConfig allocates caller-asserted fixed amounts that must sum to the total
type CustomConfig struct {
	Amounts map[int64]float64
}

func (CustomConfig) SplitType() string { return "custom" }

// ItemizedConfig allocates per receipt line; unassigned lines pool into an
// equal split across the whole group
type ItemizedConfig struct {
	Items []Item
}

func (ItemizedConfig) SplitType() string { return "itemized" }

// SplitExpenseRequest is the caller-facing request to create and split an expense
type SplitExpenseRequest struct {
	GroupID       int64             `json:"groupId" binding:"required"`
	PayerID       int64             `json:"payerId" binding:"required"`
	Amount        float64           `json:"amount" binding:"required,gt=0"`
	Description   string            `json:"description" binding:"required"`
	ExpenseDate   string            `json:"expenseDate"`
	Location      string            `json:"location"`
	Type          string            `json:"type"`
	SplitType     string            `json:"splitType" binding:"required"`
	ExcludedUsers []int64           `json:"excludedUsers,omitempty"`
	Percentages   map[int64]float64 `json:"percentages,omitempty"`
	Amounts       map[int64]float64 `json:"amounts,omitempty"`
	Items         []Item            `json:"items,omitempty"`
	ReceiptText   string            `json:"receiptText,omitempty"`
}

// SplitExpenseResponse is the caller-facing result of a persisted split
type SplitExpenseResponse struct {
	ExpenseID   int64            `json:"expenseId"`
	TotalAmount float64          `json:"totalAmount"`
	SplitType   string           `json:"splitType"`
	Splits      map[int64]*Share `json:"splits"`
}

// CalculateSplitRequest computes a split without persisting anything
type CalculateSplitRequest struct {
	GroupID       int64             `json:"groupId" binding:"required"`
	Amount        float64           `json:"amount" binding:"required,gt=0"`
	SplitType     string            `json:"splitType" binding:"required"`
	ExcludedUsers []int64           `json:"excludedUsers,omitempty"`
	Percentages   map[int64]float64 `json:"percentages,omitempty"`
	Amounts       map[int64]float64 `json:"amounts,omitempty"`
	Items         []Item            `json:"items,omitempty"`
}

// GroupRequest identifies a group for balance, settlement and listing endpoints
type GroupRequest struct {
	GroupID int64 `json:"groupId" binding:"required"`
}

// AttachReceiptRequest attaches raw receipt text or a URL to an expense
type AttachReceiptRequest struct {
	ExpenseID int64  `json:"expenseId" binding:"required"`
	Receipt   string `json:"receipt" binding:"required"`
}
