package models

const (
	ExpenseTypeFixed    = "fixed"
	ExpenseTypeVariable = "variable"
)

// Expense is a fixed or variable cost. CategoryID is nil for uncategorized
// records; CategoryName is the denormalized display fallback kept by the
// backend so a deleted category still renders with its last known label.
type Expense struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	Type         string  `json:"type"`
	CategoryID   *int64  `json:"category,omitempty"`
	CategoryName string  `json:"category_name,omitempty"`
	Frequency    string  `json:"frequency"`
}

// IsFixed reports whether the expense belongs to the fixed list.
func (e *Expense) IsFixed() bool {
	return e.Type == ExpenseTypeFixed
}

// IsValidExpenseType reports whether t is "fixed" or "variable".
func IsValidExpenseType(t string) bool {
	return t == ExpenseTypeFixed || t == ExpenseTypeVariable
}
