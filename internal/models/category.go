package models

const (
	CategoryTypeIncome  = "income"
	CategoryTypeExpense = "expense"
)

// Category is a user-defined grouping for expenses or incomes.
// MonthlyBudget is nil when no budget has been set, which is distinct from a
// zero budget: usage percentages are only defined for positive budgets.
type Category struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Type          string   `json:"type"`
	MonthlyBudget *float64 `json:"monthly_budget,omitempty"`
	Color         string   `json:"color,omitempty"`
	Icon          string   `json:"icon,omitempty"`
}

// HasBudget reports whether a positive monthly budget is set.
func (c *Category) HasBudget() bool {
	return c.MonthlyBudget != nil && *c.MonthlyBudget > 0
}

// IsValidCategoryType reports whether t is "income" or "expense".
func IsValidCategoryType(t string) bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}
