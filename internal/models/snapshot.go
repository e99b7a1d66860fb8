package models

// FinancialSnapshot is the derived set of totals recomputed from the raw
// income and expense lists on every fetch. Snapshots are never mutated in
// place; a refresh discards the previous one and rebuilds from scratch.
type FinancialSnapshot struct {
	MonthlyIncome         float64 `json:"monthly_income"`
	TotalIncome           float64 `json:"total_income"`
	TotalFixedExpenses    float64 `json:"total_fixed_expenses"`
	TotalVariableExpenses float64 `json:"total_variable_expenses"`
	TotalExpenses         float64 `json:"total_expenses"`
	RemainingBudget       float64 `json:"remaining_budget"`

	Incomes          []Income      `json:"incomes"`
	FixedExpenses    []Expense     `json:"fixed_expenses"`
	VariableExpenses []Expense     `json:"variable_expenses"`
	SavingsGoals     []SavingsGoal `json:"savings_goals"`
}

// MonthlyFlow is one month of the income/expense/savings chart series.
// Amounts are unsigned magnitudes; Savings may be negative.
type MonthlyFlow struct {
	Month    int     `json:"month"`
	Label    string  `json:"label"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
}
