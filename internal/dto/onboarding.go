package dto

// OnboardingRequest is the single payload the setup wizard submits when the
// user finishes the flow. Entries have already been cleaned locally; the
// backend persists everything in one transaction and flips the completion
// flag.
type OnboardingRequest struct {
	FirstName        string               `json:"first_name" validate:"required,not_blank"`
	LastName         string               `json:"last_name" validate:"required,not_blank"`
	MonthlyIncome    float64              `json:"monthly_income" validate:"min=0"`
	Currency         string               `json:"currency" validate:"currency_code"`
	Incomes          []IncomeRequest      `json:"incomes" validate:"dive"`
	FixedExpenses    []ExpenseRequest     `json:"fixed_expenses" validate:"dive"`
	VariableExpenses []ExpenseRequest     `json:"variable_expenses" validate:"dive"`
	SavingsGoals     []SavingsGoalRequest `json:"savings_goals" validate:"dive"`
}
