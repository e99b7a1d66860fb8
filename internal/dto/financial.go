package dto

import (
	"budgetbook/internal/models"
	"budgetbook/internal/numeric"
)

// IncomeResponse is one income record as serialized by the backend.
type IncomeResponse struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Amount    numeric.Amount `json:"amount"`
	Type      string         `json:"type"`
	IsPrimary bool           `json:"is_primary"`
	Frequency string         `json:"frequency"`
}

// ExpenseResponse is one expense record as serialized by the backend.
// Category is the foreign key id; CategoryName the denormalized label.
type ExpenseResponse struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Amount       numeric.Amount `json:"amount"`
	Type         string         `json:"type"`
	Category     *int64         `json:"category"`
	CategoryName string         `json:"category_name"`
	Frequency    string         `json:"frequency"`
}

// SavingsGoalResponse is one savings goal as serialized by the backend.
// TargetDate uses the backend's bare date format, "2006-01-02".
type SavingsGoalResponse struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	TargetAmount  numeric.Amount `json:"target_amount"`
	CurrentAmount numeric.Amount `json:"current_amount"`
	TargetDate    string         `json:"target_date,omitempty"`
	Type          string         `json:"type"`
	Priority      string         `json:"priority"`
}

// FinancialDataResponse is the combined payload behind the dashboard. The
// totals the backend includes are ignored; they are recomputed locally so
// the displayed numbers always agree with the lists.
type FinancialDataResponse struct {
	Incomes          []IncomeResponse      `json:"incomes"`
	FixedExpenses    []ExpenseResponse     `json:"fixed_expenses"`
	VariableExpenses []ExpenseResponse     `json:"variable_expenses"`
	SavingsGoals     []SavingsGoalResponse `json:"savings_goals"`
	MonthlyIncome    numeric.Amount        `json:"monthly_income"`
}

// Write-side DTOs

// IncomeRequest creates or updates an income record.
type IncomeRequest struct {
	Name      string  `json:"name" validate:"required,not_blank,max=200"`
	Amount    float64 `json:"amount" validate:"positive_amount"`
	Type      string  `json:"type" validate:"income_type"`
	IsPrimary bool    `json:"is_primary"`
	Frequency string  `json:"frequency" validate:"frequency"`
}

// ExpenseRequest creates or updates an expense record.
type ExpenseRequest struct {
	Name      string  `json:"name" validate:"required,not_blank,max=200"`
	Amount    float64 `json:"amount" validate:"positive_amount"`
	Type      string  `json:"type" validate:"oneof=fixed variable"`
	Category  *int64  `json:"category,omitempty"`
	Frequency string  `json:"frequency" validate:"frequency"`
}

// SavingsGoalRequest creates or updates a savings goal.
type SavingsGoalRequest struct {
	Name          string  `json:"name" validate:"required,not_blank,max=200"`
	TargetAmount  float64 `json:"target_amount" validate:"positive_amount"`
	CurrentAmount float64 `json:"current_amount" validate:"min=0"`
	TargetDate    string  `json:"target_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Type          string  `json:"type" validate:"goal_type"`
	Priority      string  `json:"priority" validate:"goal_priority"`
}

// Converters

func (r *IncomeResponse) ToModel() models.Income {
	return models.Income{
		ID:        r.ID,
		Name:      r.Name,
		Amount:    r.Amount.Float(),
		Type:      r.Type,
		IsPrimary: r.IsPrimary,
		Frequency: r.Frequency,
	}
}

func (r *ExpenseResponse) ToModel() models.Expense {
	return models.Expense{
		ID:           r.ID,
		Name:         r.Name,
		Amount:       r.Amount.Float(),
		Type:         r.Type,
		CategoryID:   r.Category,
		CategoryName: r.CategoryName,
		Frequency:    r.Frequency,
	}
}

func (r *SavingsGoalResponse) ToModel() models.SavingsGoal {
	goal := models.SavingsGoal{
		ID:            r.ID,
		Name:          r.Name,
		TargetAmount:  r.TargetAmount.Float(),
		CurrentAmount: r.CurrentAmount.Float(),
		Type:          r.Type,
		Priority:      r.Priority,
	}
	if t, ok := parseDate(r.TargetDate); ok {
		goal.TargetDate = &t
	}
	return goal
}

// ToIncomes converts the income list, skipping nothing.
func ToIncomes(responses []IncomeResponse) []models.Income {
	incomes := make([]models.Income, 0, len(responses))
	for i := range responses {
		incomes = append(incomes, responses[i].ToModel())
	}
	return incomes
}

// ToExpenses converts an expense list.
func ToExpenses(responses []ExpenseResponse) []models.Expense {
	expenses := make([]models.Expense, 0, len(responses))
	for i := range responses {
		expenses = append(expenses, responses[i].ToModel())
	}
	return expenses
}

// ToSavingsGoals converts a goal list.
func ToSavingsGoals(responses []SavingsGoalResponse) []models.SavingsGoal {
	goals := make([]models.SavingsGoal, 0, len(responses))
	for i := range responses {
		goals = append(goals, responses[i].ToModel())
	}
	return goals
}
