// Package onboarding holds the draft state for the first-run setup flow.
// The draft lives entirely on the client until the final submit; nothing is
// persisted server-side for intermediate steps, so abandoning the flow
// leaves no trace.
package onboarding

import (
	"strings"

	"budgetbook/internal/models"
)

// Wizard steps, in order. Navigation is strictly linear; each step owns the
// draft fields it writes, so no two steps ever touch the same field.
const (
	StepPersonalInfo = iota
	StepPrimaryIncome
	StepAdditionalIncome
	StepFixedExpenses
	StepVariableExpenses
	StepGoalsAndSummary

	stepCount = 6
)

// Draft accumulates the wizard's entries. Amounts here may still be invalid
// (blank names, zero amounts) because users type freely; Clean strips those
// at submit time, never while editing.
type Draft struct {
	FirstName        string
	LastName         string
	MonthlyIncome    float64
	Currency         string
	Incomes          []models.Income
	FixedExpenses    []models.Expense
	VariableExpenses []models.Expense
	SavingsGoals     []models.SavingsGoal
}

// Summary holds the totals shown on the final step.
type Summary struct {
	TotalIncome           float64
	TotalFixedExpenses    float64
	TotalVariableExpenses float64
	TotalSavingsTargets   float64
}

// Wizard tracks the current step and the draft being edited.
type Wizard struct {
	step  int
	draft Draft
}

// NewWizard starts a fresh flow at the personal info step.
func NewWizard() *Wizard {
	return &Wizard{
		draft: Draft{Currency: "EUR"},
	}
}

// SetPersonalInfo records the user's name. The flow may seed this from the
// authenticated profile so returning users do not retype it.
func (w *Wizard) SetPersonalInfo(firstName, lastName string) {
	w.draft.FirstName = strings.TrimSpace(firstName)
	w.draft.LastName = strings.TrimSpace(lastName)
}

// Step returns the current step index.
func (w *Wizard) Step() int {
	return w.step
}

// StepCount returns the number of steps in the flow.
func (w *Wizard) StepCount() int {
	return stepCount
}

// Next advances one step, stopping at the summary step.
func (w *Wizard) Next() int {
	if w.step < stepCount-1 {
		w.step++
	}
	return w.step
}

// Prev goes back one step, stopping at the first step.
func (w *Wizard) Prev() int {
	if w.step > 0 {
		w.step--
	}
	return w.step
}

// Draft returns a copy of the current draft.
func (w *Wizard) Draft() Draft {
	return w.draft
}

// SetPrimaryIncome records the main salary. The primary income is always
// the first list entry and the headline monthly income mirrors its amount,
// so the two can never disagree.
func (w *Wizard) SetPrimaryIncome(name string, amount float64) {
	income := models.Income{
		Name:      name,
		Amount:    amount,
		Type:      models.IncomeTypeSalary,
		IsPrimary: true,
		Frequency: models.FrequencyMonthly,
	}

	switch {
	case len(w.draft.Incomes) == 0:
		w.draft.Incomes = []models.Income{income}
	case w.draft.Incomes[0].IsPrimary:
		w.draft.Incomes[0] = income
	default:
		// Secondary incomes entered before the primary keep their slots.
		w.draft.Incomes = append([]models.Income{income}, w.draft.Incomes...)
	}
	w.draft.MonthlyIncome = amount
}

// AddIncome appends a secondary income source.
func (w *Wizard) AddIncome(income models.Income) {
	income.IsPrimary = false
	if income.Frequency == "" {
		income.Frequency = models.FrequencyMonthly
	}
	w.draft.Incomes = append(w.draft.Incomes, income)
}

// SetFixedExpenses replaces the fixed expense entries.
func (w *Wizard) SetFixedExpenses(expenses []models.Expense) {
	w.draft.FixedExpenses = tagExpenses(expenses, models.ExpenseTypeFixed)
}

// SetVariableExpenses replaces the variable expense entries.
func (w *Wizard) SetVariableExpenses(expenses []models.Expense) {
	w.draft.VariableExpenses = tagExpenses(expenses, models.ExpenseTypeVariable)
}

// SetSavingsGoals replaces the savings goal entries.
func (w *Wizard) SetSavingsGoals(goals []models.SavingsGoal) {
	w.draft.SavingsGoals = goals
}

// SetCurrency records the display currency.
func (w *Wizard) SetCurrency(code string) {
	w.draft.Currency = strings.ToUpper(strings.TrimSpace(code))
}

// Summary totals the draft as entered, before any cleaning, for the final
// review step.
func (w *Wizard) Summary() Summary {
	var s Summary
	for _, income := range w.draft.Incomes {
		s.TotalIncome += income.Amount
	}
	for _, expense := range w.draft.FixedExpenses {
		s.TotalFixedExpenses += expense.Amount
	}
	for _, expense := range w.draft.VariableExpenses {
		s.TotalVariableExpenses += expense.Amount
	}
	for _, goal := range w.draft.SavingsGoals {
		s.TotalSavingsTargets += goal.TargetAmount
	}
	return s
}

// Reset discards the draft and returns to the first step.
func (w *Wizard) Reset() {
	*w = *NewWizard()
}

// Clean returns the draft with unusable entries removed: anything with a
// blank name or a non-positive amount is dropped rather than rejected, so
// a half-filled row never blocks the submit. Cleaning is idempotent.
func (d Draft) Clean() Draft {
	cleaned := Draft{
		FirstName:     strings.TrimSpace(d.FirstName),
		LastName:      strings.TrimSpace(d.LastName),
		MonthlyIncome: d.MonthlyIncome,
		Currency:      d.Currency,
	}

	for _, income := range d.Incomes {
		if blank(income.Name) || income.Amount <= 0 {
			continue
		}
		if income.Frequency == "" {
			income.Frequency = models.FrequencyMonthly
		}
		if income.Type == "" {
			income.Type = models.IncomeTypeOther
		}
		cleaned.Incomes = append(cleaned.Incomes, income)
	}

	cleaned.FixedExpenses = cleanExpenses(d.FixedExpenses, models.ExpenseTypeFixed)
	cleaned.VariableExpenses = cleanExpenses(d.VariableExpenses, models.ExpenseTypeVariable)

	for _, goal := range d.SavingsGoals {
		if blank(goal.Name) || goal.TargetAmount <= 0 {
			continue
		}
		if goal.Type == "" {
			goal.Type = models.GoalTypeOther
		}
		if goal.Priority == "" {
			goal.Priority = models.PriorityMedium
		}
		cleaned.SavingsGoals = append(cleaned.SavingsGoals, goal)
	}

	return cleaned
}

func cleanExpenses(expenses []models.Expense, expenseType string) []models.Expense {
	var cleaned []models.Expense
	for _, expense := range expenses {
		if blank(expense.Name) || expense.Amount <= 0 {
			continue
		}
		expense.Type = expenseType
		if expense.Frequency == "" {
			expense.Frequency = models.FrequencyMonthly
		}
		cleaned = append(cleaned, expense)
	}
	return cleaned
}

func tagExpenses(expenses []models.Expense, expenseType string) []models.Expense {
	tagged := make([]models.Expense, len(expenses))
	copy(tagged, expenses)
	for i := range tagged {
		tagged[i].Type = expenseType
	}
	return tagged
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
