package onboarding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"budgetbook/internal/dto"
	"budgetbook/internal/models"
)

var (
	ErrNoPrimaryIncome = errors.New("primary income is required")
	ErrNameRequired    = errors.New("first and last name are required")
)

// Submitter is the single backend call the wizard needs.
type Submitter interface {
	CompleteOnboarding(ctx context.Context, req dto.OnboardingRequest) error
}

// ManagerInterface drives the setup flow to completion
type ManagerInterface interface {
	Wizard() *Wizard
	Complete(ctx context.Context) error
}

type manager struct {
	wizard    *Wizard
	submitter Submitter
	logger    *slog.Logger
}

// NewManager creates a new ManagerInterface instance
func NewManager(submitter Submitter, logger *slog.Logger) ManagerInterface {
	if logger == nil {
		logger = slog.Default()
	}
	return &manager{
		wizard:    NewWizard(),
		submitter: submitter,
		logger:    logger,
	}
}

func (m *manager) Wizard() *Wizard {
	return m.wizard
}

// Complete cleans the draft and submits it in one call. The draft is kept
// untouched on any failure so the user can retry without re-entering
// anything; it is only discarded once the backend confirms.
func (m *manager) Complete(ctx context.Context) error {
	cleaned := m.wizard.Draft().Clean()

	if cleaned.FirstName == "" || cleaned.LastName == "" {
		return ErrNameRequired
	}
	if len(cleaned.Incomes) == 0 {
		return ErrNoPrimaryIncome
	}
	if cleaned.MonthlyIncome <= 0 {
		cleaned.MonthlyIncome = cleaned.Incomes[0].Amount
	}

	req := buildRequest(cleaned)

	m.logger.Info("submitting onboarding",
		"incomes", len(req.Incomes),
		"fixed_expenses", len(req.FixedExpenses),
		"variable_expenses", len(req.VariableExpenses),
		"savings_goals", len(req.SavingsGoals),
	)

	if err := m.submitter.CompleteOnboarding(ctx, req); err != nil {
		m.logger.Error("onboarding submit failed", "error", err)
		return fmt.Errorf("failed to complete onboarding: %w", err)
	}

	m.wizard.Reset()
	return nil
}

func buildRequest(d Draft) dto.OnboardingRequest {
	req := dto.OnboardingRequest{
		FirstName:        d.FirstName,
		LastName:         d.LastName,
		MonthlyIncome:    d.MonthlyIncome,
		Currency:         d.Currency,
		Incomes:          make([]dto.IncomeRequest, 0, len(d.Incomes)),
		FixedExpenses:    expenseRequests(d.FixedExpenses),
		VariableExpenses: expenseRequests(d.VariableExpenses),
		SavingsGoals:     make([]dto.SavingsGoalRequest, 0, len(d.SavingsGoals)),
	}

	for _, income := range d.Incomes {
		req.Incomes = append(req.Incomes, dto.IncomeRequest{
			Name:      income.Name,
			Amount:    income.Amount,
			Type:      income.Type,
			IsPrimary: income.IsPrimary,
			Frequency: income.Frequency,
		})
	}

	for _, goal := range d.SavingsGoals {
		goalReq := dto.SavingsGoalRequest{
			Name:          goal.Name,
			TargetAmount:  goal.TargetAmount,
			CurrentAmount: goal.CurrentAmount,
			Type:          goal.Type,
			Priority:      goal.Priority,
		}
		if goal.TargetDate != nil {
			goalReq.TargetDate = goal.TargetDate.Format("2006-01-02")
		}
		req.SavingsGoals = append(req.SavingsGoals, goalReq)
	}

	return req
}

func expenseRequests(expenses []models.Expense) []dto.ExpenseRequest {
	reqs := make([]dto.ExpenseRequest, 0, len(expenses))
	for _, expense := range expenses {
		reqs = append(reqs, dto.ExpenseRequest{
			Name:      expense.Name,
			Amount:    expense.Amount,
			Type:      expense.Type,
			Category:  expense.CategoryID,
			Frequency: expense.Frequency,
		})
	}
	return reqs
}
