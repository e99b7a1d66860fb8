package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"budgetbook/internal/dto"
	"budgetbook/internal/models"
)

type fakeSubmitter struct {
	lastRequest *dto.OnboardingRequest
	err         error
	calls       int
}

func (f *fakeSubmitter) CompleteOnboarding(_ context.Context, req dto.OnboardingRequest) error {
	f.calls++
	f.lastRequest = &req
	return f.err
}

type ManagerTestSuite struct {
	suite.Suite
	submitter *fakeSubmitter
	manager   ManagerInterface
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}

func (s *ManagerTestSuite) SetupTest() {
	s.submitter = &fakeSubmitter{}
	s.manager = NewManager(s.submitter, nil)
}

func (s *ManagerTestSuite) fillDraft() {
	w := s.manager.Wizard()
	w.SetPersonalInfo("Ada", "Lovelace")
	w.SetPrimaryIncome("Salary", 2800)
	w.SetFixedExpenses([]models.Expense{
		{Name: "Rent", Amount: 900},
		{Name: "", Amount: 50},
		{Name: "Gym", Amount: 0},
	})
	w.SetVariableExpenses([]models.Expense{{Name: "Groceries", Amount: 300}})
	w.SetSavingsGoals([]models.SavingsGoal{{Name: "Emergency", TargetAmount: 5000, Type: models.GoalTypeEmergency, Priority: models.PriorityHigh}})
}

func (s *ManagerTestSuite) TestComplete_SubmitsCleanedDraft() {
	s.fillDraft()

	err := s.manager.Complete(context.Background())

	s.NoError(err)
	s.Require().NotNil(s.submitter.lastRequest)
	req := s.submitter.lastRequest

	s.Equal("Ada", req.FirstName)
	s.Equal("Lovelace", req.LastName)
	s.Equal(2800.0, req.MonthlyIncome)
	s.Require().Len(req.FixedExpenses, 1, "blank and zero rows are dropped, not rejected")
	s.Equal("Rent", req.FixedExpenses[0].Name)
	s.Equal(models.ExpenseTypeFixed, req.FixedExpenses[0].Type)
	s.Len(req.VariableExpenses, 1)
	s.Len(req.SavingsGoals, 1)
}

func (s *ManagerTestSuite) TestComplete_ResetsWizardOnSuccess() {
	s.fillDraft()
	s.manager.Wizard().Next()

	s.Require().NoError(s.manager.Complete(context.Background()))

	s.Equal(StepPersonalInfo, s.manager.Wizard().Step())
	s.Empty(s.manager.Wizard().Draft().Incomes)
}

func (s *ManagerTestSuite) TestComplete_PreservesDraftOnFailure() {
	s.fillDraft()
	s.submitter.err = errors.New("backend down")

	err := s.manager.Complete(context.Background())

	s.Error(err)
	draft := s.manager.Wizard().Draft()
	s.Len(draft.Incomes, 1, "user must not lose entered data on a failed submit")
	s.Len(draft.FixedExpenses, 3, "raw rows survive for retry")
}

func (s *ManagerTestSuite) TestComplete_RequiresName() {
	w := s.manager.Wizard()
	w.SetPersonalInfo("Ada", "   ")
	w.SetPrimaryIncome("Salary", 2800)

	err := s.manager.Complete(context.Background())

	s.ErrorIs(err, ErrNameRequired)
	s.Zero(s.submitter.calls, "nothing reaches the backend")
	s.Len(s.manager.Wizard().Draft().Incomes, 1, "draft stays intact")
}

func (s *ManagerTestSuite) TestComplete_RequiresPrimaryIncome() {
	w := s.manager.Wizard()
	w.SetPersonalInfo("Ada", "Lovelace")
	w.SetFixedExpenses([]models.Expense{{Name: "Rent", Amount: 900}})

	err := s.manager.Complete(context.Background())

	s.ErrorIs(err, ErrNoPrimaryIncome)
	s.Zero(s.submitter.calls, "nothing reaches the backend")
}

func (s *ManagerTestSuite) TestComplete_BackfillsMonthlyIncomeFromFirstIncome() {
	w := s.manager.Wizard()
	w.SetPersonalInfo("Ada", "Lovelace")
	w.AddIncome(models.Income{Name: "Freelance", Amount: 1900, Type: models.IncomeTypeFreelance})

	s.Require().NoError(s.manager.Complete(context.Background()))

	s.Equal(1900.0, s.submitter.lastRequest.MonthlyIncome)
}
