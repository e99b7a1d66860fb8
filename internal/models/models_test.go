package models

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type ModelsTestSuite struct {
	suite.Suite
}

func TestModelsSuite(t *testing.T) {
	suite.Run(t, new(ModelsTestSuite))
}

func (s *ModelsTestSuite) TestSavingsGoal_ProgressPercentage() {
	testCases := []struct {
		description string
		goal        SavingsGoal
		expected    float64
	}{
		{"halfway", SavingsGoal{TargetAmount: 1000, CurrentAmount: 500}, 50},
		{"overshoot capped", SavingsGoal{TargetAmount: 1000, CurrentAmount: 1500}, 100},
		{"zero target", SavingsGoal{TargetAmount: 0, CurrentAmount: 200}, 0},
		{"negative target", SavingsGoal{TargetAmount: -100, CurrentAmount: 50}, 0},
		{"nothing saved", SavingsGoal{TargetAmount: 1000}, 0},
	}

	for _, tc := range testCases {
		s.Run(tc.description, func() {
			s.Equal(tc.expected, tc.goal.ProgressPercentage())
		})
	}
}

func (s *ModelsTestSuite) TestUser_FullName() {
	testCases := []struct {
		description string
		user        User
		expected    string
	}{
		{"both names", User{FirstName: "Ada", LastName: "Lovelace", Username: "ada"}, "Ada Lovelace"},
		{"first only", User{FirstName: "Ada", Username: "ada"}, "Ada"},
		{"last only", User{LastName: "Lovelace", Username: "ada"}, "Lovelace"},
		{"username fallback", User{Username: "ada"}, "ada"},
		{"whitespace names", User{FirstName: "  ", Username: "ada"}, "ada"},
	}

	for _, tc := range testCases {
		s.Run(tc.description, func() {
			s.Equal(tc.expected, tc.user.FullName())
		})
	}
}

func (s *ModelsTestSuite) TestCategory_HasBudget() {
	budget := 300.0
	zero := 0.0

	s.True((&Category{MonthlyBudget: &budget}).HasBudget())
	s.False((&Category{MonthlyBudget: &zero}).HasBudget())
	s.False((&Category{}).HasBudget())
}

func (s *ModelsTestSuite) TestTransaction_Magnitude() {
	expense := Transaction{Type: TransactionTypeExpense, Amount: -45.9}
	s.Equal(45.9, expense.Magnitude())
	s.True(expense.IsExpense())

	income := Transaction{Type: TransactionTypeIncome, Amount: 2800}
	s.Equal(2800.0, income.Magnitude())
	s.False(income.IsExpense())
}

func (s *ModelsTestSuite) TestExpense_IsFixed() {
	s.True((&Expense{Type: ExpenseTypeFixed}).IsFixed())
	s.False((&Expense{Type: ExpenseTypeVariable}).IsFixed())
}

func (s *ModelsTestSuite) TestRollup_OverBudget() {
	over := -12.5
	under := 40.0

	s.True((&CategoryRollup{BudgetDelta: &over}).OverBudget())
	s.False((&CategoryRollup{BudgetDelta: &under}).OverBudget())
	s.False((&CategoryRollup{}).OverBudget())
}

func (s *ModelsTestSuite) TestValidityHelpers() {
	s.True(IsValidFrequency(FrequencyMonthly))
	s.True(IsValidFrequency(FrequencyWeekly))
	s.True(IsValidFrequency(FrequencyYearly))
	s.False(IsValidFrequency("daily"))
	s.False(IsValidFrequency(""))

	s.True(IsValidIncomeType(IncomeTypeSalary))
	s.False(IsValidIncomeType("lottery"))

	s.True(IsValidExpenseType(ExpenseTypeVariable))
	s.False(IsValidExpenseType("optional"))

	s.True(IsValidGoalType(GoalTypeEmergency))
	s.False(IsValidGoalType("boat"))

	s.True(IsValidPriority(PriorityMedium))
	s.False(IsValidPriority("urgent"))

	s.True(IsValidTransactionType(TransactionTypeIncome))
	s.False(IsValidTransactionType("transfer"))

	s.True(IsValidPaymentMethod(PaymentMethodCard))
	s.False(IsValidPaymentMethod("barter"))

	s.True(IsValidCategoryType(CategoryTypeExpense))
	s.False(IsValidCategoryType("misc"))
}
