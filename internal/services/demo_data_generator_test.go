package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"budgetbook/internal/models"
)

type DemoDataGeneratorTestSuite struct {
	suite.Suite
	generator DemoDataGeneratorInterface
}

func TestDemoDataGeneratorSuite(t *testing.T) {
	suite.Run(t, new(DemoDataGeneratorTestSuite))
}

func (s *DemoDataGeneratorTestSuite) SetupTest() {
	s.generator = NewDemoDataGenerator(42)
}

func (s *DemoDataGeneratorTestSuite) TestGenerateIncomes_FirstIsPrimary() {
	incomes := s.generator.GenerateIncomes(3)

	s.Len(incomes, 3)
	s.True(incomes[0].IsPrimary)
	s.Equal(models.IncomeTypeSalary, incomes[0].Type)
	for _, inc := range incomes {
		s.Positive(inc.Amount)
		s.True(models.IsValidIncomeType(inc.Type))
		s.True(models.IsValidFrequency(inc.Frequency))
	}
	s.False(incomes[1].IsPrimary)
	s.False(incomes[2].IsPrimary)
}

func (s *DemoDataGeneratorTestSuite) TestGenerateExpenses_LinkedToCategories() {
	categories := s.generator.GenerateCategories(6)
	expenses := s.generator.GenerateExpenses(8, categories)

	s.Len(expenses, 8)
	byID := make(map[int64]bool)
	for _, c := range categories {
		byID[c.ID] = true
	}
	for _, e := range expenses {
		s.Positive(e.Amount)
		s.True(models.IsValidExpenseType(e.Type))
		if e.CategoryID != nil {
			s.True(byID[*e.CategoryID], "category reference must resolve")
			s.NotEmpty(e.CategoryName)
		}
	}
}

func (s *DemoDataGeneratorTestSuite) TestGenerateSavingsGoals_ProgressWithinTarget() {
	goals := s.generator.GenerateSavingsGoals(4)

	s.Len(goals, 4)
	for _, g := range goals {
		s.Positive(g.TargetAmount)
		s.GreaterOrEqual(g.CurrentAmount, 0.0)
		s.LessOrEqual(g.CurrentAmount, g.TargetAmount)
		s.True(models.IsValidGoalType(g.Type))
		s.True(models.IsValidPriority(g.Priority))
	}
}

func (s *DemoDataGeneratorTestSuite) TestGenerateLedger_SignedAmountsInRange() {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	ledger := s.generator.GenerateLedger(30, start, end)

	s.Len(ledger, 30)
	for _, t := range ledger {
		if t.IsExpense() {
			s.Negative(t.Amount, "ledger expenses are signed negative")
		} else {
			s.Positive(t.Amount)
		}
		s.False(t.Date.Before(start))
		s.False(t.Date.After(end))
	}
}

func (s *DemoDataGeneratorTestSuite) TestGenerateFinancialData_FeedsAggregator() {
	data := s.generator.GenerateFinancialData()

	s.NotEmpty(data.Incomes)
	s.NotEmpty(data.FixedExpenses)
	s.NotEmpty(data.VariableExpenses)
	s.NotEmpty(data.SavingsGoals)

	snapshot := NewFinancialAggregator().BuildSnapshot(data)
	s.Positive(snapshot.TotalIncome)
	s.Positive(snapshot.TotalExpenses)
	s.Equal(snapshot.TotalExpenses, snapshot.TotalFixedExpenses+snapshot.TotalVariableExpenses)
}

func (s *DemoDataGeneratorTestSuite) TestSeededGeneratorIsReproducible() {
	a := NewDemoDataGenerator(7).GenerateIncomes(2)
	b := NewDemoDataGenerator(7).GenerateIncomes(2)

	s.Equal(a, b)
}
