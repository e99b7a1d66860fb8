package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"budgetbook/internal/dto"
	"budgetbook/internal/models"
	"budgetbook/internal/numeric"
)

type FinancialAggregatorTestSuite struct {
	suite.Suite
	aggregator *financialAggregator
}

func TestFinancialAggregatorSuite(t *testing.T) {
	suite.Run(t, new(FinancialAggregatorTestSuite))
}

func (s *FinancialAggregatorTestSuite) SetupTest() {
	s.aggregator = NewFinancialAggregator().(*financialAggregator)
}

func (s *FinancialAggregatorTestSuite) testData() *dto.FinancialDataResponse {
	catID := int64(7)
	return &dto.FinancialDataResponse{
		MonthlyIncome: numeric.Amount(3000),
		Incomes: []dto.IncomeResponse{
			{ID: 1, Name: "Salary", Amount: 3000, Type: models.IncomeTypeSalary, IsPrimary: true, Frequency: models.FrequencyMonthly},
			{ID: 2, Name: "Freelance", Amount: 500, Type: models.IncomeTypeFreelance, Frequency: models.FrequencyMonthly},
		},
		FixedExpenses: []dto.ExpenseResponse{
			{ID: 3, Name: "Rent", Amount: 900, Type: models.ExpenseTypeFixed, Category: &catID, CategoryName: "Housing", Frequency: models.FrequencyMonthly},
			{ID: 4, Name: "Internet", Amount: 40, Type: models.ExpenseTypeFixed, Frequency: models.FrequencyMonthly},
		},
		VariableExpenses: []dto.ExpenseResponse{
			{ID: 5, Name: "Groceries", Amount: 350, Type: models.ExpenseTypeVariable, Frequency: models.FrequencyMonthly},
		},
		SavingsGoals: []dto.SavingsGoalResponse{
			{ID: 6, Name: "Emergency Fund", TargetAmount: 5000, CurrentAmount: 1200, Type: models.GoalTypeEmergency, Priority: models.PriorityHigh},
		},
	}
}

// BuildSnapshot Tests

func (s *FinancialAggregatorTestSuite) TestBuildSnapshot_ComputesTotalsFromLists() {
	snapshot := s.aggregator.BuildSnapshot(s.testData())

	s.Equal(3500.0, snapshot.TotalIncome)
	s.Equal(940.0, snapshot.TotalFixedExpenses)
	s.Equal(350.0, snapshot.TotalVariableExpenses)
	s.Equal(1290.0, snapshot.TotalExpenses)
	s.Equal(2210.0, snapshot.RemainingBudget)
	s.Equal(3000.0, snapshot.MonthlyIncome)
}

func (s *FinancialAggregatorTestSuite) TestBuildSnapshot_TotalsInvariantHolds() {
	snapshot := s.aggregator.BuildSnapshot(s.testData())

	s.Equal(snapshot.TotalExpenses, snapshot.TotalFixedExpenses+snapshot.TotalVariableExpenses)
	s.Equal(snapshot.RemainingBudget, snapshot.TotalIncome-snapshot.TotalExpenses)
}

func (s *FinancialAggregatorTestSuite) TestBuildSnapshot_EmptyData() {
	snapshot := s.aggregator.BuildSnapshot(&dto.FinancialDataResponse{})

	s.Zero(snapshot.TotalIncome)
	s.Zero(snapshot.TotalExpenses)
	s.Zero(snapshot.RemainingBudget)
	s.Empty(snapshot.Incomes)
	s.Empty(snapshot.FixedExpenses)
}

func (s *FinancialAggregatorTestSuite) TestBuildSnapshot_MonthlyIncomeFallsBackToPrimary() {
	data := s.testData()
	data.MonthlyIncome = 0

	snapshot := s.aggregator.BuildSnapshot(data)

	s.Equal(3000.0, snapshot.MonthlyIncome, "should fall back to the primary income amount")
}

func (s *FinancialAggregatorTestSuite) TestBuildSnapshot_Idempotent() {
	data := s.testData()
	first := s.aggregator.BuildSnapshot(data)
	second := s.aggregator.BuildSnapshot(data)

	s.Equal(first, second)
}

// SpentShareOfIncome Tests

func (s *FinancialAggregatorTestSuite) TestSpentShareOfIncome_NormalCase() {
	snapshot := s.aggregator.BuildSnapshot(s.testData())

	share, ok := s.aggregator.SpentShareOfIncome(snapshot)

	s.True(ok)
	s.InDelta(1290.0/3500.0, share, 1e-9)
}

func (s *FinancialAggregatorTestSuite) TestSpentShareOfIncome_NoIncomeReportsUnavailable() {
	snapshot := s.aggregator.BuildSnapshot(&dto.FinancialDataResponse{
		VariableExpenses: []dto.ExpenseResponse{
			{ID: 1, Name: "Groceries", Amount: 100, Type: models.ExpenseTypeVariable, Frequency: models.FrequencyMonthly},
		},
	})

	share, ok := s.aggregator.SpentShareOfIncome(snapshot)

	s.False(ok, "ratio is undefined without income, never a fake percentage")
	s.Zero(share)
}

func (s *FinancialAggregatorTestSuite) TestSpentShareOfIncome_NilSnapshot() {
	_, ok := s.aggregator.SpentShareOfIncome(nil)
	s.False(ok)
}

// MergeTransactions Tests

func (s *FinancialAggregatorTestSuite) TestMergeTransactions_ConvertsSignedLedgerToMagnitudes() {
	ledger := []models.Transaction{
		{ID: 1, Name: "Cinema", Amount: -12.50, Type: models.TransactionTypeExpense, Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "Bonus", Amount: 200, Type: models.TransactionTypeIncome, Date: time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)},
	}

	merged := s.aggregator.MergeTransactions(nil, ledger)

	s.Len(merged, 2)
	s.Equal(12.50, merged[0].Amount, "expense magnitude is unsigned")
	s.Equal(200.0, merged[1].Amount)
}

func (s *FinancialAggregatorTestSuite) TestMergeTransactions_IncludesRecurringEntries() {
	snapshot := s.aggregator.BuildSnapshot(s.testData())

	merged := s.aggregator.MergeTransactions(snapshot, nil)

	s.Len(merged, 5, "2 incomes + 2 fixed + 1 variable")
	names := make([]string, 0, len(merged))
	for _, t := range merged {
		names = append(names, t.Name)
		s.GreaterOrEqual(t.Amount, 0.0, "merged view is unsigned")
	}
	s.Contains(names, "Salary")
	s.Contains(names, "Rent")
	s.Contains(names, "Groceries")
}

func (s *FinancialAggregatorTestSuite) TestMergeTransactions_SortsByDateDescending() {
	ledger := []models.Transaction{
		{ID: 1, Name: "Old", Amount: -10, Type: models.TransactionTypeExpense, Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "New", Amount: -10, Type: models.TransactionTypeExpense, Date: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)},
	}
	snapshot := s.aggregator.BuildSnapshot(s.testData())

	merged := s.aggregator.MergeTransactions(snapshot, ledger)

	s.Equal("New", merged[0].Name)
	s.Equal("Old", merged[1].Name)
	s.True(merged[len(merged)-1].Date.IsZero(), "undated recurring entries sink to the bottom")
}

// MonthlyFlows Tests

func (s *FinancialAggregatorTestSuite) TestMonthlyFlows_TwelveMonths() {
	snapshot := s.aggregator.BuildSnapshot(s.testData())

	flows := s.aggregator.MonthlyFlows(snapshot, nil, 2026)

	s.Len(flows, 12)
	s.Equal(1, flows[0].Month)
	s.Equal("Jan", flows[0].Label)
	s.Equal("Dec", flows[11].Label)
	for _, f := range flows {
		s.Equal(3500.0, f.Income)
		s.Equal(1290.0, f.Expenses)
		s.Equal(2210.0, f.Savings)
	}
}

func (s *FinancialAggregatorTestSuite) TestMonthlyFlows_LedgerBucketsByMonth() {
	ledger := []models.Transaction{
		{ID: 1, Name: "Repair", Amount: -150, Type: models.TransactionTypeExpense, Date: time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "Refund", Amount: 60, Type: models.TransactionTypeIncome, Date: time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Name: "Other year", Amount: -999, Type: models.TransactionTypeExpense, Date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
	}

	flows := s.aggregator.MonthlyFlows(nil, ledger, 2026)

	april := flows[3]
	s.Equal(150.0, april.Expenses)
	s.Equal(60.0, april.Income)
	s.Equal(-90.0, april.Savings, "savings may go negative")
	s.Zero(flows[2].Expenses, "other months untouched")
}

func (s *FinancialAggregatorTestSuite) TestMonthlyFlows_NormalizesFrequencies() {
	snapshot := &models.FinancialSnapshot{
		Incomes: []models.Income{
			{Name: "Yearly bonus", Amount: 1200, Frequency: models.FrequencyYearly},
		},
	}

	flows := s.aggregator.MonthlyFlows(snapshot, nil, 2026)

	s.Equal(100.0, flows[0].Income, "yearly amounts spread over twelve months")
}

// FilterTransactions Tests

func (s *FinancialAggregatorTestSuite) TestFilterTransactions() {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	transactions := []models.Transaction{
		{ID: 1, Name: "Groceries", Type: models.TransactionTypeExpense, Category: "Food", Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "Salary", Type: models.TransactionTypeIncome, Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 3, Name: "Old groceries", Type: models.TransactionTypeExpense, Category: "Food", Date: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)},
	}

	testCases := []struct {
		description string
		filters     dto.TransactionFilters
		expectedIDs []int64
	}{
		{"no filters returns everything", dto.TransactionFilters{}, []int64{1, 2, 3}},
		{"by type", dto.TransactionFilters{Type: models.TransactionTypeIncome}, []int64{2}},
		{"by category case-insensitive", dto.TransactionFilters{Category: "food"}, []int64{1, 3}},
		{"by date range inclusive", dto.TransactionFilters{StartDate: &start, EndDate: &end}, []int64{1, 2}},
		{"combined", dto.TransactionFilters{Type: models.TransactionTypeExpense, StartDate: &start}, []int64{1}},
	}

	for _, tc := range testCases {
		s.Run(tc.description, func() {
			filtered := s.aggregator.FilterTransactions(transactions, tc.filters)
			ids := make([]int64, 0, len(filtered))
			for _, t := range filtered {
				ids = append(ids, t.ID)
			}
			s.Equal(tc.expectedIDs, ids)
		})
	}
}

// GroupExpensesByName Tests

func (s *FinancialAggregatorTestSuite) TestGroupExpensesByName() {
	expenses := []models.Expense{
		{Name: "Rent", Amount: 900},
		{Name: "Groceries", Amount: 120.5},
		{Name: "groceries ", Amount: 80.25},
		{Name: "Internet", Amount: 40},
	}

	groups := s.aggregator.GroupExpensesByName(expenses)

	s.Require().Len(groups, 3)
	s.Equal(models.NameGroup{Name: "Rent", Total: 900, Count: 1}, groups[0])
	s.Equal(models.NameGroup{Name: "Groceries", Total: 200.75, Count: 2}, groups[1], "case and whitespace variants collapse, first spelling wins")
	s.Equal(models.NameGroup{Name: "Internet", Total: 40, Count: 1}, groups[2])
}

func (s *FinancialAggregatorTestSuite) TestGroupExpensesByName_Empty() {
	s.Empty(s.aggregator.GroupExpensesByName(nil))
}
