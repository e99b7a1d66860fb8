package services

import (
	"io"
	"time"

	"budgetbook/internal/dto"
	"budgetbook/internal/models"
)

// FinancialAggregatorInterface defines the derived-state computations over
// the raw financial lists
type FinancialAggregatorInterface interface {
	// BuildSnapshot recomputes every derived total from the raw lists
	BuildSnapshot(data *dto.FinancialDataResponse) *models.FinancialSnapshot

	// SpentShareOfIncome returns expenses as a fraction of income; ok is
	// false when there is no income to compare against
	SpentShareOfIncome(snapshot *models.FinancialSnapshot) (float64, bool)

	// MergeTransactions folds the recurring lists and the signed ledger
	// into a single unsigned view sorted by date descending
	MergeTransactions(snapshot *models.FinancialSnapshot, ledger []models.Transaction) []models.Transaction

	// MonthlyFlows builds the twelve-month income/expense/savings series
	// for the given year
	MonthlyFlows(snapshot *models.FinancialSnapshot, ledger []models.Transaction, year int) []models.MonthlyFlow

	// FilterTransactions applies the filter dimensions to a ledger
	FilterTransactions(transactions []models.Transaction, filters dto.TransactionFilters) []models.Transaction

	// GroupExpensesByName collapses expenses sharing a display name into
	// one row, in first-seen order
	GroupExpensesByName(expenses []models.Expense) []models.NameGroup
}

// CategoryRollupBuilderInterface defines the per-category spending breakdown
type CategoryRollupBuilderInterface interface {
	// Build groups expenses by category and computes budget usage. Order is
	// total descending; the grand total of the rows equals the expense sum.
	Build(expenses []models.Expense, categories []models.Category) []models.CategoryRollup
}

// CSVExporterInterface defines the spreadsheet export
type CSVExporterInterface interface {
	// Export writes every entry as a fully quoted row using the configured
	// delimiter and date layout
	Export(w io.Writer, transactions []models.Transaction) error
}

// DemoDataGeneratorInterface defines synthetic fixture generation
type DemoDataGeneratorInterface interface {
	GenerateUser() models.User
	GenerateIncomes(count int) []models.Income
	GenerateExpenses(count int, categories []models.Category) []models.Expense
	GenerateCategories(count int) []models.Category
	GenerateSavingsGoals(count int) []models.SavingsGoal
	GenerateLedger(count int, start, end time.Time) []models.Transaction
	GenerateFinancialData() *dto.FinancialDataResponse
}

// MetricsRecorderInterface abstracts metric recording for testability
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
