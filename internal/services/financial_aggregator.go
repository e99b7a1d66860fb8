package services

import (
	"sort"
	"strings"
	"time"

	"budgetbook/internal/dto"
	"budgetbook/internal/models"
	"budgetbook/internal/numeric"
)

const (
	weeksPerYear   = 52.0
	monthsPerYear  = 12.0
	monthsSpanYear = 12
)

type financialAggregator struct{}

// NewFinancialAggregator creates a new FinancialAggregatorInterface instance
func NewFinancialAggregator() FinancialAggregatorInterface {
	return &financialAggregator{}
}

// BuildSnapshot recomputes every derived total from the raw lists. Totals in
// the payload are never trusted; the lists are the single source of truth,
// so the displayed numbers always satisfy
// total_expenses = fixed + variable and remaining = income - expenses.
func (a *financialAggregator) BuildSnapshot(data *dto.FinancialDataResponse) *models.FinancialSnapshot {
	snapshot := &models.FinancialSnapshot{
		Incomes:          dto.ToIncomes(data.Incomes),
		FixedExpenses:    dto.ToExpenses(data.FixedExpenses),
		VariableExpenses: dto.ToExpenses(data.VariableExpenses),
		SavingsGoals:     dto.ToSavingsGoals(data.SavingsGoals),
	}

	for i := range snapshot.Incomes {
		snapshot.TotalIncome += snapshot.Incomes[i].Amount
	}
	for i := range snapshot.FixedExpenses {
		snapshot.TotalFixedExpenses += snapshot.FixedExpenses[i].Amount
	}
	for i := range snapshot.VariableExpenses {
		snapshot.TotalVariableExpenses += snapshot.VariableExpenses[i].Amount
	}

	snapshot.TotalExpenses = snapshot.TotalFixedExpenses + snapshot.TotalVariableExpenses
	snapshot.RemainingBudget = snapshot.TotalIncome - snapshot.TotalExpenses

	snapshot.MonthlyIncome = data.MonthlyIncome.Float()
	if snapshot.MonthlyIncome == 0 {
		snapshot.MonthlyIncome = primaryIncomeAmount(snapshot.Incomes)
	}

	return snapshot
}

// SpentShareOfIncome returns expenses divided by income. When there is no
// income the ratio is undefined and ok is false; callers must render an
// explicit "no data" state rather than a misleading percentage.
func (a *financialAggregator) SpentShareOfIncome(snapshot *models.FinancialSnapshot) (float64, bool) {
	if snapshot == nil || snapshot.TotalIncome <= 0 {
		return 0, false
	}
	return snapshot.TotalExpenses / snapshot.TotalIncome, true
}

// MergeTransactions folds the recurring lists and the signed ledger into a
// single unsigned view. Ledger amounts arrive signed and are converted to
// magnitudes here; recurring entries are already unsigned. Entries sort by
// date descending, so undated recurring entries sink to the bottom.
func (a *financialAggregator) MergeTransactions(snapshot *models.FinancialSnapshot, ledger []models.Transaction) []models.Transaction {
	merged := make([]models.Transaction, 0, len(ledger)+mergedRecurringCount(snapshot))

	for i := range ledger {
		entry := ledger[i]
		entry.Amount = entry.Magnitude()
		merged = append(merged, entry)
	}

	if snapshot != nil {
		for i := range snapshot.Incomes {
			inc := snapshot.Incomes[i]
			merged = append(merged, models.Transaction{
				Name:      inc.Name,
				Amount:    inc.Amount,
				Type:      models.TransactionTypeIncome,
				Frequency: inc.Frequency,
			})
		}
		for _, list := range [][]models.Expense{snapshot.FixedExpenses, snapshot.VariableExpenses} {
			for i := range list {
				exp := list[i]
				merged = append(merged, models.Transaction{
					Name:      exp.Name,
					Amount:    exp.Amount,
					Type:      models.TransactionTypeExpense,
					Category:  exp.CategoryName,
					Frequency: exp.Frequency,
				})
			}
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Date.After(merged[j].Date)
	})

	return merged
}

// MonthlyFlows builds the twelve-month chart series for a year. Each month
// carries the monthly-normalized recurring totals plus the ledger entries
// dated in that month; savings is the difference and may go negative.
func (a *financialAggregator) MonthlyFlows(snapshot *models.FinancialSnapshot, ledger []models.Transaction, year int) []models.MonthlyFlow {
	var baseIncome, baseExpenses float64
	if snapshot != nil {
		for i := range snapshot.Incomes {
			baseIncome += monthlyEquivalent(snapshot.Incomes[i].Amount, snapshot.Incomes[i].Frequency)
		}
		for i := range snapshot.FixedExpenses {
			baseExpenses += monthlyEquivalent(snapshot.FixedExpenses[i].Amount, snapshot.FixedExpenses[i].Frequency)
		}
		for i := range snapshot.VariableExpenses {
			baseExpenses += monthlyEquivalent(snapshot.VariableExpenses[i].Amount, snapshot.VariableExpenses[i].Frequency)
		}
	}

	flows := make([]models.MonthlyFlow, monthsSpanYear)
	for m := 0; m < monthsSpanYear; m++ {
		flows[m] = models.MonthlyFlow{
			Month:    m + 1,
			Label:    time.Month(m + 1).String()[:3],
			Income:   baseIncome,
			Expenses: baseExpenses,
		}
	}

	for i := range ledger {
		entry := &ledger[i]
		if entry.Date.Year() != year {
			continue
		}
		flow := &flows[int(entry.Date.Month())-1]
		if entry.IsExpense() {
			flow.Expenses += entry.Magnitude()
		} else {
			flow.Income += entry.Magnitude()
		}
	}

	for m := range flows {
		flows[m].Income = numeric.Round2(flows[m].Income)
		flows[m].Expenses = numeric.Round2(flows[m].Expenses)
		flows[m].Savings = numeric.Round2(flows[m].Income - flows[m].Expenses)
	}

	return flows
}

// FilterTransactions applies the filter dimensions. Zero-valued dimensions
// match everything; date bounds are inclusive.
func (a *financialAggregator) FilterTransactions(transactions []models.Transaction, filters dto.TransactionFilters) []models.Transaction {
	filtered := make([]models.Transaction, 0, len(transactions))
	for i := range transactions {
		t := transactions[i]
		if filters.Type != "" && t.Type != filters.Type {
			continue
		}
		if filters.Category != "" && !strings.EqualFold(t.Category, filters.Category) {
			continue
		}
		if filters.StartDate != nil && t.Date.Before(*filters.StartDate) {
			continue
		}
		if filters.EndDate != nil && t.Date.After(*filters.EndDate) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// GroupExpensesByName collapses expenses sharing a display name into one
// row for the budget table. Matching is case-insensitive and the first
// spelling seen wins; rows keep first-seen order.
func (a *financialAggregator) GroupExpensesByName(expenses []models.Expense) []models.NameGroup {
	index := make(map[string]int, len(expenses))
	var groups []models.NameGroup

	for i := range expenses {
		name := strings.TrimSpace(expenses[i].Name)
		key := strings.ToLower(name)
		if at, ok := index[key]; ok {
			groups[at].Total += expenses[i].Amount
			groups[at].Count++
			continue
		}
		index[key] = len(groups)
		groups = append(groups, models.NameGroup{Name: name, Total: expenses[i].Amount, Count: 1})
	}

	for i := range groups {
		groups[i].Total = numeric.Round2(groups[i].Total)
	}
	return groups
}

func primaryIncomeAmount(incomes []models.Income) float64 {
	for i := range incomes {
		if incomes[i].IsPrimary {
			return incomes[i].Amount
		}
	}
	if len(incomes) > 0 {
		return incomes[0].Amount
	}
	return 0
}

func mergedRecurringCount(snapshot *models.FinancialSnapshot) int {
	if snapshot == nil {
		return 0
	}
	return len(snapshot.Incomes) + len(snapshot.FixedExpenses) + len(snapshot.VariableExpenses)
}

func monthlyEquivalent(amount float64, frequency string) float64 {
	switch frequency {
	case models.FrequencyWeekly:
		return amount * weeksPerYear / monthsPerYear
	case models.FrequencyYearly:
		return amount / monthsPerYear
	default:
		return amount
	}
}
