package models

// UncategorizedLabel names the synthetic bucket for expenses without a
// category reference.
const UncategorizedLabel = "Uncategorized"

// CategoryRollup is one row of the per-category spending breakdown.
// CategoryID is nil for the synthetic uncategorized bucket. BudgetDelta and
// UsagePercent are nil when the category has no positive monthly budget;
// "no budget" is reported as unavailable, never as zero.
type CategoryRollup struct {
	CategoryID        *int64   `json:"category_id,omitempty"`
	Name              string   `json:"name"`
	Total             float64  `json:"total"`
	DominantFrequency string   `json:"dominant_frequency"`
	Type              string   `json:"type"`
	MonthlyBudget     *float64 `json:"monthly_budget,omitempty"`
	BudgetDelta       *float64 `json:"budget_delta,omitempty"`
	UsagePercent      *float64 `json:"usage_percent,omitempty"`
	Color             string   `json:"color,omitempty"`
	Icon              string   `json:"icon,omitempty"`
}

// NameGroup is one row of the name-keyed expense breakdown shown on the
// budget table, where entries sharing a label collapse into one line.
type NameGroup struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// OverBudget reports whether spending exceeded a configured budget.
func (r *CategoryRollup) OverBudget() bool {
	return r.BudgetDelta != nil && *r.BudgetDelta < 0
}
