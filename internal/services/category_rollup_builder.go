package services

import (
	"sort"

	"budgetbook/internal/models"
	"budgetbook/internal/numeric"
)

const maxUsagePercent = 100.0

type categoryRollupBuilder struct{}

// NewCategoryRollupBuilder creates a new CategoryRollupBuilderInterface instance
func NewCategoryRollupBuilder() CategoryRollupBuilderInterface {
	return &categoryRollupBuilder{}
}

type rollupBucket struct {
	rollup      models.CategoryRollup
	frequencies map[string]int
	lastSeen    map[string]int
	order       int
}

// Build groups expenses by category id. Expenses without a category land in
// a synthetic uncategorized bucket, which is only emitted when it collected
// something. Expenses referencing an unknown category id keep their own
// bucket under the denormalized name, so the grand total across all rows
// always equals the sum of the input amounts. Known expense categories are
// emitted even at zero total so a budgeted category never disappears from
// the breakdown.
func (b *categoryRollupBuilder) Build(expenses []models.Expense, categories []models.Category) []models.CategoryRollup {
	known := make(map[int64]models.Category, len(categories))
	buckets := make(map[int64]*rollupBucket)
	var uncategorized *rollupBucket
	nextOrder := 0

	for _, c := range categories {
		if c.Type != models.CategoryTypeExpense {
			continue
		}
		known[c.ID] = c
		id := c.ID
		buckets[id] = &rollupBucket{
			rollup: models.CategoryRollup{
				CategoryID:    &id,
				Name:          c.Name,
				Type:          models.CategoryTypeExpense,
				MonthlyBudget: c.MonthlyBudget,
				Color:         c.Color,
				Icon:          c.Icon,
			},
			frequencies: make(map[string]int),
			lastSeen:    make(map[string]int),
			order:       nextOrder,
		}
		nextOrder++
	}

	for i := range expenses {
		exp := &expenses[i]

		var bucket *rollupBucket
		switch {
		case exp.CategoryID == nil:
			if uncategorized == nil {
				uncategorized = &rollupBucket{
					rollup: models.CategoryRollup{
						Name: models.UncategorizedLabel,
						Type: models.CategoryTypeExpense,
					},
					frequencies: make(map[string]int),
					lastSeen:    make(map[string]int),
					order:       nextOrder,
				}
				nextOrder++
			}
			bucket = uncategorized
		default:
			var ok bool
			bucket, ok = buckets[*exp.CategoryID]
			if !ok {
				// Orphaned reference, likely a category deleted after the
				// expense was created. The denormalized name keeps the row
				// readable.
				id := *exp.CategoryID
				name := exp.CategoryName
				if name == "" {
					name = models.UncategorizedLabel
				}
				bucket = &rollupBucket{
					rollup: models.CategoryRollup{
						CategoryID: &id,
						Name:       name,
						Type:       models.CategoryTypeExpense,
					},
					frequencies: make(map[string]int),
					lastSeen:    make(map[string]int),
					order:       nextOrder,
				}
				nextOrder++
				buckets[id] = bucket
			}
		}

		bucket.rollup.Total += exp.Amount
		bucket.frequencies[exp.Frequency]++
		bucket.lastSeen[exp.Frequency] = i
	}

	all := make([]*rollupBucket, 0, len(buckets)+1)
	for _, bucket := range buckets {
		all = append(all, bucket)
	}
	if uncategorized != nil && uncategorized.rollup.Total > 0 {
		all = append(all, uncategorized)
	}

	for _, bucket := range all {
		bucket.rollup.Total = numeric.Round2(bucket.rollup.Total)
		bucket.rollup.DominantFrequency = dominantFrequency(bucket.frequencies, bucket.lastSeen)
		applyBudget(&bucket.rollup)
	}

	// Stable order: total descending, insertion order breaking ties.
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].rollup.Total != all[j].rollup.Total {
			return all[i].rollup.Total > all[j].rollup.Total
		}
		return all[i].order < all[j].order
	})

	rollups := make([]models.CategoryRollup, 0, len(all))
	for _, bucket := range all {
		rollups = append(rollups, bucket.rollup)
	}

	return rollups
}

// applyBudget fills the budget-relative fields. Without a positive budget
// they stay nil; usage is clamped at 100 so an overspent category reads as
// fully used, with the overshoot carried by the negative delta.
func applyBudget(r *models.CategoryRollup) {
	if r.MonthlyBudget == nil || *r.MonthlyBudget <= 0 {
		r.MonthlyBudget = nil
		return
	}
	budget := *r.MonthlyBudget

	delta := numeric.Round2(budget - r.Total)
	usage := r.Total / budget * maxUsagePercent
	if usage > maxUsagePercent {
		usage = maxUsagePercent
	}
	usage = numeric.Round2(usage)

	r.BudgetDelta = &delta
	r.UsagePercent = &usage
}

// dominantFrequency picks the most common frequency label, preferring the
// most recently seen label on a tie. An empty bucket reports monthly.
func dominantFrequency(counts map[string]int, lastSeen map[string]int) string {
	best := ""
	bestCount := 0
	bestSeen := -1
	for freq, count := range counts {
		if count > bestCount || (count == bestCount && lastSeen[freq] > bestSeen) {
			best = freq
			bestCount = count
			bestSeen = lastSeen[freq]
		}
	}
	if best == "" {
		return models.FrequencyMonthly
	}
	return best
}
