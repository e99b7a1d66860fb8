package dto

import (
	"budgetbook/internal/models"
	"budgetbook/internal/numeric"
)

// CategoryResponse is one category as serialized by the backend. A null
// monthly_budget means no budget is configured, which stays distinct from a
// budget of zero.
type CategoryResponse struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	MonthlyBudget *numeric.Amount `json:"monthly_budget"`
	Color         string          `json:"color"`
	Icon          string          `json:"icon"`
}

// CategoryRequest creates or updates a category.
type CategoryRequest struct {
	Name          string   `json:"name" validate:"required,not_blank,max=100"`
	Type          string   `json:"type" validate:"oneof=income expense"`
	MonthlyBudget *float64 `json:"monthly_budget,omitempty" validate:"omitempty,positive_amount"`
	Color         string   `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Icon          string   `json:"icon,omitempty" validate:"max=50"`
}

func (r *CategoryResponse) ToModel() models.Category {
	category := models.Category{
		ID:    r.ID,
		Name:  r.Name,
		Type:  r.Type,
		Color: r.Color,
		Icon:  r.Icon,
	}
	if r.MonthlyBudget != nil {
		budget := r.MonthlyBudget.Float()
		category.MonthlyBudget = &budget
	}
	return category
}

// ToCategories converts a category list.
func ToCategories(responses []CategoryResponse) []models.Category {
	categories := make([]models.Category, 0, len(responses))
	for i := range responses {
		categories = append(categories, responses[i].ToModel())
	}
	return categories
}
