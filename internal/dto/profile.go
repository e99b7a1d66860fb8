package dto

import (
	"budgetbook/internal/models"
	"budgetbook/internal/numeric"
)

// UserProfileResponse represents the authenticated user's profile. The
// monthly income arrives either as a JSON number or a quoted decimal string
// depending on the backend serializer, so it is parsed leniently.
type UserProfileResponse struct {
	ID                  int64          `json:"id"`
	Username            string         `json:"username"`
	Email               string         `json:"email"`
	FirstName           string         `json:"first_name"`
	LastName            string         `json:"last_name"`
	MonthlyIncome       numeric.Amount `json:"monthly_income"`
	Currency            string         `json:"currency"`
	OnboardingCompleted bool           `json:"onboarding_completed"`
}

// UpdateProfileRequest contains the editable profile fields.
type UpdateProfileRequest struct {
	FirstName     string   `json:"first_name,omitempty" validate:"max=150"`
	LastName      string   `json:"last_name,omitempty" validate:"max=150"`
	MonthlyIncome *float64 `json:"monthly_income,omitempty" validate:"omitempty,positive_amount"`
	Currency      string   `json:"currency,omitempty" validate:"omitempty,currency_code"`
}

// OnboardingStatusResponse reports whether the user finished the setup flow.
type OnboardingStatusResponse struct {
	OnboardingCompleted bool `json:"onboarding_completed"`
}

// ToModel converts the profile response to the domain user.
func (r *UserProfileResponse) ToModel() models.User {
	return models.User{
		ID:                  r.ID,
		Username:            r.Username,
		Email:               r.Email,
		FirstName:           r.FirstName,
		LastName:            r.LastName,
		MonthlyIncome:       r.MonthlyIncome.Float(),
		Currency:            r.Currency,
		OnboardingCompleted: r.OnboardingCompleted,
	}
}
