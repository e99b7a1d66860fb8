package models

import "strings"

// User is the authenticated account as reported by the profile endpoint,
// merged with the budgeting profile (monthly income, currency, onboarding
// state) the backend keeps alongside it.
type User struct {
	ID                  int64   `json:"id"`
	Username            string  `json:"username"`
	Email               string  `json:"email"`
	FirstName           string  `json:"first_name"`
	LastName            string  `json:"last_name"`
	MonthlyIncome       float64 `json:"monthly_income"`
	Currency            string  `json:"currency"`
	OnboardingCompleted bool    `json:"onboarding_completed"`
}

// FullName returns the display name, falling back to the username when no
// name has been set yet (accounts created before onboarding).
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
