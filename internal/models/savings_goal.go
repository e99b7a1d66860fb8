package models

import "time"

const (
	GoalTypeEmergency  = "emergency"
	GoalTypeVacation   = "vacation"
	GoalTypePurchase   = "purchase"
	GoalTypeInvestment = "investment"
	GoalTypeOther      = "other"

	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// SavingsGoal tracks progress toward a savings target.
type SavingsGoal struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	TargetAmount  float64    `json:"target_amount"`
	CurrentAmount float64    `json:"current_amount"`
	TargetDate    *time.Time `json:"target_date,omitempty"`
	Type          string     `json:"type"`
	Priority      string     `json:"priority"`
}

// ProgressPercentage returns how far along the goal is, capped at 100.
// A goal without a positive target reports zero progress.
func (g *SavingsGoal) ProgressPercentage() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	pct := g.CurrentAmount / g.TargetAmount * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// IsValidGoalType reports whether t is one of the known goal tags.
func IsValidGoalType(t string) bool {
	switch t {
	case GoalTypeEmergency, GoalTypeVacation, GoalTypePurchase, GoalTypeInvestment, GoalTypeOther:
		return true
	}
	return false
}

// IsValidPriority reports whether p is high, medium or low.
func IsValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}
