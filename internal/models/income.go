package models

const (
	IncomeTypeSalary     = "salary"
	IncomeTypeFreelance  = "freelance"
	IncomeTypeInvestment = "investment"
	IncomeTypeRental     = "rental"
	IncomeTypeOther      = "other"

	FrequencyMonthly = "monthly"
	FrequencyWeekly  = "weekly"
	FrequencyYearly  = "yearly"
)

// Income is a recurring revenue source. Amounts are stored as non-negative
// magnitudes; the income/expense distinction is carried by the record kind,
// not the sign.
type Income struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Type      string  `json:"type"`
	IsPrimary bool    `json:"is_primary"`
	Frequency string  `json:"frequency"`
}

// IsValidIncomeType reports whether t is one of the known income tags.
func IsValidIncomeType(t string) bool {
	switch t {
	case IncomeTypeSalary, IncomeTypeFreelance, IncomeTypeInvestment, IncomeTypeRental, IncomeTypeOther:
		return true
	}
	return false
}

// IsValidFrequency reports whether f is a recognized recurrence label.
func IsValidFrequency(f string) bool {
	switch f {
	case FrequencyMonthly, FrequencyWeekly, FrequencyYearly:
		return true
	}
	return false
}
