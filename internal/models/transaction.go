package models

import "time"

const (
	TransactionTypeIncome  = "income"
	TransactionTypeExpense = "expense"

	// Ad-hoc transactions carry their own recurrence vocabulary, including
	// one-off entries, unlike the income/expense lists which are always
	// recurring.
	TransactionFrequencyOnce      = "once"
	TransactionFrequencyMonthly   = "monthly"
	TransactionFrequencyQuarterly = "quarterly"
	TransactionFrequencyYearly    = "yearly"

	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "transfer"
	PaymentMethodCheck    = "check"
	PaymentMethodOther    = "other"
)

// Transaction is an ad-hoc ledger entry. Unlike Income and Expense records,
// transactions use signed amounts: expenses are negative, incomes positive.
// The two sign conventions coexist and must not be mixed; MergeTransactions
// in the services package is the only place that reconciles them.
type Transaction struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Amount        float64   `json:"amount"`
	Type          string    `json:"type"`
	Category      string    `json:"category,omitempty"`
	Date          time.Time `json:"date"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	Frequency     string    `json:"frequency"`
}

// IsExpense reports whether the entry is an outflow.
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// Magnitude returns the unsigned amount for aggregation.
func (t *Transaction) Magnitude() float64 {
	if t.Amount < 0 {
		return -t.Amount
	}
	return t.Amount
}

// IsValidTransactionType reports whether t is "income" or "expense".
func IsValidTransactionType(t string) bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// IsValidPaymentMethod reports whether m is a recognized payment method.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodCheck, PaymentMethodOther:
		return true
	}
	return false
}
