package dto

import (
	"time"

	"budgetbook/internal/models"
	"budgetbook/internal/numeric"
)

const dateLayout = "2006-01-02"

// TransactionResponse is one ledger entry as serialized by the backend.
// Amounts are signed: negative for expenses, positive for incomes.
type TransactionResponse struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	Amount        numeric.Amount `json:"amount"`
	Type          string         `json:"type"`
	Category      string         `json:"category"`
	Date          string         `json:"date"`
	PaymentMethod string         `json:"payment_method"`
	Frequency     string         `json:"frequency"`
}

// TransactionRequest creates or updates a ledger entry.
type TransactionRequest struct {
	Name          string  `json:"name" validate:"required,not_blank,max=200"`
	Amount        float64 `json:"amount" validate:"required"`
	Type          string  `json:"type" validate:"oneof=income expense"`
	Category      string  `json:"category,omitempty" validate:"max=100"`
	Date          string  `json:"date" validate:"required,datetime=2006-01-02"`
	PaymentMethod string  `json:"payment_method,omitempty"`
	Frequency     string  `json:"frequency" validate:"oneof=once monthly quarterly yearly"`
}

// TransactionFilters narrows a transaction query. Zero values mean no
// constraint on that dimension.
type TransactionFilters struct {
	Type      string
	Category  string
	StartDate *time.Time
	EndDate   *time.Time
}

func (r *TransactionResponse) ToModel() models.Transaction {
	date, _ := parseDate(r.Date)
	return models.Transaction{
		ID:            r.ID,
		Name:          r.Name,
		Amount:        r.Amount.Float(),
		Type:          r.Type,
		Category:      r.Category,
		Date:          date,
		PaymentMethod: r.PaymentMethod,
		Frequency:     r.Frequency,
	}
}

// ToTransactions converts a transaction list.
func ToTransactions(responses []TransactionResponse) []models.Transaction {
	transactions := make([]models.Transaction, 0, len(responses))
	for i := range responses {
		transactions = append(transactions, responses[i].ToModel())
	}
	return transactions
}

// FromTransaction builds the write payload for a domain transaction.
func FromTransaction(t models.Transaction) TransactionRequest {
	return TransactionRequest{
		Name:          t.Name,
		Amount:        t.Amount,
		Type:          t.Type,
		Category:      t.Category,
		Date:          t.Date.Format(dateLayout),
		PaymentMethod: t.PaymentMethod,
		Frequency:     t.Frequency,
	}
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
