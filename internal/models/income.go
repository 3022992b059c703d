package models

import (
	"strconv"

	"github.com/Dan9191/cashflow-service/internal/cashflow"
	"github.com/shopspring/decimal"
)

// Income is a recurring income source
type Income struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Source    string          `json:"source"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency string          `json:"frequency"`
	NextDate  *cashflow.Date  `json:"next_date"`
	Category  string          `json:"category"`
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

// ToCashflow converts the row into the calculator's value type
func (i Income) ToCashflow() (cashflow.RecurringIncome, error) {
	frequency, err := cashflow.ParseFrequency(i.Frequency)
	if err != nil {
		return cashflow.RecurringIncome{}, err
	}
	return cashflow.NewRecurringIncome(strconv.FormatInt(i.ID, 10), i.Source, i.Amount, frequency, i.NextDate, i.Category)
}
