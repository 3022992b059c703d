package models

import (
	"strconv"

	"github.com/Dan9191/cashflow-service/internal/cashflow"
	"github.com/shopspring/decimal"
)

// Expense is a recurring bill or subscription due on a day of the month
type Expense struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	DueDay    int             `json:"due_day"`
	Category  string          `json:"category"`
	Kind      string          `json:"kind"` // expense | subscription
	CreatedAt string          `json:"created_at"`
	UpdatedAt string          `json:"updated_at"`
}

// ToCashflow converts the row into the calculator's value type
func (e Expense) ToCashflow() (cashflow.RecurringExpense, error) {
	kind, err := cashflow.ParseExpenseKind(e.Kind)
	if err != nil {
		return cashflow.RecurringExpense{}, err
	}
	return cashflow.NewRecurringExpense(strconv.FormatInt(e.ID, 10), e.Name, e.Amount, e.DueDay, e.Category, kind)
}
