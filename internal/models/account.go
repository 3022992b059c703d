package models

import (
	"strconv"

	"github.com/Dan9191/cashflow-service/internal/cashflow"
	"github.com/shopspring/decimal"
)

// Account is a manually tracked or provider-linked balance
type Account struct {
	ID                int64           `json:"id"`
	UserID            int64           `json:"user_id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"` // asset | liability
	Balance           decimal.Decimal `json:"balance"`
	Currency          string          `json:"currency"`
	Active            bool            `json:"active"`
	ProviderAccountID *string         `json:"provider_account_id,omitempty"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}

// ToCashflow converts the row into the calculator's value type
func (a Account) ToCashflow() (cashflow.Account, error) {
	category, err := cashflow.ParseAccountCategory(a.Category)
	if err != nil {
		return cashflow.Account{}, err
	}
	return cashflow.NewAccount(strconv.FormatInt(a.ID, 10), a.Name, category, a.Balance, a.Active)
}
