package models

import (
	"github.com/Dan9191/cashflow-service/internal/cashflow"
	"github.com/shopspring/decimal"
)

// Dashboard is the analytics view for one user
type Dashboard struct {
	Currency string               `json:"currency"`
	AsOf     cashflow.Date        `json:"as_of"`
	Snapshot cashflow.Snapshot    `json:"snapshot"`
	Grade    cashflow.HealthGrade `json:"grade"`
	Warnings []cashflow.Warning   `json:"warnings"`
}

// BalanceForecast represents the projected balance for N days
type BalanceForecast struct {
	Currency        string                `json:"currency"`
	From            cashflow.Date         `json:"from"`
	ForecastedDays  int                   `json:"forecasted_days"`
	StartingBalance decimal.Decimal       `json:"starting_balance"`
	Checkpoints     []cashflow.Checkpoint `json:"checkpoints"`
	Warnings        []cashflow.Warning    `json:"warnings"`
}

// UpcomingBill is an expense falling due within the requested window
type UpcomingBill struct {
	ExpenseID int64           `json:"expense_id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Kind      string          `json:"kind"`
	DueDate   cashflow.Date   `json:"due_date"`
	DaysUntil int             `json:"days_until"`
}
