package cashflow

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountCategory says whether a balance counts toward assets or liabilities
type AccountCategory string

const (
	Asset     AccountCategory = "asset"
	Liability AccountCategory = "liability"
)

// ParseAccountCategory maps a stored tag onto an AccountCategory
func ParseAccountCategory(s string) (AccountCategory, error) {
	switch c := AccountCategory(strings.ToLower(strings.TrimSpace(s))); c {
	case Asset, Liability:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// ExpenseKind separates plain bills from subscriptions
type ExpenseKind string

const (
	KindExpense      ExpenseKind = "expense"
	KindSubscription ExpenseKind = "subscription"
)

// ParseExpenseKind maps a stored tag onto an ExpenseKind. Empty means expense.
func ParseExpenseKind(s string) (ExpenseKind, error) {
	switch k := ExpenseKind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return KindExpense, nil
	case KindExpense, KindSubscription:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Account is a balance held at a point in time
type Account struct {
	ID       string
	Name     string
	Category AccountCategory
	Balance  decimal.Decimal
	Active   bool
}

// NewAccount validates and builds an Account
func NewAccount(id, name string, category AccountCategory, balance decimal.Decimal, active bool) (Account, error) {
	if category != Asset && category != Liability {
		return Account{}, fmt.Errorf("account %s: %w: %q", id, ErrUnknownCategory, string(category))
	}
	return Account{ID: id, Name: name, Category: category, Balance: balance, Active: active}, nil
}

// RecurringIncome is money received on a fixed frequency
type RecurringIncome struct {
	ID        string
	Source    string
	Amount    decimal.Decimal
	Frequency Frequency
	NextDate  *Date
	Category  string
}

// NewRecurringIncome validates and builds a RecurringIncome
func NewRecurringIncome(id, source string, amount decimal.Decimal, frequency Frequency, nextDate *Date, category string) (RecurringIncome, error) {
	inc := RecurringIncome{
		ID:        id,
		Source:    source,
		Amount:    amount,
		Frequency: frequency,
		NextDate:  nextDate,
		Category:  category,
	}
	if err := inc.validate(); err != nil {
		return RecurringIncome{}, fmt.Errorf("income %s: %w", id, err)
	}
	return inc, nil
}

func (r RecurringIncome) validate() error {
	if r.Amount.IsNegative() {
		return fmt.Errorf("%w: %s is negative", ErrInvalidAmount, r.Amount)
	}
	if !r.Frequency.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownFrequency, string(r.Frequency))
	}
	return nil
}

// RecurringExpense is a bill or subscription due on a day of every month
type RecurringExpense struct {
	ID       string
	Name     string
	Amount   decimal.Decimal
	DueDay   int
	Category string
	Kind     ExpenseKind
}

// NewRecurringExpense validates and builds a RecurringExpense
func NewRecurringExpense(id, name string, amount decimal.Decimal, dueDay int, category string, kind ExpenseKind) (RecurringExpense, error) {
	exp := RecurringExpense{
		ID:       id,
		Name:     name,
		Amount:   amount,
		DueDay:   dueDay,
		Category: category,
		Kind:     kind,
	}
	if err := exp.validate(); err != nil {
		return RecurringExpense{}, fmt.Errorf("expense %s: %w", id, err)
	}
	return exp, nil
}

func (r RecurringExpense) validate() error {
	if r.Amount.IsNegative() {
		return fmt.Errorf("%w: %s is negative", ErrInvalidAmount, r.Amount)
	}
	if err := validateDueDay(r.DueDay); err != nil {
		return err
	}
	if r.Kind != KindExpense && r.Kind != KindSubscription {
		return fmt.Errorf("%w: %q", ErrUnknownKind, string(r.Kind))
	}
	return nil
}

// RecordKind names the collection a record came from
type RecordKind string

const (
	RecordAccount RecordKind = "account"
	RecordIncome  RecordKind = "income"
	RecordExpense RecordKind = "expense"
)

// Warning reports a record left out of a computation
type Warning struct {
	Kind     RecordKind `json:"kind"`
	RecordID string     `json:"record_id"`
	Reason   string     `json:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %s skipped: %s", w.Kind, w.RecordID, w.Reason)
}

func newWarning(kind RecordKind, id string, err error) Warning {
	return Warning{Kind: kind, RecordID: id, Reason: err.Error()}
}
