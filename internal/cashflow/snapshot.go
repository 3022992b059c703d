package cashflow

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Ratio is either a finite value or unbounded (division by a zero denominator)
type Ratio struct {
	value   decimal.Decimal
	bounded bool
}

// RatioOf returns a bounded ratio
func RatioOf(v decimal.Decimal) Ratio {
	return Ratio{value: v, bounded: true}
}

// Unbounded returns the ratio reported when the denominator is zero
func Unbounded() Ratio {
	return Ratio{}
}

// Value returns the ratio and whether it is bounded
func (r Ratio) Value() (decimal.Decimal, bool) {
	return r.value, r.bounded
}

func (r Ratio) IsUnbounded() bool {
	return !r.bounded
}

func (r Ratio) String() string {
	if !r.bounded {
		return "unbounded"
	}
	return r.value.StringFixed(2)
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.bounded {
		return json.Marshal("unbounded")
	}
	return []byte(r.value.Round(4).String()), nil
}

// CategoryShare is one category's part of monthly expenses
type CategoryShare struct {
	Category   string          `json:"category"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Snapshot holds the derived monthly metrics for one set of records
type Snapshot struct {
	TotalAssets         decimal.Decimal `json:"total_assets"`
	TotalLiabilities    decimal.Decimal `json:"total_liabilities"`
	NetWorth            decimal.Decimal `json:"net_worth"`
	MonthlyIncome       decimal.Decimal `json:"monthly_income"`
	MonthlyExpenses     decimal.Decimal `json:"monthly_expenses"`
	MonthlySavings      decimal.Decimal `json:"monthly_savings"`
	SavingsRate         decimal.Decimal `json:"savings_rate"`
	AssetToDebtRatio    Ratio           `json:"asset_to_debt_ratio"`
	EmergencyFundMonths int64           `json:"emergency_fund_months"`
	CategoryBreakdown   []CategoryShare `json:"category_breakdown"`
	Warnings            []Warning       `json:"warnings,omitempty"`
}

// ComputeSnapshot derives a Snapshot from accounts, incomes and expenses.
// Records that fail validation are left out and reported in Warnings.
func ComputeSnapshot(accounts []Account, incomes []RecurringIncome, expenses []RecurringExpense) Snapshot {
	var snap Snapshot

	assets, liabilities, warnings := sumAccounts(accounts)
	snap.TotalAssets = assets
	snap.TotalLiabilities = liabilities
	snap.NetWorth = assets.Sub(liabilities)
	snap.Warnings = append(snap.Warnings, warnings...)

	for _, inc := range incomes {
		if err := inc.validate(); err != nil {
			snap.Warnings = append(snap.Warnings, newWarning(RecordIncome, inc.ID, err))
			continue
		}
		monthly, err := NormalizeMonthly(inc.Amount, inc.Frequency)
		if err != nil {
			snap.Warnings = append(snap.Warnings, newWarning(RecordIncome, inc.ID, err))
			continue
		}
		snap.MonthlyIncome = snap.MonthlyIncome.Add(monthly)
	}

	byCategory := make(map[string]decimal.Decimal)
	for _, exp := range expenses {
		if err := exp.validate(); err != nil {
			snap.Warnings = append(snap.Warnings, newWarning(RecordExpense, exp.ID, err))
			continue
		}
		snap.MonthlyExpenses = snap.MonthlyExpenses.Add(exp.Amount)
		byCategory[exp.Category] = byCategory[exp.Category].Add(exp.Amount)
	}

	snap.MonthlySavings = snap.MonthlyIncome.Sub(snap.MonthlyExpenses)
	if snap.MonthlyIncome.IsPositive() {
		snap.SavingsRate = snap.MonthlySavings.Div(snap.MonthlyIncome).Mul(hundred)
	}

	if snap.TotalLiabilities.IsPositive() {
		snap.AssetToDebtRatio = RatioOf(snap.TotalAssets.Div(snap.TotalLiabilities))
	} else {
		snap.AssetToDebtRatio = Unbounded()
	}

	if snap.MonthlyExpenses.IsPositive() {
		snap.EmergencyFundMonths = snap.TotalAssets.Div(snap.MonthlyExpenses).Floor().IntPart()
	}

	snap.CategoryBreakdown = breakdown(byCategory, snap.MonthlyExpenses)
	return snap
}

// NetWorth returns assets minus liabilities of the active accounts
func NetWorth(accounts []Account) decimal.Decimal {
	assets, liabilities, _ := sumAccounts(accounts)
	return assets.Sub(liabilities)
}

func sumAccounts(accounts []Account) (assets, liabilities decimal.Decimal, warnings []Warning) {
	for _, acc := range accounts {
		switch acc.Category {
		case Asset:
			if acc.Active {
				assets = assets.Add(acc.Balance)
			}
		case Liability:
			if acc.Active {
				liabilities = liabilities.Add(acc.Balance.Abs())
			}
		default:
			err := fmt.Errorf("%w: %q", ErrUnknownCategory, string(acc.Category))
			warnings = append(warnings, newWarning(RecordAccount, acc.ID, err))
		}
	}
	return assets, liabilities, warnings
}

func breakdown(byCategory map[string]decimal.Decimal, total decimal.Decimal) []CategoryShare {
	shares := make([]CategoryShare, 0, len(byCategory))
	for category, amount := range byCategory {
		share := CategoryShare{Category: category, Amount: amount}
		if total.IsPositive() {
			share.Percentage = amount.Div(total).Mul(hundred)
		}
		shares = append(shares, share)
	}
	sort.Slice(shares, func(i, j int) bool {
		if c := shares[i].Amount.Cmp(shares[j].Amount); c != 0 {
			return c > 0
		}
		return shares[i].Category < shares[j].Category
	})
	return shares
}
