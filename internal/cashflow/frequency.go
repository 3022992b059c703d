package cashflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrUnknownFrequency = errors.New("unknown frequency")
	ErrInvalidDueDate   = errors.New("invalid due date")
	ErrUnknownCategory  = errors.New("unknown account category")
	ErrUnknownKind      = errors.New("unknown expense kind")
)

// Frequency is how often a recurring income occurs
type Frequency string

const (
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
	Yearly   Frequency = "yearly"
)

// monthly multipliers as num/den
var frequencyRatios = map[Frequency][2]int64{
	Weekly:   {52, 12},
	Biweekly: {26, 12},
	Monthly:  {1, 1},
	Yearly:   {1, 12},
}

// ParseFrequency maps a stored tag onto a Frequency
func ParseFrequency(s string) (Frequency, error) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := frequencyRatios[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFrequency, s)
	}
	return f, nil
}

// Valid reports whether f is one of the known frequencies
func (f Frequency) Valid() bool {
	_, ok := frequencyRatios[f]
	return ok
}

// NormalizeMonthly converts an amount recurring at frequency f into its
// monthly equivalent.
func NormalizeMonthly(amount decimal.Decimal, f Frequency) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s is negative", ErrInvalidAmount, amount)
	}
	ratio, ok := frequencyRatios[f]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownFrequency, string(f))
	}
	if amount.IsZero() {
		return decimal.Zero, nil
	}
	return amount.Mul(decimal.NewFromInt(ratio[0])).Div(decimal.NewFromInt(ratio[1])), nil
}

// occurrence returns the k-th occurrence after anchor using calendar steps.
// Month-based steps stay on the anchor's day, clamped to shorter months.
func (f Frequency) occurrence(anchor Date, k int) Date {
	switch f {
	case Weekly:
		return anchor.AddDays(7 * k)
	case Biweekly:
		return anchor.AddDays(14 * k)
	case Monthly:
		return anchor.AddMonthsClamped(k, anchor.Day)
	default:
		return anchor.AddMonthsClamped(12*k, anchor.Day)
	}
}
