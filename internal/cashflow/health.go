package cashflow

import "github.com/shopspring/decimal"

// HealthGrade is a coarse letter summary of a snapshot
type HealthGrade string

const (
	GradeAPlus HealthGrade = "A+"
	GradeA     HealthGrade = "A"
	GradeB     HealthGrade = "B"
	GradeC     HealthGrade = "C"
	GradeD     HealthGrade = "D"
)

// HealthThresholds are savings-rate percentages and an emergency-fund target
// used to grade a snapshot.
type HealthThresholds struct {
	Excellent             decimal.Decimal
	Good                  decimal.Decimal
	Fair                  decimal.Decimal
	EmergencyMonthsTarget int64
}

// DefaultHealthThresholds returns 20% / 10% / 0% with a three month fund target
func DefaultHealthThresholds() HealthThresholds {
	return HealthThresholds{
		Excellent:             decimal.NewFromInt(20),
		Good:                  decimal.NewFromInt(10),
		Fair:                  decimal.Zero,
		EmergencyMonthsTarget: 3,
	}
}

// Grade rates a snapshot against the thresholds
func Grade(s Snapshot, t HealthThresholds) HealthGrade {
	switch {
	case s.SavingsRate.GreaterThanOrEqual(t.Excellent) && s.EmergencyFundMonths >= t.EmergencyMonthsTarget:
		return GradeAPlus
	case s.SavingsRate.GreaterThanOrEqual(t.Excellent):
		return GradeA
	case s.SavingsRate.GreaterThanOrEqual(t.Good):
		return GradeB
	case s.SavingsRate.GreaterThan(t.Fair):
		return GradeC
	default:
		return GradeD
	}
}
