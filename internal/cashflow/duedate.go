package cashflow

import "fmt"

// ResolveNextOccurrence returns the first date on or after ref that falls on
// dueDay. Months shorter than dueDay use their last day.
func ResolveNextOccurrence(dueDay int, ref Date) (Date, error) {
	if err := validateDueDay(dueDay); err != nil {
		return Date{}, err
	}
	candidate := clampedDate(ref.Year, ref.Month, dueDay)
	if candidate.Before(ref) {
		candidate = ref.AddMonthsClamped(1, dueDay)
	}
	return candidate, nil
}

func validateDueDay(dueDay int) error {
	if dueDay < 1 || dueDay > 31 {
		return fmt.Errorf("%w: day %d is outside 1-31", ErrInvalidDueDate, dueDay)
	}
	return nil
}
