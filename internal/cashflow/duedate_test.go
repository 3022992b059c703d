package cashflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, y int, m time.Month, d int) Date {
	t.Helper()
	date, err := NewDate(y, m, d)
	require.NoError(t, err)
	return date
}

func TestResolveNextOccurrence(t *testing.T) {
	tests := []struct {
		name   string
		dueDay int
		ref    Date
		want   Date
	}{
		{"leap february clamps", 31, Date{2024, time.February, 15}, Date{2024, time.February, 29}},
		{"same day stays", 15, Date{2024, time.March, 15}, Date{2024, time.March, 15}},
		{"passed rolls to next month", 1, Date{2024, time.March, 15}, Date{2024, time.April, 1}},
		{"december rolls year", 5, Date{2024, time.December, 20}, Date{2025, time.January, 5}},
		{"thirty day month clamps", 31, Date{2024, time.April, 30}, Date{2024, time.April, 30}},
		{"rolls into short february", 30, Date{2023, time.January, 31}, Date{2023, time.February, 28}},
		{"non leap february", 29, Date{2023, time.February, 1}, Date{2023, time.February, 28}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveNextOccurrence(tt.dueDay, tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveNextOccurrence_InvalidDay(t *testing.T) {
	ref := mustDate(t, 2024, time.March, 15)
	for _, day := range []int{0, -3, 32} {
		_, err := ResolveNextOccurrence(day, ref)
		assert.ErrorIs(t, err, ErrInvalidDueDate, "day %d", day)
	}
}
