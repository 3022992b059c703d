package cashflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(d Date) *Date {
	return &d
}

func summarize(cps []Checkpoint) []string {
	out := make([]string, 0, len(cps))
	for _, cp := range cps {
		out = append(out, cp.Date.String()+" "+cp.Balance.String())
	}
	return out
}

func TestProjectForward_NonPositiveHorizon(t *testing.T) {
	today := Date{2024, time.March, 15}
	incomes := []RecurringIncome{{ID: "i1", Amount: dec("10"), Frequency: Weekly, NextDate: datePtr(today.AddDays(1))}}

	for _, h := range []int{0, -5} {
		p := ProjectForward(nil, incomes, nil, today, h)
		assert.Empty(t, p.Checkpoints(), "horizon %d", h)
	}
}

func TestProjectForward_SalaryAndRent(t *testing.T) {
	today := Date{2024, time.March, 15}
	accounts := []Account{{ID: "a1", Category: Asset, Balance: dec("1000"), Active: true}}
	incomes := []RecurringIncome{{ID: "i1", Source: "Salary", Amount: dec("3200"), Frequency: Biweekly, NextDate: datePtr(Date{2024, time.March, 22})}}
	expenses := []RecurringExpense{{ID: "e1", Name: "Rent", Amount: dec("1800"), DueDay: 1, Kind: KindExpense}}

	p := ProjectForward(accounts, incomes, expenses, today, 30)
	cps := p.Checkpoints()

	assert.Equal(t, []string{
		"2024-03-22 4200",
		"2024-04-01 2400",
		"2024-04-05 5600",
	}, summarize(cps))
	require.Len(t, cps[1].Events, 1)
	assert.Equal(t, EventExpense, cps[1].Events[0].Kind)
	assert.Equal(t, "-1800", cps[1].Events[0].Amount.String())
	assert.Empty(t, p.Warnings())
}

func TestProjectForward_SameDayIncomeBeforeExpense(t *testing.T) {
	today := Date{2024, time.March, 15}
	incomes := []RecurringIncome{{ID: "pay", Amount: dec("500"), Frequency: Monthly, NextDate: datePtr(Date{2024, time.April, 1})}}
	expenses := []RecurringExpense{{ID: "rent", Amount: dec("300"), DueDay: 1, Kind: KindExpense}}

	cps := ProjectForward(nil, incomes, expenses, today, 20).Checkpoints()

	require.Len(t, cps, 1)
	require.Len(t, cps[0].Events, 2)
	assert.Equal(t, "pay", cps[0].Events[0].RecordID)
	assert.Equal(t, "rent", cps[0].Events[1].RecordID)
	assert.Equal(t, "200", cps[0].Balance.String())
}

func TestProjectForward_RollsPastAnchorsForward(t *testing.T) {
	today := Date{2024, time.March, 15}
	incomes := []RecurringIncome{{ID: "w", Amount: dec("100"), Frequency: Weekly, NextDate: datePtr(Date{2024, time.March, 1})}}

	cps := ProjectForward(nil, incomes, nil, today, 7).Checkpoints()

	assert.Equal(t, []string{"2024-03-22 100"}, summarize(cps))
}

func TestProjectForward_MonthEndClamping(t *testing.T) {
	today := Date{2024, time.January, 31}
	incomes := []RecurringIncome{{ID: "m", Amount: dec("10"), Frequency: Monthly, NextDate: datePtr(today)}}
	expenses := []RecurringExpense{{ID: "e", Amount: dec("1"), DueDay: 31, Kind: KindExpense}}

	cps := ProjectForward(nil, incomes, expenses, today, 90).Checkpoints()

	assert.Equal(t, []string{
		"2024-02-29 9",
		"2024-03-31 18",
		"2024-04-30 27",
	}, summarize(cps))
}

func TestProjectForward_SkipsUnresolvableIncome(t *testing.T) {
	today := Date{2024, time.March, 15}
	incomes := []RecurringIncome{
		{ID: "unset", Amount: dec("100"), Frequency: Monthly},
		{ID: "stale", Amount: dec("100"), Frequency: Yearly, NextDate: datePtr(Date{2010, time.January, 1})},
		{ID: "bad", Amount: dec("100"), Frequency: Frequency("hourly"), NextDate: datePtr(today)},
		{ID: "ok", Amount: dec("100"), Frequency: Monthly, NextDate: datePtr(Date{2024, time.March, 20})},
	}

	p := ProjectForward(nil, incomes, nil, today, 10)

	assert.Equal(t, []string{"2024-03-20 100"}, summarize(p.Checkpoints()))
	require.Len(t, p.Warnings(), 3)
	assert.Equal(t, "unset", p.Warnings()[0].RecordID)
	assert.Equal(t, "stale", p.Warnings()[1].RecordID)
	assert.Equal(t, "bad", p.Warnings()[2].RecordID)
}

func TestProjectForward_MaxAnchorAgeOption(t *testing.T) {
	today := Date{2024, time.March, 15}
	incomes := []RecurringIncome{{ID: "y", Amount: dec("100"), Frequency: Yearly, NextDate: datePtr(Date{2010, time.March, 20})}}

	p := ProjectForward(nil, incomes, nil, today, 10, WithMaxAnchorAge(20))

	assert.Empty(t, p.Warnings())
	assert.Equal(t, []string{"2024-03-20 100"}, summarize(p.Checkpoints()))
}

func TestProjectForward_StartingBalance(t *testing.T) {
	today := Date{2024, time.March, 15}
	accounts := []Account{{ID: "a1", Category: Asset, Balance: dec("1000"), Active: true}}
	expenses := []RecurringExpense{{ID: "e", Amount: dec("50"), DueDay: 16, Kind: KindExpense}}

	cps := ProjectForward(accounts, nil, expenses, today, 5, WithStartingBalance(dec("75.5"))).Checkpoints()

	assert.Equal(t, []string{"2024-03-16 25.5"}, summarize(cps))
}

func TestProjectForward_Idempotent(t *testing.T) {
	today := Date{2024, time.March, 15}
	incomes := []RecurringIncome{{ID: "i", Amount: dec("700"), Frequency: Weekly, NextDate: datePtr(Date{2024, time.March, 18})}}
	expenses := []RecurringExpense{{ID: "e", Amount: dec("1200"), DueDay: 28, Kind: KindExpense}}

	p := ProjectForward(nil, incomes, expenses, today, 120)
	first := summarize(p.Checkpoints())
	second := summarize(p.Checkpoints())
	third := summarize(ProjectForward(nil, incomes, expenses, today, 120).Checkpoints())

	assert.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assert.Equal(t, first, third)
}

func TestProjectForward_StopsWhenConsumerStops(t *testing.T) {
	today := Date{2024, time.March, 15}
	incomes := []RecurringIncome{{ID: "i", Amount: dec("1"), Frequency: Weekly, NextDate: datePtr(today.AddDays(1))}}

	var seen []Checkpoint
	for cp := range ProjectForward(nil, incomes, nil, today, 365).All() {
		seen = append(seen, cp)
		if len(seen) == 2 {
			break
		}
	}
	assert.Len(t, seen, 2)
	assert.Equal(t, "2", seen[1].Balance.String())
}
