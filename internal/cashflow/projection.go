package cashflow

import (
	"errors"
	"fmt"
	"iter"

	"github.com/shopspring/decimal"
)

var errNoNextDate = errors.New("no next occurrence date")

// EventKind says whether an event adds to or takes from the balance
type EventKind string

const (
	EventIncome  EventKind = "income"
	EventExpense EventKind = "expense"
)

// Event is one recurring record firing on a date. Amount is signed.
type Event struct {
	Kind     EventKind       `json:"kind"`
	RecordID string          `json:"record_id"`
	Label    string          `json:"label"`
	Amount   decimal.Decimal `json:"amount"`
}

// Checkpoint is the running balance after every event on Date was applied
type Checkpoint struct {
	Date    Date            `json:"date"`
	Balance decimal.Decimal `json:"balance"`
	Events  []Event         `json:"events"`
}

type projectionConfig struct {
	startingBalance *decimal.Decimal
	maxAnchorAge    int
}

// ProjectionOption tunes ProjectForward
type ProjectionOption func(*projectionConfig)

// WithStartingBalance replaces the net worth of the accounts as the opening balance
func WithStartingBalance(balance decimal.Decimal) ProjectionOption {
	return func(c *projectionConfig) {
		c.startingBalance = &balance
	}
}

// WithMaxAnchorAge sets how many years an income's next date may lag behind
// today before the record is treated as having no resolvable occurrence.
func WithMaxAnchorAge(years int) ProjectionOption {
	return func(c *projectionConfig) {
		c.maxAnchorAge = years
	}
}

const defaultMaxAnchorAge = 5

// stream yields the occurrences of a single record
type stream struct {
	event  Event
	anchor Date
	// at returns the k-th occurrence counted from anchor
	at func(anchor Date, k int) Date
}

// Projection is a restartable forward projection of the running balance
type Projection struct {
	start    decimal.Decimal
	from     Date
	to       Date
	streams  []stream
	warnings []Warning
}

// ProjectForward projects the balance over (today, today+horizonDays] by
// applying every income and expense on its calendar occurrence dates.
func ProjectForward(accounts []Account, incomes []RecurringIncome, expenses []RecurringExpense, today Date, horizonDays int, opts ...ProjectionOption) *Projection {
	cfg := projectionConfig{maxAnchorAge: defaultMaxAnchorAge}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := &Projection{from: today, to: today.AddDays(horizonDays)}
	if horizonDays <= 0 {
		return p
	}

	assets, liabilities, warnings := sumAccounts(accounts)
	p.warnings = append(p.warnings, warnings...)
	p.start = assets.Sub(liabilities)
	if cfg.startingBalance != nil {
		p.start = *cfg.startingBalance
	}

	oldest := today.AddMonthsClamped(-12*cfg.maxAnchorAge, today.Day)
	for _, inc := range incomes {
		s, err := incomeStream(inc, oldest)
		if err != nil {
			p.warnings = append(p.warnings, newWarning(RecordIncome, inc.ID, err))
			continue
		}
		p.streams = append(p.streams, s)
	}
	for _, exp := range expenses {
		s, err := expenseStream(exp, today)
		if err != nil {
			p.warnings = append(p.warnings, newWarning(RecordExpense, exp.ID, err))
			continue
		}
		p.streams = append(p.streams, s)
	}
	return p
}

func incomeStream(inc RecurringIncome, oldest Date) (stream, error) {
	if err := inc.validate(); err != nil {
		return stream{}, err
	}
	if inc.NextDate == nil || inc.NextDate.IsZero() {
		return stream{}, errNoNextDate
	}
	anchor := *inc.NextDate
	if anchor.Before(oldest) {
		return stream{}, fmt.Errorf("%w: %s is older than %s", errNoNextDate, anchor, oldest)
	}
	return stream{
		event:  Event{Kind: EventIncome, RecordID: inc.ID, Label: inc.Source, Amount: inc.Amount},
		anchor: anchor,
		at:     inc.Frequency.occurrence,
	}, nil
}

func expenseStream(exp RecurringExpense, today Date) (stream, error) {
	if err := exp.validate(); err != nil {
		return stream{}, err
	}
	anchor, err := ResolveNextOccurrence(exp.DueDay, today.AddDays(1))
	if err != nil {
		return stream{}, err
	}
	dueDay := exp.DueDay
	return stream{
		event:  Event{Kind: EventExpense, RecordID: exp.ID, Label: exp.Name, Amount: exp.Amount.Neg()},
		anchor: anchor,
		at: func(anchor Date, k int) Date {
			return anchor.AddMonthsClamped(k, dueDay)
		},
	}, nil
}

// Warnings lists the records left out of the projection
func (p *Projection) Warnings() []Warning {
	return p.warnings
}

// All yields one checkpoint per date with at least one event, in date order.
// Each call starts over from the opening balance.
func (p *Projection) All() iter.Seq[Checkpoint] {
	return func(yield func(Checkpoint) bool) {
		if len(p.streams) == 0 || !p.to.After(p.from) {
			return
		}

		steps := make([]int, len(p.streams))
		next := make([]Date, len(p.streams))
		for i, s := range p.streams {
			// skip occurrences on or before today
			for next[i] = s.at(s.anchor, 0); !next[i].After(p.from); {
				steps[i]++
				next[i] = s.at(s.anchor, steps[i])
			}
		}

		balance := p.start
		for {
			day, ok := earliest(next)
			if !ok || day.After(p.to) {
				return
			}
			cp := Checkpoint{Date: day}
			for i, s := range p.streams {
				if !next[i].Equal(day) {
					continue
				}
				cp.Events = append(cp.Events, s.event)
				balance = balance.Add(s.event.Amount)
				steps[i]++
				next[i] = s.at(s.anchor, steps[i])
			}
			cp.Balance = balance
			if !yield(cp) {
				return
			}
		}
	}
}

// Checkpoints collects All into a slice
func (p *Projection) Checkpoints() []Checkpoint {
	checkpoints := []Checkpoint{}
	for cp := range p.All() {
		checkpoints = append(checkpoints, cp)
	}
	return checkpoints
}

func earliest(dates []Date) (Date, bool) {
	var first Date
	found := false
	for _, d := range dates {
		if !found || d.Before(first) {
			first = d
			found = true
		}
	}
	return first, found
}
