package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Dan9191/cashflow-service/internal/cashflow"
	"github.com/Dan9191/cashflow-service/internal/integrations/cbr"
	"github.com/Dan9191/cashflow-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// records is one consistent read of a user's ledgers in calculator form
type records struct {
	accounts []cashflow.Account
	incomes  []cashflow.RecurringIncome
	expenses []cashflow.RecurringExpense
	warnings []cashflow.Warning
}

func (s *Service) thresholds() cashflow.HealthThresholds {
	return cashflow.HealthThresholds{
		Excellent:             s.config.HealthExcellentRate,
		Good:                  s.config.HealthGoodRate,
		Fair:                  s.config.HealthFairRate,
		EmergencyMonthsTarget: s.config.HealthEmergencyMonths,
	}
}

// loadRecords reads accounts, incomes and expenses and converts them. Rows that
// cannot be converted are reported as warnings instead of failing the request.
func (s *Service) loadRecords(ctx context.Context, userID int64, today cashflow.Date) (*records, error) {
	accounts, err := s.repo.ListAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	incomes, err := s.repo.ListIncomes(ctx, userID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.ListExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}

	recs := &records{}
	rates, rateErr := s.ratesFor(ctx, accounts, today)
	for _, a := range accounts {
		acc, err := a.ToCashflow()
		if err != nil {
			recs.skip(cashflow.RecordAccount, a.ID, err)
			continue
		}
		if !strings.EqualFold(a.Currency, s.config.BaseCurrency) {
			if rateErr != nil {
				recs.skip(cashflow.RecordAccount, a.ID, fmt.Errorf("no %s rate: %w", a.Currency, rateErr))
				continue
			}
			if acc.Balance, err = rates.Convert(acc.Balance, a.Currency, s.config.BaseCurrency); err != nil {
				recs.skip(cashflow.RecordAccount, a.ID, err)
				continue
			}
		}
		recs.accounts = append(recs.accounts, acc)
	}
	for _, i := range incomes {
		inc, err := i.ToCashflow()
		if err != nil {
			recs.skip(cashflow.RecordIncome, i.ID, err)
			continue
		}
		recs.incomes = append(recs.incomes, inc)
	}
	for _, e := range expenses {
		exp, err := e.ToCashflow()
		if err != nil {
			recs.skip(cashflow.RecordExpense, e.ID, err)
			continue
		}
		recs.expenses = append(recs.expenses, exp)
	}
	return recs, nil
}

func (r *records) skip(kind cashflow.RecordKind, id int64, err error) {
	r.warnings = append(r.warnings, cashflow.Warning{Kind: kind, RecordID: strconv.FormatInt(id, 10), Reason: err.Error()})
}

// ratesFor fetches exchange rates only when some account is not in the base currency
func (s *Service) ratesFor(ctx context.Context, accounts []models.Account, today cashflow.Date) (cbr.Rates, error) {
	foreign := false
	for _, a := range accounts {
		if !strings.EqualFold(a.Currency, s.config.BaseCurrency) {
			foreign = true
			break
		}
	}
	if !foreign {
		return nil, nil
	}
	if s.rates == nil {
		return nil, fmt.Errorf("exchange rates are not configured")
	}
	rates, err := s.rates.GetRates(ctx, today)
	if err != nil {
		s.log.WithError(err).Warn("Failed to fetch exchange rates")
		return nil, err
	}
	return rates, nil
}

func (s *Service) logWarnings(userID int64, op string, warnings []cashflow.Warning) {
	for _, w := range warnings {
		s.log.WithFields(logrus.Fields{
			"user_id":   userID,
			"operation": op,
			"kind":      w.Kind,
			"record_id": w.RecordID,
		}).Warn(w.Reason)
	}
}

// Dashboard computes the monthly snapshot and health grade of the authenticated user
func (s *Service) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	today := s.Today()
	recs, err := s.loadRecords(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	snap := cashflow.ComputeSnapshot(recs.accounts, recs.incomes, recs.expenses)
	warnings := append(recs.warnings, snap.Warnings...)
	snap.Warnings = nil
	s.logWarnings(userID, "dashboard", warnings)

	if warnings == nil {
		warnings = []cashflow.Warning{}
	}
	return &models.Dashboard{
		Currency: s.config.BaseCurrency,
		AsOf:     today,
		Snapshot: snap,
		Grade:    cashflow.Grade(snap, s.thresholds()),
		Warnings: warnings,
	}, nil
}

// Forecast projects the balance of the authenticated user over the next days.
// A nil start uses the current net worth.
func (s *Service) Forecast(ctx context.Context, days int, start *decimal.Decimal) (*models.BalanceForecast, error) {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if days > s.config.MaxHorizonDays {
		return nil, invalid("horizon of %d days exceeds the maximum of %d", days, s.config.MaxHorizonDays)
	}
	today := s.Today()
	recs, err := s.loadRecords(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	opts := []cashflow.ProjectionOption{cashflow.WithMaxAnchorAge(s.config.MaxAnchorAgeYears)}
	opening := cashflow.NetWorth(recs.accounts)
	if start != nil {
		opening = *start
		opts = append(opts, cashflow.WithStartingBalance(*start))
	}
	projection := cashflow.ProjectForward(recs.accounts, recs.incomes, recs.expenses, today, days, opts...)

	warnings := append(recs.warnings, projection.Warnings()...)
	s.logWarnings(userID, "forecast", warnings)
	if warnings == nil {
		warnings = []cashflow.Warning{}
	}
	return &models.BalanceForecast{
		Currency:        s.config.BaseCurrency,
		From:            today,
		ForecastedDays:  max(days, 0),
		StartingBalance: opening,
		Checkpoints:     projection.Checkpoints(),
		Warnings:        warnings,
	}, nil
}

// UpcomingBills returns the authenticated user's expenses due within days
func (s *Service) UpcomingBills(ctx context.Context, days int) ([]models.UpcomingBill, error) {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.UpcomingBillsFor(ctx, userID, days)
}

// UpcomingBillsFor returns the expenses of a user that fall due within days of today
func (s *Service) UpcomingBillsFor(ctx context.Context, userID int64, days int) ([]models.UpcomingBill, error) {
	if days < 0 {
		return nil, invalid("days must not be negative")
	}
	expenses, err := s.repo.ListExpenses(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	bills := []models.UpcomingBill{}
	for _, e := range expenses {
		due, err := cashflow.ResolveNextOccurrence(e.DueDay, today)
		if err != nil {
			s.logWarnings(userID, "upcoming", []cashflow.Warning{{Kind: cashflow.RecordExpense, RecordID: strconv.FormatInt(e.ID, 10), Reason: err.Error()}})
			continue
		}
		if until := today.DaysUntil(due); until <= days {
			bills = append(bills, models.UpcomingBill{
				ExpenseID: e.ID,
				Name:      e.Name,
				Amount:    e.Amount,
				Kind:      e.Kind,
				DueDate:   due,
				DaysUntil: until,
			})
		}
	}
	sort.SliceStable(bills, func(i, j int) bool {
		if c := bills[i].DueDate.Compare(bills[j].DueDate); c != 0 {
			return c < 0
		}
		return bills[i].Name < bills[j].Name
	})
	return bills, nil
}
