package service

import (
	"context"
	"io"
	"sync"

	"github.com/Dan9191/cashflow-service/internal/cashflow"
	"github.com/Dan9191/cashflow-service/internal/config"
	"github.com/Dan9191/cashflow-service/internal/integrations/cbr"
	"github.com/Dan9191/cashflow-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// memStore is an in-memory Store keyed by user
type memStore struct {
	mu       sync.Mutex
	nextID   int64
	users    []models.User
	waitlist map[string]bool
	accounts []models.Account
	incomes  []models.Income
	expenses []models.Expense
	items    []models.LinkedItem
}

func newMemStore() *memStore {
	return &memStore{waitlist: map[string]bool{}}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) CreateUser(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrConflict
		}
	}
	u.ID = m.id()
	m.users = append(m.users, *u)
	return nil
}

func (m *memStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memStore) ListUsers(context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.User(nil), m.users...), nil
}

func (m *memStore) AddToWaitlist(_ context.Context, e *models.WaitlistEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.waitlist[e.Email] {
		return ErrConflict
	}
	m.waitlist[e.Email] = true
	e.ID = m.id()
	return nil
}

func (m *memStore) CreateAccount(_ context.Context, a *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.id()
	m.accounts = append(m.accounts, *a)
	return nil
}

func (m *memStore) ListAccounts(_ context.Context, userID int64) ([]models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Account{}
	for _, a := range m.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) UpdateAccount(_ context.Context, a *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.accounts {
		if m.accounts[i].ID == a.ID && m.accounts[i].UserID == a.UserID {
			m.accounts[i] = *a
			return nil
		}
	}
	return ErrNotFound
}

func (m *memStore) DeleteAccount(_ context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.accounts {
		if a.ID == id && a.UserID == userID {
			m.accounts = append(m.accounts[:i], m.accounts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *memStore) UpdateBalanceByProviderID(_ context.Context, userID int64, providerID string, balance decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.accounts {
		if a.UserID == userID && a.ProviderAccountID != nil && *a.ProviderAccountID == providerID {
			m.accounts[i].Balance = balance
			return nil
		}
	}
	return ErrNotFound
}

func (m *memStore) CreateIncome(_ context.Context, i *models.Income) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i.ID = m.id()
	m.incomes = append(m.incomes, *i)
	return nil
}

func (m *memStore) ListIncomes(_ context.Context, userID int64) ([]models.Income, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Income{}
	for _, i := range m.incomes {
		if i.UserID == userID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (m *memStore) UpdateIncome(_ context.Context, in *models.Income) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.incomes {
		if m.incomes[i].ID == in.ID && m.incomes[i].UserID == in.UserID {
			m.incomes[i] = *in
			return nil
		}
	}
	return ErrNotFound
}

func (m *memStore) DeleteIncome(_ context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, in := range m.incomes {
		if in.ID == id && in.UserID == userID {
			m.incomes = append(m.incomes[:i], m.incomes[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *memStore) CreateExpense(_ context.Context, e *models.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = m.id()
	m.expenses = append(m.expenses, *e)
	return nil
}

func (m *memStore) ListExpenses(_ context.Context, userID int64) ([]models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Expense{}
	for _, e := range m.expenses {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memStore) UpdateExpense(_ context.Context, e *models.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.expenses {
		if m.expenses[i].ID == e.ID && m.expenses[i].UserID == e.UserID {
			m.expenses[i] = *e
			return nil
		}
	}
	return ErrNotFound
}

func (m *memStore) DeleteExpense(_ context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.expenses {
		if e.ID == id && e.UserID == userID {
			m.expenses = append(m.expenses[:i], m.expenses[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *memStore) CreateLinkedItem(_ context.Context, it *models.LinkedItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it.ID = m.id()
	m.items = append(m.items, *it)
	return nil
}

func (m *memStore) ListLinkedItems(_ context.Context, userID int64) ([]models.LinkedItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.LinkedItem{}
	for _, it := range m.items {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

type stubRates struct {
	rates cbr.Rates
	err   error
	calls int
}

func (s *stubRates) GetRates(context.Context, cashflow.Date) (cbr.Rates, error) {
	s.calls++
	return s.rates, s.err
}

type stubMailer struct {
	sent []string
	err  error
}

func (s *stubMailer) SendWaitlistConfirmation(to string) error {
	s.sent = append(s.sent, to)
	return s.err
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:             "test-secret",
		HMACSecret:            "hmac-secret",
		EncryptionKey:         []byte("0123456789abcdef0123456789abcdef"),
		BaseCurrency:          "RUB",
		DefaultHorizonDays:    90,
		MaxHorizonDays:        365,
		MaxAnchorAgeYears:     5,
		HealthExcellentRate:   decimal.NewFromInt(20),
		HealthGoodRate:        decimal.NewFromInt(10),
		HealthFairRate:        decimal.Zero,
		HealthEmergencyMonths: 3,
	}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
