package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dan9191/cashflow-service/internal/cashflow"
	"github.com/Dan9191/cashflow-service/internal/models"
)

// prepareAccount normalizes an account and checks it against the calculator's rules
func (s *Service) prepareAccount(a *models.Account) error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return invalid("account name is required")
	}
	a.Currency = strings.ToUpper(strings.TrimSpace(a.Currency))
	if a.Currency == "" {
		a.Currency = s.config.BaseCurrency
	}
	category, err := cashflow.ParseAccountCategory(a.Category)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	a.Category = string(category)
	return nil
}

// CreateAccount creates a new account for the authenticated user
func (s *Service) CreateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	account.UserID = userID
	if err := s.prepareAccount(account); err != nil {
		return nil, err
	}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	s.log.Infof("Account created for user %d: %s (%s)", userID, account.Name, account.Currency)
	return account, nil
}

// ListAccounts returns the accounts of the authenticated user
func (s *Service) ListAccounts(ctx context.Context) ([]models.Account, error) {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListAccounts(ctx, userID)
}

// UpdateAccount overwrites an account of the authenticated user
func (s *Service) UpdateAccount(ctx context.Context, account *models.Account) (*models.Account, error) {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	account.UserID = userID
	if err := s.prepareAccount(account); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// DeleteAccount removes an account of the authenticated user
func (s *Service) DeleteAccount(ctx context.Context, accountID int64) error {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.repo.DeleteAccount(ctx, userID, accountID)
}

func prepareIncome(i *models.Income) error {
	i.Source = strings.TrimSpace(i.Source)
	if i.Source == "" {
		return invalid("income source is required")
	}
	frequency, err := cashflow.ParseFrequency(i.Frequency)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	i.Frequency = string(frequency)
	if _, err := i.ToCashflow(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

// CreateIncome stores a recurring income for the authenticated user
func (s *Service) CreateIncome(ctx context.Context, income *models.Income) (*models.Income, error) {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	income.UserID = userID
	if err := prepareIncome(income); err != nil {
		return nil, err
	}
	if err := s.repo.CreateIncome(ctx, income); err != nil {
		return nil, err
	}
	s.log.Infof("Income created for user %d: %s", userID, income.Source)
	return income, nil
}

// ListIncomes returns the recurring incomes of the authenticated user
func (s *Service) ListIncomes(ctx context.Context) ([]models.Income, error) {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListIncomes(ctx, userID)
}

// UpdateIncome overwrites a recurring income of the authenticated user
func (s *Service) UpdateIncome(ctx context.Context, income *models.Income) (*models.Income, error) {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	income.UserID = userID
	if err := prepareIncome(income); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateIncome(ctx, income); err != nil {
		return nil, err
	}
	return income, nil
}

// DeleteIncome removes a recurring income of the authenticated user
func (s *Service) DeleteIncome(ctx context.Context, incomeID int64) error {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.repo.DeleteIncome(ctx, userID, incomeID)
}

func prepareExpense(e *models.Expense) error {
	e.Name = strings.TrimSpace(e.Name)
	if e.Name == "" {
		return invalid("expense name is required")
	}
	kind, err := cashflow.ParseExpenseKind(e.Kind)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	e.Kind = string(kind)
	if _, err := e.ToCashflow(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

// CreateExpense stores a recurring expense for the authenticated user
func (s *Service) CreateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	expense.UserID = userID
	if err := prepareExpense(expense); err != nil {
		return nil, err
	}
	if err := s.repo.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}
	s.log.Infof("Expense created for user %d: %s", userID, expense.Name)
	return expense, nil
}

// ListExpenses returns the recurring expenses of the authenticated user
func (s *Service) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.ListExpenses(ctx, userID)
}

// UpdateExpense overwrites a recurring expense of the authenticated user
func (s *Service) UpdateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	expense.UserID = userID
	if err := prepareExpense(expense); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateExpense(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DeleteExpense removes a recurring expense of the authenticated user
func (s *Service) DeleteExpense(ctx context.Context, expenseID int64) error {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.repo.DeleteExpense(ctx, userID, expenseID)
}
