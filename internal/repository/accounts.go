package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dan9191/cashflow-service/internal/models"
	"github.com/shopspring/decimal"
)

const accountColumns = `id, user_id, name, category, balance, currency, active, provider_account_id, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }, a *models.Account) error {
	var provider sql.NullString
	err := row.Scan(&a.ID, &a.UserID, &a.Name, &a.Category, &a.Balance, &a.Currency, &a.Active, &provider, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return err
	}
	if provider.Valid {
		a.ProviderAccountID = &provider.String
	}
	return nil
}

// CreateAccount creates a new account in the database
func (r *Repository) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO finance.accounts (user_id, name, category, balance, currency, active, provider_account_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, account.UserID, account.Name, account.Category, account.Balance,
		account.Currency, account.Active, account.ProviderAccountID).
		Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// ListAccounts returns the accounts owned by a user
func (r *Repository) ListAccounts(ctx context.Context, userID int64) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM finance.accounts
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		if err := scanAccount(rows, &a); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// UpdateAccount overwrites the editable fields of an account owned by the user
func (r *Repository) UpdateAccount(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE finance.accounts
		SET name = $1, category = $2, balance = $3, currency = $4, active = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6 AND user_id = $7`
	res, err := r.db.ExecContext(ctx, query, account.Name, account.Category, account.Balance,
		account.Currency, account.Active, account.ID, account.UserID)
	return expectOneRow(res, err, "update account")
}

// DeleteAccount removes an account owned by the user
func (r *Repository) DeleteAccount(ctx context.Context, userID, accountID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM finance.accounts WHERE id = $1 AND user_id = $2`, accountID, userID)
	return expectOneRow(res, err, "delete account")
}

// UpdateBalanceByProviderID refreshes the balance of a provider-linked account
func (r *Repository) UpdateBalanceByProviderID(ctx context.Context, userID int64, providerAccountID string, balance decimal.Decimal) error {
	query := `
		UPDATE finance.accounts
		SET balance = $1, updated_at = CURRENT_TIMESTAMP
		WHERE provider_account_id = $2 AND user_id = $3`
	res, err := r.db.ExecContext(ctx, query, balance, providerAccountID, userID)
	return expectOneRow(res, err, "update linked balance")
}
