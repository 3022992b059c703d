package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dan9191/cashflow-service/internal/cashflow"
	"github.com/Dan9191/cashflow-service/internal/models"
)

func dateArg(d *cashflow.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// CreateIncome stores a recurring income
func (r *Repository) CreateIncome(ctx context.Context, income *models.Income) error {
	query := `
		INSERT INTO finance.incomes (user_id, source, amount, frequency, next_date, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, income.UserID, income.Source, income.Amount, income.Frequency,
		dateArg(income.NextDate), income.Category).
		Scan(&income.ID, &income.CreatedAt, &income.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create income: %w", err)
	}
	return nil
}

// ListIncomes returns the recurring incomes of a user
func (r *Repository) ListIncomes(ctx context.Context, userID int64) ([]models.Income, error) {
	query := `
		SELECT id, user_id, source, amount, frequency, next_date, category, created_at, updated_at
		FROM finance.incomes
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incomes: %w", err)
	}
	defer rows.Close()

	incomes := []models.Income{}
	for rows.Next() {
		var (
			i    models.Income
			next sql.NullTime
		)
		if err := rows.Scan(&i.ID, &i.UserID, &i.Source, &i.Amount, &i.Frequency, &next, &i.Category, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan income: %w", err)
		}
		if next.Valid {
			d := cashflow.DateOf(next.Time)
			i.NextDate = &d
		}
		incomes = append(incomes, i)
	}
	return incomes, rows.Err()
}

// UpdateIncome overwrites a recurring income owned by the user
func (r *Repository) UpdateIncome(ctx context.Context, income *models.Income) error {
	query := `
		UPDATE finance.incomes
		SET source = $1, amount = $2, frequency = $3, next_date = $4, category = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6 AND user_id = $7`
	res, err := r.db.ExecContext(ctx, query, income.Source, income.Amount, income.Frequency,
		dateArg(income.NextDate), income.Category, income.ID, income.UserID)
	return expectOneRow(res, err, "update income")
}

// DeleteIncome removes a recurring income owned by the user
func (r *Repository) DeleteIncome(ctx context.Context, userID, incomeID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM finance.incomes WHERE id = $1 AND user_id = $2`, incomeID, userID)
	return expectOneRow(res, err, "delete income")
}
