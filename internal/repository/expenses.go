package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/cashflow-service/internal/models"
)

// CreateExpense stores a recurring expense or subscription
func (r *Repository) CreateExpense(ctx context.Context, expense *models.Expense) error {
	query := `
		INSERT INTO finance.expenses (user_id, name, amount, due_day, category, kind, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, expense.UserID, expense.Name, expense.Amount, expense.DueDay,
		expense.Category, expense.Kind).
		Scan(&expense.ID, &expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create expense: %w", err)
	}
	return nil
}

// ListExpenses returns the recurring expenses of a user
func (r *Repository) ListExpenses(ctx context.Context, userID int64) ([]models.Expense, error) {
	query := `
		SELECT id, user_id, name, amount, due_day, category, kind, created_at, updated_at
		FROM finance.expenses
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.Amount, &e.DueDay, &e.Category, &e.Kind, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// UpdateExpense overwrites a recurring expense owned by the user
func (r *Repository) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	query := `
		UPDATE finance.expenses
		SET name = $1, amount = $2, due_day = $3, category = $4, kind = $5, updated_at = CURRENT_TIMESTAMP
		WHERE id = $6 AND user_id = $7`
	res, err := r.db.ExecContext(ctx, query, expense.Name, expense.Amount, expense.DueDay,
		expense.Category, expense.Kind, expense.ID, expense.UserID)
	return expectOneRow(res, err, "update expense")
}

// DeleteExpense removes a recurring expense owned by the user
func (r *Repository) DeleteExpense(ctx context.Context, userID, expenseID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM finance.expenses WHERE id = $1 AND user_id = $2`, expenseID, userID)
	return expectOneRow(res, err, "delete expense")
}
