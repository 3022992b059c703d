package repository

import (
	"context"
	"fmt"

	"github.com/Dan9191/cashflow-service/internal/models"
)

// CreateLinkedItem stores a provider connection with its encrypted access token
func (r *Repository) CreateLinkedItem(ctx context.Context, item *models.LinkedItem) error {
	query := `
		INSERT INTO finance.linked_items (user_id, provider_item_id, institution, access_token, hmac, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, item.UserID, item.ProviderItemID, item.Institution, item.AccessToken, item.HMAC).
		Scan(&item.ID, &item.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create linked item: %w", err)
	}
	return nil
}

// ListLinkedItems returns the provider connections of a user
func (r *Repository) ListLinkedItems(ctx context.Context, userID int64) ([]models.LinkedItem, error) {
	query := `
		SELECT id, user_id, provider_item_id, institution, access_token, hmac, created_at
		FROM finance.linked_items
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list linked items: %w", err)
	}
	defer rows.Close()

	items := []models.LinkedItem{}
	for rows.Next() {
		var it models.LinkedItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.ProviderItemID, &it.Institution, &it.AccessToken, &it.HMAC, &it.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan linked item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
