package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dan9191/cashflow-service/internal/models"
	"github.com/Dan9191/cashflow-service/internal/utils"
	"github.com/shopspring/decimal"
)

// LinkItem stores a provider connection for the authenticated user. The access
// token is encrypted and tagged so tampering shows up when items are listed.
func (s *Service) LinkItem(ctx context.Context, providerItemID, institution, accessToken string) (*models.LinkedItem, error) {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	providerItemID = strings.TrimSpace(providerItemID)
	if providerItemID == "" || accessToken == "" {
		return nil, invalid("provider_item_id and access_token are required")
	}

	encrypted, err := utils.Encrypt(accessToken, s.config.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt access token: %w", err)
	}
	item := &models.LinkedItem{
		UserID:         userID,
		ProviderItemID: providerItemID,
		Institution:    strings.TrimSpace(institution),
		AccessToken:    encrypted,
		HMAC:           utils.GenerateHMAC(s.config.HMACSecret, providerItemID, accessToken),
	}
	if err := s.repo.CreateLinkedItem(ctx, item); err != nil {
		return nil, err
	}

	item.MaskedToken = utils.MaskSecret(accessToken)
	item.IntegrityOK = true
	s.log.Infof("Linked item %s stored for user %d", providerItemID, userID)
	return item, nil
}

// ListLinkedItems returns the user's connections with masked tokens
func (s *Service) ListLinkedItems(ctx context.Context) ([]models.LinkedItem, error) {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListLinkedItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		item := &items[i]
		token, err := utils.Decrypt(item.AccessToken, s.config.EncryptionKey)
		if err != nil || !utils.VerifyHMAC(item.HMAC, s.config.HMACSecret, item.ProviderItemID, token) {
			s.log.WithField("item_id", item.ID).Warn("Linked item failed integrity check")
			continue
		}
		item.MaskedToken = utils.MaskSecret(token)
		item.IntegrityOK = true
	}
	return items, nil
}

// UpdateLinkedBalance refreshes a provider-linked account balance for the authenticated user
func (s *Service) UpdateLinkedBalance(ctx context.Context, providerAccountID string, balance decimal.Decimal) error {
	userID, err := UserIDFromContext(ctx)
	if err != nil {
		return err
	}
	if strings.TrimSpace(providerAccountID) == "" {
		return invalid("provider account id is required")
	}
	if err := s.repo.UpdateBalanceByProviderID(ctx, userID, providerAccountID, balance); err != nil {
		return err
	}
	s.log.Infof("Balance of linked account %s updated for user %d", providerAccountID, userID)
	return nil
}
