package api

import (
	"context"
	"fmt"
	"strings"

	"lumina-ledger/internal/models"
	"lumina-ledger/internal/store"
)

var validThemes = map[string]bool{"light": true, "dark": true}

func (s *LedgerService) GetUser(ctx context.Context, userId int64) (*models.User, error) {
	return s.db.GetUserById(ctx, userId)
}

func (s *LedgerService) UpsertUser(ctx context.Context, params store.UpsertUserParams) (*models.User, error) {
	if params.UserId <= 0 {
		return nil, fmt.Errorf("%w: user_id must be positive", store.ErrInvalidInput)
	}
	return s.db.UpsertUser(ctx, params)
}

func (s *LedgerService) UpdateUserTheme(ctx context.Context, userId int64, theme string) error {
	if !validThemes[theme] {
		return fmt.Errorf("%w: theme %q must be 'light' or 'dark'", store.ErrInvalidInput, theme)
	}
	return s.db.UpdateUserTheme(ctx, userId, theme)
}

func (s *LedgerService) SetReferralsCount(ctx context.Context, userId int64, count int) error {
	return s.db.SetReferralsCount(ctx, userId, count)
}

func (s *LedgerService) GetWallets(ctx context.Context, userId int64) ([]models.Wallet, error) {
	return s.db.GetWallets(ctx, userId)
}

func (s *LedgerService) StoreWallet(ctx context.Context, params store.StoreWalletParams) (*models.Wallet, error) {
	if err := validateWallet(params); err != nil {
		return nil, err
	}
	return s.db.StoreWallet(ctx, params)
}

func (s *LedgerService) UpdateWallet(ctx context.Context, walletId string, params store.StoreWalletParams) (*models.Wallet, error) {
	if err := validateWallet(params); err != nil {
		return nil, err
	}
	return s.db.UpdateWallet(ctx, walletId, params)
}

func (s *LedgerService) DeleteWallet(ctx context.Context, userId int64, walletId string) error {
	return s.db.DeleteWallet(ctx, userId, walletId)
}

func validateWallet(params store.StoreWalletParams) error {
	if strings.TrimSpace(params.WalletCurrency) == "" || strings.TrimSpace(params.WalletAddress) == "" {
		return fmt.Errorf("%w: currency and address are required", store.ErrInvalidInput)
	}
	return nil
}
