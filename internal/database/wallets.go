package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lumina-ledger/internal/models"
	"lumina-ledger/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func scanWallet(row rowScanner) (*models.Wallet, error) {
	var w models.Wallet
	if err := row.Scan(&w.Id, &w.UserId, &w.WalletCurrency, &w.WalletAddress); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Service) StoreWallet(ctx context.Context, params store.StoreWalletParams) (*models.Wallet, error) {
	zap.L().Info("Storing wallet",
		zap.Int64("user_id", params.UserId),
		zap.String("currency", params.WalletCurrency),
		zap.String("address", params.WalletAddress))

	walletId := uuid.New().String()

	wallet, err := scanWallet(s.db.QueryRowContext(ctx, queryInsertWallet, walletId, params.UserId, params.WalletCurrency, params.WalletAddress))
	if err != nil {
		zap.L().Error("Failed to insert wallet",
			zap.Int64("user_id", params.UserId),
			zap.String("currency", params.WalletCurrency),
			zap.Error(err))
		return nil, fmt.Errorf("unable to insert wallet: %w", err)
	}

	zap.L().Info("Wallet stored successfully", zap.String("id", walletId))
	return wallet, nil
}

func (s *Service) GetWallets(ctx context.Context, userId int64) ([]models.Wallet, error) {
	zap.L().Debug("Querying wallets", zap.Int64("user_id", userId))

	wallets, err := queryAll(ctx, s.db, queryGetWallets, userId, scanWallet)
	if err != nil {
		zap.L().Error("Failed to query wallets", zap.Int64("user_id", userId), zap.Error(err))
		return nil, fmt.Errorf("unable to query wallets: %w", err)
	}

	zap.L().Debug("Retrieved wallets", zap.Int64("user_id", userId), zap.Int("count", len(wallets)))
	return wallets, nil
}

func (s *Service) UpdateWallet(ctx context.Context, walletId string, params store.StoreWalletParams) (*models.Wallet, error) {
	wallet, err := scanWallet(s.db.QueryRowContext(ctx, queryUpdateWallet,
		params.WalletCurrency, params.WalletAddress, params.UserId, walletId))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", store.ErrWalletNotFound, walletId)
	}
	if err != nil {
		zap.L().Error("Failed to update wallet", zap.String("wallet_id", walletId), zap.Error(err))
		return nil, fmt.Errorf("unable to update wallet: %w", err)
	}

	zap.L().Info("Wallet updated", zap.Int64("user_id", params.UserId), zap.String("wallet_id", walletId))
	return wallet, nil
}

func (s *Service) DeleteWallet(ctx context.Context, userId int64, walletId string) error {
	result, err := s.db.ExecContext(ctx, queryDeleteWallet, userId, walletId)
	if err != nil {
		return fmt.Errorf("unable to delete wallet: %w", err)
	}
	if err := requireRow(result, fmt.Errorf("%w: %s", store.ErrWalletNotFound, walletId)); err != nil {
		return err
	}

	zap.L().Info("Wallet deleted", zap.Int64("user_id", userId), zap.String("wallet_id", walletId))
	return nil
}
