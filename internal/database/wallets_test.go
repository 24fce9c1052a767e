package database

import (
	"context"
	"errors"
	"testing"

	"lumina-ledger/internal/store"
)

func TestWalletLifecycle(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	createTestUser(t, service, 1)

	wallet, err := service.StoreWallet(ctx, store.StoreWalletParams{UserId: 1, WalletCurrency: "USDT", WalletAddress: "UQ-first"})
	if err != nil {
		t.Fatalf("StoreWallet failed: %v", err)
	}
	if wallet.Id == "" || wallet.UserId != 1 {
		t.Fatalf("Unexpected wallet %+v", wallet)
	}

	updated, err := service.UpdateWallet(ctx, wallet.Id, store.StoreWalletParams{UserId: 1, WalletCurrency: "TON", WalletAddress: "UQ-second"})
	if err != nil {
		t.Fatalf("UpdateWallet failed: %v", err)
	}
	if updated.WalletCurrency != "TON" || updated.WalletAddress != "UQ-second" {
		t.Errorf("Unexpected updated wallet %+v", updated)
	}

	// Wallets are scoped to their owner
	_, err = service.UpdateWallet(ctx, wallet.Id, store.StoreWalletParams{UserId: 2, WalletCurrency: "TON", WalletAddress: "x"})
	if !errors.Is(err, store.ErrWalletNotFound) {
		t.Errorf("Expected ErrWalletNotFound for foreign user, got %v", err)
	}

	wallets, err := service.GetWallets(ctx, 1)
	if err != nil || len(wallets) != 1 {
		t.Fatalf("Expected 1 wallet, got %d (%v)", len(wallets), err)
	}

	if err := service.DeleteWallet(ctx, 1, wallet.Id); err != nil {
		t.Fatalf("DeleteWallet failed: %v", err)
	}
	if err := service.DeleteWallet(ctx, 1, wallet.Id); !errors.Is(err, store.ErrWalletNotFound) {
		t.Errorf("Expected ErrWalletNotFound on second delete, got %v", err)
	}
}

func TestStoreWallet_UnknownUserRejected(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.StoreWallet(context.Background(), store.StoreWalletParams{UserId: 77, WalletCurrency: "TON", WalletAddress: "x"})
	if err == nil {
		t.Fatalf("Expected foreign key failure for unknown user")
	}
}
