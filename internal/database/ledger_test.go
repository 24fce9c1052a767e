/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"lumina-ledger/internal/models"
	"lumina-ledger/internal/store"

	"github.com/shopspring/decimal"
)

func TestApplyRecord_TradeSettlement(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	createTestUser(t, service, 1)

	start := decimal.NewFromInt(1000)
	if _, err := service.ApplyRecord(ctx, 1, &models.Transaction{TransactionType: "deposit", Amount: start}, start); err != nil {
		t.Fatalf("Initial deposit failed: %v", err)
	}

	trade := &models.Trade{
		AiModel:       "Stable",
		StartBalance:  start,
		ResultPercent: decimal.RequireFromString("1.5"),
		ResultValue:   decimal.RequireFromString("15.00"),
	}
	result, err := service.ApplyRecord(ctx, 1, trade, trade.ResultValue)
	if err != nil {
		t.Fatalf("ApplyRecord failed: %v", err)
	}

	expected := decimal.RequireFromString("1015.00")
	if !result.BalanceAfter.Equal(expected) {
		t.Errorf("Expected balance %s, got %s", expected.String(), result.BalanceAfter.String())
	}
	if !result.BalanceBefore.Equal(start) {
		t.Errorf("Expected balance before %s, got %s", start.String(), result.BalanceBefore.String())
	}
	if trade.Id == "" || trade.UserId != 1 || trade.Date.IsZero() {
		t.Errorf("Expected trade identity to be filled, got %+v", trade)
	}

	trades, err := service.GetTrades(ctx, 1)
	if err != nil {
		t.Fatalf("GetTrades failed: %v", err)
	}
	if len(trades) != 1 {
		t.Fatalf("Expected 1 trade, got %d", len(trades))
	}
	if !trades[0].StartBalance.Equal(start) {
		t.Errorf("Expected start balance %s, got %s", start.String(), trades[0].StartBalance.String())
	}
	if !trades[0].BalanceAfter.Equal(expected) {
		t.Errorf("Expected stored balance_after %s, got %s", expected.String(), trades[0].BalanceAfter.String())
	}
}

func TestApply_UserNotFound(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	_, err := service.ApplyRecord(context.Background(), 404, &models.Bonus{Description: models.BonusRegistration}, decimal.NewFromInt(100))
	if !errors.Is(err, store.ErrUserNotFound) {
		t.Fatalf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestApply_RejectionWritesNothing(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	createTestUser(t, service, 1)

	_, err := service.Apply(ctx, 1, func(context.Context, store.Snapshot) (models.Record, decimal.Decimal, error) {
		return nil, decimal.Zero, store.ErrAlreadyClaimed
	})
	if !errors.Is(err, store.ErrAlreadyClaimed) {
		t.Fatalf("Expected ErrAlreadyClaimed, got %v", err)
	}

	user, _ := service.GetUserById(ctx, 1)
	if !user.Balance.IsZero() || user.Version != 1 {
		t.Errorf("Expected untouched user, got balance %s version %d", user.Balance.String(), user.Version)
	}
	bonuses, _ := service.GetBonuses(ctx, 1)
	if len(bonuses) != 0 {
		t.Errorf("Expected no bonuses, got %d", len(bonuses))
	}
}

func TestApply_FailedInsertLeavesBalance(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	createTestUser(t, service, 1)

	first := &models.Bonus{Id: "fixed-id", Description: models.BonusReferral, Value: decimal.NewFromInt(10)}
	if _, err := service.ApplyRecord(ctx, 1, first, first.Value); err != nil {
		t.Fatalf("First ApplyRecord failed: %v", err)
	}

	second := &models.Bonus{Id: "fixed-id", Description: models.BonusReferral, Value: decimal.NewFromInt(10)}
	_, err := service.ApplyRecord(ctx, 1, second, second.Value)
	if !errors.Is(err, store.ErrPersistenceFailure) {
		t.Fatalf("Expected ErrPersistenceFailure, got %v", err)
	}

	user, _ := service.GetUserById(ctx, 1)
	if !user.Balance.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected balance 10 after failed insert, got %s", user.Balance.String())
	}
}

func TestApply_SnapshotSeesBonuses(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	createTestUser(t, service, 1)

	older := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	newer := older.Add(24 * time.Hour)
	for i, at := range []time.Time{older, newer} {
		b := &models.Bonus{Description: models.BonusDaily, Value: decimal.NewFromInt(int64(10 * (i + 1))), Day: i + 1, GettingDate: at}
		if _, err := service.ApplyRecord(ctx, 1, b, b.Value); err != nil {
			t.Fatalf("ApplyRecord failed: %v", err)
		}
	}

	_, err := service.Apply(ctx, 1, func(ctx context.Context, snap store.Snapshot) (models.Record, decimal.Decimal, error) {
		if !snap.User().Balance.Equal(decimal.NewFromInt(30)) {
			t.Errorf("Expected snapshot balance 30, got %s", snap.User().Balance.String())
		}

		has, err := snap.HasBonus(ctx, models.BonusDaily)
		if err != nil || !has {
			t.Errorf("Expected daily bonus to exist, got %v (%v)", has, err)
		}
		has, err = snap.HasBonus(ctx, models.BonusRegistration)
		if err != nil || has {
			t.Errorf("Expected no registration bonus, got %v (%v)", has, err)
		}

		latest, err := snap.LatestBonus(ctx, models.BonusDaily)
		if err != nil || latest == nil {
			t.Fatalf("Expected latest daily bonus, got %v (%v)", latest, err)
		}
		if latest.Day != 2 || !latest.GettingDate.Equal(newer) {
			t.Errorf("Expected day 2 at %v, got day %d at %v", newer, latest.Day, latest.GettingDate)
		}

		none, err := snap.LatestBonus(ctx, models.BonusReferral)
		if err != nil || none != nil {
			t.Errorf("Expected no referral bonus, got %v (%v)", none, err)
		}
		return nil, decimal.Zero, store.ErrAlreadyClaimedToday
	})
	if !errors.Is(err, store.ErrAlreadyClaimedToday) {
		t.Fatalf("Expected ErrAlreadyClaimedToday, got %v", err)
	}
}

func TestApply_RoundsBalanceToCents(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	createTestUser(t, service, 1)

	result, err := service.ApplyRecord(ctx, 1, &models.Transaction{TransactionType: "adjustment", Amount: decimal.RequireFromString("0.126")}, decimal.RequireFromString("0.126"))
	if err != nil {
		t.Fatalf("ApplyRecord failed: %v", err)
	}
	if !result.BalanceAfter.Equal(decimal.RequireFromString("0.13")) {
		t.Errorf("Expected balance 0.13, got %s", result.BalanceAfter.String())
	}
}

func TestApply_ConcurrentSameUserSerializes(t *testing.T) {
	service, cleanup := setupTestService(t)
	defer cleanup()

	ctx := context.Background()
	createTestUser(t, service, 1)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b := &models.Bonus{Description: models.BonusReferral, Value: decimal.NewFromInt(10)}
			if _, err := service.ApplyRecord(ctx, 1, b, b.Value); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("Concurrent apply failed: %v", err)
	}

	user, _ := service.GetUserById(ctx, 1)
	expected := decimal.NewFromInt(10 * workers)
	if !user.Balance.Equal(expected) {
		t.Errorf("Expected balance %s, got %s", expected.String(), user.Balance.String())
	}
	if err := service.ReconcileUserBalance(ctx, 1); err != nil {
		t.Errorf("Reconcile failed: %v", err)
	}
}
