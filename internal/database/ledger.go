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
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lumina-ledger/internal/models"
	"lumina-ledger/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// snapshot reads through the applier transaction
type snapshot struct {
	tx   *sql.Tx
	user models.User
}

func (s *snapshot) User() models.User {
	return s.user
}

func (s *snapshot) HasBonus(ctx context.Context, description string) (bool, error) {
	var one int
	err := s.tx.QueryRowContext(ctx, queryHasBonus, s.user.UserId, description).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: failed to check bonus: %w", store.ErrPersistenceFailure, err)
	}
	return true, nil
}

func (s *snapshot) LatestBonus(ctx context.Context, description string) (*models.Bonus, error) {
	bonus, err := scanBonus(s.tx.QueryRowContext(ctx, queryLatestBonus, s.user.UserId, description))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get latest bonus: %w", store.ErrPersistenceFailure, err)
	}
	return bonus, nil
}

// ApplyRecord appends a fixed record and moves the balance by delta.
func (s *Service) ApplyRecord(ctx context.Context, userId int64, record models.Record, delta decimal.Decimal) (*models.ApplyResult, error) {
	return s.Apply(ctx, userId, func(context.Context, store.Snapshot) (models.Record, decimal.Decimal, error) {
		return record, delta, nil
	})
}

// Apply runs fn against the user's current state and, unless fn rejects,
// appends the returned record and updates the balance in one transaction.
func (s *Service) Apply(ctx context.Context, userId int64, fn store.ApplyFunc) (*models.ApplyResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to begin transaction: %w", store.ErrPersistenceFailure, err)
	}
	defer func() {
		// no-op after a successful commit
		_ = tx.Rollback()
	}()

	user, err := scanUser(tx.QueryRowContext(ctx, queryGetUserById, userId))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", store.ErrUserNotFound, userId)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load user: %w", store.ErrPersistenceFailure, err)
	}

	record, delta, err := fn(ctx, &snapshot{tx: tx, user: *user})
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("apply for user %d produced no record", userId)
	}

	now := s.now().UTC()
	newBalance := user.Balance.Add(delta).Round(2)

	if err := insertRecord(ctx, tx, userId, record, newBalance, now); err != nil {
		zap.L().Error("Failed to insert ledger record",
			zap.Int64("user_id", userId),
			zap.String("kind", record.RecordKind()),
			zap.Error(err))
		return nil, fmt.Errorf("%w: failed to insert %s: %w", store.ErrPersistenceFailure, record.RecordKind(), err)
	}

	// Update balance (with optimistic locking)
	result, err := tx.ExecContext(ctx, queryUpdateUserBalance, newBalance.String(), now, userId, user.Version)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to update balance: %w", store.ErrPersistenceFailure, err)
	}
	if err := requireRow(result, fmt.Errorf("balance update failed - %w", store.ErrConcurrentModification)); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: failed to commit transaction: %w", store.ErrPersistenceFailure, err)
	}

	zap.L().Info("Ledger record applied",
		zap.Int64("user_id", userId),
		zap.String("kind", record.RecordKind()),
		zap.String("delta", delta.String()),
		zap.String("old_balance", user.Balance.String()),
		zap.String("new_balance", newBalance.String()))

	return &models.ApplyResult{
		Record:        record,
		BalanceBefore: user.Balance,
		BalanceAfter:  newBalance,
	}, nil
}

// insertRecord fills ids, owner and timestamps on the record in place.
func insertRecord(ctx context.Context, tx *sql.Tx, userId int64, record models.Record, balanceAfter decimal.Decimal, now time.Time) error {
	switch r := record.(type) {
	case *models.Trade:
		fillIdentity(&r.Id, &r.UserId, &r.Date, userId, now)
		r.BalanceAfter = balanceAfter
		_, err := tx.ExecContext(ctx, queryInsertTrade, r.Id, r.UserId, r.AiModel,
			r.StartBalance.String(), r.ResultPercent.String(), r.ResultValue.String(),
			r.BalanceAfter.String(), r.Date)
		return err

	case *models.Bonus:
		fillIdentity(&r.Id, &r.UserId, &r.GettingDate, userId, now)
		if r.Day < 1 {
			r.Day = 1
		}
		_, err := tx.ExecContext(ctx, queryInsertBonus, r.Id, r.UserId, r.Value.String(),
			r.Description, r.Day, r.GettingDate)
		return err

	case *models.Transaction:
		fillIdentity(&r.Id, &r.UserId, &r.Date, userId, now)
		if r.Status == "" {
			r.Status = models.TransactionStatusPending
		}
		r.BalanceAfter = balanceAfter
		_, err := tx.ExecContext(ctx, queryInsertTransaction, r.Id, r.UserId, r.TransactionType,
			r.Amount.String(), r.Status, r.BalanceAfter.String(), r.Date)
		return err

	default:
		return fmt.Errorf("unsupported record type %T", record)
	}
}

func fillIdentity(id *string, owner *int64, at *time.Time, userId int64, now time.Time) {
	if *id == "" {
		*id = uuid.New().String()
	}
	*owner = userId
	if at.IsZero() {
		*at = now
	} else {
		*at = at.UTC()
	}
}
