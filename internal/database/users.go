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

	"lumina-ledger/internal/models"
	"lumina-ledger/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	var referrerId sql.NullInt64
	var balanceStr string
	err := row.Scan(&user.UserId, &user.Username, &user.FirstName, &user.LastName, &referrerId,
		&user.ReferralsCount, &balanceStr, &user.Version, &user.UserTheme,
		&user.RegistrationDate, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if referrerId.Valid {
		user.ReferrerId = &referrerId.Int64
	}
	user.Balance, err = decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance '%s': %w", balanceStr, err)
	}
	return &user, nil
}

func (s *Service) GetUsers(ctx context.Context) ([]models.User, error) {
	zap.L().Debug("Querying users")

	rows, err := s.db.QueryContext(ctx, queryGetUsers)
	if err != nil {
		zap.L().Error("Failed to query users", zap.Error(err))
		return nil, fmt.Errorf("unable to query users: %w", err)
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			zap.L().Error("Failed to scan user row", zap.Error(err))
			return nil, fmt.Errorf("unable to scan user row: %w", err)
		}
		users = append(users, *user)
	}

	// Check for errors during iteration
	if err := rows.Err(); err != nil {
		zap.L().Error("Error during user row iteration", zap.Error(err))
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}

	zap.L().Debug("Retrieved users", zap.Int("count", len(users)))
	return users, nil
}

func (s *Service) GetUserById(ctx context.Context, userId int64) (*models.User, error) {
	zap.L().Debug("Querying user by ID", zap.Int64("user_id", userId))

	user, err := scanUser(s.db.QueryRowContext(ctx, queryGetUserById, userId))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", store.ErrUserNotFound, userId)
		}
		zap.L().Error("Failed to query user by ID", zap.Int64("user_id", userId), zap.Error(err))
		return nil, fmt.Errorf("unable to query user by ID: %w", err)
	}

	zap.L().Debug("Retrieved user by ID", zap.Int64("user_id", userId), zap.String("username", user.Username))
	return user, nil
}

// UpsertUser creates the user or refreshes its profile fields. Balance and
// referral count are never touched here.
func (s *Service) UpsertUser(ctx context.Context, params store.UpsertUserParams) (*models.User, error) {
	zap.L().Info("Upserting user", zap.Int64("user_id", params.UserId), zap.String("username", params.Username))

	now := s.now().UTC()
	var referrerId sql.NullInt64
	if params.ReferrerId != nil {
		referrerId = sql.NullInt64{Int64: *params.ReferrerId, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, queryUpsertUser, params.UserId, params.Username, params.FirstName,
		params.LastName, referrerId, now, now)
	if err != nil {
		zap.L().Error("Failed to upsert user", zap.Int64("user_id", params.UserId), zap.Error(err))
		return nil, fmt.Errorf("unable to upsert user: %w", err)
	}

	return s.GetUserById(ctx, params.UserId)
}

func (s *Service) UpdateUserTheme(ctx context.Context, userId int64, theme string) error {
	result, err := s.db.ExecContext(ctx, queryUpdateUserTheme, theme, s.now().UTC(), userId)
	if err != nil {
		return fmt.Errorf("unable to update theme: %w", err)
	}
	return requireRow(result, fmt.Errorf("%w: %d", store.ErrUserNotFound, userId))
}

// SetReferralsCount is the hook for the collaborator that tracks referrals.
func (s *Service) SetReferralsCount(ctx context.Context, userId int64, count int) error {
	if count < 0 {
		return fmt.Errorf("%w: referrals count cannot be negative, got %d", store.ErrInvalidInput, count)
	}
	result, err := s.db.ExecContext(ctx, querySetReferralsCount, count, s.now().UTC(), userId)
	if err != nil {
		return fmt.Errorf("unable to set referrals count: %w", err)
	}
	if err := requireRow(result, fmt.Errorf("%w: %d", store.ErrUserNotFound, userId)); err != nil {
		return err
	}

	zap.L().Info("Referrals count updated", zap.Int64("user_id", userId), zap.Int("referrals_count", count))
	return nil
}

func requireRow(result sql.Result, notFound error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("unable to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
