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

package common

import (
	"context"
	"fmt"

	"lumina-ledger/internal/models"
	"lumina-ledger/internal/store"

	"go.uber.org/zap"
)

// LoadUsers returns the user with userId, or every user when userId is 0.
func LoadUsers(ctx context.Context, dbService store.LedgerStore, userId int64, logger *zap.Logger) ([]models.User, error) {
	if userId != 0 {
		logger.Info("Looking up user", zap.Int64("user_id", userId))
		user, err := dbService.GetUserById(ctx, userId)
		if err != nil {
			return nil, fmt.Errorf("user lookup failed: %w", err)
		}
		return []models.User{*user}, nil
	}

	users, err := dbService.GetUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	logger.Info("Retrieved users", zap.Int("count", len(users)))
	return users, nil
}

// DisplayName is the best human label available for a user.
func DisplayName(user models.User) string {
	switch {
	case user.Username != "":
		return "@" + user.Username
	case user.FirstName != "" || user.LastName != "":
		return fmt.Sprintf("%s %s", user.FirstName, user.LastName)
	default:
		return fmt.Sprintf("user %d", user.UserId)
	}
}
