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

package api

import (
	"context"
	"errors"

	"lumina-ledger/internal/bonus"
	"lumina-ledger/internal/metrics"
	"lumina-ledger/internal/models"
	"lumina-ledger/internal/store"

	"go.uber.org/zap"
)

// ClaimBonus grants a registration, referral or daily bonus.
func (s *LedgerService) ClaimBonus(ctx context.Context, userId int64, kind string) (*models.ClaimResult, error) {
	k, err := bonus.ParseKind(kind)
	if err != nil {
		return nil, err
	}

	result, err := s.bonuses.Claim(ctx, userId, k)
	if err != nil {
		metrics.BonusClaims.WithLabelValues(string(k), claimOutcome(err)).Inc()
		if isRecoverable(err) {
			zap.L().Info("Bonus claim rejected",
				zap.Int64("user_id", userId),
				zap.String("kind", string(k)),
				zap.Error(err))
		} else {
			zap.L().Error("Bonus claim failed",
				zap.Int64("user_id", userId),
				zap.String("kind", string(k)),
				zap.Error(err))
		}
		return nil, err
	}

	metrics.BonusClaims.WithLabelValues(string(k), "granted").Inc()
	metrics.LedgerApplications.WithLabelValues(models.RecordKindBonus).Inc()

	zap.L().Info("Bonus claimed",
		zap.Int64("user_id", userId),
		zap.String("kind", string(k)),
		zap.Int("day", result.Bonus.Day),
		zap.String("bonus", result.Bonus.Value.String()),
		zap.String("new_balance", result.NewBalance.String()))

	return result, nil
}

func (s *LedgerService) GetBonuses(ctx context.Context, userId int64) ([]models.Bonus, error) {
	return s.db.GetBonuses(ctx, userId)
}

func claimOutcome(err error) string {
	switch {
	case errors.Is(err, store.ErrAlreadyClaimed):
		return "already_claimed"
	case errors.Is(err, store.ErrAlreadyClaimedToday):
		return "already_claimed_today"
	case errors.Is(err, store.ErrNoReferrals):
		return "no_referrals"
	case errors.Is(err, store.ErrUserNotFound):
		return "user_not_found"
	default:
		return "error"
	}
}

// isRecoverable reports user-visible rejections that changed nothing.
func isRecoverable(err error) bool {
	return errors.Is(err, store.ErrAlreadyClaimed) ||
		errors.Is(err, store.ErrAlreadyClaimedToday) ||
		errors.Is(err, store.ErrNoReferrals)
}
