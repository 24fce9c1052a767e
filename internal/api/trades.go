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
	"fmt"
	"strings"

	"lumina-ledger/internal/metrics"
	"lumina-ledger/internal/models"
	"lumina-ledger/internal/store"
	"lumina-ledger/internal/trading"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SettleTradeParams is a previously simulated outcome the client wants persisted
type SettleTradeParams struct {
	UserId        int64
	AiModel       string
	StartBalance  decimal.Decimal
	ResultPercent decimal.Decimal
	ResultValue   decimal.Decimal
}

// GetTradeOutcome simulates a trade against the user's current balance
// without persisting anything.
func (s *LedgerService) GetTradeOutcome(ctx context.Context, aiModel string, userId int64) (*models.TradeOutcome, error) {
	if strings.TrimSpace(aiModel) == "" {
		return nil, fmt.Errorf("%w: ai_model is required", store.ErrInvalidTrade)
	}

	user, err := s.db.GetUserById(ctx, userId)
	if err != nil {
		return nil, err
	}

	outcome := s.generator.Simulate(aiModel, user.Balance)
	metrics.TradeOutcomes.WithLabelValues(outcome.Band.String()).Inc()

	zap.L().Debug("Simulated trade outcome",
		zap.Int64("user_id", userId),
		zap.String("ai_model", outcome.Tier),
		zap.String("band", outcome.Band.String()),
		zap.String("start_balance", user.Balance.String()),
		zap.String("result_percent", outcome.Percent.String()),
		zap.String("result_value", outcome.Value.String()))

	return &models.TradeOutcome{
		AiModel:       outcome.Tier,
		ResultPercent: outcome.Percent,
		ResultValue:   outcome.Value,
		DelayMillis:   outcome.DelayMillis,
	}, nil
}

// SettleTrade persists a trade and moves the balance by its result value.
func (s *LedgerService) SettleTrade(ctx context.Context, params SettleTradeParams) (*models.SettleResult, error) {
	if err := validateTrade(params); err != nil {
		zap.L().Warn("Rejected trade settlement", zap.Int64("user_id", params.UserId), zap.Error(err))
		return nil, err
	}

	trade := &models.Trade{
		AiModel:       params.AiModel,
		StartBalance:  params.StartBalance,
		ResultPercent: params.ResultPercent,
		ResultValue:   params.ResultValue,
	}
	result, err := s.db.ApplyRecord(ctx, params.UserId, trade, trade.ResultValue)
	if err != nil {
		zap.L().Error("Trade settlement failed", zap.Int64("user_id", params.UserId), zap.Error(err))
		return nil, err
	}
	metrics.LedgerApplications.WithLabelValues(models.RecordKindTrade).Inc()

	zap.L().Info("Trade settled",
		zap.Int64("user_id", params.UserId),
		zap.String("trade_id", trade.Id),
		zap.String("result_value", trade.ResultValue.String()),
		zap.String("new_balance", result.BalanceAfter.String()))

	return &models.SettleResult{Trade: trade, NewBalance: result.BalanceAfter}, nil
}

func validateTrade(params SettleTradeParams) error {
	if strings.TrimSpace(params.AiModel) == "" {
		return fmt.Errorf("%w: ai_model is required", store.ErrInvalidTrade)
	}
	if !params.ResultPercent.Equal(params.ResultPercent.Round(2)) {
		return fmt.Errorf("%w: result_percent must have at most 2 decimals", store.ErrInvalidTrade)
	}
	expected := trading.ResultValue(params.StartBalance, params.ResultPercent)
	if !params.ResultValue.Equal(expected) {
		return fmt.Errorf("%w: result_value %s does not match %s%% of %s (expected %s)", store.ErrInvalidTrade,
			params.ResultValue.String(), params.ResultPercent.String(), params.StartBalance.String(), expected.String())
	}
	return nil
}

func (s *LedgerService) GetTrades(ctx context.Context, userId int64) ([]models.Trade, error) {
	return s.db.GetTrades(ctx, userId)
}
