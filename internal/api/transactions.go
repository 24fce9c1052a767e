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

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	TransactionDeposit    = "deposit"
	TransactionWithdrawal = "withdrawal"
)

// SignedAmount applies the sign convention of a transaction type: deposits
// credit, withdrawals debit, anything else is taken as given.
func SignedAmount(transactionType string, amount decimal.Decimal) decimal.Decimal {
	switch strings.ToLower(transactionType) {
	case TransactionDeposit:
		return amount.Abs()
	case TransactionWithdrawal:
		return amount.Abs().Neg()
	default:
		return amount
	}
}

// CreateTransaction records a pending transaction and applies its amount.
func (s *LedgerService) CreateTransaction(ctx context.Context, userId int64, transactionType string, amount decimal.Decimal) (*models.TransactionResult, error) {
	if strings.TrimSpace(transactionType) == "" {
		return nil, fmt.Errorf("%w: transaction_type is required", store.ErrInvalidTransaction)
	}

	signed := SignedAmount(transactionType, amount).Round(2)
	if signed.IsZero() {
		return nil, fmt.Errorf("%w: amount must be non-zero", store.ErrInvalidTransaction)
	}

	tx := &models.Transaction{
		TransactionType: transactionType,
		Amount:          signed,
		Status:          models.TransactionStatusPending,
	}
	result, err := s.db.ApplyRecord(ctx, userId, tx, signed)
	if err != nil {
		zap.L().Error("Transaction failed",
			zap.Int64("user_id", userId),
			zap.String("type", transactionType),
			zap.String("amount", signed.String()),
			zap.Error(err))
		return nil, err
	}
	metrics.LedgerApplications.WithLabelValues(models.RecordKindTransaction).Inc()

	zap.L().Info("Transaction recorded",
		zap.Int64("user_id", userId),
		zap.String("transaction_id", tx.Id),
		zap.String("type", transactionType),
		zap.String("amount", signed.String()),
		zap.String("new_balance", result.BalanceAfter.String()))

	return &models.TransactionResult{Transaction: tx, NewBalance: result.BalanceAfter}, nil
}

func (s *LedgerService) GetTransactions(ctx context.Context, userId int64) ([]models.Transaction, error) {
	return s.db.GetTransactions(ctx, userId)
}

func (s *LedgerService) ReconcileUserBalance(ctx context.Context, userId int64) error {
	return s.db.ReconcileUserBalance(ctx, userId)
}
