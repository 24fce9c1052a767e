package database

import (
	"context"
	"database/sql"
	"fmt"

	"lumina-ledger/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func parseDecimal(raw string, dst *decimal.Decimal) error {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("failed to parse decimal '%s': %w", raw, err)
	}
	*dst = d
	return nil
}

func scanTrade(row rowScanner) (*models.Trade, error) {
	var t models.Trade
	var start, percent, value, after string
	if err := row.Scan(&t.Id, &t.UserId, &t.AiModel, &start, &percent, &value, &after, &t.Date); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		raw string
		dst *decimal.Decimal
	}{{start, &t.StartBalance}, {percent, &t.ResultPercent}, {value, &t.ResultValue}, {after, &t.BalanceAfter}} {
		if err := parseDecimal(f.raw, f.dst); err != nil {
			return nil, err
		}
	}
	return &t, nil
}

func scanBonus(row rowScanner) (*models.Bonus, error) {
	var b models.Bonus
	var value string
	if err := row.Scan(&b.Id, &b.UserId, &value, &b.Description, &b.Day, &b.GettingDate); err != nil {
		return nil, err
	}
	if err := parseDecimal(value, &b.Value); err != nil {
		return nil, err
	}
	return &b, nil
}

func scanTransaction(row rowScanner) (*models.Transaction, error) {
	var t models.Transaction
	var amount, after string
	if err := row.Scan(&t.Id, &t.UserId, &t.TransactionType, &amount, &t.Status, &after, &t.Date); err != nil {
		return nil, err
	}
	if err := parseDecimal(amount, &t.Amount); err != nil {
		return nil, err
	}
	if err := parseDecimal(after, &t.BalanceAfter); err != nil {
		return nil, err
	}
	return &t, nil
}

// queryAll runs a per-user history query and scans every row with scan.
func queryAll[T any](ctx context.Context, db *sql.DB, query string, userId int64, scan func(rowScanner) (*T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, userId)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			zap.L().Warn("Failed to close rows", zap.Error(err))
		}
	}(rows)

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// GetTrades returns settled trades, newest first
func (s *Service) GetTrades(ctx context.Context, userId int64) ([]models.Trade, error) {
	trades, err := queryAll(ctx, s.db, queryGetTrades, userId, scanTrade)
	if err != nil {
		zap.L().Error("Failed to get trades", zap.Int64("user_id", userId), zap.Error(err))
		return nil, fmt.Errorf("failed to get trades: %w", err)
	}
	zap.L().Debug("Retrieved trades", zap.Int64("user_id", userId), zap.Int("count", len(trades)))
	return trades, nil
}

// GetBonuses returns granted bonuses, newest first
func (s *Service) GetBonuses(ctx context.Context, userId int64) ([]models.Bonus, error) {
	bonuses, err := queryAll(ctx, s.db, queryGetBonuses, userId, scanBonus)
	if err != nil {
		zap.L().Error("Failed to get bonuses", zap.Int64("user_id", userId), zap.Error(err))
		return nil, fmt.Errorf("failed to get bonuses: %w", err)
	}
	zap.L().Debug("Retrieved bonuses", zap.Int64("user_id", userId), zap.Int("count", len(bonuses)))
	return bonuses, nil
}

// GetTransactions returns recorded transactions, newest first
func (s *Service) GetTransactions(ctx context.Context, userId int64) ([]models.Transaction, error) {
	transactions, err := queryAll(ctx, s.db, queryGetTransactions, userId, scanTransaction)
	if err != nil {
		zap.L().Error("Failed to get transactions", zap.Int64("user_id", userId), zap.Error(err))
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	zap.L().Debug("Retrieved transactions", zap.Int64("user_id", userId), zap.Int("count", len(transactions)))
	return transactions, nil
}

// ReconcileUserBalance verifies that the stored balance equals the sum of
// every applied trade value, bonus value and transaction amount.
func (s *Service) ReconcileUserBalance(ctx context.Context, userId int64) error {
	zap.L().Info("Reconciling balance", zap.Int64("user_id", userId))

	user, err := s.GetUserById(ctx, userId)
	if err != nil {
		return err
	}

	trades, err := s.GetTrades(ctx, userId)
	if err != nil {
		return err
	}
	bonuses, err := s.GetBonuses(ctx, userId)
	if err != nil {
		return err
	}
	transactions, err := s.GetTransactions(ctx, userId)
	if err != nil {
		return err
	}

	calculated := decimal.Zero
	for _, t := range trades {
		calculated = calculated.Add(t.ResultValue)
	}
	for _, b := range bonuses {
		calculated = calculated.Add(b.Value)
	}
	for _, t := range transactions {
		calculated = calculated.Add(t.Amount)
	}
	calculated = calculated.Round(2)

	// Check if balances match (exact decimal comparison)
	if !user.Balance.Equal(calculated) {
		zap.L().Error("Balance reconciliation failed",
			zap.Int64("user_id", userId),
			zap.String("current_balance", user.Balance.String()),
			zap.String("calculated_balance", calculated.String()),
			zap.String("difference", user.Balance.Sub(calculated).String()))
		return fmt.Errorf("balance mismatch: current=%s, calculated=%s", user.Balance.String(), calculated.String())
	}

	zap.L().Info("Balance reconciliation successful",
		zap.Int64("user_id", userId),
		zap.String("balance", user.Balance.String()))
	return nil
}
