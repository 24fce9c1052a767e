package cmd

import (
	"context"
	"fmt"

	"lumina-ledger/internal/common"
	"lumina-ledger/internal/models"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var balancesUserId int64

var balancesCmd = &cobra.Command{
	Use:   "balances",
	Short: "Print a balance report for one or all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, runBalances)
	},
}

func init() {
	rootCmd.AddCommand(balancesCmd)
	balancesCmd.Flags().Int64Var(&balancesUserId, "user", 0, "only report this user id")
}

type balanceStats struct {
	totalUsers       int
	usersWithBalance int
	totalRecords     int
}

func formatRecordId(id string) string {
	if id == "" {
		return "none"
	}
	if len(id) > 8 {
		return id[:8] + "..."
	}
	return id
}

func printUserBalance(user models.User, trades []models.Trade, bonuses []models.Bonus, txs []models.Transaction) {
	fmt.Printf("\n┌─ User: %s\n", common.DisplayName(user))
	fmt.Printf("│  ID: %d   Referrals: %d\n", user.UserId, user.ReferralsCount)
	fmt.Printf("│  Balance: %s (v%d, updated: %s)\n",
		user.Balance.StringFixed(2), user.Version, user.UpdatedAt.Format("2006-01-02 15:04:05"))
	common.PrintBoxSeparator(78)

	lastTrade := ""
	if len(trades) > 0 {
		lastTrade = trades[0].Id
	}
	lastBonus := ""
	if len(bonuses) > 0 {
		lastBonus = bonuses[0].Id
	}
	lastTx := ""
	if len(txs) > 0 {
		lastTx = txs[0].Id
	}

	fmt.Printf("%s %-13s: %4d (last: %s)\n", common.BoxPrefix(false), "trades", len(trades), formatRecordId(lastTrade))
	fmt.Printf("%s %-13s: %4d (last: %s)\n", common.BoxPrefix(false), "bonuses", len(bonuses), formatRecordId(lastBonus))
	fmt.Printf("%s %-13s: %4d (last: %s)\n", common.BoxPrefix(true), "transactions", len(txs), formatRecordId(lastTx))
}

func runBalances(ctx context.Context, services *common.Services, logger *zap.Logger) error {
	users, err := common.LoadUsers(ctx, services.DbService, balancesUserId, logger)
	if err != nil {
		return err
	}

	common.PrintHeader("USER BALANCE REPORT", common.DefaultWidth)

	stats := balanceStats{}
	for _, user := range users {
		stats.totalUsers++

		trades, err := services.LedgerService.GetTrades(ctx, user.UserId)
		if err != nil {
			logger.Error("Failed to load trades", zap.Int64("user_id", user.UserId), zap.Error(err))
			continue
		}
		bonuses, err := services.LedgerService.GetBonuses(ctx, user.UserId)
		if err != nil {
			logger.Error("Failed to load bonuses", zap.Int64("user_id", user.UserId), zap.Error(err))
			continue
		}
		txs, err := services.LedgerService.GetTransactions(ctx, user.UserId)
		if err != nil {
			logger.Error("Failed to load transactions", zap.Int64("user_id", user.UserId), zap.Error(err))
			continue
		}

		if !user.Balance.IsZero() {
			stats.usersWithBalance++
		}
		stats.totalRecords += len(trades) + len(bonuses) + len(txs)
		printUserBalance(user, trades, bonuses, txs)
	}

	summary := fmt.Sprintf("SUMMARY: %d users with a balance (%d ledger records across %d users queried)",
		stats.usersWithBalance, stats.totalRecords, stats.totalUsers)
	common.PrintFooter(summary, common.DefaultWidth)

	logger.Info("Balance report completed",
		zap.Int("users_queried", stats.totalUsers),
		zap.Int("users_with_balance", stats.usersWithBalance),
		zap.Int("ledger_records", stats.totalRecords))
	return nil
}
