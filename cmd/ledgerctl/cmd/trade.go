package cmd

import (
	"context"
	"fmt"

	"lumina-ledger/internal/api"
	"lumina-ledger/internal/common"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	tradeUserId int64
	tradeModel  string
	tradeSettle bool
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Simulate a trade for a user, optionally settling it",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, runTrade)
	},
}

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.Flags().Int64VarP(&tradeUserId, "user", "u", 0, "user id (required)")
	tradeCmd.Flags().StringVarP(&tradeModel, "model", "m", "v2core", "model tier (Stable, v2core, Neutral, v2opt, anything else is aggressive)")
	tradeCmd.Flags().BoolVar(&tradeSettle, "settle", false, "persist the outcome and move the balance")
	tradeCmd.MarkFlagRequired("user")
}

func runTrade(ctx context.Context, services *common.Services, logger *zap.Logger) error {
	user, err := services.LedgerService.GetUser(ctx, tradeUserId)
	if err != nil {
		return err
	}

	outcome, err := services.LedgerService.GetTradeOutcome(ctx, tradeModel, tradeUserId)
	if err != nil {
		return err
	}
	fmt.Printf("model=%s percent=%s%% value=%s delay=%dms\n",
		outcome.AiModel, common.SignedAmount(outcome.ResultPercent), common.SignedAmount(outcome.ResultValue), outcome.DelayMillis)

	if !tradeSettle {
		return nil
	}

	result, err := services.LedgerService.SettleTrade(ctx, api.SettleTradeParams{
		UserId:        tradeUserId,
		AiModel:       outcome.AiModel,
		StartBalance:  user.Balance,
		ResultPercent: outcome.ResultPercent,
		ResultValue:   outcome.ResultValue,
	})
	if err != nil {
		return err
	}
	fmt.Printf("settled trade %s, balance %s -> %s\n",
		result.Trade.Id, user.Balance.StringFixed(2), result.NewBalance.StringFixed(2))
	logger.Debug("Trade command completed", zap.Int64("user_id", tradeUserId))
	return nil
}
