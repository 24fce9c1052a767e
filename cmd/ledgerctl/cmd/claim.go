package cmd

import (
	"context"
	"fmt"

	"lumina-ledger/internal/common"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var claimUserId int64

var claimCmd = &cobra.Command{
	Use:       "claim <registration|referral|daily>",
	Short:     "Claim a bonus on behalf of a user",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"registration", "referral", "daily"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, services *common.Services, logger *zap.Logger) error {
			result, err := services.LedgerService.ClaimBonus(ctx, claimUserId, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s (day %d), balance %s\n",
				result.Bonus.Description, common.SignedAmount(result.Bonus.Value), result.Bonus.Day, result.NewBalance.StringFixed(2))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(claimCmd)
	claimCmd.Flags().Int64VarP(&claimUserId, "user", "u", 0, "user id (required)")
	claimCmd.MarkFlagRequired("user")
}
