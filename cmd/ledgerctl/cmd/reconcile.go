package cmd

import (
	"context"
	"fmt"

	"lumina-ledger/internal/common"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reconcileUserId int64

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Verify stored balances against the sum of ledger records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, runReconcile)
	},
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
	reconcileCmd.Flags().Int64Var(&reconcileUserId, "user", 0, "only reconcile this user id")
}

func runReconcile(ctx context.Context, services *common.Services, logger *zap.Logger) error {
	users, err := common.LoadUsers(ctx, services.DbService, reconcileUserId, logger)
	if err != nil {
		return err
	}

	mismatched := 0
	for i, user := range users {
		status := "ok"
		if err := services.LedgerService.ReconcileUserBalance(ctx, user.UserId); err != nil {
			mismatched++
			status = err.Error()
		}
		fmt.Printf("%s %-12d %s\n", common.BoxPrefix(i == len(users)-1), user.UserId, status)
	}

	if mismatched > 0 {
		return fmt.Errorf("%d of %d users failed reconciliation", mismatched, len(users))
	}
	logger.Info("Reconciliation completed", zap.Int("users", len(users)))
	return nil
}
