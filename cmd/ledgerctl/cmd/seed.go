package cmd

import (
	"context"

	"lumina-ledger/internal/common"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create users from a YAML file and claim their listed bonuses",
	Long: `Seed reads a file of the form

  users:
    - user_id: 1
      username: alice
      referrals_count: 2
      claims: [registration, referral]

and applies it. Running it twice does not grant the registration bonus twice.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, runSeed)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seeds.yaml", "path to the seeds YAML file")
}

func runSeed(ctx context.Context, services *common.Services, logger *zap.Logger) error {
	seeds, err := common.LoadUserSeeds(seedFile)
	if err != nil {
		return err
	}
	if err := common.ApplyUserSeeds(ctx, services.LedgerService, seeds); err != nil {
		return err
	}
	logger.Info("Seeding completed", zap.String("file", seedFile), zap.Int("users", len(seeds)))
	return nil
}
