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

package cmd

import (
	"context"

	"lumina-ledger/internal/common"
	"lumina-ledger/internal/config"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "ledgerctl",
	Short: "Operate the balance ledger from the command line",
	Long: `ledgerctl works directly against the ledger database configured by
DATABASE_PATH. It can report balances, verify them against history,
seed users, and run trades or bonus claims through the same applier the
REST server uses.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// withServices loads configuration and opens the ledger for one command run.
func withServices(cmd *cobra.Command, fn func(ctx context.Context, services *common.Services, logger *zap.Logger) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, loggerCleanup := common.InitializeLogger(cfg.Log)
	defer loggerCleanup()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer services.Close()

	return fn(ctx, services, logger)
}
