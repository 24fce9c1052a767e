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

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"lumina-ledger/internal/common"
	"lumina-ledger/internal/config"
	httpserver "lumina-ledger/internal/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	addr := flag.String("addr", "", "Listen address (overrides HTTP_ADDR)")
	seedsFile := flag.String("seeds", "", "Optional path to a seeds YAML file applied at startup")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *addr != "" {
		cfg.Http.Addr = *addr
	}

	_, loggerCleanup := common.InitializeLogger(cfg.Log)
	defer loggerCleanup()

	if !cfg.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	zap.L().Info("Starting ledger server", zap.String("addr", cfg.Http.Addr))

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	if *seedsFile != "" {
		seeds, err := common.LoadUserSeeds(*seedsFile)
		if err != nil {
			zap.L().Fatal("Failed to load seeds", zap.Error(err))
		}
		if err := common.ApplyUserSeeds(ctx, services.LedgerService, seeds); err != nil {
			zap.L().Fatal("Failed to apply seeds", zap.Error(err))
		}
		zap.L().Info("Applied user seeds", zap.String("file", *seedsFile), zap.Int("users", len(seeds)))
	}

	srv := &http.Server{
		Addr:         cfg.Http.Addr,
		Handler:      httpserver.NewRouter(services.LedgerService, cfg.Http),
		ReadTimeout:  cfg.Http.ReadTimeout,
		WriteTimeout: cfg.Http.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	zap.L().Info("Ledger server running, press Ctrl+C to stop")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		zap.L().Info("Shutdown signal received, draining requests...")
	case err := <-serveErr:
		if err != nil {
			zap.L().Error("Server stopped unexpectedly", zap.Error(err))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Http.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Warn("Forced shutdown after timeout", zap.Error(err))
		return
	}
	zap.L().Info("Server stopped gracefully")
}
