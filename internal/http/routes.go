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

package http

import (
	"lumina-ledger/internal/api"
	"lumina-ledger/internal/http/handlers"
	"lumina-ledger/internal/http/middleware"
	"lumina-ledger/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the gin engine serving the ledger REST API.
func NewRouter(svc *api.LedgerService, cfg models.HttpConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.AllowedOrigin))

	RegisterRoutes(r, handlers.NewHandler(svc))
	return r
}

func RegisterRoutes(r *gin.Engine, h *handlers.Handler) {
	r.GET("/healthz", h.Liveness)
	r.GET("/readyz", h.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Trading
	r.GET("/gettrade/:model/:id", h.GetTrade)
	r.GET("/tradings/:id", h.GetTrades)
	r.POST("/tradings/:id", h.SettleTrade)

	// Bonuses
	r.GET("/bonuses/:id", h.GetBonuses)
	r.POST("/bonuses/:id/:kind", h.ClaimBonus)

	// Transactions
	r.GET("/transactions/:id", h.GetTransactions)
	r.POST("/transactions/:id", h.CreateTransaction)

	// Users
	r.GET("/users/:id", h.GetUser)
	r.POST("/users/:id", h.UpsertUser)
	r.PUT("/users/:id", h.UpdateTheme)

	// Wallets
	r.GET("/wallets/:id", h.GetWallets)
	r.POST("/wallets/:id", h.StoreWallet)
	r.PUT("/wallets/:id/:wallet_id", h.UpdateWallet)
	r.DELETE("/wallets/:id/:wallet_id", h.DeleteWallet)
}
