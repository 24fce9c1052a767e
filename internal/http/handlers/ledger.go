package handlers

import (
	"net/http"

	"lumina-ledger/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type settleTradeRequest struct {
	AiModel       string           `json:"ai_model"`
	StartBalance  *decimal.Decimal `json:"start_balance"`
	ResultPercent *decimal.Decimal `json:"result_percent"`
	ResultValue   *decimal.Decimal `json:"result_value"`
}

type createTransactionRequest struct {
	TransactionType string           `json:"transaction_type"`
	Amount          *decimal.Decimal `json:"amount"`
}

// GetTrade simulates an outcome for the user without persisting it
func (h *Handler) GetTrade(c *gin.Context) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}

	outcome, err := h.svc.GetTradeOutcome(c.Request.Context(), c.Param("model"), userId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// SettleTrade persists a previously simulated outcome
func (h *Handler) SettleTrade(c *gin.Context) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}

	var req settleTradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.AiModel == "" || req.StartBalance == nil || req.ResultPercent == nil || req.ResultValue == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ai_model, start_balance, result_percent and result_value are required"})
		return
	}

	result, err := h.svc.SettleTrade(c.Request.Context(), api.SettleTradeParams{
		UserId:        userId,
		AiModel:       req.AiModel,
		StartBalance:  *req.StartBalance,
		ResultPercent: *req.ResultPercent,
		ResultValue:   *req.ResultValue,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) GetTrades(c *gin.Context) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}
	trades, err := h.svc.GetTrades(c.Request.Context(), userId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trades)
}

// ClaimBonus grants the bonus named by the kind path segment
func (h *Handler) ClaimBonus(c *gin.Context) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}

	result, err := h.svc.ClaimBonus(c.Request.Context(), userId, c.Param("kind"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) GetBonuses(c *gin.Context) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}
	bonuses, err := h.svc.GetBonuses(c.Request.Context(), userId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bonuses)
}

func (h *Handler) CreateTransaction(c *gin.Context) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}

	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.TransactionType == "" || req.Amount == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transaction_type and amount are required"})
		return
	}

	result, err := h.svc.CreateTransaction(c.Request.Context(), userId, req.TransactionType, *req.Amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) GetTransactions(c *gin.Context) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}
	txs, err := h.svc.GetTransactions(c.Request.Context(), userId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}
