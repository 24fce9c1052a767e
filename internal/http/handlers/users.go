package handlers

import (
	"net/http"

	"lumina-ledger/internal/store"

	"github.com/gin-gonic/gin"
)

type upsertUserRequest struct {
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	ReferrerId *int64 `json:"referrer_id"`
}

type updateThemeRequest struct {
	UserTheme string `json:"user_theme"`
}

type walletRequest struct {
	WalletCurrency string `json:"wallet_currency"`
	WalletAddress  string `json:"wallet_address"`
}

func (h *Handler) GetUser(c *gin.Context) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}
	user, err := h.svc.GetUser(c.Request.Context(), userId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) UpsertUser(c *gin.Context) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}

	var req upsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.svc.UpsertUser(c.Request.Context(), store.UpsertUserParams{
		UserId:     userId,
		Username:   req.Username,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		ReferrerId: req.ReferrerId,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) UpdateTheme(c *gin.Context) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}

	var req updateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.svc.UpdateUserTheme(c.Request.Context(), userId, req.UserTheme); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Theme updated successfully", "user_theme": req.UserTheme})
}

func (h *Handler) GetWallets(c *gin.Context) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}
	wallets, err := h.svc.GetWallets(c.Request.Context(), userId)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wallets)
}

func (h *Handler) StoreWallet(c *gin.Context) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}

	var req walletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	wallet, err := h.svc.StoreWallet(c.Request.Context(), store.StoreWalletParams{
		UserId:         userId,
		WalletCurrency: req.WalletCurrency,
		WalletAddress:  req.WalletAddress,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, wallet)
}

func (h *Handler) UpdateWallet(c *gin.Context) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}

	var req walletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	wallet, err := h.svc.UpdateWallet(c.Request.Context(), c.Param("wallet_id"), store.StoreWalletParams{
		UserId:         userId,
		WalletCurrency: req.WalletCurrency,
		WalletAddress:  req.WalletAddress,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, wallet)
}

func (h *Handler) DeleteWallet(c *gin.Context) {
	userId, ok := userIdParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteWallet(c.Request.Context(), userId, c.Param("wallet_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
