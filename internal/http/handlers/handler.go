package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"lumina-ledger/internal/api"
	"lumina-ledger/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler adapts the ledger service to gin routes
type Handler struct {
	svc *api.LedgerService
}

func NewHandler(svc *api.LedgerService) *Handler {
	return &Handler{svc: svc}
}

// statusFor maps ledger errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, store.ErrUserNotFound), errors.Is(err, store.ErrWalletNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrAlreadyClaimed),
		errors.Is(err, store.ErrAlreadyClaimedToday),
		errors.Is(err, store.ErrNoReferrals),
		errors.Is(err, store.ErrInvalidTrade),
		errors.Is(err, store.ErrInvalidBonusKind),
		errors.Is(err, store.ErrInvalidTransaction),
		errors.Is(err, store.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		zap.L().Error("Request failed", zap.String("route", c.FullPath()), zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func userIdParam(c *gin.Context) (int64, bool) {
	userId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userId <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return 0, false
	}
	return userId, true
}
