package api

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"lumina-ledger/internal/bonus"
	"lumina-ledger/internal/database"
	"lumina-ledger/internal/models"
	"lumina-ledger/internal/store"
	"lumina-ledger/internal/trading"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedSource always picks the last sign and the midpoint of the band.
type fixedSource struct{}

func (fixedSource) Intn(n int) int   { return n - 1 }
func (fixedSource) Float64() float64 { return 0.5 }

func setupTestLedger(t *testing.T) *LedgerService {
	t.Helper()

	db, err := database.NewService(context.Background(), models.DatabaseConfig{
		Path:         filepath.Join(t.TempDir(), "api.db"),
		MaxOpenConns: 2,
		PingTimeout:  time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	_, err = db.UpsertUser(context.Background(), store.UpsertUserParams{UserId: 42, Username: "trader"})
	require.NoError(t, err)

	return NewLedgerService(db, trading.NewGenerator(fixedSource{}), bonus.NewEngine(db))
}

func TestHealthCheck(t *testing.T) {
	svc := setupTestLedger(t)
	assert.NoError(t, svc.HealthCheck(context.Background()))
}

func TestSimulateThenSettle(t *testing.T) {
	ctx := context.Background()
	svc := setupTestLedger(t)

	_, err := svc.ClaimBonus(ctx, 42, "registration")
	require.NoError(t, err)

	outcome, err := svc.GetTradeOutcome(ctx, "v2core", 42)
	require.NoError(t, err)
	assert.Equal(t, "v2core", outcome.AiModel)
	assert.True(t, outcome.ResultPercent.IsPositive())
	assert.True(t, outcome.ResultValue.Equal(trading.ResultValue(decimal.NewFromInt(100), outcome.ResultPercent)))

	// simulation alone does not move the balance
	user, err := svc.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.True(t, user.Balance.Equal(decimal.NewFromInt(100)))

	res, err := svc.SettleTrade(ctx, SettleTradeParams{
		UserId:        42,
		AiModel:       outcome.AiModel,
		StartBalance:  user.Balance,
		ResultPercent: outcome.ResultPercent,
		ResultValue:   outcome.ResultValue,
	})
	require.NoError(t, err)
	assert.True(t, res.NewBalance.Equal(user.Balance.Add(outcome.ResultValue)))
	assert.True(t, res.Trade.BalanceAfter.Equal(res.NewBalance))

	trades, err := svc.GetTrades(ctx, 42)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, res.Trade.Id, trades[0].Id)

	assert.NoError(t, svc.ReconcileUserBalance(ctx, 42))
}

func TestGetTradeOutcome_UnknownUser(t *testing.T) {
	svc := setupTestLedger(t)
	_, err := svc.GetTradeOutcome(context.Background(), "v2core", 999)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestSettleTrade_RejectsInconsistentValue(t *testing.T) {
	ctx := context.Background()
	svc := setupTestLedger(t)

	cases := map[string]SettleTradeParams{
		"missing model": {
			UserId: 42, StartBalance: decimal.NewFromInt(1000),
			ResultPercent: decimal.RequireFromString("1.5"), ResultValue: decimal.NewFromInt(15),
		},
		"value mismatch": {
			UserId: 42, AiModel: "v2core", StartBalance: decimal.NewFromInt(1000),
			ResultPercent: decimal.RequireFromString("1.5"), ResultValue: decimal.NewFromInt(16),
		},
		"too many decimals": {
			UserId: 42, AiModel: "v2core", StartBalance: decimal.NewFromInt(1000),
			ResultPercent: decimal.RequireFromString("1.505"), ResultValue: decimal.RequireFromString("15.05"),
		},
	}
	for name, params := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.SettleTrade(ctx, params)
			assert.ErrorIs(t, err, store.ErrInvalidTrade)
		})
	}

	trades, err := svc.GetTrades(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, trades)
}

func TestClaimBonus(t *testing.T) {
	ctx := context.Background()
	svc := setupTestLedger(t)

	_, err := svc.ClaimBonus(ctx, 42, "jackpot")
	assert.ErrorIs(t, err, store.ErrInvalidBonusKind)

	_, err = svc.ClaimBonus(ctx, 42, "referral")
	assert.ErrorIs(t, err, store.ErrNoReferrals)
	assert.Equal(t, "no_referrals", claimOutcome(err))

	require.NoError(t, svc.SetReferralsCount(ctx, 42, 2))
	res, err := svc.ClaimBonus(ctx, 42, "referral")
	require.NoError(t, err)
	assert.True(t, res.NewBalance.Equal(decimal.NewFromInt(20)))

	res, err = svc.ClaimBonus(ctx, 42, "daily")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Bonus.Day)

	_, err = svc.ClaimBonus(ctx, 42, "daily")
	assert.ErrorIs(t, err, store.ErrAlreadyClaimedToday)
	assert.True(t, isRecoverable(err))

	bonuses, err := svc.GetBonuses(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, bonuses, 2)
}

func TestSignedAmount(t *testing.T) {
	ten := decimal.NewFromInt(10)
	assert.True(t, SignedAmount("deposit", ten.Neg()).Equal(ten))
	assert.True(t, SignedAmount("Withdrawal", ten).Equal(ten.Neg()))
	assert.True(t, SignedAmount("adjustment", ten.Neg()).Equal(ten.Neg()))
}

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()
	svc := setupTestLedger(t)

	res, err := svc.CreateTransaction(ctx, 42, "deposit", decimal.RequireFromString("50.555"))
	require.NoError(t, err)
	assert.True(t, res.Transaction.Amount.Equal(decimal.RequireFromString("50.56")))
	assert.Equal(t, models.TransactionStatusPending, res.Transaction.Status)
	assert.True(t, res.NewBalance.Equal(decimal.RequireFromString("50.56")))

	res, err = svc.CreateTransaction(ctx, 42, "withdrawal", decimal.NewFromInt(20))
	require.NoError(t, err)
	assert.True(t, res.NewBalance.Equal(decimal.RequireFromString("30.56")))

	_, err = svc.CreateTransaction(ctx, 42, "", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, store.ErrInvalidTransaction)
	_, err = svc.CreateTransaction(ctx, 42, "deposit", decimal.RequireFromString("0.001"))
	assert.ErrorIs(t, err, store.ErrInvalidTransaction)

	txs, err := svc.GetTransactions(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.NoError(t, svc.ReconcileUserBalance(ctx, 42))
}

func TestUserAndWalletValidation(t *testing.T) {
	ctx := context.Background()
	svc := setupTestLedger(t)

	_, err := svc.UpsertUser(ctx, store.UpsertUserParams{UserId: 0})
	assert.ErrorIs(t, err, store.ErrInvalidInput)

	assert.ErrorIs(t, svc.UpdateUserTheme(ctx, 42, "purple"), store.ErrInvalidInput)
	require.NoError(t, svc.UpdateUserTheme(ctx, 42, "light"))
	user, err := svc.GetUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "light", user.UserTheme)

	_, err = svc.StoreWallet(ctx, store.StoreWalletParams{UserId: 42, WalletCurrency: "USDT"})
	assert.True(t, errors.Is(err, store.ErrInvalidInput))

	wallet, err := svc.StoreWallet(ctx, store.StoreWalletParams{UserId: 42, WalletCurrency: "USDT", WalletAddress: "TXabc"})
	require.NoError(t, err)

	updated, err := svc.UpdateWallet(ctx, wallet.Id, store.StoreWalletParams{UserId: 42, WalletCurrency: "TON", WalletAddress: "UQxyz"})
	require.NoError(t, err)
	assert.Equal(t, "TON", updated.WalletCurrency)

	wallets, err := svc.GetWallets(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, wallets, 1)

	require.NoError(t, svc.DeleteWallet(ctx, 42, wallet.Id))
	assert.ErrorIs(t, svc.DeleteWallet(ctx, 42, wallet.Id), store.ErrWalletNotFound)
}
