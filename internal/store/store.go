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


package store

import (
	"context"
	"errors"

	"lumina-ledger/internal/models"

	"github.com/shopspring/decimal"
)

// Sentinel errors shared across the ledger.
var (
	ErrUserNotFound           = errors.New("user not found")
	ErrAlreadyClaimed         = errors.New("registration bonus already claimed")
	ErrAlreadyClaimedToday    = errors.New("daily bonus already claimed today")
	ErrNoReferrals            = errors.New("no referrals available")
	ErrPersistenceFailure     = errors.New("persistence failure")
	ErrConcurrentModification = errors.New("concurrent modification detected")
	ErrInvalidTrade           = errors.New("invalid trade")
	ErrInvalidBonusKind       = errors.New("invalid bonus kind")
	ErrInvalidTransaction     = errors.New("invalid transaction")
	ErrWalletNotFound         = errors.New("wallet not found")
	ErrInvalidInput           = errors.New("invalid input")
)

// Snapshot is a read view of one user's ledger bound to an open applier
// transaction. Reads through it see the state the delta will be applied to.
type Snapshot interface {
	User() models.User
	HasBonus(ctx context.Context, description string) (bool, error)
	LatestBonus(ctx context.Context, description string) (*models.Bonus, error)
}

// ApplyFunc decides, against a snapshot, which record to append and the
// signed balance delta. Returning an error aborts with no writes.
type ApplyFunc func(ctx context.Context, snap Snapshot) (models.Record, decimal.Decimal, error)

// UpsertUserParams contains the profile fields of a user
type UpsertUserParams struct {
	UserId     int64
	Username   string
	FirstName  string
	LastName   string
	ReferrerId *int64
}

// StoreWalletParams contains the parameters for storing a wallet address
type StoreWalletParams struct {
	UserId         int64
	WalletCurrency string
	WalletAddress  string
}

// Applier is the sole path through which a balance changes.
type Applier interface {
	Apply(ctx context.Context, userId int64, fn ApplyFunc) (*models.ApplyResult, error)
	ApplyRecord(ctx context.Context, userId int64, record models.Record, delta decimal.Decimal) (*models.ApplyResult, error)
}

// LedgerStore defines the contract of the persistence collaborator.
type LedgerStore interface {
	Applier

	// --- Users ---
	GetUserById(ctx context.Context, userId int64) (*models.User, error)
	UpsertUser(ctx context.Context, params UpsertUserParams) (*models.User, error)
	UpdateUserTheme(ctx context.Context, userId int64, theme string) error
	SetReferralsCount(ctx context.Context, userId int64, count int) error
	GetUsers(ctx context.Context) ([]models.User, error)

	// --- History ---
	GetTrades(ctx context.Context, userId int64) ([]models.Trade, error)
	GetBonuses(ctx context.Context, userId int64) ([]models.Bonus, error)
	GetTransactions(ctx context.Context, userId int64) ([]models.Transaction, error)
	ReconcileUserBalance(ctx context.Context, userId int64) error

	// --- Wallets ---
	StoreWallet(ctx context.Context, params StoreWalletParams) (*models.Wallet, error)
	GetWallets(ctx context.Context, userId int64) ([]models.Wallet, error)
	UpdateWallet(ctx context.Context, walletId string, params StoreWalletParams) (*models.Wallet, error)
	DeleteWallet(ctx context.Context, userId int64, walletId string) error

	// --- Lifecycle ---
	Ping(ctx context.Context) error
	Close()
}
