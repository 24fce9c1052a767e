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


package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is a ledger account. Balance is owned by the ledger store and only
// changes through an applied record.
type User struct {
	UserId           int64           `db:"user_id" json:"user_id"`
	Username         string          `db:"username" json:"username"`
	FirstName        string          `db:"first_name" json:"first_name"`
	LastName         string          `db:"last_name" json:"last_name"`
	ReferrerId       *int64          `db:"referrer_id" json:"referrer_id,omitempty"`
	ReferralsCount   int             `db:"referrals_count" json:"referrals_count"`
	Balance          decimal.Decimal `db:"balance" json:"balance"`
	Version          int64           `db:"version" json:"-"`
	UserTheme        string          `db:"user_theme" json:"user_theme"`
	RegistrationDate time.Time       `db:"registration_date" json:"registration_date"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// Record is a ledger entry that can be appended through the applier.
type Record interface {
	RecordKind() string
}

const (
	RecordKindTrade       = "trade"
	RecordKindBonus       = "bonus"
	RecordKindTransaction = "transaction"
)

// Trade is an immutable settled trading outcome
type Trade struct {
	Id            string          `db:"id" json:"id"`
	UserId        int64           `db:"user_id" json:"user_id"`
	AiModel       string          `db:"ai_model" json:"ai_model"`
	StartBalance  decimal.Decimal `db:"start_balance" json:"start_balance"`
	ResultPercent decimal.Decimal `db:"result_percent" json:"result_percent"`
	ResultValue   decimal.Decimal `db:"result_value" json:"result_value"`
	BalanceAfter  decimal.Decimal `db:"balance_after" json:"balance_after"`
	Date          time.Time       `db:"date" json:"date"`
}

func (*Trade) RecordKind() string { return RecordKindTrade }

// Bonus descriptions. At most one registration bonus exists per user.
const (
	BonusRegistration = "Registration bonus"
	BonusReferral     = "Referral bonus"
	BonusDaily        = "Daily bonus"
)

// Bonus is an immutable bonus grant
type Bonus struct {
	Id          string          `db:"id" json:"id"`
	UserId      int64           `db:"user_id" json:"user_id"`
	Value       decimal.Decimal `db:"value" json:"value"`
	Description string          `db:"description" json:"description"`
	Day         int             `db:"day" json:"day"`
	GettingDate time.Time       `db:"getting_date" json:"getting_date"`
}

func (*Bonus) RecordKind() string { return RecordKindBonus }

const TransactionStatusPending = "pending"

// Transaction is an immutable user transaction. Status is never advanced here.
type Transaction struct {
	Id              string          `db:"id" json:"id"`
	UserId          int64           `db:"user_id" json:"user_id"`
	TransactionType string          `db:"transaction_type" json:"transaction_type"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	Status          string          `db:"status" json:"status"`
	BalanceAfter    decimal.Decimal `db:"balance_after" json:"balance_after"`
	Date            time.Time       `db:"date" json:"date"`
}

func (*Transaction) RecordKind() string { return RecordKindTransaction }

// Wallet is a stored payout address for a user
type Wallet struct {
	Id             string `db:"id" json:"id"`
	UserId         int64  `db:"user_id" json:"user_id"`
	WalletCurrency string `db:"wallet_currency" json:"wallet_currency"`
	WalletAddress  string `db:"wallet_address" json:"wallet_address"`
}

// ApplyResult is what the applier returns after a committed record
type ApplyResult struct {
	Record        Record
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
}
