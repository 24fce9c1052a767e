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


package database

const (
	// User queries
	userColumns = `user_id, username, first_name, last_name, referrer_id, referrals_count,
		balance, version, user_theme, registration_date, updated_at`

	queryGetUsers = `
		SELECT ` + userColumns + `
		FROM users
		ORDER BY user_id`

	queryGetUserById = `
		SELECT ` + userColumns + `
		FROM users
		WHERE user_id = ?`

	queryUpsertUser = `
		INSERT INTO users (user_id, username, first_name, last_name, referrer_id, registration_date, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			username = excluded.username,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			referrer_id = COALESCE(users.referrer_id, excluded.referrer_id),
			updated_at = excluded.updated_at`

	queryUpdateUserTheme = `
		UPDATE users SET user_theme = ?, updated_at = ? WHERE user_id = ?`

	querySetReferralsCount = `
		UPDATE users SET referrals_count = ?, updated_at = ? WHERE user_id = ?`

	// Balance update (optimistic locking on version)
	queryUpdateUserBalance = `
		UPDATE users
		SET balance = ?, version = version + 1, updated_at = ?
		WHERE user_id = ? AND version = ?`

	// Record inserts
	queryInsertTrade = `
		INSERT INTO tradings (id, user_id, ai_model, start_balance, result_percent, result_value, balance_after, date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	queryInsertBonus = `
		INSERT INTO bonuses (id, user_id, value, description, day, getting_date)
		VALUES (?, ?, ?, ?, ?, ?)`

	queryInsertTransaction = `
		INSERT INTO transactions (id, user_id, transaction_type, amount, status, balance_after, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	// Bonus lookups used inside the applier
	queryHasBonus = `
		SELECT 1 FROM bonuses WHERE user_id = ? AND description = ? LIMIT 1`

	queryLatestBonus = `
		SELECT id, user_id, value, description, day, getting_date
		FROM bonuses
		WHERE user_id = ? AND description = ?
		ORDER BY getting_date DESC, rowid DESC
		LIMIT 1`

	// History queries
	queryGetTrades = `
		SELECT id, user_id, ai_model, start_balance, result_percent, result_value, balance_after, date
		FROM tradings
		WHERE user_id = ?
		ORDER BY date DESC, rowid DESC`

	queryGetBonuses = `
		SELECT id, user_id, value, description, day, getting_date
		FROM bonuses
		WHERE user_id = ?
		ORDER BY getting_date DESC, rowid DESC`

	queryGetTransactions = `
		SELECT id, user_id, transaction_type, amount, status, balance_after, date
		FROM transactions
		WHERE user_id = ?
		ORDER BY date DESC, rowid DESC`

	// Wallet queries
	queryInsertWallet = `
		INSERT INTO wallets (id, user_id, wallet_currency, wallet_address)
		VALUES (?, ?, ?, ?)
		RETURNING id, user_id, wallet_currency, wallet_address`

	queryGetWallets = `
		SELECT id, user_id, wallet_currency, wallet_address
		FROM wallets
		WHERE user_id = ?
		ORDER BY rowid`

	queryUpdateWallet = `
		UPDATE wallets SET wallet_currency = ?, wallet_address = ?
		WHERE user_id = ? AND id = ?
		RETURNING id, user_id, wallet_currency, wallet_address`

	queryDeleteWallet = `
		DELETE FROM wallets WHERE user_id = ? AND id = ?`
)
