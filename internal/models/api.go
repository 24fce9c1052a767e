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
	"github.com/shopspring/decimal"
)

// TradeOutcome is a simulated, not yet settled, trading result
type TradeOutcome struct {
	AiModel       string          `json:"ai_model"`
	ResultPercent decimal.Decimal `json:"result_percent"`
	ResultValue   decimal.Decimal `json:"result_value"`
	DelayMillis   int64           `json:"delay"`
}

// SettleResult is returned after a trade was persisted
type SettleResult struct {
	Trade      *Trade          `json:"trade"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// ClaimResult is returned after a bonus was granted
type ClaimResult struct {
	Bonus      *Bonus          `json:"bonus"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// TransactionResult is returned after a transaction was recorded
type TransactionResult struct {
	Transaction *Transaction    `json:"transaction"`
	NewBalance  decimal.Decimal `json:"new_balance"`
}
