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

package bonus

import (
	"context"
	"fmt"
	"time"

	"lumina-ledger/internal/models"
	"lumina-ledger/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Engine grants bonuses. Eligibility is decided inside the applier
// transaction, so a rejected claim never writes.
type Engine struct {
	applier            store.Applier
	registrationAmount decimal.Decimal
	now                func() time.Time
}

type Option func(*Engine)

// WithClock overrides the time source used for daily streaks.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRegistrationAmount overrides the fixed registration bonus.
func WithRegistrationAmount(amount decimal.Decimal) Option {
	return func(e *Engine) { e.registrationAmount = amount }
}

func NewEngine(applier store.Applier, opts ...Option) *Engine {
	e := &Engine{
		applier:            applier,
		registrationAmount: DefaultRegistrationAmount,
		now:                time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Claim grants a bonus of the given kind and returns the record and the
// user's new balance.
func (e *Engine) Claim(ctx context.Context, userId int64, kind Kind) (*models.ClaimResult, error) {
	var decide store.ApplyFunc
	switch kind {
	case KindRegistration:
		decide = e.registration
	case KindReferral:
		decide = e.referral
	case KindDaily:
		decide = e.daily
	default:
		return nil, fmt.Errorf("%w: %q", store.ErrInvalidBonusKind, kind)
	}

	result, err := e.applier.Apply(ctx, userId, decide)
	if err != nil {
		return nil, err
	}

	bonus := result.Record.(*models.Bonus)
	zap.L().Debug("Bonus granted",
		zap.Int64("user_id", userId),
		zap.String("kind", string(kind)),
		zap.Int("day", bonus.Day),
		zap.String("value", bonus.Value.String()))

	return &models.ClaimResult{Bonus: bonus, NewBalance: result.BalanceAfter}, nil
}

func (e *Engine) registration(ctx context.Context, snap store.Snapshot) (models.Record, decimal.Decimal, error) {
	claimed, err := snap.HasBonus(ctx, models.BonusRegistration)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if claimed {
		return nil, decimal.Zero, store.ErrAlreadyClaimed
	}
	return e.grant(models.BonusRegistration, e.registrationAmount, 1)
}

// referral re-reads the full referral count on every claim; earlier claims
// are not deducted.
func (e *Engine) referral(_ context.Context, snap store.Snapshot) (models.Record, decimal.Decimal, error) {
	amount, err := ReferralAmount(snap.User().ReferralsCount)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return e.grant(models.BonusReferral, amount, 1)
}

func (e *Engine) daily(ctx context.Context, snap store.Snapshot) (models.Record, decimal.Decimal, error) {
	prior, err := snap.LatestBonus(ctx, models.BonusDaily)
	if err != nil {
		return nil, decimal.Zero, err
	}
	day, err := NextStreakDay(prior, e.now())
	if err != nil {
		return nil, decimal.Zero, err
	}
	return e.grant(models.BonusDaily, DailyAmount(day), day)
}

func (e *Engine) grant(description string, amount decimal.Decimal, day int) (models.Record, decimal.Decimal, error) {
	return &models.Bonus{
		Value:       amount,
		Description: description,
		Day:         day,
		GettingDate: e.now().UTC(),
	}, amount, nil
}
