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

package trading

import (
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Source is the randomness the generator draws from.
type Source interface {
	// Intn returns a uniform int in [0, n).
	Intn(n int) int
	// Float64 returns a uniform float in [0.0, 1.0).
	Float64() float64
}

// Outcome is a simulated result, not yet persisted.
type Outcome struct {
	Tier        string
	Band        Band
	Percent     decimal.Decimal
	Value       decimal.Decimal
	DelayMillis int64
}

// Generator produces randomized trading outcomes. Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	src Source
}

func NewGenerator(src Source) *Generator {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{src: src}
}

// Simulate draws an outcome for tier against startBalance. It has no side
// effects on the ledger.
func (g *Generator) Simulate(tier string, startBalance decimal.Decimal) Outcome {
	band := Classify(tier)
	spec := band.Spec()

	g.mu.Lock()
	delay := spec.MinDelaySeconds + g.src.Intn(spec.MaxDelaySeconds-spec.MinDelaySeconds+1)
	sign := spec.Signs[g.src.Intn(len(spec.Signs))]
	u := g.src.Float64()
	g.mu.Unlock()

	span := spec.MaxPercent.Sub(spec.MinPercent)
	magnitude := spec.MinPercent.Add(span.Mul(decimal.NewFromFloat(u)))
	percent := magnitude.Mul(decimal.NewFromInt(int64(sign))).Round(2)

	return Outcome{
		Tier:        normalizeTier(tier),
		Band:        band,
		Percent:     percent,
		Value:       ResultValue(startBalance, percent),
		DelayMillis: int64(delay) * 1000,
	}
}

// ResultValue is the settled amount of a trade: startBalance * percent / 100,
// rounded to cents.
func ResultValue(startBalance, percent decimal.Decimal) decimal.Decimal {
	return startBalance.Mul(percent).Div(decimal.NewFromInt(100)).Round(2)
}
