// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lmsr_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hivemind-chain/marketchain/lmsr"
)

func TestNStates(t *testing.T) {
	assert.Equal(t, uint32(2), lmsr.NStates(1))
	assert.Equal(t, uint32(8), lmsr.NStates(3))
}

// TestOneDecisionMarketTwoTrades exercises spec.md §8 scenario 1: a
// one-decision market with B=1 coin, non-LS (maxCommission=0), and two
// sequential buys of 1 share in state 0. The expected prices are
// derived directly from the cost function in spec.md §4.3:
// C(q) = B*ln(Σ exp(q_i/B)).
func TestOneDecisionMarketTwoTrades(t *testing.T) {
	nStates := lmsr.NStates(1)
	B := 1.0
	maxCommission := 0.0

	q := make([]float64, nStates)

	quote1 := lmsr.PriceTrade(maxCommission, B, nStates, q, 0, 1, true)
	want1 := math.Log(math.E+1) - math.Log(2) // C([1,0]) - C([0,0])
	assert.InDelta(t, want1, quote1.PricePerShare, 1e-9)
	assert.True(t, lmsr.Finite([]float64{quote1.PricePerShare}))

	q[0] += 1
	quote2 := lmsr.PriceTrade(maxCommission, B, nStates, q, 0, 1, true)
	wantDiff := math.Log(math.Exp(2)+1) - math.Log(math.Exp(1)+1)
	assert.InDelta(t, wantDiff, quote2.PricePerShare, 1e-9)
}

// TestLMSRSymmetry is spec.md §8 scenario 2: a buy of delta shares
// from q then a sell of delta shares from q+delta*e_i must return
// equal per-share prices.
func TestLMSRSymmetry(t *testing.T) {
	nStates := lmsr.NStates(1)
	B := 1.0
	maxCommission := 0.0

	q := []float64{0, 0}
	delta := 0.5

	buyQuote := lmsr.PriceTrade(maxCommission, B, nStates, q, 0, delta, true)

	qAfter := []float64{delta, 0}
	sellQuote := lmsr.PriceTrade(maxCommission, B, nStates, qAfter, 0, delta, false)

	assert.InDelta(t, buyQuote.PricePerShare, sellQuote.PricePerShare, 1e-12)
}

func TestCostMonotonicity(t *testing.T) {
	nStates := lmsr.NStates(2)
	B := 1.0
	maxCommission := 0.0

	base := lmsr.Cost(maxCommission, B, nStates, []float64{0, 0, 0, 0})
	increased := lmsr.Cost(maxCommission, B, nStates, []float64{1, 0, 0, 0})

	assert.GreaterOrEqual(t, increased, base)
}

func TestCapitalRequiredLSBranch(t *testing.T) {
	nStates := uint32(4)
	B := 1.0
	maxCommission := 0.25

	capitalRequired := lmsr.CapitalRequired(maxCommission, B, nStates)
	assert.True(t, lmsr.Finite([]float64{capitalRequired}))
	assert.Greater(t, capitalRequired, 0.0)
}

func TestQuoteRejectsStaleBuyPrice(t *testing.T) {
	nStates := lmsr.NStates(1)
	q := []float64{0, 0}
	quote := lmsr.PriceTrade(0, 1, nStates, q, 0, 1, true)

	assert.False(t, lmsr.AcceptablePrice(quote, quote.PricePerShare-0.1, true))
	assert.True(t, lmsr.AcceptablePrice(quote, quote.PricePerShare, true))
}
