// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package lmsr implements the logarithmic market scoring rule pricing
// engine shared by every market: state-space derivation, cost
// function, account value and buy/sell quoting.
package lmsr

import "github.com/hivemind-chain/marketchain/market"

// NStates returns the size of the state space for a market with k
// binary decisions: nStates = 2^k.
func NStates(numDecisions int) uint32 {
	n := uint32(1)
	for i := 0; i < numDecisions; i++ {
		n *= 2
	}
	return n
}

// NShares derives the current signed share vector by summing, in
// trade-index order, each trade's contribution to its decision_state
// bucket: +shares for a buy, -shares for a sell. trades must already
// be in the order the Store's ('t', market_id, trade_id) scan yields
// them (spec.md §4.3 marketNShares).
func NShares(trades []*market.Trade, nStates uint32) []float64 {
	shares := make([]float64, nStates)
	for _, t := range trades {
		state := uint32(t.DecisionState)
		if state >= nStates {
			continue
		}
		delta := market.FromFixed(t.NShares)
		if t.IsBuy {
			shares[state] += delta
		} else {
			shares[state] -= delta
		}
	}
	return shares
}
