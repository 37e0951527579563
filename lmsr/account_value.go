// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lmsr

import "math"

// AccountValue computes the LMSR cost-function value for a market's
// share vector, exactly mirroring the original marketAccountValue's
// two branches (spec.md §9 Open Question 1).
//
// maxCommission == 0 selects the non-liquidity-sensitive (non-LS)
// branch: C(q) = B * ln(Σ exp(q_i/B)) over every state, including
// untouched (zero-share) ones. The original C++ skipped zero-share
// states in this sum, which leaves C(0_vec) undefined (ln(0) = -Inf)
// at the very start of a fresh market; that violates the "no NaN or
// infinite component" invariant (spec.md §8), so every state is
// summed here regardless of whether it has seen a trade.
//
// maxCommission > 0 selects the liquidity-sensitive (LS) branch: the
// market author is deemed to have pre-purchased minShares = B*ln(nStates)/
// maxCommission shares in every state; B itself is rescaled by
// sumShares/(nStates*minShares) before the cost sum, where sumShares
// is the total of the actual (or, if nShares is nil, assumed minShares)
// position.
//
// nShares == nil requests the fully-loaded capital-required value: the
// position as if every state held exactly minShares (LS) or zero
// (non-LS).
func AccountValue(maxCommission float64, B float64, nStates uint32, nShares []float64) float64 {
	at := func(i uint32, fallback float64) float64 {
		if nil == nShares {
			return fallback
		}
		return nShares[i]
	}

	if 0 == maxCommission {
		sumExp := 0.0
		for i := uint32(0); i < nStates; i++ {
			sumExp += math.Exp(at(i, 0) / B)
		}
		return B * math.Log(sumExp)
	}

	minShares := B * math.Log(float64(nStates)) / maxCommission
	sumShares := 0.0
	for i := uint32(0); i < nStates; i++ {
		sumShares += at(i, minShares)
	}
	scaledB := B * sumShares / (float64(nStates) * minShares)

	sumExp := 0.0
	for i := uint32(0); i < nStates; i++ {
		s := at(i, minShares)
		sumExp += math.Exp(s / scaledB)
	}
	return scaledB * math.Log(sumExp)
}

// CapitalRequired returns the capital needed to fully back a market
// with nStates outcomes and the given maxCommission, as advertised to
// an author creating the market (nShares == nil case of AccountValue).
func CapitalRequired(maxCommission float64, B float64, nStates uint32) float64 {
	return AccountValue(maxCommission, B, nStates, nil)
}
