// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lmsr

import "math"

// priceEpsilon absorbs floating-point noise when comparing a declared
// trade price against the computed quote (spec.md §4.3 "rejected if
// requested_price < computed_price_per_share - ε").
const priceEpsilon = 1e-9

// Quote is the result of pricing an incremental trade: the per-share
// price and the total cost of the whole delta.
type Quote struct {
	PricePerShare float64
	TotalCost     float64
}

// Cost evaluates the LMSR cost function C(q) = AccountValue(q) for the
// given share vector.
func Cost(maxCommission, B float64, nStates uint32, q []float64) float64 {
	return AccountValue(maxCommission, B, nStates, q)
}

// PriceTrade computes the quote for buying (or, if isBuy is false,
// selling) delta shares of state from the current share vector q.
// q is never mutated.
func PriceTrade(maxCommission, B float64, nStates uint32, q []float64, state uint32, delta float64, isBuy bool) Quote {
	qAfter := make([]float64, len(q))
	copy(qAfter, q)
	if isBuy {
		qAfter[state] += delta
	} else {
		qAfter[state] -= delta
	}

	costBefore := Cost(maxCommission, B, nStates, q)
	costAfter := Cost(maxCommission, B, nStates, qAfter)

	totalCost := costAfter - costBefore
	pricePerShare := totalCost / delta
	if !isBuy {
		pricePerShare = -pricePerShare
		totalCost = -totalCost
	}

	return Quote{PricePerShare: pricePerShare, TotalCost: totalCost}
}

// AcceptablePrice reports whether a declared trade price satisfies the
// computed quote: a buy must not declare a price below the quote, a
// sell must not declare a price above it.
func AcceptablePrice(quote Quote, declaredPrice float64, isBuy bool) bool {
	if isBuy {
		return declaredPrice >= quote.PricePerShare-priceEpsilon
	}
	return declaredPrice <= quote.PricePerShare+priceEpsilon
}

// Finite reports whether every component of q is neither NaN nor
// infinite, the invariant the LMSR engine must never violate
// (spec.md §8).
func Finite(q []float64) bool {
	for _, v := range q {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
