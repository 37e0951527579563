// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package outcome_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hivemind-chain/marketchain/market"
	"github.com/hivemind-chain/marketchain/outcome"
)

func naFill(oldRep float64, votes ...float64) outcome.Ballot {
	return outcome.Ballot{OldRep: oldRep, Votes: votes}
}

// TestUnanimousVoters is spec.md §8 scenario 3.
func TestUnanimousVoters(t *testing.T) {
	ballots := []outcome.Ballot{
		naFill(1.0/3, 1, 1),
		naFill(1.0/3, 1, 1),
		naFill(1.0/3, 1, 1),
	}
	isScaled := []bool{false, false}

	result := outcome.Process(ballots, isScaled, nil, nil, outcome.Params{Alpha: 0.1, Tol: 0.02})

	assert.InDeltaSlice(t, []float64{1, 1}, result.DecisionsFinal, 1e-9)
	assert.InDeltaSlice(t, result.OldRep, result.SmoothedRep, 1e-9)
	assert.InDeltaSlice(t, []float64{1.0, 1.0}, result.Certainty, 1e-9)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, result.ConsensusReward, 1e-9)
}

// TestOneDissenter is spec.md §8 scenario 4.
func TestOneDissenter(t *testing.T) {
	ballots := []outcome.Ballot{
		naFill(0.5, 1),
		naFill(0.25, 1),
		naFill(0.25, 0),
	}
	isScaled := []bool{false}

	result := outcome.Process(ballots, isScaled, nil, nil, outcome.Params{Alpha: 0, Tol: 0.02})

	assert.InDeltaSlice(t, []float64{0.75}, result.DecisionsRaw, 1e-9)
	assert.InDeltaSlice(t, []float64{1}, result.DecisionsFinal, 1e-9)
	assert.Less(t, result.ThisRep[2], 1.0/3)
	assert.Less(t, result.RowBonus[2], result.RowBonus[0])
	assert.Less(t, result.RowBonus[2], result.RowBonus[1])
}

// TestReputationConservation checks spec.md §8's universal invariant:
// sum(smoothed_rep) == sum(old_rep) up to rounding.
func TestReputationConservation(t *testing.T) {
	ballots := []outcome.Ballot{
		naFill(0.4, 1, 0),
		naFill(0.35, 0, 0),
		naFill(0.25, 1, 1),
	}
	isScaled := []bool{false, false}

	result := outcome.Process(ballots, isScaled, nil, nil, outcome.Params{Alpha: 0.3, Tol: 0.02})

	sumOld, sumSmoothed := 0.0, 0.0
	for i := range result.OldRep {
		sumOld += result.OldRep[i]
		sumSmoothed += result.SmoothedRep[i]
	}
	assert.InDelta(t, sumOld, sumSmoothed, 1e-9)
}

// TestNAImputationAndScaledDecision exercises a scaled decision with one
// voter abstaining, checking the matrix is imputed and decisions_final
// lands within [min,max].
func TestNAImputationAndScaledDecision(t *testing.T) {
	naValue := float64(market.NASentinel)
	ballots := []outcome.Ballot{
		naFill(1.0/3, 0.2),
		naFill(1.0/3, 0.8),
		naFill(1.0/3, naValue),
	}

	isScaled := []bool{true}
	mins := []float64{0}
	maxs := []float64{100}

	result := outcome.Process(ballots, isScaled, mins, maxs, outcome.Params{Alpha: 0.1, Tol: 0.02})

	assert.GreaterOrEqual(t, result.DecisionsFinal[0], mins[0])
	assert.LessOrEqual(t, result.DecisionsFinal[0], maxs[0])
}
