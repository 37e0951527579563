// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package outcome

import (
	"math"

	"github.com/hivemind-chain/marketchain/market"
)

// Params carries the free parameters of one tc_vote_proc run, matching
// the fields spec.md §4.4 lists on the Outcome record (Alpha/Tol; the
// record's NA field is always market.NASentinel and is not a parameter).
type Params struct {
	Alpha float64 // reputation smoothing weight, (0,1]
	Tol   float64 // binary decisions_final undecided-band tolerance
}

// Ballot is one voter's revealed row of the vote matrix together with
// their prior reputation weight.
type Ballot struct {
	VoterId Hash
	OldRep  float64
	Votes   []float64 // length D, market.NASentinel-decoded entries use NA
}

type Hash = market.Hash

const na = math.MaxFloat64 // internal NA marker distinct from any real vote value

// Process runs the reputation-weighted consensus pipeline (ported from
// tc_vote_proc in tc_mat.c) over one branch's revealed ballots for one
// set of decisions and returns every field Outcome needs.
//
// isScaled[j] selects, per decision column j, whether decisions_final is
// the decisions_raw weighted mean clipped to [min,max] (scaled decisions)
// or rounded to {0,1} with an NA undecided band (binary decisions).
// mins/maxs give the scaled decisions' clip bounds.
func Process(ballots []Ballot, isScaled []bool, mins, maxs []float64, params Params) Outcome {
	v := len(ballots)
	d := len(isScaled)

	oldRep := make([]float64, v)
	m := make([][]float64, v)
	for i, b := range ballots {
		oldRep[i] = b.OldRep
		row := make([]float64, d)
		for j := 0; j < d; j++ {
			row[j] = encodeNA(b.Votes[j])
		}
		m[i] = row
	}
	oldRep = normalizeAbs(oldRep)

	// Stage 1: NA imputation. Missing cells are replaced by the
	// reputation-weighted mean of the column's answered cells, for
	// scaled and binary decisions alike.
	filled := make([][]float64, v)
	for i := range filled {
		filled[i] = make([]float64, d)
		copy(filled[i], m[i])
	}
	naRow := make([]float64, v)
	naCol := make([]float64, d)
	for j := 0; j < d; j++ {
		col := make([]float64, v)
		for i := 0; i < v; i++ {
			col[i] = m[i][j]
		}

		// spec.md §4.4 stage 1 is explicit: every column (scaled or
		// binary) is imputed with the reputation-weighted mean, not
		// the original's median-for-scaled-columns variant.
		fillValue := weightedMean(oldRep, col, na)

		for i := 0; i < v; i++ {
			if col[i] == na {
				filled[i][j] = fillValue
				naRow[i]++
				naCol[j]++
			}
		}
	}

	particRow := make([]float64, v)
	for i := 0; i < v; i++ {
		particRow[i] = 1 - naRow[i]/float64(d)
	}
	particRel := normalizeAbs(particRow)

	// spec.md §4.4's explicit formula is a simple count fraction; the
	// original's reputation-weighted variant is not carried here since
	// it conflicts with spec.md's stated text for this field (spec.md
	// is the authority where it is explicit, not merely silent).
	particCol := make([]float64, d)
	for j := 0; j < d; j++ {
		particCol[j] = 1 - naCol[j]/float64(v)
	}

	// Stage 2/3: reputation-weighted first principal component of the
	// filled vote matrix, oriented against oldRep.
	firstLoading, scores := firstPrincipalComponent(oldRep, filled)

	// Stage 4: this-period reputation is the principal-component score
	// vector shifted/scaled so its min maps to 0 and its max to 1, then
	// renormalised to sum to one (spec.md §4.4 stage 4). A perfectly
	// consensual vote (scores all equal) has no spread to scale by and
	// falls back to the uniform distribution.
	thisRep := make([]float64, v)
	minScore, maxScore := scores[0], scores[0]
	for _, s := range scores {
		if s < minScore {
			minScore = s
		}
		if s > maxScore {
			maxScore = s
		}
	}
	if spread := maxScore - minScore; spread > 1e-12 {
		for i, s := range scores {
			thisRep[i] = (s - minScore) / spread
		}
	} else {
		for i := range thisRep {
			thisRep[i] = 1.0 / float64(v)
		}
	}
	thisRep = normalizeAbs(thisRep)

	// Stage 5: smoothed reputation blends this period's result with the
	// prior period's, spec.md §4.4: alpha*this_rep + (1-alpha)*old_rep.
	smoothedRep := make([]float64, v)
	for i := 0; i < v; i++ {
		smoothedRep[i] = params.Alpha*thisRep[i] + (1-params.Alpha)*oldRep[i]
	}
	smoothedRep = normalizeAbs(smoothedRep)

	// Stage 6: decisions_raw is the reputation-weighted column mean of
	// the filled matrix using the newly smoothed weights.
	decisionsRaw := make([]float64, d)
	for j := 0; j < d; j++ {
		col := make([]float64, v)
		for i := 0; i < v; i++ {
			col[i] = filled[i][j]
		}
		decisionsRaw[j] = weightedMean(smoothedRep, col, na)
	}

	// Stage 7: decisions_final. spec.md §4.4 stage 6 derives it from the
	// same decisions_raw weighted mean for every decision: scaled
	// decisions clip decisions_raw to [min,max]; binary decisions round
	// to 0/1 outside the tolerance band and mark NA inside it.
	decisionsFinal := make([]float64, d)
	for j := 0; j < d; j++ {
		raw := decisionsRaw[j]
		if isScaled[j] {
			decisionsFinal[j] = clip(raw, mins[j], maxs[j])
			continue
		}

		switch {
		case math.Abs(raw-0.5) < params.Tol:
			decisionsFinal[j] = na
		case raw >= 0.5:
			decisionsFinal[j] = 1
		default:
			decisionsFinal[j] = 0
		}
	}

	// Stage 8: certainty, spec.md §4.4's explicit raw-deviation formula
	// for binary decisions (the original's reputation-weighted
	// agreement-with-final fraction is not used here for the same
	// reason as particCol above); scaled decisions use distance from
	// the midpoint of [0,1] on the same footing.
	certainty := make([]float64, d)
	for j := 0; j < d; j++ {
		certainty[j] = 2 * math.Abs(decisionsRaw[j]-0.5)
	}

	// Stage 9: consensus_reward[d] = certainty[d] / Σ certainty (spec.md
	// §4.4 stage 7); row bonus rewards a voter's per-row agreement with
	// decisions_final weighted by their relative participation (stage 8).
	consensusReward := normalizeAbs(certainty)

	rowBonus := make([]float64, v)
	for i := 0; i < v; i++ {
		agree, total := 0.0, 0.0
		for j := 0; j < d; j++ {
			if decisionsFinal[j] == na {
				continue
			}
			total++
			diff := filled[i][j] - decisionsFinal[j]
			agree += 1 - math.Min(1, math.Abs(diff))
		}
		if total > 0 {
			rowBonus[i] = particRel[i] * (agree / total)
		}
	}
	rowBonus = normalizeAbs(rowBonus)

	authorBonus := make([]float64, d)
	for j := 0; j < d; j++ {
		authorBonus[j] = particCol[j] * consensusReward[j]
	}

	flat := make([]float64, 0, v*d)
	for i := 0; i < v; i++ {
		for j := 0; j < d; j++ {
			flat = append(flat, filled[i][j])
		}
	}

	return Outcome{
		OldRep:          oldRep,
		ThisRep:         thisRep,
		SmoothedRep:     smoothedRep,
		NARow:           naRow,
		ParticRow:       particRow,
		ParticRel:       particRel,
		RowBonus:        rowBonus,
		FirstLoading:    firstLoading,
		DecisionsRaw:    decisionsRaw,
		ConsensusReward: consensusReward,
		Certainty:       certainty,
		NACol:           naCol,
		ParticCol:       particCol,
		AuthorBonus:     authorBonus,
		DecisionsFinal:  naToSentinel(decisionsFinal),
		VoteMatrix:      flat,
	}
}

func clip(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func encodeNA(v float64) float64 {
	if v == float64(market.NASentinel) {
		return na
	}
	return v
}

func naToSentinel(vs []float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		if v == na {
			out[i] = float64(market.NASentinel)
			continue
		}
		out[i] = v
	}
	return out
}

// Outcome is the float64 working form of market.Outcome's computed
// fields, converted to fixed-point by Fixed once finalised.
type Outcome struct {
	OldRep          []float64
	ThisRep         []float64
	SmoothedRep     []float64
	NARow           []float64
	ParticRow       []float64
	ParticRel       []float64
	RowBonus        []float64
	FirstLoading    []float64
	DecisionsRaw    []float64
	ConsensusReward []float64
	Certainty       []float64
	NACol           []float64
	ParticCol       []float64
	AuthorBonus     []float64
	DecisionsFinal  []float64
	VoteMatrix      []float64
}

// ToFixed returns o unchanged. The 64-bit half-up fixed-point encoding
// the Outcome record carries is produced by Fixed.
func (o Outcome) ToFixed() Outcome {
	return o
}

// Fixed returns the fixed-point (market.ToFixed) encoding of every
// field, ready to assign onto a market.Outcome record.
func (o Outcome) Fixed() FixedOutcome {
	return FixedOutcome{
		OldRep:          market.ToFixedSlice(o.OldRep),
		ThisRep:         market.ToFixedSlice(o.ThisRep),
		SmoothedRep:     market.ToFixedSlice(o.SmoothedRep),
		NARow:           market.ToFixedSlice(o.NARow),
		ParticRow:       market.ToFixedSlice(o.ParticRow),
		ParticRel:       market.ToFixedSlice(o.ParticRel),
		RowBonus:        market.ToFixedSlice(o.RowBonus),
		FirstLoading:    market.ToFixedSlice(o.FirstLoading),
		DecisionsRaw:    market.ToFixedSlice(o.DecisionsRaw),
		ConsensusReward: market.ToFixedSlice(o.ConsensusReward),
		Certainty:       market.ToFixedSlice(o.Certainty),
		NACol:           market.ToFixedSlice(o.NACol),
		ParticCol:       market.ToFixedSlice(o.ParticCol),
		AuthorBonus:     market.ToFixedSlice(o.AuthorBonus),
		DecisionsFinal:  fixedWithSentinel(o.DecisionsFinal),
		VoteMatrix:      market.ToFixedSlice(o.VoteMatrix),
	}
}

func fixedWithSentinel(vs []float64) []int64 {
	out := make([]int64, len(vs))
	for i, v := range vs {
		if v == float64(market.NASentinel) {
			out[i] = market.NASentinel
			continue
		}
		out[i] = market.ToFixed(v)
	}
	return out
}

// FixedOutcome mirrors market.Outcome's computed int64 fields.
type FixedOutcome struct {
	OldRep          []int64
	ThisRep         []int64
	SmoothedRep     []int64
	NARow           []int64
	ParticRow       []int64
	ParticRel       []int64
	RowBonus        []int64
	FirstLoading    []int64
	DecisionsRaw    []int64
	ConsensusReward []int64
	Certainty       []int64
	NACol           []int64
	ParticCol       []int64
	AuthorBonus     []int64
	DecisionsFinal  []int64
	VoteMatrix      []int64
}
