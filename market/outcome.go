// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import "fmt"

// Outcome is the consensus artefact summarising one closed voting period
// and triggering payouts. Produced exactly once per (BranchId, tau
// period). Every computed scalar is carried as 64-bit fixed-point
// (value * 1e8, half-up rounded) per spec.md §4.4.
type Outcome struct {
	Envelope
	BranchId Hash   `json:"branchId"`
	VoterIds []Hash `json:"voterIds"`
	OldRep   []int64 `json:"oldRep"`

	ThisRep     []int64 `json:"thisRep"`
	SmoothedRep []int64 `json:"smoothedRep"`
	NARow       []int64 `json:"naRow"`
	ParticRow   []int64 `json:"particRow"`
	ParticRel   []int64 `json:"particRel"`
	RowBonus    []int64 `json:"rowBonus"`

	DecisionIds      []Hash  `json:"decisionIds"`
	IsScaled         []bool  `json:"isScaled"`
	FirstLoading     []int64 `json:"firstLoading"`
	DecisionsRaw     []int64 `json:"decisionsRaw"`
	ConsensusReward  []int64 `json:"consensusReward"`
	Certainty        []int64 `json:"certainty"`
	NACol            []int64 `json:"naCol"`
	ParticCol        []int64 `json:"particCol"`
	AuthorBonus      []int64 `json:"authorBonus"`
	DecisionsFinal   []int64 `json:"decisionsFinal"`

	VoteMatrix []int64 `json:"voteMatrix"` // flattened V*D, row-major
	NA         int64   `json:"na"`
	Alpha      int64   `json:"alpha"`
	Tol        int64   `json:"tol"`
	PayoutTx   []byte  `json:"payoutTx"`
}

func (o *Outcome) Tag() TagType { return OutcomeTag }

func (o *Outcome) Pack() Packed {
	buf := []byte{byte(OutcomeTag)}
	buf = appendUint32(buf, o.Height)
	buf = appendHash(buf, o.BranchId)
	buf = appendHashes(buf, o.VoterIds)
	buf = appendInt64s(buf, o.OldRep)

	buf = appendInt64s(buf, o.ThisRep)
	buf = appendInt64s(buf, o.SmoothedRep)
	buf = appendInt64s(buf, o.NARow)
	buf = appendInt64s(buf, o.ParticRow)
	buf = appendInt64s(buf, o.ParticRel)
	buf = appendInt64s(buf, o.RowBonus)

	buf = appendHashes(buf, o.DecisionIds)
	buf = appendCompactSize(buf, uint64(len(o.IsScaled)))
	for _, v := range o.IsScaled {
		buf = appendBool(buf, v)
	}
	buf = appendInt64s(buf, o.FirstLoading)
	buf = appendInt64s(buf, o.DecisionsRaw)
	buf = appendInt64s(buf, o.ConsensusReward)
	buf = appendInt64s(buf, o.Certainty)
	buf = appendInt64s(buf, o.NACol)
	buf = appendInt64s(buf, o.ParticCol)
	buf = appendInt64s(buf, o.AuthorBonus)
	buf = appendInt64s(buf, o.DecisionsFinal)

	buf = appendInt64s(buf, o.VoteMatrix)
	buf = appendInt64(buf, o.NA)
	buf = appendInt64(buf, o.Alpha)
	buf = appendInt64(buf, o.Tol)
	buf = appendBytes(buf, o.PayoutTx)
	return buf
}

func (o *Outcome) Hash() Hash { return NewHash(o.Pack()) }

func unpackOutcome(body []byte) (*Outcome, error) {
	o := &Outcome{}
	var err error
	var n int
	cursor := 0

	if o.Height, err = readUint32(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 4

	if o.BranchId, err = readHash(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += HashLength

	if o.VoterIds, n, err = readHashes(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += n

	if o.OldRep, n, err = readInt64s(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += n

	for _, slot := range []*[]int64{&o.ThisRep, &o.SmoothedRep, &o.NARow, &o.ParticRow, &o.ParticRel, &o.RowBonus} {
		if *slot, n, err = readInt64s(body[cursor:]); nil != err {
			return nil, err
		}
		cursor += n
	}

	if o.DecisionIds, n, err = readHashes(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += n

	scaledCount, n, err := readCompactSize(body[cursor:])
	if nil != err {
		return nil, err
	}
	cursor += n
	o.IsScaled = make([]bool, scaledCount)
	for i := range o.IsScaled {
		if o.IsScaled[i], err = readBool(body[cursor:]); nil != err {
			return nil, err
		}
		cursor += 1
	}

	for _, slot := range []*[]int64{
		&o.FirstLoading, &o.DecisionsRaw, &o.ConsensusReward, &o.Certainty,
		&o.NACol, &o.ParticCol, &o.AuthorBonus, &o.DecisionsFinal,
	} {
		if *slot, n, err = readInt64s(body[cursor:]); nil != err {
			return nil, err
		}
		cursor += n
	}

	if o.VoteMatrix, n, err = readInt64s(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += n

	if o.NA, err = readInt64(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 8

	if o.Alpha, err = readInt64(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 8

	if o.Tol, err = readInt64(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 8

	if o.PayoutTx, _, err = readBytes(body[cursor:]); nil != err {
		return nil, err
	}

	return o, nil
}

func (o *Outcome) String() string {
	return fmt.Sprintf("Outcome{branch:%s voters:%d decisions:%d}", o.BranchId, len(o.VoterIds), len(o.DecisionIds))
}
