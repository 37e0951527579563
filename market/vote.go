// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import "fmt"

// NASentinel is the fixed-point value meaning "voter did not answer" in a
// RevealVote's DecisionVotes.
const NASentinel = int64(-1 << 63)

// SealedVote is the commit phase of voting: a voter publishes an opaque
// vote id for a branch's tau-aligned period without revealing contents.
type SealedVote struct {
	Envelope
	BranchId   Hash   `json:"branchId"`
	VoteHeight uint32 `json:"height"` // tau-aligned period height
	VoteId     Hash   `json:"voteId"`
}

func (s *SealedVote) Tag() TagType { return SealedVoteTag }

func (s *SealedVote) Pack() Packed {
	buf := []byte{byte(SealedVoteTag)}
	buf = appendUint32(buf, s.Height)
	buf = appendHash(buf, s.BranchId)
	buf = appendUint32(buf, s.VoteHeight)
	buf = appendHash(buf, s.VoteId)
	return buf
}

func (s *SealedVote) Hash() Hash { return NewHash(s.Pack()) }

func unpackSealedVote(body []byte) (*SealedVote, error) {
	s := &SealedVote{}
	var err error
	cursor := 0

	if s.Height, err = readUint32(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 4

	if s.BranchId, err = readHash(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += HashLength

	if s.VoteHeight, err = readUint32(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 4

	if s.VoteId, err = readHash(body[cursor:]); nil != err {
		return nil, err
	}

	return s, nil
}

func (s *SealedVote) String() string {
	return fmt.Sprintf("SealedVote{branch:%s height:%d}", s.BranchId, s.VoteHeight)
}

// RevealVote discloses a voter's per-decision vote values, referencing a
// prior SealedVote by VoteId.
type RevealVote struct {
	Envelope
	BranchId      Hash    `json:"branchId"`
	VoteHeight    uint32  `json:"height"`
	VoteId        Hash    `json:"voteId"`
	DecisionIds   []Hash  `json:"decisionIds"`
	DecisionVotes []int64 `json:"decisionVotes"` // fixed-point; NASentinel means "did not answer"
	NA            int64   `json:"na"`            // sentinel value in use for this reveal
	KeyId         Hash    `json:"keyId"`         // voter identifier
}

func (r *RevealVote) Tag() TagType { return RevealVoteTag }

func (r *RevealVote) Pack() Packed {
	buf := []byte{byte(RevealVoteTag)}
	buf = appendUint32(buf, r.Height)
	buf = appendHash(buf, r.BranchId)
	buf = appendUint32(buf, r.VoteHeight)
	buf = appendHash(buf, r.VoteId)
	buf = appendHashes(buf, r.DecisionIds)
	buf = appendInt64s(buf, r.DecisionVotes)
	buf = appendInt64(buf, r.NA)
	buf = appendHash(buf, r.KeyId)
	return buf
}

func (r *RevealVote) Hash() Hash { return NewHash(r.Pack()) }

func unpackRevealVote(body []byte) (*RevealVote, error) {
	r := &RevealVote{}
	var err error
	var n int
	cursor := 0

	if r.Height, err = readUint32(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 4

	if r.BranchId, err = readHash(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += HashLength

	if r.VoteHeight, err = readUint32(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 4

	if r.VoteId, err = readHash(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += HashLength

	if r.DecisionIds, n, err = readHashes(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += n

	if r.DecisionVotes, n, err = readInt64s(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += n

	if r.NA, err = readInt64(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 8

	if r.KeyId, err = readHash(body[cursor:]); nil != err {
		return nil, err
	}

	return r, nil
}

func (r *RevealVote) String() string {
	return fmt.Sprintf("RevealVote{branch:%s voter:%s decisions:%d}", r.BranchId, r.KeyId, len(r.DecisionIds))
}

// StealVote supersedes a prior RevealVote, naming the SealedVote it
// replaces by VoteId.
type StealVote struct {
	Envelope
	BranchId   Hash   `json:"branchId"`
	VoteHeight uint32 `json:"height"`
	VoteId     Hash   `json:"voteId"`
}

func (s *StealVote) Tag() TagType { return StealVoteTag }

func (s *StealVote) Pack() Packed {
	buf := []byte{byte(StealVoteTag)}
	buf = appendUint32(buf, s.Height)
	buf = appendHash(buf, s.BranchId)
	buf = appendUint32(buf, s.VoteHeight)
	buf = appendHash(buf, s.VoteId)
	return buf
}

func (s *StealVote) Hash() Hash { return NewHash(s.Pack()) }

func unpackStealVote(body []byte) (*StealVote, error) {
	s := &StealVote{}
	var err error
	cursor := 0

	if s.Height, err = readUint32(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 4

	if s.BranchId, err = readHash(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += HashLength

	if s.VoteHeight, err = readUint32(body[cursor:]); nil != err {
		return nil, err
	}
	cursor += 4

	if s.VoteId, err = readHash(body[cursor:]); nil != err {
		return nil, err
	}

	return s, nil
}

func (s *StealVote) String() string {
	return fmt.Sprintf("StealVote{branch:%s height:%d}", s.BranchId, s.VoteHeight)
}
