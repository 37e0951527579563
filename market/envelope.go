// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market

import "github.com/hivemind-chain/marketchain/fault"

// TagType identifies a record's family; it is the first byte of every
// canonical encoding and doubles as the record's primary-index prefix.
type TagType byte

const (
	BranchTag      = TagType('B')
	DecisionTag    = TagType('D')
	MarketTag      = TagType('M')
	TradeTag       = TagType('T')
	SealedVoteTag  = TagType('S')
	RevealVoteTag  = TagType('R')
	StealVoteTag   = TagType('L')
	OutcomeTag     = TagType('O')
)

// Packed is a canonically-encoded record.
type Packed []byte

// Record is the common interface every tagged record variant satisfies.
type Record interface {
	Tag() TagType
	Pack() Packed
	Hash() Hash
}

// Envelope carries the fields shared by every record variant: the
// transaction id that carried the record on-chain, and the block height
// at which it became active. The tag is not a field; each variant
// reports it through Tag(). Height is part of the canonical encoding,
// TxId is not (the Store keeps it beside the record bytes).
type Envelope struct {
	TxId   Hash   `json:"txId"`
	Height uint32 `json:"height"`
}

// Type reports the record family encoded at the start of buffer.
func (p Packed) Type() (TagType, error) {
	if len(p) < 1 {
		return 0, fault.ErrTruncatedRecord
	}
	return TagType(p[0]), nil
}

// Unpack dispatches on the leading tag byte and decodes the remainder of
// p into the corresponding concrete record type.
func Unpack(p Packed) (Record, error) {
	if len(p) < 1 {
		return nil, fault.ErrTruncatedRecord
	}
	tag := TagType(p[0])
	body := []byte(p[1:])

	switch tag {
	case BranchTag:
		return unpackBranch(body)
	case DecisionTag:
		return unpackDecision(body)
	case MarketTag:
		return unpackMarket(body)
	case TradeTag:
		return unpackTrade(body)
	case SealedVoteTag:
		return unpackSealedVote(body)
	case RevealVoteTag:
		return unpackRevealVote(body)
	case StealVoteTag:
		return unpackStealVote(body)
	case OutcomeTag:
		return unpackOutcome(body)
	default:
		return nil, fault.ErrInvalidTag
	}
}

// RecordName returns a human-readable name for a record value.
func RecordName(record Record) string {
	switch record.(type) {
	case *Branch:
		return "Branch"
	case *Decision:
		return "Decision"
	case *Market:
		return "Market"
	case *Trade:
		return "Trade"
	case *SealedVote:
		return "SealedVote"
	case *RevealVote:
		return "RevealVote"
	case *StealVote:
		return "StealVote"
	case *Outcome:
		return "Outcome"
	default:
		return "*unknown*"
	}
}
