// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/hivemind-chain/marketchain/fault"
	"github.com/hivemind-chain/marketchain/market"
)

// StageRecord writes a record's primary key plus every secondary-index
// key its variant requires, all staged against trx so a later Commit
// lands them atomically (spec.md §4.2). Primary-key collisions are
// rejected with fault.ErrDuplicateRecord before anything is staged.
func StageRecord(trx Transaction, r market.Record, carrierTxId market.Hash) error {
	id := r.Hash()
	value := append(append([]byte{}, r.Pack()...), carrierTxId[:]...)

	primary := primaryPool(r.Tag())
	if nil == primary {
		return fault.ErrNotAMarketRecord
	}
	if err := trx.CreateNew(primary, id[:], value); nil != err {
		return err
	}

	switch rec := r.(type) {
	case *market.Decision:
		trx.Put(Pool.DecisionsByBranch, concatKeys(rec.BranchId[:], id[:]), value)

	case *market.Market:
		for _, decisionId := range rec.DecisionIds {
			trx.Put(Pool.MarketsByDecision, concatKeys(decisionId[:], id[:]), value)
		}

	case *market.Trade:
		trx.Put(Pool.TradesByMarket, concatKeys(rec.MarketId[:], id[:]), value)

	case *market.Outcome:
		trx.Put(Pool.OutcomesByBranch, concatKeys(rec.BranchId[:], id[:]), value)

	case *market.SealedVote:
		trx.Put(Pool.SealedByBranch, voteIndexKey(rec.BranchId, rec.VoteHeight, id), value)

	case *market.RevealVote:
		trx.Put(Pool.RevealByBranch, voteIndexKey(rec.BranchId, rec.VoteHeight, id), value)

	case *market.StealVote:
		trx.Put(Pool.StealByBranch, voteIndexKey(rec.BranchId, rec.VoteHeight, id), value)

	case *market.Branch:
		// no secondary index: a Branch is discovered only by id.
	}

	return nil
}

func concatKeys(parts ...[]byte) []byte {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	key := make([]byte, 0, total)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

func voteIndexKey(branchId market.Hash, height uint32, voteId market.Hash) []byte {
	h := make([]byte, 4)
	binary.LittleEndian.PutUint32(h, height)
	return concatKeys(branchId[:], h, voteId[:])
}

func primaryPool(tag market.TagType) *PoolHandle {
	switch tag {
	case market.BranchTag:
		return Pool.Branches
	case market.DecisionTag:
		return Pool.Decisions
	case market.MarketTag:
		return Pool.Markets
	case market.TradeTag:
		return Pool.Trades
	case market.SealedVoteTag:
		return Pool.SealedVotes
	case market.RevealVoteTag:
		return Pool.RevealVotes
	case market.StealVoteTag:
		return Pool.StealVotes
	case market.OutcomeTag:
		return Pool.Outcomes
	default:
		return nil
	}
}

// GetRecord reads a primary record by tag and id, decoding its stored
// bytes via the Codec. Returns ok=false if the id is absent.
func GetRecord(tag market.TagType, id market.Hash) (record market.Record, carrierTxId market.Hash, ok bool, err error) {
	pool := primaryPool(tag)
	if nil == pool {
		return nil, market.Hash{}, false, fault.ErrNotAMarketRecord
	}

	stored := pool.Get(id[:])
	if nil == stored {
		return nil, market.Hash{}, false, nil
	}
	if len(stored) < market.HashLength {
		return nil, market.Hash{}, false, fault.ErrStoreCorruption
	}

	recordBytes := stored[:len(stored)-market.HashLength]
	copy(carrierTxId[:], stored[len(stored)-market.HashLength:])

	record, err = market.Unpack(recordBytes)
	if nil != err {
		return nil, market.Hash{}, false, err
	}
	return record, carrierTxId, true, nil
}

// Exists reports whether a primary key is already present.
func Exists(tag market.TagType, id market.Hash) bool {
	pool := primaryPool(tag)
	if nil == pool {
		return false
	}
	return pool.Has(id[:])
}

// ScanDecisionsByBranch returns a cursor over every Decision recorded
// under branchId, in ascending decision_id order.
func ScanDecisionsByBranch(branchId market.Hash) *FetchCursor {
	return Pool.DecisionsByBranch.NewFetchCursor().Seek(branchId[:])
}

// ScanMarketsByDecision returns a cursor over every Market listing
// decisionId, in ascending market_id order.
func ScanMarketsByDecision(decisionId market.Hash) *FetchCursor {
	return Pool.MarketsByDecision.NewFetchCursor().Seek(decisionId[:])
}

// ScanTradesByMarket returns a cursor over every Trade against
// marketId, in ascending trade_id (content hash) order — spec.md §8's
// required trade replay order.
func ScanTradesByMarket(marketId market.Hash) *FetchCursor {
	return Pool.TradesByMarket.NewFetchCursor().Seek(marketId[:])
}

// ScanOutcomesByBranch returns a cursor over every Outcome produced for
// branchId.
func ScanOutcomesByBranch(branchId market.Hash) *FetchCursor {
	return Pool.OutcomesByBranch.NewFetchCursor().Seek(branchId[:])
}

// ScanSealedVotes, ScanRevealVotes and ScanStealVotes each return a
// cursor over one vote-index family for a (branch, tau height) window
// (spec.md §4.4's "three vote-index families yield independent
// streams").
func ScanSealedVotes(branchId market.Hash, height uint32) *FetchCursor {
	return Pool.SealedByBranch.NewFetchCursor().Seek(voteSeekPrefix(branchId, height))
}

func ScanRevealVotes(branchId market.Hash, height uint32) *FetchCursor {
	return Pool.RevealByBranch.NewFetchCursor().Seek(voteSeekPrefix(branchId, height))
}

func ScanStealVotes(branchId market.Hash, height uint32) *FetchCursor {
	return Pool.StealByBranch.NewFetchCursor().Seek(voteSeekPrefix(branchId, height))
}

func voteSeekPrefix(branchId market.Hash, height uint32) []byte {
	h := make([]byte, 4)
	binary.LittleEndian.PutUint32(h, height)
	return concatKeys(branchId[:], h)
}
