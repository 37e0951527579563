// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package lifecycle validates newly-received records before Store
// admission (spec.md §4.5). A record that fails validation is dropped;
// the carrier transaction is still accepted, but no primary or
// secondary key is written for it.
package lifecycle

import (
	"github.com/bitmark-inc/logger"

	"github.com/hivemind-chain/marketchain/fault"
	"github.com/hivemind-chain/marketchain/lmsr"
	"github.com/hivemind-chain/marketchain/market"
	"github.com/hivemind-chain/marketchain/storage"
)

var log *logger.L

// Initialise attaches the package logger, following the teacher's
// per-package logger-channel convention.
func Initialise() {
	log = logger.New("lifecycle")
}

// Validate dispatches to the per-variant admission check and logs a
// drop (rather than returning raw validation noise to the block
// processor) on failure.
func Validate(r market.Record, tipHeight uint32) error {
	var err error
	switch rec := r.(type) {
	case *market.Branch:
		err = validateBranch(rec)
	case *market.Decision:
		err = validateDecision(rec)
	case *market.Market:
		err = validateMarket(rec)
	case *market.Trade:
		err = validateTrade(rec)
	case *market.SealedVote:
		err = validateSealedVote(rec)
	case *market.RevealVote:
		err = validateRevealVote(rec)
	case *market.StealVote:
		err = validateStealVote(rec)
	case *market.Outcome:
		err = validateHeight(rec.Height, tipHeight)
	default:
		err = fault.ErrNotAMarketRecord
	}

	if nil != err {
		if nil != log {
			log.Debugf("dropping %c record: %s", byte(r.Tag()), err)
		}
		return err
	}
	return nil
}

func validateHeight(height, tipHeight uint32) error {
	if height > tipHeight {
		return fault.ErrInvalidBranchParams
	}
	return nil
}

func validateBranch(b *market.Branch) error {
	if 0 == b.TargetDecisions || b.TargetDecisions > b.MaxDecisions {
		return fault.ErrInvalidBranchParams
	}
	if 0 == b.Tau {
		return fault.ErrInvalidBranchParams
	}
	if uint64(b.BallotTime)+uint64(b.UnsealTime) >= uint64(b.Tau) {
		return fault.ErrInvalidBranchParams
	}
	return nil
}

func validateDecision(d *market.Decision) error {
	if !storage.Exists(market.BranchTag, d.BranchId) {
		return fault.ErrBranchNotFound
	}
	if d.IsScaled && d.Min >= d.Max {
		return fault.ErrInvalidDecisionRange
	}
	return nil
}

func validateMarket(m *market.Market) error {
	if !storage.Exists(market.BranchTag, m.BranchId) {
		return fault.ErrBranchNotFound
	}
	for i, decisionId := range m.DecisionIds {
		rec, _, ok, err := storage.GetRecord(market.DecisionTag, decisionId)
		if nil != err {
			return err
		}
		if !ok {
			return fault.ErrDecisionNotFound
		}
		decision := rec.(*market.Decision)
		if decision.BranchId != m.BranchId {
			return fault.ErrDecisionNotFound
		}
		if i < len(m.DecisionFunctionIds) && !market.ValidFunctionId(m.DecisionFunctionIds[i]) {
			return fault.ErrInvalidDecisionFnID
		}
	}
	return nil
}

func validateTrade(t *market.Trade) error {
	rec, _, ok, err := storage.GetRecord(market.MarketTag, t.MarketId)
	if nil != err {
		return err
	}
	if !ok {
		return fault.ErrMarketNotFound
	}
	m := rec.(*market.Market)

	nStates := lmsr.NStates(m.NumDecisions())
	if t.DecisionState >= uint64(nStates) {
		return fault.ErrInvalidDecisionState
	}
	if t.NShares <= 0 {
		return fault.ErrNonPositiveShares
	}
	if t.Price <= 0 {
		return fault.ErrNonPositivePrice
	}

	if t.IsBuy {
		q, err := shareVector(t.MarketId, nStates)
		if nil != err {
			return err
		}
		quote := lmsr.PriceTrade(
			market.FromFixed(m.MaxCommission), market.FromFixed(m.B), nStates,
			q, uint32(t.DecisionState), float64(t.NShares)/market.FixedScale, true,
		)
		if !lmsr.AcceptablePrice(quote, market.FromFixed(t.Price)/(float64(t.NShares)/market.FixedScale), true) {
			return fault.ErrPriceBelowQuote
		}
	}
	return nil
}

// shareVector replays every trade already recorded against marketId in
// scan order, rebuilt from scratch per spec.md §5 ("no cached mutable
// state crosses requests").
func shareVector(marketId market.Hash, nStates uint32) ([]float64, error) {
	var trades []*market.Trade
	err := storage.ScanTradesByMarket(marketId).Map(func(_ []byte, value []byte) error {
		rec, err := market.Unpack(value[:len(value)-market.HashLength])
		if nil != err {
			return err
		}
		trades = append(trades, rec.(*market.Trade))
		return nil
	})
	if nil != err {
		return nil, err
	}
	return lmsr.NShares(trades, nStates), nil
}

func validateSealedVote(s *market.SealedVote) error {
	branch, err := getBranch(s.BranchId)
	if nil != err {
		return err
	}
	if s.VoteHeight%branch.Tau != 0 {
		return fault.ErrTauMisaligned
	}
	return nil
}

func validateRevealVote(r *market.RevealVote) error {
	branch, err := getBranch(r.BranchId)
	if nil != err {
		return err
	}
	if r.VoteHeight%branch.Tau != 0 {
		return fault.ErrTauMisaligned
	}
	if !hasSealed(r.BranchId, r.VoteHeight, r.VoteId) {
		return fault.ErrRevealWithoutSeal
	}
	return nil
}

func validateStealVote(s *market.StealVote) error {
	branch, err := getBranch(s.BranchId)
	if nil != err {
		return err
	}
	if s.VoteHeight%branch.Tau != 0 {
		return fault.ErrTauMisaligned
	}
	if !hasSealed(s.BranchId, s.VoteHeight, s.VoteId) {
		return fault.ErrStealWithoutSeal
	}
	return nil
}

func getBranch(branchId market.Hash) (*market.Branch, error) {
	rec, _, ok, err := storage.GetRecord(market.BranchTag, branchId)
	if nil != err {
		return nil, err
	}
	if !ok {
		return nil, fault.ErrBranchNotFound
	}
	return rec.(*market.Branch), nil
}

func hasSealed(branchId market.Hash, height uint32, voteId market.Hash) bool {
	found := false
	storage.ScanSealedVotes(branchId, height).Map(func(_ []byte, value []byte) error {
		rec, err := market.Unpack(value[:len(value)-market.HashLength])
		if nil == err && rec.(*market.SealedVote).VoteId == voteId {
			found = true
		}
		return nil
	})
	return found
}
