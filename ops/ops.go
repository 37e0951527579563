// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ops exposes the operator-facing calls a node makes on behalf
// of its clients: build a record from request parameters, validate it
// against the object lifecycle rules, stage it into the Store and hand
// its opaque script to the chain's transaction broadcaster. Every
// CreateX call follows the same validate/pack/broadcast/commit shape
// bitmarkd's own issue/transfer command handlers use.
package ops

import (
	"github.com/mr-tron/base58"

	"github.com/hivemind-chain/marketchain/ballot"
	"github.com/hivemind-chain/marketchain/chainio"
	"github.com/hivemind-chain/marketchain/fault"
	"github.com/hivemind-chain/marketchain/lifecycle"
	"github.com/hivemind-chain/marketchain/lmsr"
	"github.com/hivemind-chain/marketchain/market"
	"github.com/hivemind-chain/marketchain/outcome"
	"github.com/hivemind-chain/marketchain/storage"
)

// Node bundles the external collaborators an operator call needs: a
// transaction broadcaster and the chain's current tip height. Callers
// construct one Node per connected chain backend.
type Node struct {
	Broadcaster chainio.TxBroadcaster
	Tip         chainio.TipHeight
}

// Display renders a record id the way operator tooling and logs show
// it: base58, matching the account-address encoding bitmarkd's own
// command layer uses for display.
func Display(id market.Hash) string {
	return base58.Encode(id[:])
}

// commit validates r, broadcasts its packed bytes, and only after the
// broadcast succeeds stages r (and its record-specific secondary
// indexes) into a fresh Store transaction and commits it — so a failed
// broadcast never leaves an orphaned Store entry.
func commit(node *Node, r market.Record) (market.Hash, error) {
	if err := lifecycle.Validate(r, node.Tip.Height()); nil != err {
		return market.Hash{}, err
	}

	txId, err := node.Broadcaster.Broadcast(r.Pack())
	if nil != err {
		return market.Hash{}, err
	}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		return market.Hash{}, err
	}

	if err := storage.StageRecord(trx, r, txId); nil != err {
		trx.Abort()
		return market.Hash{}, err
	}
	if err := trx.Commit(); nil != err {
		return market.Hash{}, err
	}

	return r.Hash(), nil
}

// CreateBranch registers a new prediction-market universe.
func CreateBranch(node *Node, b *market.Branch) (market.Hash, error) {
	b.Height = node.Tip.Height()
	return commit(node, b)
}

// CreateDecision registers a question under an existing branch.
func CreateDecision(node *Node, d *market.Decision) (market.Hash, error) {
	d.Height = node.Tip.Height()
	return commit(node, d)
}

// CreateMarket registers an LMSR combinatorial market over a set of
// decisions already registered under d.BranchId.
func CreateMarket(node *Node, m *market.Market) (market.Hash, error) {
	m.Height = node.Tip.Height()
	return commit(node, m)
}

// CreateTrade registers a signed share-delta against an existing
// market. lifecycle.Validate replays the market's trade history to
// confirm the declared price still meets the LMSR quote.
func CreateTrade(node *Node, t *market.Trade) (market.Hash, error) {
	t.Height = node.Tip.Height()
	return commit(node, t)
}

// CreateSealedVote commits to a not-yet-disclosed ballot for a branch's
// tau-aligned voting period.
func CreateSealedVote(node *Node, s *market.SealedVote) (market.Hash, error) {
	s.Height = node.Tip.Height()
	return commit(node, s)
}

// CreateRevealVote discloses the ballot behind a prior SealedVote.
func CreateRevealVote(node *Node, r *market.RevealVote) (market.Hash, error) {
	r.Height = node.Tip.Height()
	return commit(node, r)
}

// CreateStealVote lays claim to a sealed vote whose author never
// revealed it before the branch's unseal window closed.
func CreateStealVote(node *Node, s *market.StealVote) (market.Hash, error) {
	s.Height = node.Tip.Height()
	return commit(node, s)
}

// ProcessOutcome closes the voting period starting at the tau-aligned
// voteHeight: it collects the branch's decisions whose event falls in
// that period's ballot.Window, scans every RevealVote sealed against
// that period, runs the outcome engine over them, builds the payout
// transaction (market settlement, reputation mint/transfer, author/row
// bonus) and commits the resulting Outcome record — spec.md §2's "when
// a branch's voting window closes, the Outcome engine reads the
// branch, its decisions, and all reveal votes for the window" data
// flow.
func ProcessOutcome(node *Node, branchId market.Hash, voteHeight uint32) (market.Hash, error) {
	branch, err := GetBranch(branchId)
	if nil != err {
		return market.Hash{}, err
	}

	var allDecisions []*market.Decision
	if err := storage.ScanDecisionsByBranch(branchId).Map(func(_ []byte, value []byte) error {
		rec, err := market.Unpack(value[:len(value)-market.HashLength])
		if nil != err {
			return err
		}
		allDecisions = append(allDecisions, rec.(*market.Decision))
		return nil
	}); nil != err {
		return market.Hash{}, err
	}

	_, decisions := ballot.Select(branch.Tau, voteHeight+1, allDecisions)
	if 0 == len(decisions) {
		return market.Hash{}, fault.ErrEmptyVoteMatrix
	}

	decisionIds := make([]market.Hash, len(decisions))
	decisionIndex := make(map[market.Hash]int, len(decisions))
	isScaled := make([]bool, len(decisions))
	mins := make([]float64, len(decisions))
	maxs := make([]float64, len(decisions))
	for i, d := range decisions {
		id := d.Hash()
		decisionIds[i] = id
		decisionIndex[id] = i
		isScaled[i] = d.IsScaled
		mins[i] = market.FromFixed(d.Min)
		maxs[i] = market.FromFixed(d.Max)
	}

	priorRep := priorReputation(branchId)

	var ballots []outcome.Ballot
	var voterIds []market.Hash
	if err := storage.ScanRevealVotes(branchId, voteHeight).Map(func(_ []byte, value []byte) error {
		rec, err := market.Unpack(value[:len(value)-market.HashLength])
		if nil != err {
			return err
		}
		r := rec.(*market.RevealVote)

		votes := make([]float64, len(decisions))
		for i := range votes {
			votes[i] = float64(market.NASentinel)
		}
		for i, id := range r.DecisionIds {
			if col, ok := decisionIndex[id]; ok && i < len(r.DecisionVotes) {
				votes[col] = market.FromFixed(r.DecisionVotes[i])
			}
		}

		oldRep, ok := priorRep[r.KeyId]
		if !ok {
			oldRep = 1
		}

		voterIds = append(voterIds, r.KeyId)
		ballots = append(ballots, outcome.Ballot{VoterId: r.KeyId, OldRep: oldRep, Votes: votes})
		return nil
	}); nil != err {
		return market.Hash{}, err
	}
	if 0 == len(ballots) {
		return market.Hash{}, fault.ErrEmptyVoteMatrix
	}

	result := outcome.Process(ballots, isScaled, mins, maxs, outcome.Params{
		Alpha: market.FromFixed(branch.Alpha),
		Tol:   market.FromFixed(branch.Tol),
	})
	fixed := result.Fixed()

	ledger := buildPayoutLedger(decisions, decisionIds, voterIds, fixed)

	o := &market.Outcome{
		BranchId:        branchId,
		VoterIds:        voterIds,
		OldRep:          fixed.OldRep,
		ThisRep:         fixed.ThisRep,
		SmoothedRep:     fixed.SmoothedRep,
		NARow:           fixed.NARow,
		ParticRow:       fixed.ParticRow,
		ParticRel:       fixed.ParticRel,
		RowBonus:        fixed.RowBonus,
		DecisionIds:     decisionIds,
		IsScaled:        isScaled,
		FirstLoading:    fixed.FirstLoading,
		DecisionsRaw:    fixed.DecisionsRaw,
		ConsensusReward: fixed.ConsensusReward,
		Certainty:       fixed.Certainty,
		NACol:           fixed.NACol,
		ParticCol:       fixed.ParticCol,
		AuthorBonus:     fixed.AuthorBonus,
		DecisionsFinal:  fixed.DecisionsFinal,
		VoteMatrix:      fixed.VoteMatrix,
		NA:              market.NASentinel,
		Alpha:           branch.Alpha,
		Tol:             branch.Tol,
		PayoutTx:        ledger.Pack(),
	}
	o.Height = node.Tip.Height()

	return commit(node, o)
}

// priorReputation returns each voter's smoothed_rep from the most
// recent Outcome already recorded for branchId, the "old_rep" input
// the next period's outcome run starts from.
func priorReputation(branchId market.Hash) map[market.Hash]float64 {
	rep := map[market.Hash]float64{}
	haveOutcome := false
	var latestHeight uint32

	storage.ScanOutcomesByBranch(branchId).Map(func(_ []byte, value []byte) error {
		rec, err := market.Unpack(value[:len(value)-market.HashLength])
		if nil != err {
			return err
		}
		o := rec.(*market.Outcome)
		if haveOutcome && o.Height <= latestHeight {
			return nil
		}
		haveOutcome = true
		latestHeight = o.Height
		rep = make(map[market.Hash]float64, len(o.VoterIds))
		for i, id := range o.VoterIds {
			rep[id] = market.FromFixed(o.SmoothedRep[i])
		}
		return nil
	})
	return rep
}

// buildPayoutLedger assembles spec.md §4.4 stage 10's three output
// classes: market settlement under decisions_final (replaying every
// trade against every market the closed decisions fully resolve),
// smoothed_rep − old_rep reputation credits, and author/row bonus
// payouts.
func buildPayoutLedger(decisions []*market.Decision, decisionIds []market.Hash, voterIds []market.Hash, fixed outcome.FixedOutcome) *market.PayoutLedger {
	ledger := &market.PayoutLedger{}

	settlementAmount := map[market.Hash]int64{}
	var settlementOrder []market.Hash
	seenMarkets := map[market.Hash]bool{}

	for i, decisionId := range decisionIds {
		if fixed.DecisionsFinal[i] == market.NASentinel {
			continue
		}

		storage.ScanMarketsByDecision(decisionId).Map(func(_ []byte, value []byte) error {
			rec, err := market.Unpack(value[:len(value)-market.HashLength])
			if nil != err {
				return err
			}
			m := rec.(*market.Market)
			marketId := m.Hash()
			if seenMarkets[marketId] {
				return nil
			}
			seenMarkets[marketId] = true

			winningState, ok := resolveWinningState(m, decisions, decisionIds, fixed)
			if !ok {
				return nil
			}

			storage.ScanTradesByMarket(marketId).Map(func(_ []byte, tv []byte) error {
				trec, err := market.Unpack(tv[:len(tv)-market.HashLength])
				if nil != err {
					return err
				}
				t := trec.(*market.Trade)
				if t.DecisionState != winningState {
					return nil
				}

				shares := t.NShares
				if !t.IsBuy {
					shares = -shares
				}
				if _, seen := settlementAmount[t.KeyId]; !seen {
					settlementOrder = append(settlementOrder, t.KeyId)
				}
				settlementAmount[t.KeyId] += shares
				return nil
			})
			return nil
		})
	}

	for _, keyId := range settlementOrder {
		if amount := settlementAmount[keyId]; 0 != amount {
			ledger.Settlement = append(ledger.Settlement, market.PayoutEntry{KeyId: keyId, Amount: amount})
		}
	}

	for i, voterId := range voterIds {
		ledger.Reputation = append(ledger.Reputation, market.PayoutEntry{
			KeyId:  voterId,
			Amount: fixed.SmoothedRep[i] - fixed.OldRep[i],
		})
	}

	for i, decision := range decisions {
		if 0 != fixed.AuthorBonus[i] {
			ledger.Bonus = append(ledger.Bonus, market.PayoutEntry{KeyId: decision.KeyId, Amount: fixed.AuthorBonus[i]})
		}
	}
	for i, voterId := range voterIds {
		if 0 != fixed.RowBonus[i] {
			ledger.Bonus = append(ledger.Bonus, market.PayoutEntry{KeyId: voterId, Amount: fixed.RowBonus[i]})
		}
	}

	return ledger
}

// resolveWinningState computes m's settled decision-state bitmask from
// the closed period's decisions_final, applying each decision's
// DecisionFunction to map a finalised value onto the market's binary
// scoring dimension (spec.md §4.3's "decision function codes ... map a
// finalised decision value to the scoring dimension"). ok is false
// when m references a decision outside the closed period or one whose
// outcome came back NA — such markets settle in whichever period
// closes all of their decisions instead.
func resolveWinningState(m *market.Market, decisions []*market.Decision, decisionIds []market.Hash, fixed outcome.FixedOutcome) (uint64, bool) {
	index := make(map[market.Hash]int, len(decisionIds))
	for i, id := range decisionIds {
		index[id] = i
	}

	var state uint64
	for bit, decisionId := range m.DecisionIds {
		col, ok := index[decisionId]
		if !ok || fixed.DecisionsFinal[col] == market.NASentinel {
			return 0, false
		}

		d := decisions[col]
		final := float64(fixed.DecisionsFinal[col]) / market.FixedScale

		normalized := final
		if d.IsScaled {
			min, max := market.FromFixed(d.Min), market.FromFixed(d.Max)
			if rng := max - min; rng > 0 {
				normalized = (final - min) / rng
			}
		}

		fn := market.X1
		if bit < len(m.DecisionFunctionIds) {
			fn = market.DecisionFunction(m.DecisionFunctionIds[bit])
		}
		if fn.Apply(normalized) >= 0.5 {
			state |= 1 << uint(bit)
		}
	}
	return state, true
}

// GetBranch, GetDecision, GetMarket and GetTrade fetch a primary record
// by id, failing with the record family's specific not-found error
// rather than the generic fault.ErrRecordNotFound.
func GetBranch(id market.Hash) (*market.Branch, error) {
	r, _, ok, err := storage.GetRecord(market.BranchTag, id)
	if nil != err {
		return nil, err
	}
	if !ok {
		return nil, fault.ErrBranchNotFound
	}
	b, ok := r.(*market.Branch)
	if !ok {
		return nil, fault.ErrNotAMarketRecord
	}
	return b, nil
}

func GetDecision(id market.Hash) (*market.Decision, error) {
	r, _, ok, err := storage.GetRecord(market.DecisionTag, id)
	if nil != err {
		return nil, err
	}
	if !ok {
		return nil, fault.ErrDecisionNotFound
	}
	d, ok := r.(*market.Decision)
	if !ok {
		return nil, fault.ErrNotAMarketRecord
	}
	return d, nil
}

func GetMarket(id market.Hash) (*market.Market, error) {
	r, _, ok, err := storage.GetRecord(market.MarketTag, id)
	if nil != err {
		return nil, err
	}
	if !ok {
		return nil, fault.ErrMarketNotFound
	}
	m, ok := r.(*market.Market)
	if !ok {
		return nil, fault.ErrNotAMarketRecord
	}
	return m, nil
}

func GetTrade(id market.Hash) (*market.Trade, error) {
	r, _, ok, err := storage.GetRecord(market.TradeTag, id)
	if nil != err {
		return nil, err
	}
	if !ok {
		return nil, fault.ErrTradeNotFound
	}
	t, ok := r.(*market.Trade)
	if !ok {
		return nil, fault.ErrNotAMarketRecord
	}
	return t, nil
}

// GetCreateTradeCapitalRequired reports the sats an author must commit
// to fully back a new market before any trade has been placed, the
// figure operator tooling quotes at market-creation time.
func GetCreateTradeCapitalRequired(maxCommission int64, b int64, numDecisions int) int64 {
	nStates := lmsr.NStates(numDecisions)
	required := lmsr.CapitalRequired(market.FromFixed(maxCommission), market.FromFixed(b), nStates)
	return market.ToFixed(required)
}
