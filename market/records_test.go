// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market_test

import (
	"bytes"
	"testing"

	"github.com/hivemind-chain/marketchain/market"
)

func mustHash(b byte) market.Hash {
	var h market.Hash
	for i := range h {
		h[i] = b
	}
	return h
}

func roundTrip(t *testing.T, r market.Record) market.Record {
	t.Helper()
	packed := r.Pack()
	decoded, err := market.Unpack(packed)
	if nil != err {
		t.Fatalf("unpack failed: %v", err)
	}
	if !bytes.Equal(packed, decoded.Pack()) {
		t.Fatalf("round trip mismatch for %s", market.RecordName(r))
	}
	if r.Hash() != decoded.Hash() {
		t.Fatalf("hash mismatch for %s", market.RecordName(r))
	}
	return decoded
}

func TestBranchRoundTrip(t *testing.T) {
	b := &market.Branch{
		Envelope:           market.Envelope{Height: 100},
		Name:               "test branch",
		Description:        "a branch for testing",
		BaseListingFee:     1000,
		FreeDecisions:      1,
		TargetDecisions:    5,
		MaxDecisions:       10,
		MinTradingFee:      10,
		Tau:                1000,
		BallotTime:         100,
		UnsealTime:         100,
		ConsensusThreshold: 50000000,
		Alpha:              10000000,
		Tol:                2000000,
	}
	decoded := roundTrip(t, b)
	got := decoded.(*market.Branch)
	if got.Name != b.Name || got.Tau != b.Tau {
		t.Fatalf("decoded branch mismatch: %+v", got)
	}
}

func TestDecisionRoundTrip(t *testing.T) {
	d := &market.Decision{
		Envelope:          market.Envelope{Height: 500},
		KeyId:             mustHash(1),
		BranchId:          mustHash(2),
		Prompt:            "will it rain?",
		EventOverBy:       500,
		IsScaled:          false,
		AnswerOptionality: true,
	}
	decoded := roundTrip(t, d)
	got := decoded.(*market.Decision)
	if got.Prompt != d.Prompt || got.EventOverBy != d.EventOverBy {
		t.Fatalf("decoded decision mismatch: %+v", got)
	}
}

func TestMarketRoundTrip(t *testing.T) {
	m := &market.Market{
		Envelope:            market.Envelope{Height: 600},
		KeyId:               mustHash(3),
		B:                   100000000,
		TradingFee:          100000,
		MaxCommission:       0,
		Title:               "will it rain market",
		Description:         "desc",
		Tags:                []string{"weather", "test"},
		Maturation:          10000,
		BranchId:            mustHash(2),
		DecisionIds:         []market.Hash{mustHash(4)},
		DecisionFunctionIds: []byte{byte(market.X1)},
		TxPoWHashId:         mustHash(5),
		TxPoWDifficulty:     0,
	}
	decoded := roundTrip(t, m)
	got := decoded.(*market.Market)
	if got.Title != m.Title || len(got.DecisionIds) != 1 || len(got.Tags) != 2 {
		t.Fatalf("decoded market mismatch: %+v", got)
	}
	if got.NumDecisions() != 1 {
		t.Fatalf("expected 1 decision, got %d", got.NumDecisions())
	}
}

func TestTradeRoundTrip(t *testing.T) {
	tr := &market.Trade{
		Envelope:      market.Envelope{Height: 700},
		KeyId:         mustHash(6),
		MarketId:      mustHash(3),
		IsBuy:         true,
		NShares:       100000000,
		Price:         69314718,
		DecisionState: 0,
		Nonce:         42,
	}
	decoded := roundTrip(t, tr)
	got := decoded.(*market.Trade)
	if got.NShares != tr.NShares || got.IsBuy != tr.IsBuy {
		t.Fatalf("decoded trade mismatch: %+v", got)
	}
	if got.SignedShares() != 1.0 {
		t.Fatalf("expected signed shares 1.0, got %v", got.SignedShares())
	}
}

func TestVoteRoundTrips(t *testing.T) {
	sv := &market.SealedVote{
		Envelope:   market.Envelope{Height: 1000},
		BranchId:   mustHash(2),
		VoteHeight: 1000,
		VoteId:     mustHash(7),
	}
	roundTrip(t, sv)

	rv := &market.RevealVote{
		Envelope:      market.Envelope{Height: 1000},
		BranchId:      mustHash(2),
		VoteHeight:    1000,
		VoteId:        mustHash(7),
		DecisionIds:   []market.Hash{mustHash(4)},
		DecisionVotes: []int64{100000000},
		NA:            market.NASentinel,
		KeyId:         mustHash(8),
	}
	decoded := roundTrip(t, rv)
	got := decoded.(*market.RevealVote)
	if len(got.DecisionVotes) != 1 || got.DecisionVotes[0] != 100000000 {
		t.Fatalf("decoded reveal vote mismatch: %+v", got)
	}

	lv := &market.StealVote{
		Envelope:   market.Envelope{Height: 1000},
		BranchId:   mustHash(2),
		VoteHeight: 1000,
		VoteId:     mustHash(7),
	}
	roundTrip(t, lv)
}

func TestOutcomeRoundTrip(t *testing.T) {
	o := &market.Outcome{
		Envelope:        market.Envelope{Height: 1001},
		BranchId:        mustHash(2),
		VoterIds:        []market.Hash{mustHash(8), mustHash(9)},
		OldRep:          []int64{50000000, 50000000},
		ThisRep:         []int64{50000000, 50000000},
		SmoothedRep:     []int64{50000000, 50000000},
		NARow:           []int64{0, 0},
		ParticRow:       []int64{100000000, 100000000},
		ParticRel:       []int64{100000000, 100000000},
		RowBonus:        []int64{50000000, 50000000},
		DecisionIds:     []market.Hash{mustHash(4)},
		IsScaled:        []bool{false},
		FirstLoading:    []int64{100000000},
		DecisionsRaw:    []int64{100000000},
		ConsensusReward: []int64{100000000},
		Certainty:       []int64{100000000},
		NACol:           []int64{0},
		ParticCol:       []int64{100000000},
		AuthorBonus:     []int64{100000000},
		DecisionsFinal:  []int64{100000000},
		VoteMatrix:      []int64{100000000, 100000000},
		NA:              market.NASentinel,
		Alpha:           10000000,
		Tol:             2000000,
		PayoutTx:        []byte{0xde, 0xad, 0xbe, 0xef},
	}
	decoded := roundTrip(t, o)
	got := decoded.(*market.Outcome)
	if len(got.VoterIds) != 2 || !bytes.Equal(got.PayoutTx, o.PayoutTx) {
		t.Fatalf("decoded outcome mismatch: %+v", got)
	}
}

func TestUnpackTruncated(t *testing.T) {
	b := &market.Branch{Envelope: market.Envelope{Height: 1}, Name: "x"}
	packed := b.Pack()
	for n := 0; n < len(packed); n++ {
		if _, err := market.Unpack(packed[:n]); nil == err {
			t.Fatalf("expected error decoding truncated input of length %d", n)
		}
	}
}

func TestUnpackInvalidTag(t *testing.T) {
	if _, err := market.Unpack(market.Packed{0xff}); nil == err {
		t.Fatal("expected error for invalid tag")
	}
}

func TestFixedPointRounding(t *testing.T) {
	cases := []struct {
		in   float64
		want int64
	}{
		{0.5, 50000000},
		{-0.5, -50000000},
		{1.0, 100000000},
		{0, 0},
	}
	for _, c := range cases {
		if got := market.ToFixed(c.in); got != c.want {
			t.Errorf("ToFixed(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}
