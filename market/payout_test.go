// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package market_test

import (
	"testing"

	"github.com/hivemind-chain/marketchain/market"
)

func TestPayoutLedgerRoundTrip(t *testing.T) {
	ledger := &market.PayoutLedger{
		Settlement: []market.PayoutEntry{{KeyId: mustHash(1), Amount: 100000000}},
		Reputation: []market.PayoutEntry{{KeyId: mustHash(2), Amount: -2500000}},
		Bonus: []market.PayoutEntry{
			{KeyId: mustHash(3), Amount: 5000000},
			{KeyId: mustHash(4), Amount: 7500000},
		},
	}

	decoded, err := market.UnpackPayoutLedger(ledger.Pack())
	if nil != err {
		t.Fatalf("unpack failed: %v", err)
	}

	if len(decoded.Settlement) != 1 || decoded.Settlement[0] != ledger.Settlement[0] {
		t.Fatalf("settlement mismatch: %+v", decoded.Settlement)
	}
	if len(decoded.Reputation) != 1 || decoded.Reputation[0] != ledger.Reputation[0] {
		t.Fatalf("reputation mismatch: %+v", decoded.Reputation)
	}
	if len(decoded.Bonus) != 2 || decoded.Bonus[0] != ledger.Bonus[0] || decoded.Bonus[1] != ledger.Bonus[1] {
		t.Fatalf("bonus mismatch: %+v", decoded.Bonus)
	}
}

func TestPayoutLedgerEmpty(t *testing.T) {
	ledger := &market.PayoutLedger{}
	decoded, err := market.UnpackPayoutLedger(ledger.Pack())
	if nil != err {
		t.Fatalf("unpack failed: %v", err)
	}
	if 0 != len(decoded.Settlement) || 0 != len(decoded.Reputation) || 0 != len(decoded.Bonus) {
		t.Fatalf("expected empty ledger, got %+v", decoded)
	}
}
