// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"os"
	"testing"

	"github.com/hivemind-chain/marketchain/fault"
	"github.com/hivemind-chain/marketchain/market"
	"github.com/hivemind-chain/marketchain/storage"
)

func setupStore(t *testing.T) func() {
	t.Helper()
	dir, err := os.MkdirTemp("", "marketchain-storage-test")
	if nil != err {
		t.Fatalf("mkdir temp: %v", err)
	}
	if err := storage.Initialise(dir+"/test.leveldb", storage.ReadWrite); nil != err {
		t.Fatalf("initialise: %v", err)
	}
	return func() {
		storage.Finalise()
		os.RemoveAll(dir)
	}
}

func idOf(b byte) market.Hash {
	var h market.Hash
	for i := range h {
		h[i] = b
	}
	return h
}

func stageAndCommit(t *testing.T, r market.Record, carrier market.Hash) error {
	t.Helper()
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("begin: %v", err)
	}
	if err := storage.StageRecord(trx, r, carrier); nil != err {
		trx.Abort()
		return err
	}
	return trx.Commit()
}

func TestPutAndGetBranch(t *testing.T) {
	teardown := setupStore(t)
	defer teardown()

	branch := &market.Branch{
		Envelope: market.Envelope{Height: 10},
		Name:     "weather",
		Tau:      1000,
	}
	carrier := idOf(0xaa)

	if err := stageAndCommit(t, branch, carrier); nil != err {
		t.Fatalf("stage branch: %v", err)
	}

	record, gotCarrier, ok, err := storage.GetRecord(market.BranchTag, branch.Hash())
	if nil != err {
		t.Fatalf("get record: %v", err)
	}
	if !ok {
		t.Fatal("expected branch to be found")
	}
	if gotCarrier != carrier {
		t.Fatalf("carrier mismatch: got %s want %s", gotCarrier, carrier)
	}
	got := record.(*market.Branch)
	if got.Name != branch.Name || got.Tau != branch.Tau {
		t.Fatalf("decoded branch mismatch: %+v", got)
	}
}

func TestDuplicatePrimaryKeyRejected(t *testing.T) {
	teardown := setupStore(t)
	defer teardown()

	branch := &market.Branch{Envelope: market.Envelope{Height: 10}, Name: "weather", Tau: 1000}
	if err := stageAndCommit(t, branch, idOf(1)); nil != err {
		t.Fatalf("first stage: %v", err)
	}

	err := stageAndCommit(t, branch, idOf(2))
	if !fault.IsErrDuplicate(err) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestTradeScanOrdering(t *testing.T) {
	teardown := setupStore(t)
	defer teardown()

	marketId := idOf(0x10)
	var ids []market.Hash
	for i := byte(1); i <= 5; i++ {
		tr := &market.Trade{
			Envelope: market.Envelope{Height: uint32(i)},
			KeyId:    idOf(0xf0 + i),
			MarketId: marketId,
			IsBuy:    true,
			NShares:  int64(i) * market.FixedScale,
			Price:    10000000,
			Nonce:    uint64(i),
		}
		if err := stageAndCommit(t, tr, idOf(i)); nil != err {
			t.Fatalf("stage trade %d: %v", i, err)
		}
		ids = append(ids, tr.Hash())
	}

	cursor := storage.ScanTradesByMarket(marketId)
	elements, err := cursor.Fetch(10)
	if nil != err {
		t.Fatalf("fetch: %v", err)
	}
	if len(elements) != 5 {
		t.Fatalf("expected 5 trades, got %d", len(elements))
	}
	for i := 1; i < len(elements); i++ {
		if string(elements[i-1].Key) >= string(elements[i].Key) {
			t.Fatalf("scan not strictly increasing at %d", i)
		}
	}
}

func TestDecisionsByBranchScan(t *testing.T) {
	teardown := setupStore(t)
	defer teardown()

	branchId := idOf(0x20)
	for i := byte(1); i <= 3; i++ {
		d := &market.Decision{
			Envelope: market.Envelope{Height: uint32(i)},
			KeyId:    idOf(0xd0 + i),
			BranchId: branchId,
			Prompt:   "will it rain?",
		}
		if err := stageAndCommit(t, d, idOf(i)); nil != err {
			t.Fatalf("stage decision %d: %v", i, err)
		}
	}

	count := 0
	err := storage.ScanDecisionsByBranch(branchId).Map(func(key, value []byte) error {
		count++
		return nil
	})
	if nil != err {
		t.Fatalf("map: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 decisions, got %d", count)
	}
}

func TestAtomicBatchAllOrNothing(t *testing.T) {
	teardown := setupStore(t)
	defer teardown()

	branch := &market.Branch{Envelope: market.Envelope{Height: 1}, Name: "a", Tau: 1000}

	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("begin: %v", err)
	}
	if err := storage.StageRecord(trx, branch, idOf(1)); nil != err {
		t.Fatalf("stage: %v", err)
	}
	trx.Abort()

	if storage.Exists(market.BranchTag, branch.Hash()) {
		t.Fatal("aborted batch must not be visible")
	}
}
