// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lifecycle_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hivemind-chain/marketchain/fault"
	"github.com/hivemind-chain/marketchain/lifecycle"
	"github.com/hivemind-chain/marketchain/market"
	"github.com/hivemind-chain/marketchain/storage"
)

func setupStore(t *testing.T) func() {
	t.Helper()
	dir, err := os.MkdirTemp("", "marketchain-lifecycle-test")
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

func TestValidateBranchParams(t *testing.T) {
	bad := &market.Branch{TargetDecisions: 5, MaxDecisions: 3, Tau: 1000}
	assert.True(t, fault.IsErrConstraint(lifecycle.Validate(bad, 0)))

	badTau := &market.Branch{TargetDecisions: 1, MaxDecisions: 3, Tau: 0}
	assert.True(t, fault.IsErrConstraint(lifecycle.Validate(badTau, 0)))

	badWindow := &market.Branch{TargetDecisions: 1, MaxDecisions: 3, Tau: 100, BallotTime: 60, UnsealTime: 50}
	assert.True(t, fault.IsErrConstraint(lifecycle.Validate(badWindow, 0)))

	good := &market.Branch{TargetDecisions: 1, MaxDecisions: 3, Tau: 100, BallotTime: 30, UnsealTime: 30}
	assert.NoError(t, lifecycle.Validate(good, 0))
}

func TestValidateDecisionMissingBranch(t *testing.T) {
	teardown := setupStore(t)
	defer teardown()

	d := &market.Decision{BranchId: market.Hash{0xAA}}
	err := lifecycle.Validate(d, 0)
	assert.True(t, fault.IsErrNotFound(err))
}
