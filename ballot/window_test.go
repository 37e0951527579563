// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ballot_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hivemind-chain/marketchain/ballot"
)

// TestForHeight is spec.md §8 scenario 5.
func TestForHeight(t *testing.T) {
	w := ballot.ForHeight(1000, 2500)
	assert.Equal(t, uint32(2001), w.MinBlock)
	assert.Equal(t, uint32(3000), w.MaxBlock)
}

func TestForHeightFirstPeriod(t *testing.T) {
	w := ballot.ForHeight(1000, 1)
	assert.Equal(t, uint32(1), w.MinBlock)
	assert.Equal(t, uint32(1000), w.MaxBlock)

	w = ballot.ForHeight(1000, 1000)
	assert.Equal(t, uint32(1), w.MinBlock)
	assert.Equal(t, uint32(1000), w.MaxBlock)

	w = ballot.ForHeight(1000, 1001)
	assert.Equal(t, uint32(1001), w.MinBlock)
	assert.Equal(t, uint32(2000), w.MaxBlock)
}
