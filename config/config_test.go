// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hivemind-chain/marketchain/config"
	"github.com/hivemind-chain/marketchain/fault"
)

func TestParseRejectsNonPointer(t *testing.T) {
	var c config.Configuration
	err := config.Parse("irrelevant.conf", c)
	assert.Equal(t, fault.ErrInvalidStructPointer, err)
}

func TestParseRejectsNilPointer(t *testing.T) {
	var c *config.Configuration
	err := config.Parse("irrelevant.conf", c)
	assert.Equal(t, fault.ErrInvalidStructPointer, err)
}

func TestParseRejectsNonStructPointer(t *testing.T) {
	n := 42
	err := config.Parse("irrelevant.conf", &n)
	assert.Equal(t, fault.ErrInvalidStructPointer, err)
}

func TestDefault(t *testing.T) {
	d := config.Default()
	assert.Equal(t, uint32(1000), d.Branch.Tau)
	assert.Less(t, d.Branch.BallotTime+d.Branch.UnsealTime, d.Branch.Tau)
	assert.NotEmpty(t, d.Store.Database)
}
