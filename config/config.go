// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package config reads the node's branch defaults and store/chain
// endpoint settings from a UCL configuration file, following the
// teacher's own configuration package reader.
package config

import (
	"reflect"

	libucl "github.com/bitmark-inc/go-libucl"

	"github.com/hivemind-chain/marketchain/fault"
)

// StoreDefaults holds the on-disk Store location.
type StoreDefaults struct {
	Database string `json:"database"`
}

// BranchDefaults seeds create_branch's optional fields when an operator
// call omits them.
type BranchDefaults struct {
	Tau                uint32 `json:"tau"`
	BallotTime         uint32 `json:"ballot_time"`
	UnsealTime         uint32 `json:"unseal_time"`
	ConsensusThreshold int64  `json:"consensus_threshold"`
	Alpha              int64  `json:"alpha"`
	Tol                int64  `json:"tol"`
}

// Configuration is the node's top-level, UCL-decoded configuration.
type Configuration struct {
	Store  StoreDefaults  `json:"store"`
	Branch BranchDefaults `json:"branch_defaults"`
}

// Parse reads fileName (a UCL document) into config, mirroring
// configuration.readConfigurationFile's reflect-based struct-pointer
// validation before handing the rest to libucl's Decode.
func Parse(fileName string, config interface{}) error {
	rv := reflect.ValueOf(config)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fault.ErrInvalidStructPointer
	}
	if rv.Elem().Kind() != reflect.Struct {
		return fault.ErrInvalidStructPointer
	}

	p := libucl.NewParser(0)
	defer p.Close()

	if err := p.AddFile(fileName); nil != err {
		return err
	}

	root := p.Object()
	defer root.Close()

	return root.Decode(config)
}

// Default returns a Configuration seeded with sane branch defaults,
// used when a node starts without a config file (test harnesses,
// the offline CLI calculator).
func Default() *Configuration {
	return &Configuration{
		Store: StoreDefaults{Database: "marketchain.leveldb"},
		Branch: BranchDefaults{
			Tau:                1000,
			BallotTime:         200,
			UnsealTime:         200,
			ConsensusThreshold: 50000000, // 0.5 fixed-point
			Alpha:              10000000, // 0.1 fixed-point
			Tol:                2000000,  // 0.02 fixed-point
		},
	}
}
