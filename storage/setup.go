// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/bitmark-inc/logger"
	"github.com/hivemind-chain/marketchain/fault"
)

// pools is the set of prefix-scoped views over the single shared
// database, one per primary record tag (spec.md §4.2 primary keys) and
// one per secondary-index family. All fields must be exported or
// reflection-driven initialisation below will panic.
type pools struct {
	Branches     *PoolHandle `prefix:"B"`
	Decisions    *PoolHandle `prefix:"D"`
	Markets      *PoolHandle `prefix:"M"`
	Trades       *PoolHandle `prefix:"T"`
	SealedVotes  *PoolHandle `prefix:"S"`
	RevealVotes  *PoolHandle `prefix:"R"`
	StealVotes   *PoolHandle `prefix:"L"`
	Outcomes     *PoolHandle `prefix:"O"`

	DecisionsByBranch *PoolHandle `prefix:"d"`
	MarketsByDecision *PoolHandle `prefix:"m"`
	TradesByMarket    *PoolHandle `prefix:"t"`
	OutcomesByBranch  *PoolHandle `prefix:"o"`
	SealedByBranch    *PoolHandle `prefix:"s"`
	RevealByBranch    *PoolHandle `prefix:"r"`
	StealByBranch     *PoolHandle `prefix:"l"`
}

// Pool is the set of exported pools, wired by Initialise.
var Pool pools

var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

var poolData struct {
	sync.RWMutex
	db    *leveldb.DB
	trx   Transaction
	batch *leveldb.Batch
	cache Cache
}

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Initialise opens the marketchain database and wires every PoolHandle
// in Pool via struct-tag reflection. It must be called before any pool
// is accessed.
func Initialise(database string, readOnly bool) error {
	poolData.Lock()
	defer poolData.Unlock()

	ok := false
	if nil != poolData.db {
		return fault.ErrAlreadyInitialised
	}

	defer func() {
		if !ok {
			dbClose()
		}
	}()

	db, version, err := getDB(database, readOnly)
	if nil != err {
		return err
	}
	poolData.db = db

	if version > currentDBVersion {
		logger.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return fmt.Errorf("database version: %d > current version: %d", version, currentDBVersion)
	}

	if readOnly && version != 0 && version != currentDBVersion {
		logger.Criticalf("database is inconsistent: %d != current: %d", version, currentDBVersion)
		return fmt.Errorf("database is inconsistent: %d != current: %d", version, currentDBVersion)
	}

	if 0 == version {
		if err := putVersion(poolData.db, currentDBVersion); nil != err {
			return err
		}
	}

	poolData.batch = new(leveldb.Batch)
	poolData.cache = newCache()
	access := newDA(poolData.db, poolData.batch, poolData.cache)
	poolData.trx = newTransaction(access)

	poolType := reflect.TypeOf(Pool)
	poolValue := reflect.ValueOf(&Pool).Elem()

	for i := 0; i < poolType.NumField(); i++ {
		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo.Name, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
			access: access,
		}

		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	ok = true
	return nil
}

func dbClose() {
	if nil != poolData.db {
		poolData.db.Close()
		poolData.db = nil
	}
}

// Finalise closes the database connection.
func Finalise() {
	poolData.Lock()
	dbClose()
	poolData.Unlock()
}

func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return db, int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))
	return db.Put(versionKey, currentVersion, nil)
}

// NewDBTransaction begins a new batch on the shared transaction.
func NewDBTransaction() (Transaction, error) {
	if err := poolData.trx.Begin(); nil != err {
		return nil, err
	}
	return poolData.trx, nil
}
