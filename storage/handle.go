// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"
	"github.com/hivemind-chain/marketchain/fault"
)

// PoolHandle is a prefix-scoped view over the shared leveldb keyspace:
// every key it touches is transparently prepended with a single tag byte
// that keeps this pool's records out of every other pool's range.
type PoolHandle struct {
	prefix byte
	limit  []byte
	access Access
}

// Element is a single decoded (key, value) pair with the pool prefix
// already stripped from the key.
type Element struct {
	Key   []byte
	Value []byte
}

func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put stages a key/value pair in the pool's current batch.
func (p *PoolHandle) Put(key []byte, value []byte) {
	p.access.Put(p.prefixKey(key), value)
}

// Delete stages a key removal in the pool's current batch.
func (p *PoolHandle) Delete(key []byte) {
	p.access.Delete(p.prefixKey(key))
}

// Get reads a value for key. Returns nil if the key is absent.
//
// The returned slice must not be retained past the call if obtained from
// the cache layer; callers that must keep it should copy.
func (p *PoolHandle) Get(key []byte) []byte {
	value, err := p.access.Get(p.prefixKey(key))
	logger.PanicIfError("pool.Get", err)
	return value
}

// Has reports whether key is present.
func (p *PoolHandle) Has(key []byte) bool {
	found, err := p.access.Has(p.prefixKey(key))
	logger.PanicIfError("pool.Has", err)
	return found
}

// LastElement returns the highest-keyed element in the pool's range.
func (p *PoolHandle) LastElement() (Element, bool) {
	maxRange := ldb_util.Range{
		Start: []byte{p.prefix},
		Limit: p.limit,
	}

	iter := p.access.Iterator(&maxRange)
	defer iter.Release()

	if !iter.Last() {
		return Element{}, false
	}

	key := iter.Key()
	value := iter.Value()

	dataKey := make([]byte, len(key)-1)
	copy(dataKey, key[1:])
	dataValue := make([]byte, len(value))
	copy(dataValue, value)

	return Element{Key: dataKey, Value: dataValue}, true
}

// CreateNew writes key/value only if key is not already present,
// returning fault.ErrDuplicateRecord otherwise. This implements spec.md
// §4.2's "Store rejects a second write whose primary key already exists"
// invariant at staging time, before the batch ever commits.
func (p *PoolHandle) CreateNew(key []byte, value []byte) error {
	if p.Has(key) {
		return fault.ErrDuplicateRecord
	}
	p.Put(key, value)
	return nil
}
