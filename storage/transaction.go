// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Transaction wraps the shared Access batch with record-oriented
// convenience methods, so a set of Put/Delete calls against several
// pools can be staged and committed as one atomic unit (spec.md §4.2
// put_batch).
type Transaction interface {
	Begin() error
	Put(*PoolHandle, []byte, []byte)
	CreateNew(*PoolHandle, []byte, []byte) error
	Delete(*PoolHandle, []byte)
	Get(*PoolHandle, []byte) []byte
	Has(*PoolHandle, []byte) bool
	Commit() error
	Abort()
}

type transactionImpl struct {
	access Access
}

func newTransaction(access Access) Transaction {
	return &transactionImpl{access: access}
}

func (t *transactionImpl) Begin() error {
	return t.access.Begin()
}

func (t *transactionImpl) Put(handle *PoolHandle, key []byte, value []byte) {
	handle.Put(key, value)
}

func (t *transactionImpl) CreateNew(handle *PoolHandle, key []byte, value []byte) error {
	return handle.CreateNew(key, value)
}

func (t *transactionImpl) Delete(handle *PoolHandle, key []byte) {
	handle.Delete(key)
}

func (t *transactionImpl) Get(handle *PoolHandle, key []byte) []byte {
	return handle.Get(key)
}

func (t *transactionImpl) Has(handle *PoolHandle, key []byte) bool {
	return handle.Has(key)
}

func (t *transactionImpl) Commit() error {
	return t.access.Commit()
}

func (t *transactionImpl) Abort() {
	t.access.Abort()
}
