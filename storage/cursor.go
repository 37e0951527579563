// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"context"

	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/hivemind-chain/marketchain/fault"
)

// FetchCursor drives a lazy, ordered scan of a pool's prefix range
// (spec.md §4.2 scan(prefix)).
type FetchCursor struct {
	pool     *PoolHandle
	maxRange util.Range
}

// NewFetchCursor initialises a cursor covering the pool's entire range.
func (p *PoolHandle) NewFetchCursor() *FetchCursor {
	return &FetchCursor{
		pool: p,
		maxRange: util.Range{
			Start: []byte{p.prefix}, // included
			Limit: p.limit,          // excluded
		},
	}
}

// Seek restricts the cursor to keys that start with key, so a
// secondary-index scan such as ('d', branch_id) yields only the entries
// under that prefix.
func (cursor *FetchCursor) Seek(key []byte) *FetchCursor {
	cursor.maxRange = *util.BytesPrefix(cursor.pool.prefixKey(key))
	return cursor
}

func stripPrefix(key []byte) []byte {
	dataKey := make([]byte, len(key)-1)
	copy(dataKey, key[1:])
	return dataKey
}

func copyValue(value []byte) []byte {
	dataValue := make([]byte, len(value))
	copy(dataValue, value)
	return dataValue
}

// Fetch returns up to count elements starting from the cursor position
// and advances the cursor past the last element returned.
func (cursor *FetchCursor) Fetch(count int) ([]Element, error) {
	if cursor == nil {
		return nil, fault.ErrInvalidCursor
	}
	if count <= 0 {
		return nil, fault.ErrInvalidCount
	}

	iter := cursor.pool.access.Iterator(&cursor.maxRange)
	defer iter.Release()

	results := make([]Element, 0, count)
	for iter.Next() {
		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		results = append(results, Element{Key: stripPrefix(iter.Key()), Value: copyValue(iter.Value())})
		if len(results) >= count {
			break
		}
	}
	err := iter.Error()

	if n := len(results); n > 0 {
		// last key ++ 0x00 is the smallest key after the last one returned
		start := cursor.pool.prefixKey(results[n-1].Key)
		cursor.maxRange.Start = append(start, 0x00)
	}
	return results, err
}

// Map runs f over every element in the cursor's range, in strictly
// increasing key order.
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	if cursor == nil {
		return fault.ErrInvalidCursor
	}

	iter := cursor.pool.access.Iterator(&cursor.maxRange)
	defer iter.Release()

	for iter.Next() {
		if err := f(stripPrefix(iter.Key()), copyValue(iter.Value())); nil != err {
			return err
		}
	}
	return iter.Error()
}

// MapCancellable is Map with cooperative cancellation: ctx is polled
// before every element, per spec.md §5's interruption requirement. A
// cancelled scan returns fault.ErrCancelled and leaves the Store
// untouched (the scan is read-only).
func (cursor *FetchCursor) MapCancellable(ctx context.Context, f func(key []byte, value []byte) error) error {
	if cursor == nil {
		return fault.ErrInvalidCursor
	}

	iter := cursor.pool.access.Iterator(&cursor.maxRange)
	defer iter.Release()

	for iter.Next() {
		select {
		case <-ctx.Done():
			return fault.ErrCancelled
		default:
		}

		if err := f(stripPrefix(iter.Key()), copyValue(iter.Value())); nil != err {
			return err
		}
	}
	return iter.Error()
}
