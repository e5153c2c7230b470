// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// FetchCursor - cursor structure
type FetchCursor struct {
	pool     *PoolHandle
	reader   reader
	maxRange ldb_util.Range
}

// NewFetchCursor - initialise a cursor over a whole pool
func (p *PoolHandle) NewFetchCursor(r reader) *FetchCursor {
	return &FetchCursor{
		pool:   p,
		reader: r,
		maxRange: ldb_util.Range{
			Start: []byte{p.prefix}, // Start of key range, included in the range
			Limit: p.limit,          // Limit of key range, excluded from the range
		},
	}
}

// Prefix - restrict the cursor to keys that begin with prefix
func (cursor *FetchCursor) Prefix(prefix []byte) *FetchCursor {
	cursor.maxRange = *ldb_util.BytesPrefix(cursor.pool.prefixKey(prefix))
	return cursor
}

// Map - run a function on all elements in the range
//
// key has the pool prefix stripped; both slices are copies
func (cursor *FetchCursor) Map(f func(key []byte, value []byte) error) error {
	iter := cursor.reader.NewIterator(&cursor.maxRange, nil)

	var err error
iterating:
	for iter.Next() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		err = f(dataKey, dataValue)
		if nil != err {
			break iterating
		}
	}
	iter.Release()
	if nil == err {
		err = iter.Error()
	}
	return err
}
