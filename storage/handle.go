// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"
)

// PoolHandle - one key prefix of the database
type PoolHandle struct {
	prefix byte
	limit  []byte
}

// Element - a binary data item
type Element struct {
	Key   []byte
	Value []byte
}

// reader - the read side shared by the database and its snapshots
type reader interface {
	Get(key []byte, ro *ldb_opt.ReadOptions) ([]byte, error)
	Has(key []byte, ro *ldb_opt.ReadOptions) (bool, error)
	NewIterator(slice *ldb_util.Range, ro *ldb_opt.ReadOptions) iterator.Iterator
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Put - add a key/value bytes pair to a batch
func (p *PoolHandle) Put(batch *leveldb.Batch, key []byte, value []byte) {
	batch.Put(p.prefixKey(key), value)
}

// Get - read a value for a given key
//
// returns nil, nil if the key is not present
func (p *PoolHandle) Get(r reader, key []byte) ([]byte, error) {
	value, err := r.Get(p.prefixKey(key), nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	return value, err
}

// GetN - read a record and decode first 8 bytes as big endian uint64
//
// second parameter is false if record was not found
func (p *PoolHandle) GetN(r reader, key []byte) (uint64, bool, error) {
	buffer, err := p.Get(r, key)
	if nil != err || nil == buffer {
		return 0, false, err
	}
	if len(buffer) < 8 {
		return 0, false, fmt.Errorf("truncated record for: %x", key)
	}
	return binary.BigEndian.Uint64(buffer[:8]), true, nil
}

// GetNB - read a record and decode first 8 bytes as big endian uint64
// and return the rest of the record as byte slice
//
// second parameter is nil if record was not found
func (p *PoolHandle) GetNB(r reader, key []byte) (uint64, []byte, error) {
	buffer, err := p.Get(r, key)
	if nil != err || nil == buffer {
		return 0, nil, err
	}
	if len(buffer) < 9 { // must have at least one byte after the N value
		return 0, nil, fmt.Errorf("truncated record for: %x", key)
	}
	return binary.BigEndian.Uint64(buffer[:8]), buffer[8:], nil
}

// Has - check if a key exists
func (p *PoolHandle) Has(r reader, key []byte) (bool, error) {
	return r.Has(p.prefixKey(key), nil)
}

// LastElement - get the last element in a pool
func (p *PoolHandle) LastElement(r reader) (Element, bool, error) {
	maxRange := ldb_util.Range{
		Start: []byte{p.prefix}, // Start of key range, included in the range
		Limit: p.limit,          // Limit of key range, excluded from the range
	}

	iter := r.NewIterator(&maxRange, nil)

	found := false
	result := Element{}
	if iter.Last() {

		// contents of the returned slice must not be modified, and are
		// only valid until the next call to Next
		key := iter.Key()
		value := iter.Value()

		dataKey := make([]byte, len(key)-1) // strip the prefix
		copy(dataKey, key[1:])              // ...

		dataValue := make([]byte, len(value))
		copy(dataValue, value)

		result.Key = dataKey
		result.Value = dataValue
		found = true
	}
	iter.Release()
	return result, found, iter.Error()
}

// big endian encoding of a uint64 for use in keys
func toBigEndian(n uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, n)
	return buffer
}
