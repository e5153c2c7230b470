// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/peerbridge/peerbridge/transaction"
)

const (
	defaultCleanup    = 1 * time.Minute
	defaultExpiration = 2 * time.Minute
)

// decoded records keyed by id
//
// records never change once written so entries need no invalidation
type recordCache struct {
	cache *cache.Cache
}

func newRecordCache() *recordCache {
	return &recordCache{
		cache: cache.New(defaultExpiration, defaultCleanup),
	}
}

// Get - a private copy of a cached record
func (c *recordCache) Get(id string) (*transaction.Transaction, bool) {
	obj, found := c.cache.Get(id)
	if !found {
		return nil, false
	}
	return duplicate(obj.(*transaction.Transaction)), true
}

// Set - remember a copy of the record
func (c *recordCache) Set(t *transaction.Transaction) {
	c.cache.Set(t.ID, duplicate(t), cache.DefaultExpiration)
}

// Clear - drop all entries
func (c *recordCache) Clear() {
	c.cache.Flush()
}

func duplicate(t *transaction.Transaction) *transaction.Transaction {
	d := *t
	if nil != t.Data {
		d.Data = make([]byte, len(t.Data))
		copy(d.Data, t.Data)
	}
	return &d
}
