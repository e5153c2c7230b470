// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chat - conversation list and history built from stored
// transactions
package chat

import (
	"sort"

	"github.com/peerbridge/peerbridge/transaction"
)

// Chat - the most recent transaction with one partner
type Chat struct {
	PartnerPublicKey string
	LastTransaction  *transaction.Transaction
}

// Source - anything that can list transactions
type Source interface {
	All() ([]*transaction.Transaction, error)
	TransactionsWithPartner(publicKey string) ([]*transaction.Transaction, error)
}

// Derive - one chat per partner, most recent conversation first
//
// for each transaction the partner is the receiver when self sent it,
// otherwise the sender; each chat keeps the transaction with the
// greatest timestamp, and when two share a timestamp the one later in
// ts wins; chats with equal timestamps are ordered by partner key
func Derive(ts []*transaction.Transaction, self string) []Chat {
	latest := make(map[string]*transaction.Transaction)
	for _, t := range ts {
		if nil == t {
			continue
		}
		partner := t.Partner(self)
		current, ok := latest[partner]
		if !ok || !t.Timestamp.Before(current.Timestamp) {
			latest[partner] = t
		}
	}

	chats := make([]Chat, 0, len(latest))
	for partner, t := range latest {
		chats = append(chats, Chat{
			PartnerPublicKey: partner,
			LastTransaction:  t,
		})
	}

	sort.Slice(chats, func(i, j int) bool {
		ti := chats[i].LastTransaction.Timestamp
		tj := chats[j].LastTransaction.Timestamp
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return chats[i].PartnerPublicKey < chats[j].PartnerPublicKey
	})
	return chats
}

// Load - derive the chats of self from everything in source
func Load(source Source, self string) ([]Chat, error) {
	ts, err := source.All()
	if nil != err {
		return nil, err
	}
	return Derive(ts, self), nil
}

// ShortKey - abbreviated partner key for display
func (c Chat) ShortKey() string {
	return ShortKey(c.PartnerPublicKey)
}

// ShortKey - the first six characters of a public key
func ShortKey(publicKey string) string {
	if len(publicKey) <= 6 {
		return publicKey
	}
	return publicKey[:6]
}
