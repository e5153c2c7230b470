// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chat

import (
	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/keypair"
	"github.com/peerbridge/peerbridge/message"
	"github.com/peerbridge/peerbridge/transaction"
)

// Status - how an entry of a history could be read
type Status int

// entry states
const (
	Readable Status = iota
	NoPayload
	Undecryptable
	Tampered
)

// text shown in place of a message that cannot be read
const (
	UndecryptableText = "message could not be decrypted"
	TamperedText      = "message signature is invalid"
)

func (s Status) String() string {
	switch s {
	case Readable:
		return "readable"
	case NoPayload:
		return "no payload"
	case Undecryptable:
		return "undecryptable"
	case Tampered:
		return "tampered"
	default:
		return "unknown"
	}
}

// Entry - one transaction of a conversation
type Entry struct {
	Transaction *transaction.Transaction
	Outgoing    bool
	Status      Status
	Message     message.Message
	Err         error
}

// Text - the display text of the entry
func (e Entry) Text() string {
	switch e.Status {
	case Readable:
		return message.Text(e.Message)
	case Undecryptable:
		return UndecryptableText
	case Tampered:
		return TamperedText
	default:
		return ""
	}
}

// History - the conversation between own and partner, oldest first
//
// every transaction produces an entry: a bad signature is reported as
// Tampered and a failed decryption as Undecryptable, neither stops
// the listing
func History(source Source, own *keypair.KeyPair, partner string) ([]Entry, error) {
	ts, err := source.TransactionsWithPartner(partner)
	if nil != err {
		return nil, err
	}

	entries := make([]Entry, 0, len(ts))
	for _, t := range ts {

		// the partner index also holds the partner's transactions
		// with third parties
		if !t.Involves(own.PublicKey) || t.Partner(own.PublicKey) != partner {
			continue
		}
		entries = append(entries, Read(t, own))
	}
	return entries, nil
}

// Read - verify and decrypt a single transaction
func Read(t *transaction.Transaction, own *keypair.KeyPair) Entry {
	e := Entry{
		Transaction: t,
		Outgoing:    t.Sender == own.PublicKey,
	}

	if err := t.VerifySignature(); nil != err {
		e.Status = Tampered
		e.Err = err
		return e
	}

	m, err := t.Open(own)
	switch {
	case nil == err:
		e.Status = Readable
		e.Message = m
	case fault.ErrNoPayload == err:
		e.Status = NoPayload
	default:
		e.Status = Undecryptable
		e.Err = err
	}
	return e
}

// Preview - display text of the last transaction of a chat
func Preview(c Chat, own *keypair.KeyPair) string {
	if nil == c.LastTransaction {
		return ""
	}
	return Read(c.LastTransaction, own).Text()
}
