// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"math"
	"time"

	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/util"
)

// SchemeV1 - the canonical packing covered by a signature
//
// the scheme number is the first item of both the packed form and the
// signature, so a verifier rebuilds exactly the form that was signed
const SchemeV1 = 1

// timestamps pack as unix nanoseconds, so only this range is usable
var (
	MinimumTimestamp = time.Unix(0, 0).UTC()
	MaximumTimestamp = time.Unix(0, math.MaxInt64).UTC()
)

// ValidTimestamp - true if ts can be packed without loss
func ValidTimestamp(ts time.Time) bool {
	return !ts.Before(MinimumTimestamp) && !ts.After(MaximumTimestamp)
}

// Transaction - a ledger record carrying an optional sealed envelope
//
// Data is nil for a pure value transfer, Signature is empty until the
// transaction is signed
type Transaction struct {
	ID        string
	Sender    string
	Receiver  string
	Balance   uint64
	Timestamp time.Time
	Data      []byte
	Fee       uint64
	Signature string
}

// Pack - the canonical signable form
//
// Varint64(scheme) followed by the fields in fixed order: id, sender,
// receiver, balance, timestamp (unix nanoseconds), data, fee; strings
// and data are length prefixed, absent data packs as zero length
func (t *Transaction) Pack() ([]byte, error) {
	return t.pack(SchemeV1)
}

func (t *Transaction) pack(scheme uint64) ([]byte, error) {
	if SchemeV1 != scheme {
		return nil, fault.ErrUnsupportedScheme
	}
	if !ValidTimestamp(t.Timestamp) {
		return nil, fault.ErrInvalidTimestamp
	}

	message := util.ToVarint64(scheme)
	message = util.AppendString(message, t.ID)
	message = util.AppendString(message, t.Sender)
	message = util.AppendString(message, t.Receiver)
	message = util.AppendVarint64(message, t.Balance)
	message = util.AppendVarint64(message, uint64(t.Timestamp.UnixNano()))
	message = util.AppendBytes(message, t.Data)
	message = util.AppendVarint64(message, t.Fee)
	return message, nil
}

// Partner - the other party of the transaction as seen by self
//
// a transaction with oneself has self as the partner
func (t *Transaction) Partner(self string) string {
	if t.Sender == self {
		return t.Receiver
	}
	return t.Sender
}

// Involves - true if account is the sender or the receiver
func (t *Transaction) Involves(account string) bool {
	return t.Sender == account || t.Receiver == account
}
