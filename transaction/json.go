// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"encoding/json"
	"time"

	"github.com/peerbridge/peerbridge/fault"
)

// the ledger wire form
type wire struct {
	ID        string  `json:"id"`
	Sender    string  `json:"sender"`
	Receiver  string  `json:"receiver"`
	Balance   uint64  `json:"balance"`
	Timestamp string  `json:"timestamp"`
	Data      []byte  `json:"data"`
	Fee       uint64  `json:"fee"`
	Signature *string `json:"signature"`
}

// MarshalJSON - timestamp as RFC 3339 with fractional seconds, data
// as base64 or null, signature as hex or null
func (t Transaction) MarshalJSON() ([]byte, error) {
	w := wire{
		ID:        t.ID,
		Sender:    t.Sender,
		Receiver:  t.Receiver,
		Balance:   t.Balance,
		Timestamp: t.Timestamp.UTC().Format(time.RFC3339Nano),
		Data:      t.Data,
		Fee:       t.Fee,
	}
	if "" != t.Signature {
		s := t.Signature
		w.Signature = &s
	}
	return json.Marshal(w)
}

// UnmarshalJSON - reverse of MarshalJSON
func (t *Transaction) UnmarshalJSON(s []byte) error {
	w := wire{}
	if err := json.Unmarshal(s, &w); nil != err {
		return err
	}

	timestamp, err := time.Parse(time.RFC3339Nano, w.Timestamp)
	if nil != err {
		return fault.ErrInvalidTimestamp
	}

	*t = Transaction{
		ID:        w.ID,
		Sender:    w.Sender,
		Receiver:  w.Receiver,
		Balance:   w.Balance,
		Timestamp: timestamp.UTC(),
		Data:      w.Data,
		Fee:       w.Fee,
	}
	if nil != w.Signature {
		t.Signature = *w.Signature
	}
	return nil
}
