// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/peerbridge/peerbridge/envelope"
	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/keypair"
	"github.com/peerbridge/peerbridge/message"
)

// Create - build a sealed and signed transaction
//
// a nil payload makes a pure value transfer with no data; the
// timestamp is truncated to milliseconds so it survives ledgers that
// store millisecond precision
func Create(sender *keypair.KeyPair, receiver string, balance uint64, fee uint64, payload message.Message) (*Transaction, error) {
	if nil == sender {
		return nil, fault.ErrInvalidPrivateKey
	}

	var data []byte
	if nil != payload {
		env, err := envelope.Seal(payload, sender, receiver)
		if nil != err {
			return nil, err
		}
		data, err = env.Bytes()
		if nil != err {
			return nil, err
		}
	}

	t := &Transaction{
		ID:        uuid.New().String(),
		Sender:    sender.PublicKey,
		Receiver:  receiver,
		Balance:   balance,
		Timestamp: time.Now().UTC().Truncate(time.Millisecond),
		Data:      data,
		Fee:       fee,
	}

	signature, err := Sign(t, sender.PrivateKey)
	if nil != err {
		return nil, err
	}
	t.Signature = signature

	return t, nil
}

// Open - decrypt the envelope carried by t
func (t *Transaction) Open(own *keypair.KeyPair) (message.Message, error) {
	if 0 == len(t.Data) {
		return nil, fault.ErrNoPayload
	}
	env, err := envelope.Parse(t.Data)
	if nil != err {
		return nil, err
	}
	return envelope.Open(env, own, t.Sender, t.Receiver)
}
