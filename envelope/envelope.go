// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package envelope - hybrid encryption of a message payload
//
// a fresh session key encrypts the payload and is then wrapped twice,
// once under the sender's public key and once under the receiver's,
// so either party can later open the envelope with only their own
// private key
package envelope

import (
	"encoding/json"

	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/keypair"
	"github.com/peerbridge/peerbridge/message"
	"github.com/peerbridge/peerbridge/secure"
	"github.com/peerbridge/peerbridge/util"
)

// NonceSize - bytes in the envelope nonce
const NonceSize = 16

// SessionKeyPair - one session key wrapped for each party
type SessionKeyPair struct {
	EncryptedBySenderPublicKey   []byte `json:"encryptedBySenderPublicKey"`
	EncryptedByReceiverPublicKey []byte `json:"encryptedByReceiverPublicKey"`
}

// Envelope - the encrypted container stored in a transaction's data
//
// binary fields are base64 in the JSON form
type Envelope struct {
	Nonce                   []byte         `json:"nonce"`
	EncryptedSessionKeyPair SessionKeyPair `json:"encryptedSessionKeyPair"`
	EncryptedMessage        []byte         `json:"encryptedMessage"`
}

// Seal - encrypt a payload so that both the sender and the receiver
// can open it
//
// the nonce and both wrapped session keys are authenticated with the
// message body, so a change to either party's slot fails for both
func Seal(payload message.Message, sender *keypair.KeyPair, receiverPublicKey string) (*Envelope, error) {
	if nil == sender {
		return nil, fault.ErrInvalidPublicKey
	}

	body, err := message.Encode(payload)
	if nil != err {
		return nil, err
	}

	sessionKey, err := secure.RandomSymmetricKey()
	if nil != err {
		return nil, fault.ErrEncryptionFailed
	}
	defer sessionKey.Zero()

	nonce, err := secure.RandomNonce(NonceSize)
	if nil != err {
		return nil, fault.ErrEncryptionFailed
	}

	bySender, err := secure.EncryptAsymmetric(sessionKey[:], sender.PublicKey)
	if nil != err {
		return nil, err
	}

	byReceiver, err := secure.EncryptAsymmetric(sessionKey[:], receiverPublicKey)
	if nil != err {
		return nil, err
	}

	encryptedMessage, err := secure.EncryptSymmetricWithData(body, sessionKey, associatedData(nonce, bySender, byReceiver))
	if nil != err {
		return nil, err
	}

	return &Envelope{
		Nonce: nonce,
		EncryptedSessionKeyPair: SessionKeyPair{
			EncryptedBySenderPublicKey:   bySender,
			EncryptedByReceiverPublicKey: byReceiver,
		},
		EncryptedMessage: encryptedMessage,
	}, nil
}

// Open - decrypt an envelope with the caller's own key pair
//
// sender and receiver are the public keys of the transaction that
// carried the envelope; the caller's public key selects which wrapped
// session key to use
func Open(env *Envelope, own *keypair.KeyPair, sender string, receiver string) (message.Message, error) {
	if nil == env || nil == own {
		return nil, fault.ErrMalformedEnvelope
	}

	var wrapped []byte
	switch own.PublicKey {
	case sender:
		wrapped = env.EncryptedSessionKeyPair.EncryptedBySenderPublicKey
	case receiver:
		wrapped = env.EncryptedSessionKeyPair.EncryptedByReceiverPublicKey
	default:
		return nil, fault.ErrWrongRecipient
	}

	key, err := secure.DecryptAsymmetric(wrapped, own.PrivateKey)
	if nil != err {
		return nil, fault.ErrDecryptionFailed
	}
	if secure.SymmetricKeySize != len(key) {
		return nil, fault.ErrDecryptionFailed
	}

	sessionKey := secure.SymmetricKey{}
	copy(sessionKey[:], key)
	defer sessionKey.Zero()
	for i := range key {
		key[i] = 0
	}

	ad := associatedData(env.Nonce, env.EncryptedSessionKeyPair.EncryptedBySenderPublicKey, env.EncryptedSessionKeyPair.EncryptedByReceiverPublicKey)
	body, err := secure.DecryptSymmetricWithData(env.EncryptedMessage, sessionKey, ad)
	if nil != err {
		return nil, fault.ErrDecryptionFailed
	}

	return message.Decode(body)
}

// nonce ‖ lp(bySender) ‖ lp(byReceiver)
func associatedData(nonce []byte, bySender []byte, byReceiver []byte) []byte {
	ad := make([]byte, 0, len(nonce)+len(bySender)+len(byReceiver)+4)
	ad = append(ad, nonce...)
	ad = util.AppendBytes(ad, bySender)
	return util.AppendBytes(ad, byReceiver)
}

// Bytes - the JSON wire form
func (env *Envelope) Bytes() ([]byte, error) {
	return json.Marshal(env)
}

// Parse - decode the JSON wire form
func Parse(buffer []byte) (*Envelope, error) {
	env := &Envelope{}
	if err := json.Unmarshal(buffer, env); nil != err {
		return nil, fault.ErrMalformedEnvelope
	}
	if NonceSize != len(env.Nonce) ||
		0 == len(env.EncryptedMessage) ||
		0 == len(env.EncryptedSessionKeyPair.EncryptedBySenderPublicKey) ||
		0 == len(env.EncryptedSessionKeyPair.EncryptedByReceiverPublicKey) {
		return nil, fault.ErrMalformedEnvelope
	}
	return env, nil
}
