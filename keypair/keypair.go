// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keypair

import (
	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/secure"
)

// KeyPair - hex encoded secp256k1 keys
//
// the public key is the account identity that appears as sender or
// receiver of a transaction
type KeyPair struct {
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
}

// New - create a key pair from secure random data
func New() (*KeyPair, error) {
	publicKey, privateKey, err := secure.GenerateKey()
	if nil != err {
		return nil, err
	}
	return &KeyPair{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}, nil
}

// FromPrivateKey - rebuild a key pair from a stored private key
func FromPrivateKey(privateKey string) (*KeyPair, error) {
	publicKey, err := secure.PublicKeyFor(privateKey)
	if nil != err {
		return nil, err
	}
	return &KeyPair{
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}, nil
}

// Validate - check that both keys parse and belong together
func (k *KeyPair) Validate() error {
	if nil == k {
		return fault.ErrInvalidPrivateKey
	}
	if _, err := secure.ParsePublicKey(k.PublicKey); nil != err {
		return err
	}
	publicKey, err := secure.PublicKeyFor(k.PrivateKey)
	if nil != err {
		return err
	}
	if publicKey != k.PublicKey {
		return fault.ErrInvalidPublicKey
	}
	return nil
}

// Public - a copy holding only the public half
func (k *KeyPair) Public() *KeyPair {
	return &KeyPair{PublicKey: k.PublicKey}
}

// Zero - drop the private key from memory
func (k *KeyPair) Zero() {
	k.PrivateKey = ""
}
