// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secure

import (
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/peerbridge/peerbridge/fault"
)

// byte sizes of the encoded keys
const (
	PublicKeySize  = secp256k1.PubKeyBytesLenCompressed
	PrivateKeySize = secp256k1.PrivKeyBytesLen
)

// GenerateKey - create a new secp256k1 key pair
//
// returns the hex encoded public and private keys
func GenerateKey() (string, string, error) {
	privateKey, err := secp256k1.GeneratePrivateKey()
	if nil != err {
		return "", "", err
	}
	defer privateKey.Zero()

	publicKey := hex.EncodeToString(privateKey.PubKey().SerializeCompressed())
	return publicKey, hex.EncodeToString(privateKey.Serialize()), nil
}

// ParsePublicKey - decode a hex compressed public key
func ParsePublicKey(publicKeyHex string) (*secp256k1.PublicKey, error) {
	b, err := hex.DecodeString(publicKeyHex)
	if nil != err {
		return nil, fault.ErrInvalidPublicKey
	}
	if PublicKeySize != len(b) {
		return nil, fault.ErrInvalidKeyLength
	}
	publicKey, err := secp256k1.ParsePubKey(b)
	if nil != err {
		return nil, fault.ErrInvalidPublicKey
	}
	return publicKey, nil
}

// ParsePrivateKey - decode a hex private key scalar
func ParsePrivateKey(privateKeyHex string) (*secp256k1.PrivateKey, error) {
	b, err := hex.DecodeString(privateKeyHex)
	if nil != err {
		return nil, fault.ErrInvalidPrivateKey
	}
	if PrivateKeySize != len(b) {
		return nil, fault.ErrInvalidKeyLength
	}
	privateKey := secp256k1.PrivKeyFromBytes(b)
	if privateKey.Key.IsZero() {
		return nil, fault.ErrInvalidPrivateKey
	}
	return privateKey, nil
}

// PublicKeyFor - the hex public key that matches a hex private key
func PublicKeyFor(privateKeyHex string) (string, error) {
	privateKey, err := ParsePrivateKey(privateKeyHex)
	if nil != err {
		return "", err
	}
	defer privateKey.Zero()
	return hex.EncodeToString(privateKey.PubKey().SerializeCompressed()), nil
}
