// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secure

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	sha256 "github.com/minio/sha256-simd"

	"github.com/peerbridge/peerbridge/fault"
)

// DigestSize - bytes in a message digest
const DigestSize = sha256.Size

// Digest - SHA-256 of a message
func Digest(message []byte) [DigestSize]byte {
	return sha256.Sum256(message)
}

// Sign - ECDSA signature over the digest of message
//
// returns the DER encoded signature
func Sign(message []byte, privateKeyHex string) ([]byte, error) {
	privateKey, err := ParsePrivateKey(privateKeyHex)
	if nil != err {
		return nil, fault.ErrSigningFailed
	}
	defer privateKey.Zero()

	digest := Digest(message)
	return ecdsa.Sign(privateKey, digest[:]).Serialize(), nil
}

// Verify - check a DER signature over the digest of message
func Verify(message []byte, signature []byte, publicKeyHex string) bool {
	publicKey, err := ParsePublicKey(publicKeyHex)
	if nil != err {
		return false
	}

	sig, err := ecdsa.ParseDERSignature(signature)
	if nil != err {
		return false
	}

	digest := Digest(message)
	return sig.Verify(digest[:], publicKey)
}
