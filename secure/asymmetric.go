// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secure

import (
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	sha256 "github.com/minio/sha256-simd"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/peerbridge/peerbridge/fault"
)

// MaximumAsymmetricPlaintext - asymmetric encryption only wraps
// session keys, never message bodies
const MaximumAsymmetricPlaintext = 64

// HKDF context for the wrapping key, change the suffix if the
// derivation ever changes
const wrapInfo = "peerbridge-session-key-v1"

// EncryptAsymmetric - encrypt a small plaintext so that only the
// holder of the private key for publicKeyHex can read it
func EncryptAsymmetric(plaintext []byte, publicKeyHex string) ([]byte, error) {
	if len(plaintext) > MaximumAsymmetricPlaintext {
		return nil, fault.ErrPlaintextTooLong
	}

	recipient, err := ParsePublicKey(publicKeyHex)
	if nil != err {
		return nil, err
	}

	ephemeral, err := secp256k1.GeneratePrivateKey()
	if nil != err {
		return nil, fault.ErrAsymmetricOperationFailed
	}
	defer ephemeral.Zero()

	ephemeralPublic := ephemeral.PubKey().SerializeCompressed()

	key, err := wrappingKey(secp256k1.GenerateSharedSecret(ephemeral, recipient), ephemeralPublic, recipient.SerializeCompressed())
	if nil != err {
		return nil, fault.ErrAsymmetricOperationFailed
	}
	defer key.Zero()

	sealed, err := EncryptSymmetric(plaintext, key)
	if nil != err {
		return nil, fault.ErrAsymmetricOperationFailed
	}

	result := make([]byte, 0, len(ephemeralPublic)+len(sealed))
	result = append(result, ephemeralPublic...)
	return append(result, sealed...), nil
}

// DecryptAsymmetric - reverse of EncryptAsymmetric using the
// recipient's private key
func DecryptAsymmetric(ciphertext []byte, privateKeyHex string) ([]byte, error) {
	if len(ciphertext) < PublicKeySize+chacha20poly1305.NonceSize+chacha20poly1305.Overhead {
		return nil, fault.ErrAsymmetricOperationFailed
	}

	privateKey, err := ParsePrivateKey(privateKeyHex)
	if nil != err {
		return nil, err
	}
	defer privateKey.Zero()

	ephemeralPublic := ciphertext[:PublicKeySize]
	ephemeral, err := secp256k1.ParsePubKey(ephemeralPublic)
	if nil != err {
		return nil, fault.ErrAsymmetricOperationFailed
	}

	key, err := wrappingKey(secp256k1.GenerateSharedSecret(privateKey, ephemeral), ephemeralPublic, privateKey.PubKey().SerializeCompressed())
	if nil != err {
		return nil, fault.ErrAsymmetricOperationFailed
	}
	defer key.Zero()

	plaintext, err := DecryptSymmetric(ciphertext[PublicKeySize:], key)
	if nil != err {
		return nil, fault.ErrAsymmetricOperationFailed
	}
	return plaintext, nil
}

// derive the symmetric wrapping key from an ECDH shared secret
func wrappingKey(shared []byte, ephemeralPublic []byte, recipientPublic []byte) (SymmetricKey, error) {
	defer func() {
		for i := range shared {
			shared[i] = 0
		}
	}()

	salt := make([]byte, 0, len(ephemeralPublic)+len(recipientPublic))
	salt = append(salt, ephemeralPublic...)
	salt = append(salt, recipientPublic...)

	key := SymmetricKey{}
	_, err := io.ReadFull(hkdf.New(sha256.New, shared, salt, []byte(wrapInfo)), key[:])
	return key, err
}
