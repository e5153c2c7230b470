// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secure

import (
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/peerbridge/peerbridge/fault"
)

// EncryptSymmetric - authenticated encryption of plaintext under key
//
// the result carries its own nonce and tag
func EncryptSymmetric(plaintext []byte, key SymmetricKey) ([]byte, error) {
	return EncryptSymmetricWithData(plaintext, key, nil)
}

// EncryptSymmetricWithData - as EncryptSymmetric but also
// authenticates additionalData, which must be presented unchanged to
// decrypt
func EncryptSymmetricWithData(plaintext []byte, key SymmetricKey, additionalData []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if nil != err {
		return nil, fault.ErrEncryptionFailed
	}

	nonce, err := RandomNonce(aead.NonceSize())
	if nil != err {
		return nil, fault.ErrEncryptionFailed
	}

	result := make([]byte, len(nonce), len(nonce)+len(plaintext)+aead.Overhead())
	copy(result, nonce)
	return aead.Seal(result, nonce, plaintext, additionalData), nil
}

// DecryptSymmetric - reverse of EncryptSymmetric
//
// every failure returns fault.ErrAuthenticationFailed so the caller
// cannot tell a wrong key from a damaged ciphertext
func DecryptSymmetric(ciphertext []byte, key SymmetricKey) ([]byte, error) {
	return DecryptSymmetricWithData(ciphertext, key, nil)
}

// DecryptSymmetricWithData - reverse of EncryptSymmetricWithData
func DecryptSymmetricWithData(ciphertext []byte, key SymmetricKey, additionalData []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key[:])
	if nil != err {
		return nil, fault.ErrAuthenticationFailed
	}

	nonceSize := aead.NonceSize()
	if len(ciphertext) < nonceSize+aead.Overhead() {
		return nil, fault.ErrAuthenticationFailed
	}

	plaintext, err := aead.Open(nil, ciphertext[:nonceSize], ciphertext[nonceSize:], additionalData)
	if nil != err {
		return nil, fault.ErrAuthenticationFailed
	}
	return plaintext, nil
}
