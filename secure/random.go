// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secure

import (
	"crypto/rand"
	"io"
)

// SymmetricKeySize - bytes in a session key
const SymmetricKeySize = 32

// SymmetricKey - an ephemeral 256 bit session key
type SymmetricKey [SymmetricKeySize]byte

// RandomSymmetricKey - a new key from the system random source
func RandomSymmetricKey() (SymmetricKey, error) {
	key := SymmetricKey{}
	_, err := io.ReadFull(rand.Reader, key[:])
	return key, err
}

// RandomNonce - size bytes from the system random source
func RandomNonce(size int) ([]byte, error) {
	nonce := make([]byte, size)
	if _, err := io.ReadFull(rand.Reader, nonce); nil != err {
		return nil, err
	}
	return nonce, nil
}

// Zero - overwrite the key material
func (key *SymmetricKey) Zero() {
	for i := range key {
		key[i] = 0
	}
}
