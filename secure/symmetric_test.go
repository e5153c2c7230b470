// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/secure"
)

func TestSymmetricRoundTrip(t *testing.T) {
	key, err := secure.RandomSymmetricKey()
	assert.Nil(t, err, "key generation")

	plaintext := []byte("Yaaarrrnnn")
	ciphertext, err := secure.EncryptSymmetric(plaintext, key)
	assert.Nil(t, err, "encrypt")
	assert.NotContains(t, string(ciphertext), "Yaaarrrnnn", "plaintext visible in ciphertext")

	decrypted, err := secure.DecryptSymmetric(ciphertext, key)
	assert.Nil(t, err, "decrypt")
	assert.Equal(t, plaintext, decrypted, "wrong plaintext")
}

func TestSymmetricWrongKey(t *testing.T) {
	key, _ := secure.RandomSymmetricKey()
	otherKey, _ := secure.RandomSymmetricKey()

	ciphertext, err := secure.EncryptSymmetric([]byte("Yaaarrrnnn"), key)
	assert.Nil(t, err, "encrypt")

	decrypted, err := secure.DecryptSymmetric(ciphertext, otherKey)
	assert.Equal(t, fault.ErrAuthenticationFailed, err, "wrong key accepted")
	assert.Nil(t, decrypted, "plaintext returned on failure")
}

func TestSymmetricTampering(t *testing.T) {
	key, _ := secure.RandomSymmetricKey()
	ciphertext, _ := secure.EncryptSymmetric([]byte("some message text"), key)

	for i := range ciphertext {
		damaged := append([]byte{}, ciphertext...)
		damaged[i] ^= 0x01
		_, err := secure.DecryptSymmetric(damaged, key)
		assert.Equal(t, fault.ErrAuthenticationFailed, err, "byte: %d", i)
	}

	_, err := secure.DecryptSymmetric(ciphertext[:10], key)
	assert.Equal(t, fault.ErrAuthenticationFailed, err, "truncated ciphertext")
}

func TestSymmetricAdditionalData(t *testing.T) {
	key, _ := secure.RandomSymmetricKey()
	ciphertext, err := secure.EncryptSymmetricWithData([]byte("body"), key, []byte("nonce-1"))
	assert.Nil(t, err, "encrypt")

	_, err = secure.DecryptSymmetricWithData(ciphertext, key, []byte("nonce-2"))
	assert.Equal(t, fault.ErrAuthenticationFailed, err, "different additional data accepted")

	plaintext, err := secure.DecryptSymmetricWithData(ciphertext, key, []byte("nonce-1"))
	assert.Nil(t, err, "decrypt")
	assert.Equal(t, []byte("body"), plaintext, "wrong plaintext")
}

func TestRandomNonce(t *testing.T) {
	a, err := secure.RandomNonce(16)
	assert.Nil(t, err, "nonce")
	b, _ := secure.RandomNonce(16)
	assert.Equal(t, 16, len(a), "nonce length")
	assert.NotEqual(t, a, b, "repeated nonce")
}
