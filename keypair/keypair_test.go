// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keypair_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/keypair"
)

func TestNew(t *testing.T) {
	k, err := keypair.New()
	assert.Nil(t, err, "new")
	assert.Equal(t, 66, len(k.PublicKey), "public key length")
	assert.Equal(t, 64, len(k.PrivateKey), "private key length")
	assert.Equal(t, strings.ToLower(k.PublicKey), k.PublicKey, "public key not lowercase")
	assert.Nil(t, k.Validate(), "fresh key pair invalid")

	other, _ := keypair.New()
	assert.NotEqual(t, k.PublicKey, other.PublicKey, "repeated key")
}

func TestFromPrivateKey(t *testing.T) {
	k, _ := keypair.New()

	restored, err := keypair.FromPrivateKey(k.PrivateKey)
	assert.Nil(t, err, "restore")
	assert.Equal(t, k, restored, "restored key pair differs")

	_, err = keypair.FromPrivateKey("abcd")
	assert.Equal(t, fault.ErrInvalidKeyLength, err, "short key accepted")
}

func TestValidateMismatch(t *testing.T) {
	a, _ := keypair.New()
	b, _ := keypair.New()

	mixed := &keypair.KeyPair{
		PublicKey:  a.PublicKey,
		PrivateKey: b.PrivateKey,
	}
	assert.Equal(t, fault.ErrInvalidPublicKey, mixed.Validate(), "mismatched keys accepted")
}

func TestPublic(t *testing.T) {
	k, _ := keypair.New()
	p := k.Public()
	assert.Equal(t, k.PublicKey, p.PublicKey, "public key")
	assert.Equal(t, "", p.PrivateKey, "private key leaked")
	assert.NotEqual(t, "", k.PrivateKey, "original modified")
}
