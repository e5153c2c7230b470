// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package envelope_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peerbridge/peerbridge/envelope"
	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/keypair"
	"github.com/peerbridge/peerbridge/message"
)

func setup(t *testing.T) (*keypair.KeyPair, *keypair.KeyPair) {
	alice, err := keypair.New()
	assert.Nil(t, err, "alice")
	bob, err := keypair.New()
	assert.Nil(t, err, "bob")
	return alice, bob
}

func TestRoundTripBothParties(t *testing.T) {
	alice, bob := setup(t)

	payloads := []message.Message{
		message.ContentMessage{Content: "hello bob"},
		message.ContentMessage{Content: string(make([]byte, 10000))},
		message.TokenMessage{Token: "push-token"},
	}

	for i, payload := range payloads {
		env, err := envelope.Seal(payload, alice, bob.PublicKey)
		assert.Nil(t, err, "%d: seal", i)

		fromSender, err := envelope.Open(env, alice, alice.PublicKey, bob.PublicKey)
		assert.Nil(t, err, "%d: sender open", i)
		assert.Equal(t, payload, fromSender, "%d: sender plaintext", i)

		fromReceiver, err := envelope.Open(env, bob, alice.PublicKey, bob.PublicKey)
		assert.Nil(t, err, "%d: receiver open", i)
		assert.Equal(t, payload, fromReceiver, "%d: receiver plaintext", i)
	}
}

func TestSelfNote(t *testing.T) {
	alice, _ := setup(t)

	payload := message.ContentMessage{Content: "note to self"}
	env, err := envelope.Seal(payload, alice, alice.PublicKey)
	assert.Nil(t, err, "seal")

	m, err := envelope.Open(env, alice, alice.PublicKey, alice.PublicKey)
	assert.Nil(t, err, "open")
	assert.Equal(t, payload, m, "plaintext")
}

func TestWrongRecipient(t *testing.T) {
	alice, bob := setup(t)
	eve, _ := keypair.New()

	env, _ := envelope.Seal(message.ContentMessage{Content: "secret"}, alice, bob.PublicKey)

	m, err := envelope.Open(env, eve, alice.PublicKey, bob.PublicKey)
	assert.Equal(t, fault.ErrWrongRecipient, err, "third party accepted")
	assert.Nil(t, m, "message returned")

	// claiming to be the receiver without the key
	m, err = envelope.Open(env, eve, alice.PublicKey, eve.PublicKey)
	assert.Equal(t, fault.ErrDecryptionFailed, err, "forged slot accepted")
	assert.Nil(t, m, "message returned")
}

func flip(b []byte, i int) []byte {
	c := append([]byte{}, b...)
	c[i] ^= 0x01
	return c
}

func TestSingleByteFlips(t *testing.T) {
	alice, bob := setup(t)
	env, _ := envelope.Seal(message.ContentMessage{Content: "tamper with me"}, alice, bob.PublicKey)

	for i := range env.EncryptedMessage {
		damaged := *env
		damaged.EncryptedMessage = flip(env.EncryptedMessage, i)
		_, err := envelope.Open(&damaged, bob, alice.PublicKey, bob.PublicKey)
		assert.Equal(t, fault.ErrDecryptionFailed, err, "message byte: %d", i)
	}

	// either slot damaged must fail for both parties
	for _, own := range []*keypair.KeyPair{alice, bob} {
		for i := range env.EncryptedSessionKeyPair.EncryptedBySenderPublicKey {
			damaged := *env
			damaged.EncryptedSessionKeyPair.EncryptedBySenderPublicKey = flip(env.EncryptedSessionKeyPair.EncryptedBySenderPublicKey, i)
			m, err := envelope.Open(&damaged, own, alice.PublicKey, bob.PublicKey)
			assert.Equal(t, fault.ErrDecryptionFailed, err, "sender slot byte: %d", i)
			assert.Nil(t, m, "sender slot byte: %d message returned", i)
		}

		for i := range env.EncryptedSessionKeyPair.EncryptedByReceiverPublicKey {
			damaged := *env
			damaged.EncryptedSessionKeyPair.EncryptedByReceiverPublicKey = flip(env.EncryptedSessionKeyPair.EncryptedByReceiverPublicKey, i)
			m, err := envelope.Open(&damaged, own, alice.PublicKey, bob.PublicKey)
			assert.Equal(t, fault.ErrDecryptionFailed, err, "receiver slot byte: %d", i)
			assert.Nil(t, m, "receiver slot byte: %d message returned", i)
		}
	}

	for i := range env.Nonce {
		damaged := *env
		damaged.Nonce = flip(env.Nonce, i)
		_, err := envelope.Open(&damaged, bob, alice.PublicKey, bob.PublicKey)
		assert.Equal(t, fault.ErrDecryptionFailed, err, "nonce byte: %d", i)
	}

	// the original is still intact
	m, err := envelope.Open(env, bob, alice.PublicKey, bob.PublicKey)
	assert.Nil(t, err, "open")
	assert.Equal(t, message.ContentMessage{Content: "tamper with me"}, m, "plaintext")
}

func TestWireForm(t *testing.T) {
	alice, bob := setup(t)
	env, _ := envelope.Seal(message.ContentMessage{Content: "over the wire"}, alice, bob.PublicKey)

	buffer, err := env.Bytes()
	assert.Nil(t, err, "bytes")
	assert.Contains(t, string(buffer), `"encryptedSessionKeyPair":{"encryptedBySenderPublicKey":"`, "field names")

	parsed, err := envelope.Parse(buffer)
	assert.Nil(t, err, "parse")
	assert.Equal(t, env, parsed, "parsed envelope")

	m, err := envelope.Open(parsed, bob, alice.PublicKey, bob.PublicKey)
	assert.Nil(t, err, "open")
	assert.Equal(t, message.ContentMessage{Content: "over the wire"}, m, "plaintext")
}

func TestParseMalformed(t *testing.T) {
	items := []string{
		`}{`,
		`{}`,
		`{"nonce":"AAAA","encryptedMessage":"AAAA"}`,
		`{"nonce":"not base64!"}`,
	}
	for i, item := range items {
		_, err := envelope.Parse([]byte(item))
		assert.Equal(t, fault.ErrMalformedEnvelope, err, "%d: %s", i, item)
	}
}

func TestSealInvalidReceiver(t *testing.T) {
	alice, _ := setup(t)
	_, err := envelope.Seal(message.ContentMessage{Content: "x"}, alice, "nobody")
	assert.Equal(t, fault.ErrInvalidPublicKey, err, "bad receiver accepted")
}
