// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package message_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/message"
)

func TestEncodeDecode(t *testing.T) {
	items := []message.Message{
		message.ContentMessage{Content: "hello bob"},
		message.ContentMessage{Content: ""},
		message.TokenMessage{Token: "a1b2c3"},
	}

	for i, item := range items {
		buffer, err := message.Encode(item)
		assert.Nil(t, err, "%d: encode", i)

		decoded, err := message.Decode(buffer)
		assert.Nil(t, err, "%d: decode", i)
		assert.Equal(t, item, decoded, "%d: wrong message", i)
	}
}

func TestEncodePointer(t *testing.T) {
	buffer, err := message.Encode(&message.TokenMessage{Token: "xyz"})
	assert.Nil(t, err, "encode")
	assert.JSONEq(t, `{"typeIdentifier":"token","token":"xyz"}`, string(buffer), "wire form")
}

func TestDecodeDispatch(t *testing.T) {
	// a token payload that also carries a content field must not
	// cross decode as content
	m, err := message.Decode([]byte(`{"typeIdentifier":"token","token":"t","content":"c"}`))
	assert.Nil(t, err, "decode")
	assert.Equal(t, message.TokenMessage{Token: "t"}, m, "wrong variant")
}

func TestDecodeFailures(t *testing.T) {
	items := []string{
		``,
		`not json`,
		`{"content":"no discriminant"}`,
		`{"typeIdentifier":"image","url":"x"}`,
		`{"typeIdentifier":"content","content":42}`,
		`[1,2,3]`,
	}
	for i, item := range items {
		m, err := message.Decode([]byte(item))
		assert.Equal(t, fault.ErrUnknownPayloadType, err, "%d: %q", i, item)
		assert.Nil(t, m, "%d: message returned", i)
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "hi", message.Text(message.ContentMessage{Content: "hi"}), "content")
	assert.Equal(t, "(notification token)", message.Text(message.TokenMessage{Token: "x"}), "token")
}
