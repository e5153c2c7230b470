// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package message - the payloads carried inside an envelope
//
// every payload is encoded as a JSON object whose typeIdentifier
// field selects the variant; decoding reads the discriminant first and
// then decodes exactly one variant
package message

import (
	"encoding/json"

	"github.com/peerbridge/peerbridge/fault"
)

// Type - payload discriminant
type Type string

// known payload types
const (
	ContentType Type = "content"
	TokenType   Type = "token"
)

// Message - any payload that can be sealed in an envelope
type Message interface {
	Type() Type
}

// ContentMessage - a chat text
type ContentMessage struct {
	Content string `json:"content"`
}

// TokenMessage - a push notification token shared with a partner
type TokenMessage struct {
	Token string `json:"token"`
}

// Type - discriminant of a content message
func (ContentMessage) Type() Type { return ContentType }

// Type - discriminant of a token message
func (TokenMessage) Type() Type { return TokenType }

type header struct {
	TypeIdentifier Type `json:"typeIdentifier"`
}

type contentWire struct {
	TypeIdentifier Type   `json:"typeIdentifier"`
	Content        string `json:"content"`
}

type tokenWire struct {
	TypeIdentifier Type   `json:"typeIdentifier"`
	Token          string `json:"token"`
}

// Encode - serialise a payload with its discriminant
func Encode(m Message) ([]byte, error) {
	switch v := m.(type) {
	case ContentMessage:
		return json.Marshal(contentWire{TypeIdentifier: ContentType, Content: v.Content})
	case *ContentMessage:
		return json.Marshal(contentWire{TypeIdentifier: ContentType, Content: v.Content})
	case TokenMessage:
		return json.Marshal(tokenWire{TypeIdentifier: TokenType, Token: v.Token})
	case *TokenMessage:
		return json.Marshal(tokenWire{TypeIdentifier: TokenType, Token: v.Token})
	default:
		return nil, fault.ErrUnknownPayloadType
	}
}

// Decode - parse a payload
//
// anything that is not a well formed known variant is rejected with
// fault.ErrUnknownPayloadType
func Decode(buffer []byte) (Message, error) {
	h := header{}
	if err := json.Unmarshal(buffer, &h); nil != err {
		return nil, fault.ErrUnknownPayloadType
	}

	switch h.TypeIdentifier {
	case ContentType:
		w := contentWire{}
		if err := json.Unmarshal(buffer, &w); nil != err {
			return nil, fault.ErrUnknownPayloadType
		}
		return ContentMessage{Content: w.Content}, nil

	case TokenType:
		w := tokenWire{}
		if err := json.Unmarshal(buffer, &w); nil != err {
			return nil, fault.ErrUnknownPayloadType
		}
		return TokenMessage{Token: w.Token}, nil

	default:
		return nil, fault.ErrUnknownPayloadType
	}
}

// Text - a one line rendering for chat lists
func Text(m Message) string {
	switch v := m.(type) {
	case ContentMessage:
		return v.Content
	case TokenMessage:
		return "(notification token)"
	default:
		return ""
	}
}
