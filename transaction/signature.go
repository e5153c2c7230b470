// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transaction

import (
	"encoding/hex"

	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/secure"
	"github.com/peerbridge/peerbridge/util"
)

// Sign - sign the canonical form of t with a hex private key
//
// returns hex(Varint64(scheme) ++ DER signature), t is not modified
func Sign(t *Transaction, privateKey string) (string, error) {
	message, err := t.Pack()
	if nil != err {
		return "", err
	}

	der, err := secure.Sign(message, privateKey)
	if nil != err {
		return "", err
	}

	signature := util.ToVarint64(SchemeV1)
	signature = append(signature, der...)
	return hex.EncodeToString(signature), nil
}

// Verify - check that signature covers the current fields of t
func Verify(t *Transaction, signature string, publicKey string) bool {
	buffer, err := hex.DecodeString(signature)
	if nil != err {
		return false
	}

	scheme, n := util.FromVarint64(buffer)
	if 0 == n {
		return false
	}

	message, err := t.pack(scheme)
	if nil != err {
		return false
	}

	return secure.Verify(message, buffer[n:], publicKey)
}

// VerifySignature - check the attached signature against the sender
func (t *Transaction) VerifySignature() error {
	if "" == t.Signature {
		return fault.ErrMissingSignature
	}
	if !Verify(t, t.Signature, t.Sender) {
		return fault.ErrInvalidSignature
	}
	return nil
}
