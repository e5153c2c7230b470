// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"strings"

	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/secure"
)

var (
	ErrRequiredMessage   = fault.InvalidError("message is required")
	ErrRequiredPartner   = fault.InvalidError("partner is required")
	ErrRequiredReceiver  = fault.InvalidError("receiver is required")
	ErrRequiredToken     = fault.InvalidError("token is required")
	ErrRequiredDirectory = fault.InvalidError("data directory is required")
)

// a public key of some other party
func checkPublicKey(publicKey string, missing error) (string, error) {
	publicKey = strings.TrimSpace(publicKey)
	if "" == publicKey {
		return "", missing
	}
	if _, err := secure.ParsePublicKey(publicKey); nil != err {
		return "", err
	}
	return publicKey, nil
}

// check for non-blank text
func checkText(text string, missing error) (string, error) {
	if "" == strings.TrimSpace(text) {
		return "", missing
	}
	return text, nil
}
