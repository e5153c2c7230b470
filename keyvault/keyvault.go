// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package keyvault - storage of the local key pair
//
// access to the private key passes through an Authenticator so a
// host can demand a passcode or biometric check first
package keyvault

import (
	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/keypair"
)

// Vault - holds at most one key pair
type Vault interface {
	// the full key pair, requires authentication
	Load() (*keypair.KeyPair, error)

	// replace the stored key pair
	Store(*keypair.KeyPair) error

	// remove the stored key pair
	Delete() error

	// the public key only, no authentication needed
	PublicKey() (string, error)
}

// Authenticator - decides whether the private key may be released
type Authenticator interface {
	Authenticate(reason string) error
}

// AuthenticatorFunc - adapt a function to an Authenticator
type AuthenticatorFunc func(reason string) error

// Authenticate - call f
func (f AuthenticatorFunc) Authenticate(reason string) error {
	return f(reason)
}

// AlwaysAllow - for hosts that protect the vault by other means
var AlwaysAllow = AuthenticatorFunc(func(string) error { return nil })

// reason given to the authenticator
const loadReason = "access the private key"

// run the authenticator, any refusal becomes fault.ErrAccessDenied
func authenticate(auth Authenticator) error {
	if nil == auth {
		return nil
	}
	if err := auth.Authenticate(loadReason); nil != err {
		return fault.ErrAccessDenied
	}
	return nil
}
