// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyvault

import (
	"sync"

	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/keypair"
)

// MemoryVault - a vault that lasts as long as the process
type MemoryVault struct {
	sync.Mutex
	auth    Authenticator
	keyPair *keypair.KeyPair
}

// NewMemoryVault - an empty vault
func NewMemoryVault(auth Authenticator) *MemoryVault {
	return &MemoryVault{
		auth: auth,
	}
}

// Load - a copy of the stored key pair
func (v *MemoryVault) Load() (*keypair.KeyPair, error) {
	v.Lock()
	defer v.Unlock()

	if nil == v.keyPair {
		return nil, fault.ErrVaultNotFound
	}
	if err := authenticate(v.auth); nil != err {
		return nil, err
	}
	k := *v.keyPair
	return &k, nil
}

// Store - keep a copy of a valid key pair
func (v *MemoryVault) Store(k *keypair.KeyPair) error {
	if err := k.Validate(); nil != err {
		return err
	}

	v.Lock()
	defer v.Unlock()

	c := *k
	v.keyPair = &c
	return nil
}

// Delete - forget the key pair
func (v *MemoryVault) Delete() error {
	v.Lock()
	defer v.Unlock()

	if nil == v.keyPair {
		return fault.ErrVaultNotFound
	}
	v.keyPair = nil
	return nil
}

// PublicKey - the stored public key
func (v *MemoryVault) PublicKey() (string, error) {
	v.Lock()
	defer v.Unlock()

	if nil == v.keyPair {
		return "", fault.ErrVaultNotFound
	}
	return v.keyPair.PublicKey, nil
}
