// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/keypair"
	"github.com/peerbridge/peerbridge/util"
)

type setupReply struct {
	PublicKey string `json:"publicKey"`
	Vault     string `json:"vault"`
}

func runSetup(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	if util.EnsureFileExists(m.vaultFile()) {
		return fault.ErrVaultAlreadyExists
	}

	var k *keypair.KeyPair
	var err error
	if privateKey := c.String("privateKey"); "" != privateKey {
		k, err = keypair.FromPrivateKey(privateKey)
	} else {
		k, err = keypair.New()
	}
	if nil != err {
		return err
	}
	defer k.Zero()

	vault, err := m.vault(true)
	if nil != err {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.vaultFile()), 0700); nil != err {
		return err
	}
	if err := vault.Store(k); nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "stored identity in: %q\n", m.vaultFile())
	}

	printJson(m.w, setupReply{
		PublicKey: k.PublicKey,
		Vault:     m.vaultFile(),
	})
	return nil
}
