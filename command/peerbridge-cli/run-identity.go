// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/peerbridge/peerbridge/keyvault"
)

func runIdentity(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	// the public key is stored in clear
	vault := keyvault.NewFileVault(m.vaultFile(), "", keyvault.AlwaysAllow, keyvault.DefaultParameters)
	publicKey, err := vault.PublicKey()
	if nil != err {
		return err
	}

	fmt.Fprintf(m.w, "%s\n", publicKey)
	return nil
}
