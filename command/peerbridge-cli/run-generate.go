// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/peerbridge/peerbridge/keypair"
)

func runGenerate(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	k, err := keypair.New()
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "public key: %s\n", k.PublicKey)
	}

	printJson(m.w, k)
	return nil
}
