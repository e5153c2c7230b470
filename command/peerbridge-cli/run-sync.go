// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"

	"github.com/urfave/cli"
)

func runSync(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	msgr, finalise, err := m.open()
	if nil != err {
		return err
	}
	defer finalise()

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	result, err := msgr.SyncOnce(ctx)
	if nil != err {
		return err
	}

	printJson(m.w, result)
	return nil
}
