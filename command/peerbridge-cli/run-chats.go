// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/urfave/cli"
)

type chatItem struct {
	Partner   string    `json:"partner"`
	Short     string    `json:"short"`
	Timestamp time.Time `json:"timestamp"`
	Preview   string    `json:"preview"`
}

func runChats(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	msgr, finalise, err := m.open()
	if nil != err {
		return err
	}
	defer finalise()

	chats, err := msgr.Chats()
	if nil != err {
		return err
	}

	items := make([]chatItem, 0, len(chats))
	for _, ch := range chats {
		preview, err := msgr.Preview(ch)
		if nil != err {
			return err
		}
		items = append(items, chatItem{
			Partner:   ch.PartnerPublicKey,
			Short:     ch.ShortKey(),
			Timestamp: ch.LastTransaction.Timestamp,
			Preview:   preview,
		})
	}

	printJson(m.w, items)
	return nil
}
