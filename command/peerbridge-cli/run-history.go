// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/urfave/cli"
)

type historyItem struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Outgoing  bool      `json:"outgoing"`
	Status    string    `json:"status"`
	Balance   uint64    `json:"balance,omitempty"`
	Text      string    `json:"text"`
}

func runHistory(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	partner, err := checkPublicKey(c.String("partner"), ErrRequiredPartner)
	if nil != err {
		return err
	}

	msgr, finalise, err := m.open()
	if nil != err {
		return err
	}
	defer finalise()

	entries, err := msgr.History(partner)
	if nil != err {
		return err
	}

	items := make([]historyItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, historyItem{
			ID:        e.Transaction.ID,
			Timestamp: e.Transaction.Timestamp,
			Outgoing:  e.Outgoing,
			Status:    e.Status.String(),
			Balance:   e.Transaction.Balance,
			Text:      e.Text(),
		})
	}

	printJson(m.w, items)
	return nil
}
