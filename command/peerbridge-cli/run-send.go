// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli"

	"github.com/peerbridge/peerbridge/transaction"
)

type sendReply struct {
	ID        string    `json:"id"`
	Receiver  string    `json:"receiver"`
	Timestamp time.Time `json:"timestamp"`
}

func runSend(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	receiver, err := checkPublicKey(c.String("receiver"), ErrRequiredReceiver)
	if nil != err {
		return err
	}

	text, err := checkText(c.String("message"), ErrRequiredMessage)
	if nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "receiver: %s\n", receiver)
		fmt.Fprintf(m.e, "ledger: %s\n", m.endpoint)
	}

	return submit(m, func(ctx context.Context, send sender) (*transaction.Transaction, error) {
		return send.Send(ctx, receiver, text)
	})
}

func runToken(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	receiver, err := checkPublicKey(c.String("receiver"), ErrRequiredReceiver)
	if nil != err {
		return err
	}

	token, err := checkText(c.String("token"), ErrRequiredToken)
	if nil != err {
		return err
	}

	return submit(m, func(ctx context.Context, send sender) (*transaction.Transaction, error) {
		return send.ShareToken(ctx, receiver, token)
	})
}

type sender interface {
	Send(ctx context.Context, receiver string, text string) (*transaction.Transaction, error)
	ShareToken(ctx context.Context, receiver string, token string) (*transaction.Transaction, error)
}

func submit(m *metadata, f func(context.Context, sender) (*transaction.Transaction, error)) error {
	msgr, finalise, err := m.open()
	if nil != err {
		return err
	}
	defer finalise()

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	t, err := f(ctx, msgr)
	if nil != err {
		return err
	}

	printJson(m.w, sendReply{
		ID:        t.ID,
		Receiver:  t.Receiver,
		Timestamp: t.Timestamp,
	})
	return nil
}
