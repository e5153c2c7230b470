// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - access to the external ledger service that stores
// and broadcasts transactions
package ledger

import (
	"context"

	"github.com/peerbridge/peerbridge/transaction"
)

// Client - the ledger operations the messenger depends on
//
// failures are one of fault.ErrNetworkFailure, fault.ErrDecodeFailure,
// fault.ErrEmptyResponse or fault.ErrRequestRejected, possibly
// wrapped; nothing is retried
type Client interface {
	// every transaction where publicKey is sender or receiver
	AccountTransactions(ctx context.Context, publicKey string) ([]*transaction.Transaction, error)

	// submit a signed transaction, returns the ledger's copy
	CreateTransaction(ctx context.Context, t *transaction.Transaction) (*transaction.Transaction, error)
}

// wire bodies
type accountTransactionsReply struct {
	Transactions []*transaction.Transaction `json:"transactions"`
}

type transactionBody struct {
	Transaction *transaction.Transaction `json:"transaction"`
}
