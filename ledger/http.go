// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bitmark-inc/logger"
	"golang.org/x/time/rate"

	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/transaction"
	"github.com/peerbridge/peerbridge/util"
)

// DefaultEndpoint - a ledger running on the local machine
const DefaultEndpoint = "http://localhost:8080"

const (
	accountTransactionsPath = "/blockchain/accounts/transactions/get"
	createTransactionPath   = "/blockchain/transaction/create"

	rateLimitLedger = 10
	rateBurstLedger = 5

	defaultTimeout = 30 * time.Second
)

// HTTPClient - ledger client over the ledger's JSON HTTP interface
type HTTPClient struct {
	log      *logger.L
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
}

// New - create a client for the ledger at endpoint
//
// a nil httpClient uses one with a default timeout
func New(log *logger.L, endpoint string, httpClient *http.Client) (*HTTPClient, error) {
	if "" == endpoint {
		endpoint = DefaultEndpoint
	}
	u, err := url.Parse(endpoint)
	if nil != err || "" == u.Scheme || "" == u.Host {
		return nil, fmt.Errorf("invalid ledger endpoint: %q", endpoint)
	}
	if nil == httpClient {
		httpClient = &http.Client{
			Timeout: defaultTimeout,
		}
	}
	return &HTTPClient{
		log:      log,
		endpoint: strings.TrimRight(endpoint, "/"),
		client:   httpClient,
		limiter:  rate.NewLimiter(rateLimitLedger, rateBurstLedger),
	}, nil
}

// AccountTransactions - GET the transactions of an account
func (c *HTTPClient) AccountTransactions(ctx context.Context, publicKey string) ([]*transaction.Transaction, error) {
	if err := c.limiter.Wait(ctx); nil != err {
		return nil, fmt.Errorf("%w: %s", fault.ErrNetworkFailure, err)
	}

	query := url.Values{}
	query.Set("account", publicKey)
	u := c.endpoint + accountTransactionsPath + "?" + query.Encode()

	reply := accountTransactionsReply{}
	if err := util.FetchJSON(ctx, c.client, u, &reply); nil != err {
		c.log.Warnf("account transactions: %s  error: %s", publicKey, err)
		return nil, err
	}

	result := make([]*transaction.Transaction, 0, len(reply.Transactions))
	for _, t := range reply.Transactions {
		if nil != t {
			result = append(result, t)
		}
	}
	c.log.Debugf("account transactions: %s  count: %d", publicKey, len(result))
	return result, nil
}

// CreateTransaction - POST a signed transaction
func (c *HTTPClient) CreateTransaction(ctx context.Context, t *transaction.Transaction) (*transaction.Transaction, error) {
	if nil == t || "" == t.Signature {
		return nil, fault.ErrMissingSignature
	}

	if err := c.limiter.Wait(ctx); nil != err {
		return nil, fmt.Errorf("%w: %s", fault.ErrNetworkFailure, err)
	}

	reply := transactionBody{}
	err := util.PostJSON(ctx, c.client, c.endpoint+createTransactionPath, transactionBody{Transaction: t}, &reply)
	if nil != err {
		c.log.Warnf("create transaction: %s  error: %s", t.ID, err)
		return nil, err
	}
	if nil == reply.Transaction {
		return nil, fault.ErrEmptyResponse
	}

	c.log.Infof("created transaction: %s", reply.Transaction.ID)
	return reply.Transaction, nil
}
