// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/ledger"
	"github.com/peerbridge/peerbridge/transaction"
)

const testingDirName = "testing"

// Test main entrypoint
func TestMain(m *testing.M) {
	os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0o700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "trace",
		},
	}
	_ = logger.Initialise(logging)

	result := m.Run()

	logger.Finalise()
	os.RemoveAll(testingDirName)
	os.Exit(result)
}

func newClient(t *testing.T, handler http.HandlerFunc) (*ledger.HTTPClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	c, err := ledger.New(logger.New("ledger"), server.URL, server.Client())
	assert.Nil(t, err, "new client")
	return c, server
}

func sample() *transaction.Transaction {
	return &transaction.Transaction{
		ID:        "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		Sender:    "02aa",
		Receiver:  "03bb",
		Timestamp: time.Date(2020, 5, 1, 10, 0, 0, 250000000, time.UTC),
		Data:      []byte("envelope"),
		Signature: "01304402",
	}
}

func TestAccountTransactions(t *testing.T) {
	c, server := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method, "method")
		assert.Equal(t, "/blockchain/accounts/transactions/get", r.URL.Path, "path")
		assert.Equal(t, "02aa", r.URL.Query().Get("account"), "account")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"transactions": []*transaction.Transaction{sample()},
		})
	})
	defer server.Close()

	ts, err := c.AccountTransactions(context.Background(), "02aa")
	assert.Nil(t, err, "fetch")
	assert.Equal(t, 1, len(ts), "count")
	assert.Equal(t, sample().ID, ts[0].ID, "id")
	assert.Equal(t, []byte("envelope"), ts[0].Data, "data")
	assert.True(t, sample().Timestamp.Equal(ts[0].Timestamp), "timestamp")
}

func TestAccountTransactionsNone(t *testing.T) {
	c, server := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"transactions":null}`))
	})
	defer server.Close()

	ts, err := c.AccountTransactions(context.Background(), "02aa")
	assert.Nil(t, err, "fetch")
	assert.Equal(t, 0, len(ts), "count")
}

func TestCreateTransaction(t *testing.T) {
	c, server := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method, "method")
		assert.Equal(t, "/blockchain/transaction/create", r.URL.Path, "path")

		body := map[string]*transaction.Transaction{}
		assert.Nil(t, json.NewDecoder(r.Body).Decode(&body), "request body")
		_ = json.NewEncoder(w).Encode(body)
	})
	defer server.Close()

	created, err := c.CreateTransaction(context.Background(), sample())
	assert.Nil(t, err, "create")
	assert.Equal(t, sample().ID, created.ID, "echoed id")
	assert.Equal(t, sample().Signature, created.Signature, "echoed signature")
}

func TestCreateUnsigned(t *testing.T) {
	c, server := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request sent for unsigned transaction")
	})
	defer server.Close()

	unsigned := sample()
	unsigned.Signature = ""
	_, err := c.CreateTransaction(context.Background(), unsigned)
	assert.Equal(t, fault.ErrMissingSignature, err, "unsigned")
}

func TestFailureClasses(t *testing.T) {
	items := []struct {
		handler  http.HandlerFunc
		expected error
	}{
		{
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
			expected: fault.ErrRequestRejected,
		},
		{
			handler:  func(w http.ResponseWriter, r *http.Request) {},
			expected: fault.ErrEmptyResponse,
		},
		{
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`<html>not json</html>`))
			},
			expected: fault.ErrDecodeFailure,
		},
		{
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"transaction":null}`))
			},
			expected: fault.ErrEmptyResponse,
		},
	}

	for i, item := range items {
		c, server := newClient(t, item.handler)
		_, err := c.CreateTransaction(context.Background(), sample())
		assert.True(t, errors.Is(err, item.expected), "%d: expected: %s  actual: %v", i, item.expected, err)
		assert.True(t, fault.IsErrLedger(err), "%d: error class", i)
		server.Close()
	}
}

func TestNetworkFailure(t *testing.T) {
	c, server := newClient(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := c.AccountTransactions(context.Background(), "02aa")
	assert.True(t, errors.Is(err, fault.ErrNetworkFailure), "closed server: %v", err)
}

func TestCancelled(t *testing.T) {
	c, server := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"transactions":[]}`))
	})
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.AccountTransactions(ctx, "02aa")
	assert.True(t, errors.Is(err, fault.ErrNetworkFailure), "cancelled: %v", err)
}

func TestInvalidEndpoint(t *testing.T) {
	_, err := ledger.New(logger.New("ledger"), "localhost", nil)
	assert.NotNil(t, err, "endpoint without scheme")

	c, err := ledger.New(logger.New("ledger"), "", nil)
	assert.Nil(t, err, "default endpoint")
	assert.NotNil(t, c, "client")
}
