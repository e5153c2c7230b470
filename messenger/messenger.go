// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messenger - the operations a UI shell calls
//
// ties the key vault, the local store and the ledger together
package messenger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/bitmark-inc/logger"
	"go.uber.org/multierr"

	"github.com/peerbridge/peerbridge/chat"
	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/keyvault"
	"github.com/peerbridge/peerbridge/ledger"
	"github.com/peerbridge/peerbridge/message"
	"github.com/peerbridge/peerbridge/messagebus"
	"github.com/peerbridge/peerbridge/transaction"
)

// names used on the message bus
const (
	busName      = "messenger"
	SentEvent    = "sent"
	SyncedEvent  = "synced"
	TokenEvent   = "token"
	RejectEvent  = "rejected"
	FailureEvent = "failed"
)

// Store - the local transaction store as used here
type Store interface {
	chat.Source
	Get(id string) (*transaction.Transaction, error)
	Insert(t *transaction.Transaction) error
	UpsertBatch(ts []*transaction.Transaction) (int, error)
	MostRecentTimestamp() (time.Time, error)
	RegisterToken(partner string, token string) error
	Token(partner string) (string, error)
}

// SyncResult - counts from one sync
type SyncResult struct {
	Fetched  int
	Rejected int
	Inserted int
	Tokens   int
}

// Messenger - send, sync and read conversations
type Messenger struct {
	log    *logger.L
	vault  keyvault.Vault
	store  Store
	client ledger.Client
	bus    *messagebus.Queue
}

// New - a messenger over the given collaborators, bus may be nil
func New(log *logger.L, vault keyvault.Vault, store Store, client ledger.Client, bus *messagebus.Queue) *Messenger {
	return &Messenger{
		log:    log,
		vault:  vault,
		store:  store,
		client: client,
		bus:    bus,
	}
}

// Send - seal a chat text to receiver, submit it and keep a copy
func (m *Messenger) Send(ctx context.Context, receiver string, text string) (*transaction.Transaction, error) {
	return m.submit(ctx, receiver, message.ContentMessage{Content: text})
}

// ShareToken - send our push notification token to a partner
func (m *Messenger) ShareToken(ctx context.Context, receiver string, token string) (*transaction.Transaction, error) {
	return m.submit(ctx, receiver, message.TokenMessage{Token: token})
}

func (m *Messenger) submit(ctx context.Context, receiver string, payload message.Message) (*transaction.Transaction, error) {
	own, err := m.vault.Load()
	if nil != err {
		return nil, err
	}
	defer own.Zero()

	t, err := transaction.Create(own, receiver, 0, 0, payload)
	if nil != err {
		return nil, err
	}

	created, err := m.client.CreateTransaction(ctx, t)
	if nil != err {
		m.bus.Send(busName, FailureEvent, err)
		return nil, err
	}

	// the ledger must echo the transaction that was signed
	if created.ID != t.ID || created.Sender != t.Sender {
		m.log.Errorf("ledger returned: %s  for: %s", created.ID, t.ID)
		m.bus.Send(busName, FailureEvent, fault.ErrInvalidSignature)
		return nil, fault.ErrInvalidSignature
	}
	if err := created.VerifySignature(); nil != err {
		m.log.Errorf("ledger returned transaction: %s  error: %s", created.ID, err)
		m.bus.Send(busName, FailureEvent, err)
		return nil, err
	}

	err = m.store.Insert(created)
	if nil != err && !errors.Is(err, fault.ErrDuplicateId) {
		return nil, err
	}

	m.log.Infof("sent: %s  to: %s", created.ID, chat.ShortKey(receiver))
	m.bus.Send(busName, SentEvent, created.ID)
	return created, nil
}

// SyncOnce - fetch our transactions from the ledger and store the new
// ones
//
// transactions with a bad signature are rejected and never stored;
// tokens shared with us by partners are registered, the latest wins
func (m *Messenger) SyncOnce(ctx context.Context) (SyncResult, error) {
	result := SyncResult{}

	own, err := m.vault.Load()
	if nil != err {
		return result, err
	}
	defer own.Zero()

	fetched, err := m.client.AccountTransactions(ctx, own.PublicKey)
	if nil != err {
		m.bus.Send(busName, FailureEvent, err)
		return result, err
	}
	result.Fetched = len(fetched)

	fresh := make([]*transaction.Transaction, 0, len(fetched))
	for _, t := range fetched {
		if err := t.VerifySignature(); nil != err {
			result.Rejected += 1
			m.log.Warnf("reject: %s  from: %s  error: %s", t.ID, chat.ShortKey(t.Sender), err)
			m.bus.Send(busName, RejectEvent, t.ID)
			continue
		}
		if _, err := m.store.Get(t.ID); nil == err {
			continue
		} else if !errors.Is(err, fault.ErrNotFound) {
			return result, err
		}
		fresh = append(fresh, t)
	}

	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].Timestamp.Before(fresh[j].Timestamp)
	})

	inserted, batchErr := m.store.UpsertBatch(fresh)
	result.Inserted = inserted

	for _, t := range fresh {
		if t.Receiver != own.PublicKey || t.Sender == own.PublicKey || 0 == len(t.Data) {
			continue
		}
		// only rows that were actually stored
		if nil != batchErr {
			if _, err := m.store.Get(t.ID); nil != err {
				continue
			}
		}
		payload, err := t.Open(own)
		if nil != err {
			m.log.Debugf("sync: %s  not readable: %s", t.ID, err)
			continue
		}
		tm, ok := payload.(message.TokenMessage)
		if !ok {
			continue
		}
		if err := m.store.RegisterToken(t.Sender, tm.Token); nil != err {
			batchErr = multierr.Append(batchErr, fmt.Errorf("token from: %s: %w", t.Sender, err))
			continue
		}
		result.Tokens += 1
		m.bus.Send(busName, TokenEvent, t.Sender)
	}

	m.log.Infof("sync: fetched: %d  rejected: %d  inserted: %d  tokens: %d", result.Fetched, result.Rejected, result.Inserted, result.Tokens)
	m.bus.Send(busName, SyncedEvent, result)
	return result, batchErr
}

// Chats - the conversation list, most recent first
func (m *Messenger) Chats() ([]chat.Chat, error) {
	publicKey, err := m.vault.PublicKey()
	if nil != err {
		return nil, err
	}
	return chat.Load(m.store, publicKey)
}

// History - the conversation with partner, oldest first
func (m *Messenger) History(partner string) ([]chat.Entry, error) {
	own, err := m.vault.Load()
	if nil != err {
		return nil, err
	}
	defer own.Zero()
	return chat.History(m.store, own, partner)
}

// LastSynced - timestamp of the newest stored transaction
func (m *Messenger) LastSynced() (time.Time, error) {
	return m.store.MostRecentTimestamp()
}

// Token - the push notification token a partner shared with us
func (m *Messenger) Token(partner string) (string, error) {
	return m.store.Token(partner)
}

// Preview - the text shown for a chat in the conversation list
func (m *Messenger) Preview(c chat.Chat) (string, error) {
	own, err := m.vault.Load()
	if nil != err {
		return "", err
	}
	defer own.Zero()
	return chat.Preview(c, own), nil
}
