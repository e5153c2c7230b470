// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	"go.uber.org/multierr"

	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/transaction"
	"github.com/peerbridge/peerbridge/util"
)

// Insert - append a transaction
//
// fails with fault.ErrDuplicateId if the id is already stored; all
// index rows are written in one batch
func (s *Store) Insert(t *transaction.Transaction) error {
	if nil == t || "" == t.ID {
		return fault.ErrMissingId
	}
	if !transaction.ValidTimestamp(t.Timestamp) {
		return fault.ErrInvalidTimestamp
	}
	if s.readOnly {
		return fault.ErrReadOnly
	}

	record, err := json.Marshal(t)
	if nil != err {
		return err
	}

	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return fmt.Errorf("%w: database closed", fault.ErrIOFailure)
	}

	id := []byte(t.ID)
	found, err := s.pool.Transactions.Has(s.db, id)
	if nil != err {
		return fmt.Errorf("%w: %s", fault.ErrIOFailure, err)
	}
	if found {
		return fault.ErrDuplicateId
	}

	seq := toBigEndian(s.next)
	timeline := append(toBigEndian(uint64(t.Timestamp.UnixNano())), seq...)

	batch := new(leveldb.Batch)
	s.pool.Transactions.Put(batch, id, append(seq, record...))
	s.pool.Sequence.Put(batch, seq, id)
	s.pool.Timeline.Put(batch, timeline, id)
	s.pool.Participants.Put(batch, participantKey(t.Sender, timeline), id)
	if t.Receiver != t.Sender {
		s.pool.Participants.Put(batch, participantKey(t.Receiver, timeline), id)
	}
	s.pool.Counters.Put(batch, sequenceCounterKey, toBigEndian(s.next+1))

	if err := s.db.Write(batch, nil); nil != err {
		s.log.Errorf("insert: %s  error: %s", t.ID, err)
		return fmt.Errorf("%w: %s", fault.ErrIOFailure, err)
	}
	s.next += 1
	s.cache.Set(t)

	s.log.Debugf("inserted: %s  seq: %d", t.ID, s.next-1)
	return nil
}

// UpsertBatch - insert transactions from a sync response
//
// duplicates are skipped silently and a failing row does not stop the
// rest; returns the number inserted and the combined row errors
func (s *Store) UpsertBatch(ts []*transaction.Transaction) (int, error) {
	inserted := 0
	var errs error
	for i, t := range ts {
		err := s.Insert(t)
		switch {
		case nil == err:
			inserted += 1
		case errors.Is(err, fault.ErrDuplicateId):
		default:
			id := ""
			if nil != t {
				id = t.ID
			}
			errs = multierr.Append(errs, fmt.Errorf("row: %d  id: %q: %w", i, id, err))
		}
	}
	if nil != errs {
		s.log.Warnf("upsert: inserted: %d  failed: %d", inserted, len(multierr.Errors(errs)))
	}
	return inserted, errs
}

// Get - fetch one transaction by id
func (s *Store) Get(id string) (*transaction.Transaction, error) {
	snapshot, err := s.snapshot()
	if nil != err {
		return nil, err
	}
	defer snapshot.Release()

	return s.fetch(snapshot, []byte(id))
}

// All - every transaction in insertion order
func (s *Store) All() ([]*transaction.Transaction, error) {
	snapshot, err := s.snapshot()
	if nil != err {
		return nil, err
	}
	defer snapshot.Release()

	return s.collect(snapshot, s.pool.Sequence.NewFetchCursor(snapshot))
}

// TransactionsWithPartner - transactions where publicKey is the
// sender or the receiver
//
// ordered by timestamp ascending, equal timestamps in insertion order
func (s *Store) TransactionsWithPartner(publicKey string) ([]*transaction.Transaction, error) {
	snapshot, err := s.snapshot()
	if nil != err {
		return nil, err
	}
	defer snapshot.Release()

	cursor := s.pool.Participants.NewFetchCursor(snapshot).Prefix(util.AppendString(nil, publicKey))
	return s.collect(snapshot, cursor)
}

// Count - number of stored transactions
func (s *Store) Count() uint64 {
	s.Lock()
	defer s.Unlock()
	return s.next
}

// MostRecentTimestamp - latest timestamp of any stored transaction
//
// fails with fault.ErrEmpty if nothing is stored
func (s *Store) MostRecentTimestamp() (time.Time, error) {
	snapshot, err := s.snapshot()
	if nil != err {
		return time.Time{}, err
	}
	defer snapshot.Release()

	last, found, err := s.pool.Timeline.LastElement(snapshot)
	if nil != err {
		return time.Time{}, fmt.Errorf("%w: %s", fault.ErrIOFailure, err)
	}
	if !found {
		return time.Time{}, fault.ErrEmpty
	}
	if len(last.Key) < 8 {
		return time.Time{}, fmt.Errorf("%w: truncated timeline key: %x", fault.ErrIOFailure, last.Key)
	}
	return time.Unix(0, int64(binary.BigEndian.Uint64(last.Key[:8]))).UTC(), nil
}

func (s *Store) snapshot() (*leveldb.Snapshot, error) {
	s.Lock()
	defer s.Unlock()
	if nil == s.db {
		return nil, fmt.Errorf("%w: database closed", fault.ErrIOFailure)
	}
	snapshot, err := s.db.GetSnapshot()
	if nil != err {
		return nil, fmt.Errorf("%w: %s", fault.ErrIOFailure, err)
	}
	return snapshot, nil
}

// resolve each id value produced by an index cursor
func (s *Store) collect(r reader, cursor *FetchCursor) ([]*transaction.Transaction, error) {
	result := make([]*transaction.Transaction, 0, 16)
	err := cursor.Map(func(_ []byte, id []byte) error {
		t, err := s.fetch(r, id)
		if nil != err {
			return err
		}
		result = append(result, t)
		return nil
	})
	if nil != err {
		if fault.IsErrStore(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", fault.ErrIOFailure, err)
	}
	return result, nil
}

// read and decode one record, using the cache when possible
func (s *Store) fetch(r reader, id []byte) (*transaction.Transaction, error) {
	if t, found := s.cache.Get(string(id)); found {
		return t, nil
	}

	_, record, err := s.pool.Transactions.GetNB(r, id)
	if nil != err {
		return nil, fmt.Errorf("%w: %s", fault.ErrIOFailure, err)
	}
	if nil == record {
		return nil, fault.ErrNotFound
	}

	t := &transaction.Transaction{}
	if err := json.Unmarshal(record, t); nil != err {
		s.log.Errorf("corrupt record: %q  error: %s", id, err)
		return nil, fmt.Errorf("%w: record: %q: %s", fault.ErrIOFailure, id, err)
	}
	s.cache.Set(t)
	return t, nil
}

// participant index key: lp(account) ++ timestamp ++ seq
func participantKey(account string, timeline []byte) []byte {
	key := util.AppendString(nil, account)
	return append(key, timeline...)
}
