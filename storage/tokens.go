// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/peerbridge/peerbridge/fault"
)

// RegisterToken - remember the push notification token a partner
// shared, replacing any earlier one
func (s *Store) RegisterToken(partner string, token string) error {
	if "" == partner {
		return fault.ErrInvalidPublicKey
	}
	if s.readOnly {
		return fault.ErrReadOnly
	}

	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return fmt.Errorf("%w: database closed", fault.ErrIOFailure)
	}

	batch := new(leveldb.Batch)
	s.pool.Tokens.Put(batch, []byte(partner), []byte(token))
	if err := s.db.Write(batch, nil); nil != err {
		return fmt.Errorf("%w: %s", fault.ErrIOFailure, err)
	}
	s.log.Debugf("token registered for: %s", partner)
	return nil
}

// Token - the push notification token of a partner
func (s *Store) Token(partner string) (string, error) {
	snapshot, err := s.snapshot()
	if nil != err {
		return "", err
	}
	defer snapshot.Release()

	token, err := s.pool.Tokens.Get(snapshot, []byte(partner))
	if nil != err {
		return "", fmt.Errorf("%w: %s", fault.ErrIOFailure, err)
	}
	if nil == token {
		return "", fault.ErrNotFound
	}
	return string(token), nil
}
