// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/peerbridge/peerbridge/fault"
)

// storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Transactions *PoolHandle `prefix:"T"`
	Sequence     *PoolHandle `prefix:"I"`
	Timeline     *PoolHandle `prefix:"S"`
	Participants *PoolHandle `prefix:"P"`
	Counters     *PoolHandle `prefix:"N"`
	Tokens       *PoolHandle `prefix:"K"`
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

// counter holding the next insertion sequence number
var sequenceCounterKey = []byte("transactions")

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Store - an open transaction database
type Store struct {
	sync.Mutex // serialises writers

	log      *logger.L
	db       *leveldb.DB
	pool     pools
	cache    *recordCache
	next     uint64
	readOnly bool
}

// Open - open or create the database in directory
func Open(directory string, readOnly bool) (*Store, error) {
	log := logger.New("storage")

	db, version, err := getDB(directory, readOnly)
	if nil != err {
		log.Errorf("open: %q  error: %s", directory, err)
		return nil, fmt.Errorf("%w: %s", fault.ErrIOFailure, err)
	}

	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	// ensure no database downgrade
	if version > currentDBVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return nil, fault.ErrDatabaseVersion
	}

	if 0 == version {
		if readOnly {
			log.Criticalf("read only database has no version")
			return nil, fault.ErrDatabaseVersion
		}
		// database was empty so tag as current version
		if err := putVersion(db, currentDBVersion); nil != err {
			return nil, fmt.Errorf("%w: %s", fault.ErrIOFailure, err)
		}
	}

	s := &Store{
		log:      log,
		db:       db,
		cache:    newRecordCache(),
		readOnly: readOnly,
	}

	// this will be a struct type
	poolType := reflect.TypeOf(s.pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&s.pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return nil, fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		prefix := prefixTag[0]
		limit := []byte(nil)
		if prefix < 255 {
			limit = []byte{prefix + 1}
		}

		p := &PoolHandle{
			prefix: prefix,
			limit:  limit,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	next, found, err := s.pool.Counters.GetN(db, sequenceCounterKey)
	if nil != err {
		return nil, fmt.Errorf("%w: %s", fault.ErrIOFailure, err)
	}
	if found {
		s.next = next
	}

	log.Infof("opened: %q  version: %d  transactions: %d  read only: %t", directory, currentDBVersion, s.next, readOnly)

	ok = true // prevent db close
	return s, nil
}

// Close - close the database
func (s *Store) Close() error {
	s.Lock()
	defer s.Unlock()

	if nil == s.db {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.cache.Clear()
	s.log.Info("closed")
	s.log.Flush()
	return err
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}
