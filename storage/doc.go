// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - local append only transaction store
//
// a single LevelDB database is split into pools by a one byte key
// prefix:
//
//   T  id → seq ++ transaction JSON
//   I  seq → id                          insertion order
//   S  timestamp ++ seq → id             timeline
//   P  lp(account) ++ timestamp ++ seq → id   participant index
//   N  name → counter
//   K  partner → push notification token
//
// seq and timestamp are 8 byte big endian so that key order is
// numeric order; lp is a Varint64 length prefix
//
// all writes for one transaction go into a single batch and writers
// are serialised, readers work from snapshots
package storage
