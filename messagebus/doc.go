// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - notifications from the core to a UI shell
//
// the sender never blocks: when the reader falls behind new messages
// are dropped and Send reports false
package messagebus
