// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.
//
// Each component of the messaging core has its own class so callers
// can branch on the kind of failure: a CryptoError or EnvelopeError
// on a historical message is expected and non-fatal, while an
// InvalidError from signature verification marks tampering.
package fault
