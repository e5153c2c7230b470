// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package secure - cryptographic operations for the messaging core
//
// All asymmetric keys are secp256k1.  Public keys travel as the
// lowercase hex of the 33 byte compressed point and private keys as
// the hex of the 32 byte scalar.
//
// Symmetric encryption:   ChaCha20-Poly1305, aeadNonce(12) ++ ciphertext ++ tag(16)
// Asymmetric encryption:  ECIES, ephemeralPublic(33) ++ aeadNonce(12) ++ ciphertext ++ tag(16)
//                         key = HKDF-SHA256(ECDH(ephemeral, recipient), ephemeralPublic ++ recipientPublic)
// Signatures:             ECDSA over SHA-256(message), DER encoded
package secure
