// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type CryptoError GenericError
type EnvelopeError GenericError
type ExistsError GenericError
type InvalidError GenericError
type LedgerError GenericError
type StoreError GenericError
type VaultError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyInitialised        = ExistsError("already initialised")
	ErrAccessDenied              = VaultError("access denied")
	ErrAsymmetricOperationFailed = CryptoError("asymmetric operation failed")
	ErrAuthenticationFailed      = CryptoError("authentication failed")
	ErrDatabaseVersion           = StoreError("incompatible database version")
	ErrDecodeFailure             = LedgerError("response could not be decoded")
	ErrDecryptionFailed          = EnvelopeError("decryption failed")
	ErrDuplicateId               = StoreError("duplicate transaction id")
	ErrEmpty                     = StoreError("store is empty")
	ErrEmptyResponse             = LedgerError("empty response")
	ErrEncryptionFailed          = CryptoError("encryption failed")
	ErrInvalidKeyLength          = InvalidError("invalid key length")
	ErrInvalidLoggerChannel      = InvalidError("invalid logger channel")
	ErrInvalidParameters         = InvalidError("invalid key derivation parameters")
	ErrInvalidPassphraseLength   = InvalidError("invalid passphrase length")
	ErrInvalidPrivateKey         = InvalidError("invalid private key")
	ErrInvalidPublicKey          = InvalidError("invalid public key")
	ErrInvalidSignature          = InvalidError("invalid signature")
	ErrInvalidTimestamp          = InvalidError("invalid timestamp")
	ErrIOFailure                 = StoreError("i/o failure")
	ErrMalformedEnvelope         = EnvelopeError("malformed envelope")
	ErrMissingId                 = InvalidError("missing transaction id")
	ErrMissingSignature          = InvalidError("missing signature")
	ErrNetworkFailure            = LedgerError("network failure")
	ErrNoPayload                 = EnvelopeError("transaction has no payload")
	ErrNotFound                  = StoreError("not found")
	ErrPassphraseMismatch        = InvalidError("passphrase mismatch")
	ErrPlaintextTooLong          = CryptoError("plaintext too long")
	ErrReadOnly                  = StoreError("store is read only")
	ErrRequestRejected           = LedgerError("request rejected")
	ErrSigningFailed             = CryptoError("signing failed")
	ErrUnknownPayloadType        = EnvelopeError("unknown message")
	ErrUnsupportedScheme         = InvalidError("unsupported signature scheme")
	ErrVaultAlreadyExists        = ExistsError("vault already exists")
	ErrVaultCorrupted            = VaultError("vault is corrupted")
	ErrVaultNotFound             = VaultError("no key pair in vault")
	ErrWrongRecipient            = EnvelopeError("not addressed to this identity")
)

// the error interface methods
func (e GenericError) Error() string  { return string(e) }
func (e CryptoError) Error() string   { return string(e) }
func (e EnvelopeError) Error() string { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LedgerError) Error() string   { return string(e) }
func (e StoreError) Error() string    { return string(e) }
func (e VaultError) Error() string    { return string(e) }

// determine the class of an error
//
// these see through errors wrapped with fmt.Errorf("%w")
func IsErrCrypto(e error) bool   { var x CryptoError; return errors.As(e, &x) }
func IsErrEnvelope(e error) bool { var x EnvelopeError; return errors.As(e, &x) }
func IsErrExists(e error) bool   { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool  { var x InvalidError; return errors.As(e, &x) }
func IsErrLedger(e error) bool   { var x LedgerError; return errors.As(e, &x) }
func IsErrStore(e error) bool    { var x StoreError; return errors.As(e, &x) }
func IsErrVault(e error) bool    { var x VaultError; return errors.As(e, &x) }
