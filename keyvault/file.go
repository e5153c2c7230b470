// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package keyvault

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/argon2"

	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/keypair"
	"github.com/peerbridge/peerbridge/secure"
)

// format of the vault file
const fileVersion = 1

const saltSize = 16

// Parameters - argon2id cost settings
type Parameters struct {
	Time    uint32 `json:"time"`
	Memory  uint32 `json:"memory"` // KiB
	Threads uint8  `json:"threads"`
}

// DefaultParameters - interactive cost
var DefaultParameters = Parameters{
	Time:    1,
	Memory:  64 * 1024,
	Threads: 4,
}

// MaximumParameters - highest cost accepted, a vault file asking for
// more is treated as corrupted
var MaximumParameters = Parameters{
	Time:    4 * DefaultParameters.Time,
	Memory:  4 * DefaultParameters.Memory,
	Threads: 4 * DefaultParameters.Threads,
}

// Valid - true if the cost is non-zero and within MaximumParameters
func (p Parameters) Valid() bool {
	return 0 != p.Time && 0 != p.Memory && 0 != p.Threads &&
		p.Time <= MaximumParameters.Time &&
		p.Memory <= MaximumParameters.Memory &&
		p.Threads <= MaximumParameters.Threads
}

// on disk form
//
// the public key is stored in clear and authenticated with the sealed
// private key
type vaultFile struct {
	Version    int        `json:"version"`
	PublicKey  string     `json:"publicKey"`
	Salt       []byte     `json:"salt"`
	KDF        Parameters `json:"kdf"`
	PrivateKey []byte     `json:"privateKey"`
}

// FileVault - a key pair in a passphrase protected file
type FileVault struct {
	sync.Mutex
	fileName   string
	passphrase string
	auth       Authenticator
	parameters Parameters
}

// NewFileVault - a vault in fileName sealed with passphrase
func NewFileVault(fileName string, passphrase string, auth Authenticator, parameters Parameters) *FileVault {
	return &FileVault{
		fileName:   fileName,
		passphrase: passphrase,
		auth:       auth,
		parameters: parameters,
	}
}

// Load - authenticate, then unseal the private key
func (v *FileVault) Load() (*keypair.KeyPair, error) {
	v.Lock()
	defer v.Unlock()

	f, err := v.read()
	if nil != err {
		return nil, err
	}

	if err := authenticate(v.auth); nil != err {
		return nil, err
	}

	key := secure.SymmetricKey{}
	copy(key[:], argon2.IDKey([]byte(v.passphrase), f.Salt, f.KDF.Time, f.KDF.Memory, f.KDF.Threads, secure.SymmetricKeySize))
	defer key.Zero()

	privateKey, err := secure.DecryptSymmetricWithData(f.PrivateKey, key, []byte(f.PublicKey))
	if nil != err {
		return nil, fault.ErrAccessDenied
	}

	k, err := keypair.FromPrivateKey(hex.EncodeToString(privateKey))
	if nil != err {
		return nil, fault.ErrVaultCorrupted
	}
	if k.PublicKey != f.PublicKey {
		return nil, fault.ErrVaultCorrupted
	}
	return k, nil
}

// Store - seal a key pair into the file, replacing any previous one
func (v *FileVault) Store(k *keypair.KeyPair) error {
	if err := k.Validate(); nil != err {
		return err
	}
	if !v.parameters.Valid() {
		return fault.ErrInvalidParameters
	}
	privateKey, err := hex.DecodeString(k.PrivateKey)
	if nil != err {
		return fault.ErrInvalidPrivateKey
	}
	defer func() {
		for i := range privateKey {
			privateKey[i] = 0
		}
	}()

	salt, err := secure.RandomNonce(saltSize)
	if nil != err {
		return err
	}

	key := secure.SymmetricKey{}
	copy(key[:], argon2.IDKey([]byte(v.passphrase), salt, v.parameters.Time, v.parameters.Memory, v.parameters.Threads, secure.SymmetricKeySize))
	defer key.Zero()

	sealed, err := secure.EncryptSymmetricWithData(privateKey, key, []byte(k.PublicKey))
	if nil != err {
		return err
	}

	buffer, err := json.MarshalIndent(vaultFile{
		Version:    fileVersion,
		PublicKey:  k.PublicKey,
		Salt:       salt,
		KDF:        v.parameters,
		PrivateKey: sealed,
	}, "", "  ")
	if nil != err {
		return err
	}

	v.Lock()
	defer v.Unlock()

	temporary := v.fileName + ".new"
	if err := os.MkdirAll(filepath.Dir(v.fileName), 0o700); nil != err {
		return err
	}
	if err := os.WriteFile(temporary, buffer, 0o600); nil != err {
		return err
	}
	return os.Rename(temporary, v.fileName)
}

// Delete - remove the vault file
func (v *FileVault) Delete() error {
	v.Lock()
	defer v.Unlock()

	err := os.Remove(v.fileName)
	if errors.Is(err, os.ErrNotExist) {
		return fault.ErrVaultNotFound
	}
	return err
}

// PublicKey - the public key from the file, no passphrase needed
func (v *FileVault) PublicKey() (string, error) {
	v.Lock()
	defer v.Unlock()

	f, err := v.read()
	if nil != err {
		return "", err
	}
	return f.PublicKey, nil
}

func (v *FileVault) read() (*vaultFile, error) {
	buffer, err := os.ReadFile(v.fileName)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fault.ErrVaultNotFound
	}
	if nil != err {
		return nil, err
	}

	f := &vaultFile{}
	if err := json.Unmarshal(buffer, f); nil != err {
		return nil, fault.ErrVaultCorrupted
	}
	if fileVersion != f.Version || saltSize != len(f.Salt) || 0 == len(f.PrivateKey) {
		return nil, fault.ErrVaultCorrupted
	}
	if _, err := secure.ParsePublicKey(f.PublicKey); nil != err {
		return nil, fault.ErrVaultCorrupted
	}
	if !f.KDF.Valid() {
		return nil, fault.ErrVaultCorrupted
	}
	return f, nil
}
