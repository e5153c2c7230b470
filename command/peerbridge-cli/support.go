// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/peerbridge/peerbridge/keyvault"
	"github.com/peerbridge/peerbridge/ledger"
	"github.com/peerbridge/peerbridge/messenger"
	"github.com/peerbridge/peerbridge/storage"
)

// files inside the data directory
const (
	vaultFileName = "identity.vault"
	databaseName  = "peerbridge.leveldb"
	logDirectory  = "log"
	logFileName   = "peerbridge-cli.log"
)

// limit on any single ledger request
const requestTimeout = 30 * time.Second

func (m *metadata) vaultFile() string {
	return filepath.Join(m.directory, vaultFileName)
}

// the identity vault, prompting for a passphrase if none was given
func (m *metadata) vault(confirm bool) (*keyvault.FileVault, error) {
	if "" == m.directory {
		return nil, ErrRequiredDirectory
	}
	passphrase := m.passphrase
	if "" == passphrase {
		var err error
		passphrase, err = promptPassphrase(confirm)
		if nil != err {
			return nil, err
		}
	}
	return keyvault.NewFileVault(m.vaultFile(), passphrase, keyvault.AlwaysAllow, keyvault.DefaultParameters), nil
}

// set up logging, storage and the ledger client
//
// the returned function must be called to release them
func (m *metadata) open() (*messenger.Messenger, func(), error) {
	vault, err := m.vault(false)
	if nil != err {
		return nil, nil, err
	}

	level := "warn"
	if m.verbose {
		level = "debug"
	}
	err = logger.Initialise(logger.Configuration{
		Directory: filepath.Join(m.directory, logDirectory),
		File:      logFileName,
		Size:      1024 * 1024,
		Count:     5,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: level,
		},
	})
	if nil != err {
		return nil, nil, err
	}

	store, err := storage.Open(filepath.Join(m.directory, databaseName), storage.ReadWrite)
	if nil != err {
		logger.Finalise()
		return nil, nil, err
	}

	client, err := ledger.New(logger.New("ledger"), m.endpoint, &http.Client{Timeout: requestTimeout})
	if nil != err {
		store.Close()
		logger.Finalise()
		return nil, nil, err
	}

	finalise := func() {
		store.Close()
		logger.Finalise()
	}
	return messenger.New(logger.New("messenger"), vault, store, client, nil), finalise, nil
}
