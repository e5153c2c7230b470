// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peerbridge/peerbridge/keyvault"
	"github.com/peerbridge/peerbridge/ledger"
)

func writeConfig(t *testing.T, text string) string {
	dir := t.TempDir()
	fileName := filepath.Join(dir, "peerbridged.conf")
	err := os.WriteFile(fileName, []byte(text), 0o600)
	assert.Nil(t, err, "write config")
	return fileName
}

func TestConfigurationDefaults(t *testing.T) {
	fileName := writeConfig(t, `return { data_directory = "." }`)
	dir := filepath.Dir(fileName)

	c, err := getConfiguration(fileName)
	assert.Nil(t, err, "configuration")

	assert.Equal(t, filepath.Clean(dir), c.DataDirectory, "data directory")
	assert.Equal(t, filepath.Join(dir, "data"), c.Database.Directory, "database directory")
	assert.Equal(t, filepath.Join(dir, "data", defaultDatabase), c.Database.Name, "database")
	assert.Equal(t, filepath.Join(dir, defaultVaultFile), c.Vault.File, "vault")
	assert.Equal(t, keyvault.DefaultParameters, c.vaultParameters(), "kdf")
	assert.Equal(t, ledger.DefaultEndpoint, c.Ledger.Endpoint, "endpoint")
	assert.Equal(t, defaultSyncInterval, c.Ledger.SyncInterval, "interval")
	assert.Equal(t, filepath.Join(dir, defaultLogDirectory), c.Logging.Directory, "log directory")
	assert.Equal(t, "", c.PidFile, "pid file")

	info, err := os.Stat(c.Logging.Directory)
	assert.Nil(t, err, "log directory created")
	assert.True(t, info.IsDir(), "log directory is a directory")
}

func TestConfigurationOverrides(t *testing.T) {
	fileName := writeConfig(t, `
local M = {}
M.data_directory = "."
M.pidfile = "peerbridged.pid"
M.vault = { file = "/tmp/other.vault", time = 2, memory = 1024, threads = 1 }
M.ledger = { endpoint = "http://ledger.example:9000", sync_interval = 30, sync_timeout = -1 }
M.event_queue = 0
return M
`)
	dir := filepath.Dir(fileName)

	c, err := getConfiguration(fileName)
	assert.Nil(t, err, "configuration")

	assert.Equal(t, filepath.Join(dir, "peerbridged.pid"), c.PidFile, "pid file")
	assert.Equal(t, "/tmp/other.vault", c.Vault.File, "vault")
	assert.Equal(t, keyvault.Parameters{Time: 2, Memory: 1024, Threads: 1}, c.vaultParameters(), "kdf")
	assert.Equal(t, "http://ledger.example:9000", c.Ledger.Endpoint, "endpoint")
	assert.Equal(t, 30, c.Ledger.SyncInterval, "interval")
	assert.Equal(t, defaultSyncTimeout, c.Ledger.SyncTimeout, "timeout reset")
	assert.Less(t, 0, c.EventQueue, "queue size reset")
}

func TestConfigurationErrors(t *testing.T) {
	blank := writeConfig(t, `return { data_directory = "" }`)
	_, err := getConfiguration(blank)
	assert.NotNil(t, err, "blank data directory")

	missing := writeConfig(t, `return { data_directory = "/no/such/peerbridge/dir" }`)
	_, err = getConfiguration(missing)
	assert.NotNil(t, err, "missing data directory")

	path := writeConfig(t, `return { data_directory = ".", database = { name = "sub/x.leveldb" } }`)
	_, err = getConfiguration(path)
	assert.NotNil(t, err, "database name with path")

	endpoint := writeConfig(t, `return { data_directory = ".", ledger = { endpoint = "" } }`)
	_, err = getConfiguration(endpoint)
	assert.NotNil(t, err, "blank endpoint")
}
