// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/logger"

	"github.com/peerbridge/peerbridge/configuration"
	"github.com/peerbridge/peerbridge/keyvault"
	"github.com/peerbridge/peerbridge/ledger"
	"github.com/peerbridge/peerbridge/messagebus"
	"github.com/peerbridge/peerbridge/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultLevelDBDirectory = "data"
	defaultDatabase         = "peerbridge.leveldb"
	defaultVaultFile        = "identity.vault"

	defaultSyncInterval = 10 // seconds
	defaultSyncTimeout  = 5  // seconds

	defaultLogDirectory = "log"
	defaultLogFile      = "peerbridged.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
}

type VaultType struct {
	File    string `gluamapper:"file" json:"file"`
	Time    uint32 `gluamapper:"time" json:"time"`
	Memory  uint32 `gluamapper:"memory" json:"memory"`
	Threads uint8  `gluamapper:"threads" json:"threads"`
}

type LedgerType struct {
	Endpoint     string `gluamapper:"endpoint" json:"endpoint"`
	SyncInterval int    `gluamapper:"sync_interval" json:"sync_interval"`
	SyncTimeout  int    `gluamapper:"sync_timeout" json:"sync_timeout"`
}

type Configuration struct {
	DataDirectory string               `gluamapper:"data_directory" json:"data_directory"`
	PidFile       string               `gluamapper:"pidfile" json:"pidfile"`
	Database      DatabaseType         `gluamapper:"database" json:"database"`
	Vault         VaultType            `gluamapper:"vault" json:"vault"`
	Ledger        LedgerType           `gluamapper:"ledger" json:"ledger"`
	EventQueue    int                  `gluamapper:"event_queue" json:"event_queue"`
	Logging       logger.Configuration `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      defaultDatabase,
		},

		Vault: VaultType{
			File:    defaultVaultFile,
			Time:    keyvault.DefaultParameters.Time,
			Memory:  keyvault.DefaultParameters.Memory,
			Threads: keyvault.DefaultParameters.Threads,
		},

		Ledger: LedgerType{
			Endpoint:     ledger.DefaultEndpoint,
			SyncInterval: defaultSyncInterval,
			SyncTimeout:  defaultSyncTimeout,
		},

		EventQueue: messagebus.DefaultQueueSize,

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	if "" == options.Ledger.Endpoint {
		return nil, fmt.Errorf("Ledger: endpoint cannot be blank")
	}
	if options.Ledger.SyncInterval <= 0 {
		options.Ledger.SyncInterval = defaultSyncInterval
	}
	if options.Ledger.SyncTimeout <= 0 {
		options.Ledger.SyncTimeout = defaultSyncTimeout
	}
	if options.EventQueue <= 0 {
		options.EventQueue = messagebus.DefaultQueueSize
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(util.EnsureAbsolute(options.DataDirectory, *f[1]), *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	options.Vault.File = util.EnsureAbsolute(options.DataDirectory, options.Vault.File)

	// make absolute and create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		*d = util.EnsureAbsolute(options.DataDirectory, *d)
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// argon2 cost of the vault file
func (c *Configuration) vaultParameters() keyvault.Parameters {
	return keyvault.Parameters{
		Time:    c.Vault.Time,
		Memory:  c.Vault.Memory,
		Threads: c.Vault.Threads,
	}
}
