// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/bitmark-inc/exitwithstatus"

	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/keypair"
	"github.com/peerbridge/peerbridge/keyvault"
	"github.com/peerbridge/peerbridge/util"
)

// environment variable holding the vault passphrase
const passphraseVariable = "PEERBRIDGE_PASSPHRASE"

// setup command handler
//
// commands that need neither the configuration nor the database
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "version", "v":
		fmt.Printf("%s\n", version)

	case "help", "h", "?":
		fmt.Fprintf(os.Stderr, "supported commands:\n\n")
		fmt.Fprintf(os.Stderr, "  help                       (h)      - display this message\n\n")
		fmt.Fprintf(os.Stderr, "  version                    (v)      - display version sting\n\n")
		fmt.Fprintf(os.Stderr, "  generate-identity          (gen)    - create the vault file with a new key pair\n")
		fmt.Fprintf(os.Stderr, "                                        the passphrase is read from %s\n\n", passphraseVariable)
		fmt.Fprintf(os.Stderr, "  public-key                 (pk)     - display the public key of this identity\n\n")
		fmt.Fprintf(os.Stderr, "  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Fprintf(os.Stderr, "                                        for convienience when passing script arguments\n\n")
		flagsDescription(program)

	default:
		return false
	}

	// indicate processing complete and make normal exit from main
	return true
}

func flagsDescription(program string) {
	fmt.Fprintf(os.Stderr, "flags:\n\n")
	fmt.Fprintf(os.Stderr, "  %s --config-file=FILE [--quiet] [command]\n\n", program)
}

// configuration command handler
//
// commands that need the configuration but must not touch the database
func processConfigCommand(arguments []string, options *Configuration) bool {

	command := "start"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "generate-identity", "gen":
		if util.EnsureFileExists(options.Vault.File) {
			fmt.Printf("generate identity: %q error: %s\n", options.Vault.File, fault.ErrVaultAlreadyExists)
			exitwithstatus.Exit(1)
		}
		k, err := keypair.New()
		if nil != err {
			fmt.Printf("generate identity error: %s\n", err)
			exitwithstatus.Exit(1)
		}
		defer k.Zero()

		vault := openVault(options)
		if err := vault.Store(k); nil != err {
			fmt.Printf("generate identity: %q error: %s\n", options.Vault.File, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated identity: %q\n", options.Vault.File)
		fmt.Printf("public key: %s\n", k.PublicKey)

	case "public-key", "pk":
		publicKey, err := openVault(options).PublicKey()
		if nil != err {
			fmt.Printf("read identity: %q error: %s\n", options.Vault.File, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("%s\n", publicKey)

	case "start", "run":
		return false

	default:
		exitwithstatus.Message("error: no such command: %v", command)
	}

	return true
}

// the identity vault described by the configuration
func openVault(options *Configuration) *keyvault.FileVault {
	passphrase := os.Getenv(passphraseVariable)
	if "" == passphrase {
		exitwithstatus.Message("error: %s is not set", passphraseVariable)
	}
	return keyvault.NewFileVault(options.Vault.File, passphrase, keyvault.AlwaysAllow, options.vaultParameters())
}
