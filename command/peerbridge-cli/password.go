// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/peerbridge/peerbridge/fault"
)

// environment variable holding the vault passphrase
const passphraseVariable = "PEERBRIDGE_PASSPHRASE"

const minimumPassphraseLength = 8

// read a passphrase from the terminal, twice when confirm is set
func promptPassphrase(confirm bool) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("no terminal: set %s", passphraseVariable)
	}

	fmt.Fprintf(os.Stderr, "passphrase: ")
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintf(os.Stderr, "\n")
	if nil != err {
		return "", err
	}
	if len(passphrase) < minimumPassphraseLength {
		return "", fault.ErrInvalidPassphraseLength
	}

	if !confirm {
		return string(passphrase), nil
	}

	fmt.Fprintf(os.Stderr, "verify passphrase: ")
	verify, err := term.ReadPassword(fd)
	fmt.Fprintf(os.Stderr, "\n")
	if nil != err {
		return "", err
	}
	if string(verify) != string(passphrase) {
		return "", fault.ErrPassphraseMismatch
	}
	return string(passphrase), nil
}
