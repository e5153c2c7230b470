// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/peerbridge/peerbridge/fault"
	"github.com/peerbridge/peerbridge/ledger"
)

type metadata struct {
	directory  string
	endpoint   string
	passphrase string
	verbose    bool
	e          io.Writer
	w          io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {

	app := cli.NewApp()
	app.Name = "peerbridge-cli"
	app.Usage = "send and read end-to-end encrypted messages over the ledger"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:  "directory, d",
			Value: "",
			Usage: " data `DIR` [$XDG_CONFIG_HOME/peerbridge-cli]",
		},
		cli.StringFlag{
			Name:   "ledger, l",
			Value:  ledger.DefaultEndpoint,
			Usage:  " ledger `URL`",
			EnvVar: "PEERBRIDGE_LEDGER",
		},
		cli.StringFlag{
			Name:   "passphrase, p",
			Value:  "",
			Usage:  " identity `PASSPHRASE` [prompt if not given]",
			EnvVar: passphraseVariable,
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "generate",
			Usage:     "generate key pair, will not store it",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runGenerate,
		},
		{
			Name:      "setup",
			Usage:     "create the identity vault",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "privateKey, k",
					Value: "",
					Usage: " using existing private `KEY`",
				},
			},
			Action: runSetup,
		},
		{
			Name:      "identity",
			Usage:     "display the public key of this identity",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runIdentity,
		},
		{
			Name:      "send",
			Usage:     "send an encrypted message",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*receiver public `KEY`",
				},
				cli.StringFlag{
					Name:  "message, m",
					Value: "",
					Usage: "*message `TEXT`",
				},
			},
			Action: runSend,
		},
		{
			Name:      "token",
			Usage:     "share a push notification token with a partner",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "receiver, r",
					Value: "",
					Usage: "*receiver public `KEY`",
				},
				cli.StringFlag{
					Name:  "token, t",
					Value: "",
					Usage: "*device `TOKEN`",
				},
			},
			Action: runToken,
		},
		{
			Name:      "sync",
			Usage:     "fetch new transactions from the ledger",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runSync,
		},
		{
			Name:      "chats",
			Usage:     "list conversations, most recent first",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{},
			Action:    runChats,
		},
		{
			Name:      "history",
			Usage:     "display a conversation",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "partner, r",
					Value: "",
					Usage: "*partner public `KEY`",
				},
			},
			Action: runHistory,
		},
		{
			Name:   "version",
			Usage:  "display peerbridge-cli version",
			Action: runVersion,
		},
	}

	app.Before = func(c *cli.Context) error {

		e := c.App.ErrWriter
		w := c.App.Writer
		verbose := c.GlobalBool("verbose")

		// to suppress directory checks for certain commands
		command := c.Args().Get(0)
		if "version" == command || "generate" == command || "" == command {
			c.App.Metadata["config"] = &metadata{
				verbose: verbose,
				e:       e,
				w:       w,
			}
			return nil
		}

		directory := c.GlobalString("directory")
		if "" == directory {
			p := os.Getenv("XDG_CONFIG_HOME")
			if "" == p {
				return fmt.Errorf("XDG_CONFIG_HOME environment is not set")
			}
			directory = filepath.Join(p, app.Name)
		}
		if err := os.MkdirAll(directory, 0700); nil != err {
			return err
		}

		if verbose {
			fmt.Fprintf(e, "directory: %q\n", directory)
		}

		c.App.Metadata["config"] = &metadata{
			directory:  directory,
			endpoint:   c.GlobalString("ledger"),
			passphrase: c.GlobalString("passphrase"),
			verbose:    verbose,
			e:          e,
			w:          w,
		}
		return nil
	}

	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		if fault.IsErrExists(err) {
			fmt.Fprintf(app.ErrWriter, "choose another --directory or remove the existing file\n")
		}
		os.Exit(1)
	}
}

func runVersion(c *cli.Context) error {
	fmt.Fprintf(c.App.Writer, "%s\n", version)
	return nil
}
