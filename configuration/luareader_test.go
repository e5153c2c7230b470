// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peerbridge/peerbridge/configuration"
)

type ledgerType struct {
	Endpoint string `gluamapper:"endpoint"`
	Interval int    `gluamapper:"interval"`
}

type testConfiguration struct {
	DataDirectory string            `gluamapper:"data_directory"`
	Ledger        ledgerType        `gluamapper:"ledger"`
	Levels        map[string]string `gluamapper:"levels"`
	Untouched     string            `gluamapper:"untouched"`
}

func write(t *testing.T, text string) string {
	fileName := filepath.Join(t.TempDir(), "test.conf")
	assert.Nil(t, os.WriteFile(fileName, []byte(text), 0o600), "write configuration")
	return fileName
}

func TestParseConfigurationFile(t *testing.T) {
	os.Setenv("PEERBRIDGE_TEST_ENDPOINT", "http://ledger.example:8080")
	defer os.Unsetenv("PEERBRIDGE_TEST_ENDPOINT")

	fileName := write(t, `
local M = {}
M.data_directory = "."
M.ledger = {
    endpoint = os.getenv("PEERBRIDGE_TEST_ENDPOINT"),
    interval = 30,
}
M.levels = {
    DEFAULT = "info",
    storage = "debug",
}
return M
`)

	config := testConfiguration{
		Untouched: "default",
	}
	err := configuration.ParseConfigurationFile(fileName, &config)
	assert.Nil(t, err, "parse")

	assert.Equal(t, ".", config.DataDirectory, "data directory")
	assert.Equal(t, "http://ledger.example:8080", config.Ledger.Endpoint, "endpoint from environment")
	assert.Equal(t, 30, config.Ledger.Interval, "interval")
	assert.Equal(t, "debug", config.Levels["storage"], "levels")
	assert.Equal(t, "default", config.Untouched, "default kept")
}

func TestParseConfigurationErrors(t *testing.T) {
	config := testConfiguration{}

	err := configuration.ParseConfigurationFile(write(t, `this is not lua`), &config)
	assert.NotNil(t, err, "syntax error")

	err = configuration.ParseConfigurationFile(write(t, `return 42`), &config)
	assert.NotNil(t, err, "not a table")

	err = configuration.ParseConfigurationFile(filepath.Join(t.TempDir(), "missing.conf"), &config)
	assert.NotNil(t, err, "missing file")
}
