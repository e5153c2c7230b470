// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peerbridge/peerbridge/util"
)

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/log", util.EnsureAbsolute("/data", "log"), "relative")
	assert.Equal(t, "/var/log", util.EnsureAbsolute("/data", "/var/log"), "absolute")
	assert.Equal(t, "/data/vault.json", util.EnsureAbsolute("/data/", "./x/../vault.json"), "cleaned")
}

func TestEnsureFileExists(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "present")

	assert.False(t, util.EnsureFileExists(name), "before create")
	assert.Nil(t, os.WriteFile(name, []byte("x"), 0o600), "write")
	assert.True(t, util.EnsureFileExists(name), "after create")
}
