// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"bytes"
	"testing"

	"github.com/peerbridge/peerbridge/util"
)

type testItem struct {
	value   uint64
	encoded []byte
}

var testData = []testItem{
	{0x00, []byte{0x00}},
	{0x01, []byte{0x01}},
	{0x7f, []byte{0x7f}},
	{0x80, []byte{0x80, 0x01}},
	{0x81, []byte{0x81, 0x01}},
	{0x3fff, []byte{0xff, 0x7f}},
	{0x4000, []byte{0x80, 0x80, 0x01}},
	{0xffffffffffffffff, []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
}

func TestToVarint64(t *testing.T) {
	for i, item := range testData {
		result := util.ToVarint64(item.value)
		if !bytes.Equal(item.encoded, result) {
			t.Errorf("%d: encode: %x  expected: %x  actual: %x", i, item.value, item.encoded, result)
		}
	}
}

func TestFromVarint64(t *testing.T) {
	for i, item := range testData {
		value, count := util.FromVarint64(item.encoded)
		if item.value != value {
			t.Errorf("%d: decode: %x  expected: %x  actual: %x", i, item.encoded, item.value, value)
		}
		if len(item.encoded) != count {
			t.Errorf("%d: decode: %x  expected count: %d  actual: %d", i, item.encoded, len(item.encoded), count)
		}
	}
}

func TestTruncatedVarint64(t *testing.T) {
	value, count := util.FromVarint64([]byte{0x80, 0x80})
	if 0 != value || 0 != count {
		t.Errorf("truncated: expected 0, 0  actual: %d, %d", value, count)
	}
}

func TestAppendBytes(t *testing.T) {
	packed := util.AppendBytes(nil, nil)
	if !bytes.Equal([]byte{0x00}, packed) {
		t.Errorf("empty: actual: %x", packed)
	}

	packed = util.AppendString([]byte{0xaa}, "abc")
	expected := []byte{0xaa, 0x03, 'a', 'b', 'c'}
	if !bytes.Equal(expected, packed) {
		t.Errorf("string: expected: %x  actual: %x", expected, packed)
	}
}
