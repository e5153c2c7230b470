// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peerbridge/peerbridge/messagebus"
)

func TestQueue(t *testing.T) {
	q := messagebus.New(2)

	assert.True(t, q.Send("sync", "inserted", 3), "first")
	assert.True(t, q.Send("send", "sent", "id-1"), "second")
	assert.False(t, q.Send("sync", "inserted", 1), "full queue accepted")

	m := <-q.Chan()
	assert.Equal(t, messagebus.Message{From: "sync", Command: "inserted", Item: 3}, m, "first message")
	m = <-q.Chan()
	assert.Equal(t, "id-1", m.Item, "second message")

	assert.True(t, q.Send("sync", "inserted", 0), "space after read")
}

func TestNilQueue(t *testing.T) {
	var q *messagebus.Queue
	assert.False(t, q.Send("x", "y", nil), "nil queue")
}
