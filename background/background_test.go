// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/peerbridge/peerbridge/background"
)

type counter struct {
	count   int64
	stopped int64
	arg     interface{}
}

func (c *counter) Run(args interface{}, shutdown <-chan struct{}) {
	c.arg = args
loop:
	for {
		select {
		case <-shutdown:
			break loop
		case <-time.After(time.Millisecond):
			atomic.AddInt64(&c.count, 1)
		}
	}
	atomic.StoreInt64(&c.stopped, 1)
}

func TestStartStop(t *testing.T) {
	a := &counter{}
	b := &counter{}

	p := background.Start(background.Processes{a, b}, "argument")
	time.Sleep(50 * time.Millisecond)
	p.Stop()

	for i, c := range []*counter{a, b} {
		assert.True(t, atomic.LoadInt64(&c.count) > 0, "%d: never ran", i)
		assert.Equal(t, int64(1), atomic.LoadInt64(&c.stopped), "%d: not stopped", i)
		assert.Equal(t, "argument", c.arg, "%d: argument", i)
	}
}

func TestStopNil(t *testing.T) {
	var p *background.T
	p.Stop()
}
