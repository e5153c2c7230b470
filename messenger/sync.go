// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messenger

import (
	"context"
	"time"

	"github.com/bitmark-inc/logger"
)

// MinimumSyncInterval - shortest period between ledger polls
const MinimumSyncInterval = time.Second

// Syncer - background process that polls the ledger
type Syncer struct {
	log       *logger.L
	messenger *Messenger
	interval  time.Duration
	timeout   time.Duration
}

// NewSyncer - poll every interval, each poll limited to timeout
func NewSyncer(m *Messenger, interval time.Duration, timeout time.Duration) *Syncer {
	if interval < MinimumSyncInterval {
		interval = MinimumSyncInterval
	}
	if timeout <= 0 || timeout > interval {
		timeout = interval
	}
	return &Syncer{
		log:       logger.New("sync"),
		messenger: m,
		interval:  interval,
		timeout:   timeout,
	}
}

// Run - background process interface
//
// syncs once at start then on every tick until shutdown; a shutdown
// cancels a sync that is in progress
func (s *Syncer) Run(args interface{}, shutdown <-chan struct{}) {
	log := s.log

	log.Infof("starting… interval: %s", s.interval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-shutdown
		cancel()
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

loop:
	for {
		s.once(ctx)

		select {
		case <-shutdown:
			break loop
		case <-ticker.C:
		}
	}

	log.Info("shutting down…")
	log.Flush()
}

func (s *Syncer) once(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.messenger.SyncOnce(ctx)
	if nil != err {
		s.log.Warnf("sync error: %s", err)
		return
	}
	s.log.Debugf("sync result: %+v", result)
}
