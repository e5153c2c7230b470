// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/logger"

	"github.com/peerbridge/peerbridge/messagebus"
	"github.com/peerbridge/peerbridge/messenger"
)

// drains the event queue into the log
type eventLogger struct {
	log   *logger.L
	queue *messagebus.Queue
}

func newEventLogger(queue *messagebus.Queue) *eventLogger {
	return &eventLogger{
		log:   logger.New("events"),
		queue: queue,
	}
}

func (e *eventLogger) Run(args interface{}, shutdown <-chan struct{}) {
	log := e.log
	log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case item := <-e.queue.Chan():
			switch item.Command {
			case messenger.FailureEvent, messenger.RejectEvent:
				log.Warnf("%s: %s: %v", item.From, item.Command, item.Item)
			case messenger.SyncedEvent:
				log.Debugf("%s: %s: %+v", item.From, item.Command, item.Item)
			default:
				log.Infof("%s: %s: %v", item.From, item.Command, item.Item)
			}
		}
	}

	log.Info("shutting down…")
	log.Flush()
}
