// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

// DefaultQueueSize - buffered messages before Send starts dropping
const DefaultQueueSize = 1000

// Message - one queued notification
type Message struct {
	From    string      // sending component
	Command string      // what happened
	Item    interface{} // details
}

// Queue - a buffered message queue
type Queue struct {
	c chan Message
}

// New - a queue holding up to size messages
func New(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{
		c: make(chan Message, size),
	}
}

// Send - queue a message, false if the queue is full
func (q *Queue) Send(from string, command string, item interface{}) bool {
	if nil == q {
		return false
	}
	select {
	case q.c <- Message{From: from, Command: command, Item: item}:
		return true
	default:
		return false
	}
}

// Chan - channel to read from
func (q *Queue) Chan() <-chan Message {
	return q.c
}
