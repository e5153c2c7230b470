// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messenger_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/peerbridge/peerbridge/background"
	"github.com/peerbridge/peerbridge/messenger"
	"github.com/peerbridge/peerbridge/transaction"
)

func TestSyncerRun(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	f := setup(t, ctl)
	defer f.store.Close()

	called := make(chan struct{}, 10)
	f.client.EXPECT().AccountTransactions(gomock.Any(), f.own.PublicKey).DoAndReturn(
		func(_ context.Context, _ string) ([]*transaction.Transaction, error) {
			called <- struct{}{}
			return nil, nil
		}).MinTimes(1)

	p := background.Start(background.Processes{
		messenger.NewSyncer(f.m, time.Hour, time.Second),
	}, nil)

	select {
	case <-called:
	case <-time.After(5 * time.Second):
		t.Error("sync did not run")
	}
	p.Stop()
}
