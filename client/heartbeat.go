// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package main

import (
	"context"
	"github.com/huaouo/tabsql/rpc"
	"google.golang.org/grpc"
	"log"
	"time"
)

const heartbeatInterval = 5 * time.Second

func heartbeat(ctx context.Context, conn *grpc.ClientConn) {
	c := rpc.NewDBMSClient(conn)
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		_, err := c.Execute(ctx, &rpc.RawSQL{})
		if err != nil && ctx.Err() == nil {
			log.Fatalf("Lost connection with server: %s\n", err)
		}
	}
}
