// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package main

import (
	"bufio"
	"context"
	"fmt"
	"github.com/huaouo/tabsql/rpc"
	"io"
	"strings"
)

// runBatch runs every non-blank line of r as its own request. A failing
// line is reported to errOut and the batch goes on.
func runBatch(ctx context.Context, c rpc.DBMSClient, r io.Reader, out, errOut io.Writer) (executed, failed int) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}

		executed++
		rs, err := c.Execute(ctx, &rpc.RawSQL{Sql: line})
		if err != nil {
			failed++
			_, _ = fmt.Fprintf(errOut, "Line %d: execute error: %v\n", lineNo, err)
			continue
		}
		if rs.GetFailFlag() {
			failed++
			_, _ = fmt.Fprintf(errOut, "Line %d: %s\n", lineNo, rs.GetMessage())
			continue
		}
		printResultSet(out, rs)
	}
	if err := scanner.Err(); err != nil {
		_, _ = fmt.Fprintf(errOut, "IO error: %v\n", err)
	}
	return executed, failed
}
