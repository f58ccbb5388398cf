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
	"os"
	"strings"
)

var reader = bufio.NewReader(os.Stdin)

func readLine() (string, error) {
	var builder strings.Builder

	line, prefixed, err := reader.ReadLine()
	if err != nil {
		return "", err
	}
	builder.Write(line)
	for prefixed {
		line, prefixed, err = reader.ReadLine()
		if err != nil {
			return "", err
		}
		builder.Write(line)
	}

	return strings.TrimSpace(builder.String()), nil
}

// clientLoop reads one statement, which may span lines until ';', and
// runs it. It returns false when the user quits or stdin is closed.
func clientLoop(ctx context.Context, c rpc.DBMSClient) bool {
	fmt.Print("tabsql> ")

	var builder strings.Builder
	for {
		line, err := readLine()
		if err != nil {
			if err != io.EOF {
				_, _ = fmt.Fprintf(os.Stderr, "IO error: %v\n", err)
			}
			return false
		}
		if builder.Len() == 0 && line == ":q" {
			return false
		}

		if builder.Len() > 0 && line != "" {
			builder.WriteByte('\n')
		}
		builder.WriteString(line)
		if strings.HasSuffix(line, ";") {
			break
		}
		if builder.Len() == 0 {
			fmt.Print("tabsql> ")
		} else {
			fmt.Print("     -> ")
		}
	}

	rs, err := c.Execute(ctx, &rpc.RawSQL{Sql: builder.String()})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Execute error: %v\n", err)
		return true
	}
	printResultSet(os.Stdout, rs)
	return true
}
