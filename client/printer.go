// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package main

import (
	"fmt"
	"github.com/huaouo/tabsql/rpc"
	"io"
	"strings"
	"unicode/utf8"
)

func printResultSet(w io.Writer, rs *rpc.ResultSet) {
	if rs.GetFailFlag() {
		_, _ = fmt.Fprintf(w, "ERROR: %s\n", rs.GetMessage())
		return
	}
	if len(rs.GetHeader()) > 0 {
		_, _ = io.WriteString(w, formatTable(rs.GetHeader(), rs.GetRows()))
	}
	_, _ = fmt.Fprintln(w, rs.GetMessage())
}

// formatTable renders the header and rows with padded columns:
//   +----+-------+
//   | id | name  |
//   +----+-------+
//   | 1  | Alice |
//   +----+-------+
func formatTable(header []string, rows []*rpc.Row) string {
	widths := make([]int, len(header))
	measure := func(fields []string) {
		for i, f := range fields {
			if i < len(widths) && utf8.RuneCountInString(f) > widths[i] {
				widths[i] = utf8.RuneCountInString(f)
			}
		}
	}
	measure(header)
	for _, r := range rows {
		measure(r.GetFields())
	}

	var builder strings.Builder
	separator := func() {
		builder.WriteByte('+')
		for _, w := range widths {
			builder.WriteString(strings.Repeat("-", w+2))
			builder.WriteByte('+')
		}
		builder.WriteByte('\n')
	}
	line := func(fields []string) {
		builder.WriteByte('|')
		for i, w := range widths {
			var f string
			if i < len(fields) {
				f = fields[i]
			}
			builder.WriteString(" " + f + strings.Repeat(" ", w-utf8.RuneCountInString(f)) + " |")
		}
		builder.WriteByte('\n')
	}

	separator()
	line(header)
	separator()
	for _, r := range rows {
		line(r.GetFields())
	}
	separator()
	return builder.String()
}
