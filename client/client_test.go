// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package main

import (
	"bytes"
	"context"
	"errors"
	"github.com/huaouo/tabsql/rpc"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc"
	"strings"
	"testing"
)

func TestFormatTable(t *testing.T) {
	table := formatTable(
		[]string{"id", "name"},
		[]*rpc.Row{{Fields: []string{"1", "Alice"}}, {Fields: []string{"22", "Zoë"}}},
	)
	expected := "+----+-------+\n" +
		"| id | name  |\n" +
		"+----+-------+\n" +
		"| 1  | Alice |\n" +
		"| 22 | Zoë   |\n" +
		"+----+-------+\n"
	assert.Equal(t, expected, table)
}

func TestPrintResultSet(t *testing.T) {
	var out bytes.Buffer
	printResultSet(&out, &rpc.ResultSet{Message: "Empty set (0.00 sec)"})
	assert.Equal(t, "Empty set (0.00 sec)\n", out.String())

	out.Reset()
	printResultSet(&out, &rpc.ResultSet{Message: "Table 't' doesn't exist", FailFlag: true})
	assert.Equal(t, "ERROR: Table 't' doesn't exist\n", out.String())

	out.Reset()
	printResultSet(&out, &rpc.ResultSet{
		Message: "1 row(s) in set (0.00 sec)",
		Header:  []string{"n"},
		Rows:    []*rpc.Row{{Fields: []string{"3"}}},
	})
	assert.Equal(t, "+---+\n| n |\n+---+\n| 3 |\n+---+\n1 row(s) in set (0.00 sec)\n", out.String())
}

type fakeClient struct {
	received []string
}

func (c *fakeClient) Execute(ctx context.Context, in *rpc.RawSQL, opts ...grpc.CallOption) (*rpc.ResultSet, error) {
	c.received = append(c.received, in.Sql)
	switch {
	case strings.HasPrefix(in.Sql, "bad"):
		return &rpc.ResultSet{Message: "syntax error: Expected 'FROM'", FailFlag: true}, nil
	case strings.HasPrefix(in.Sql, "lost"):
		return nil, errors.New("connection refused")
	}
	return &rpc.ResultSet{Message: "Query OK, 1 row(s) affected (0.00 sec)"}, nil
}

func TestRunBatch(t *testing.T) {
	script := "create table t (a);\n" +
		"\n" +
		"-- a comment\n" +
		"bad select;\n" +
		"  insert into t (a) values (1);  \n" +
		"lost;\n" +
		"insert into t (a) values (2);\n"

	c := &fakeClient{}
	var out, errOut bytes.Buffer
	executed, failed := runBatch(context.Background(), c, strings.NewReader(script), &out, &errOut)

	assert.Equal(t, 5, executed)
	assert.Equal(t, 2, failed)
	assert.Equal(t, []string{
		"create table t (a);",
		"bad select;",
		"insert into t (a) values (1);",
		"lost;",
		"insert into t (a) values (2);",
	}, c.received)
	assert.Equal(t, "Line 4: syntax error: Expected 'FROM'\n"+
		"Line 6: execute error: connection refused\n", errOut.String())
	assert.Equal(t, 3, strings.Count(out.String(), "Query OK"))
}
