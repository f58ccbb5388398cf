// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package main

import (
	"context"
	"fmt"
	"github.com/huaouo/tabsql/engine"
	"github.com/huaouo/tabsql/executor"
	"github.com/huaouo/tabsql/parser"
	"github.com/huaouo/tabsql/rpc"
	"github.com/huaouo/tabsql/storage"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"strings"
	"time"
)

const (
	queryOkPattern   = "Query OK, %d row(s) affected (%.2f sec)"
	rowsInSetPattern = "%d row(s) in set (%.2f sec)"
	emptySetPattern  = "Empty set (%.2f sec)"

	internalErrorMessage = "Internal error, see server log for details"
)

type server struct {
	db     *engine.DB
	logger *zap.SugaredLogger
}

// Execute runs the statements in sql. Empty SQL is a heartbeat.
func (s *server) Execute(ctx context.Context, sql *rpc.RawSQL) (*rpc.ResultSet, error) {
	if strings.TrimSpace(sql.GetSql()) == "" {
		return &rpc.ResultSet{}, nil
	}

	start := time.Now()
	results, err := s.db.Exec(sql.GetSql())
	if err != nil {
		return &rpc.ResultSet{Message: s.describe(sql.GetSql(), err), FailFlag: true}, nil
	}
	if len(results) == 0 {
		return &rpc.ResultSet{Message: fmt.Sprintf(queryOkPattern, 0, time.Since(start).Seconds())}, nil
	}
	return toResultSet(results[len(results)-1], time.Since(start))
}

// describe turns a statement error into the message shown to the client.
// Failures outside the statement's own fault are only logged in full.
func (s *server) describe(sql string, err error) string {
	cause := errors.Cause(err)
	switch cause {
	case parser.UnknownStatement:
		return "Unknown statement"
	case storage.TableNotExist, storage.TableExists,
		executor.UnsupportedOperator, executor.UnsupportedAggregate,
		executor.EmptyAggregate, executor.ColumnCountMismatch:
		return err.Error()
	}
	if _, ok := cause.(*parser.SyntaxError); ok {
		return err.Error()
	}
	s.logger.Errorf("Failed to execute %q: %+v", sql, err)
	return internalErrorMessage
}

type resultSetSink struct {
	rs *rpc.ResultSet
}

func (s *resultSetSink) Header(columns []string) error {
	s.rs.Header = columns
	return nil
}

func (s *resultSetSink) Row(values []string) error {
	s.rs.Rows = append(s.rs.Rows, &rpc.Row{Fields: values})
	return nil
}

func toResultSet(res *executor.Result, elapsed time.Duration) (*rpc.ResultSet, error) {
	rs := &rpc.ResultSet{}
	if res.Kind == executor.AFFECTED {
		rs.Message = fmt.Sprintf(queryOkPattern, res.Affected, elapsed.Seconds())
		return rs, nil
	}

	if err := res.Emit(&resultSetSink{rs: rs}); err != nil {
		return nil, err
	}
	if len(rs.Rows) == 0 {
		rs.Header = nil
		rs.Message = fmt.Sprintf(emptySetPattern, elapsed.Seconds())
	} else {
		rs.Message = fmt.Sprintf(rowsInSetPattern, len(rs.Rows), elapsed.Seconds())
	}
	return rs, nil
}
