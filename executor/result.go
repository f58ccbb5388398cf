// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package executor

import (
	"fmt"
	"strconv"
	"strings"
)

type ResultKind int

const (
	ROWS ResultKind = iota
	AFFECTED
)

// NULL stands in for a missing value.
const NULL = "NULL"

// ResultRow maps display names to values. Aggregates yield int (COUNT) or
// float64 (SUM, AVG); everything else is a string.
type ResultRow struct {
	Names  []string
	Values []interface{}
}

func (r *ResultRow) position(name string) int {
	for i, n := range r.Names {
		if strings.EqualFold(n, name) {
			return i
		}
	}
	return -1
}

func (r *ResultRow) Get(name string) (interface{}, bool) {
	if i := r.position(name); i >= 0 {
		return r.Values[i], true
	}
	return nil, false
}

// set keeps the first spelling of a name and overwrites its value.
func (r *ResultRow) set(name string, value interface{}) {
	if i := r.position(name); i >= 0 {
		r.Values[i] = value
		return
	}
	r.Names = append(r.Names, name)
	r.Values = append(r.Values, value)
}

type Result struct {
	Kind     ResultKind
	Columns  []string
	Rows     []*ResultRow
	Affected int
}

func rowsResult(rows []*ResultRow) *Result {
	res := &Result{Kind: ROWS, Rows: rows}
	for _, r := range rows {
		for _, n := range r.Names {
			if !containsFold(res.Columns, n) {
				res.Columns = append(res.Columns, n)
			}
		}
	}
	return res
}

func affectedResult(n int) *Result {
	return &Result{Kind: AFFECTED, Affected: n}
}

// Sink consumes the rows of a result.
type Sink interface {
	Header(columns []string) error
	Row(values []string) error
}

// Emit feeds the header and every row to sink. Columns a row lacks are
// emitted as NULL.
func (res *Result) Emit(sink Sink) error {
	if res.Kind != ROWS {
		return nil
	}
	if err := sink.Header(res.Columns); err != nil {
		return err
	}
	for _, r := range res.Rows {
		values := make([]string, len(res.Columns))
		for i, c := range res.Columns {
			if v, ok := r.Get(c); ok {
				values[i] = FormatValue(v)
			} else {
				values[i] = NULL
			}
		}
		if err := sink.Row(values); err != nil {
			return err
		}
	}
	return nil
}

func FormatValue(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return NULL
	default:
		return fmt.Sprint(v)
	}
}

func containsFold(names []string, name string) bool {
	for _, n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
