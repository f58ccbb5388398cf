// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package executor

import (
	"github.com/huaouo/tabsql/ast"
	"github.com/huaouo/tabsql/storage"
	"github.com/huaouo/tabsql/utils"
	"golang.org/x/exp/slices"
	"strings"
)

// Pipeline: join, WHERE, then either sort and project, or group, HAVING,
// project and sort. LIMIT applies last.
func (e *Executor) sel(stmt ast.SelectStmt) (*Result, error) {
	table, err := e.store.GetTable(stmt.TableName)
	if err != nil {
		return nil, err
	}

	// Joined rows carry qualified keys of their own.
	source := table.Name
	rows := table.Rows
	if stmt.Join != nil {
		source = ""
		rows, err = e.join(table, stmt.Join)
		if err != nil {
			return nil, err
		}
	}

	rows, err = filter(rows, stmt.Where, source)
	if err != nil {
		return nil, err
	}

	var out []*ResultRow
	if len(stmt.GroupBy) == 0 {
		if stmt.OrderBy != nil {
			rows = sortRows(rows, stmt.OrderBy, source)
		}
		if len(stmt.Aggregates) > 0 {
			row, err := aggregateRow(&stmt, rows, source)
			if err != nil {
				return nil, err
			}
			out = []*ResultRow{row}
		} else {
			out = project(&stmt, rows, source)
		}
	} else {
		out, err = groupRows(&stmt, rows, source)
		if err != nil {
			return nil, err
		}
		if stmt.OrderBy != nil {
			sortResultRows(out, stmt.OrderBy)
		}
	}
	return rowsResult(applyLimit(out, stmt.Limit)), nil
}

func project(stmt *ast.SelectStmt, rows []*storage.Row, source string) []*ResultRow {
	out := make([]*ResultRow, 0, len(rows))
	for _, r := range rows {
		selected := &ResultRow{}
		for _, col := range stmt.Columns {
			if col == "*" {
				for i, k := range r.Keys {
					selected.set(k, r.Values[i])
				}
				break
			}
			selected.set(col, lookupOrNull(source, r, col))
		}
		out = append(out, selected)
	}
	return out
}

func lookupOrNull(source string, r *storage.Row, col string) string {
	if v, ok := lookupIn(source, r, col); ok {
		return v
	}
	return NULL
}

// aggregateRow collapses rows into one row of aggregates followed by any
// plain columns, read from the first row.
func aggregateRow(stmt *ast.SelectStmt, rows []*storage.Row, source string) (*ResultRow, error) {
	row := &ResultRow{}
	for _, agg := range stmt.Aggregates {
		v, err := computeAggregate(agg, rows, source)
		if err != nil {
			return nil, err
		}
		row.set(agg.Name(), v)
	}

	var first *storage.Row
	if len(rows) > 0 {
		first = rows[0]
	}
	for _, col := range stmt.Columns {
		if _, ok := row.Get(col); !ok {
			row.set(col, lookupOrNull(source, first, col))
		}
	}
	return row, nil
}

type group struct {
	key  []string
	rows []*storage.Row
}

// groupRows partitions rows by the GROUP BY values, in order of first
// appearance, and emits one row per group that passes HAVING.
func groupRows(stmt *ast.SelectStmt, rows []*storage.Row, source string) ([]*ResultRow, error) {
	var groups []*group
	byKey := make(map[string]*group)
	for _, r := range rows {
		key := make([]string, len(stmt.GroupBy))
		for i, col := range stmt.GroupBy {
			key[i] = lookupOrNull(source, r, col)
		}
		joined := strings.Join(key, "\x00")
		g, ok := byKey[joined]
		if !ok {
			g = &group{key: key}
			byKey[joined] = g
			groups = append(groups, g)
		}
		g.rows = append(g.rows, r)
	}

	var out []*ResultRow
	for _, g := range groups {
		ok, err := evaluate(stmt.Having, &scope{table: source, row: g.rows[0], group: g.rows, stmt: stmt})
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		row := &ResultRow{}
		for i, col := range stmt.GroupBy {
			row.set(col, g.key[i])
		}
		for _, agg := range stmt.Aggregates {
			v, err := computeAggregate(agg, g.rows, source)
			if err != nil {
				return nil, err
			}
			row.set(agg.Name(), v)
		}
		for _, col := range stmt.Columns {
			if _, ok := row.Get(col); !ok {
				row.set(col, lookupOrNull(source, g.rows[0], col))
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// compareSortKeys orders missing values first, then numbers, then text.
func compareSortKeys(a string, aok bool, b string, bok bool) int {
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	}

	x, xNum := utils.ParseNumber(a)
	y, yNum := utils.ParseNumber(b)
	switch {
	case xNum && yNum:
		if x < y {
			return -1
		} else if x > y {
			return 1
		}
		return 0
	case xNum:
		return -1
	case yNum:
		return 1
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func direction(order *ast.OrderBy, c int) int {
	if order.Desc {
		return -c
	}
	return c
}

func sortRows(rows []*storage.Row, order *ast.OrderBy, source string) []*storage.Row {
	sorted := append([]*storage.Row(nil), rows...)
	slices.SortStableFunc(sorted, func(a, b *storage.Row) int {
		av, aok := lookupIn(source, a, order.Column)
		bv, bok := lookupIn(source, b, order.Column)
		return direction(order, compareSortKeys(av, aok, bv, bok))
	})
	return sorted
}

func sortResultRows(rows []*ResultRow, order *ast.OrderBy) {
	get := func(r *ResultRow) (string, bool) {
		v, ok := r.Get(order.Column)
		return FormatValue(v), ok
	}
	slices.SortStableFunc(rows, func(a, b *ResultRow) int {
		av, aok := get(a)
		bv, bok := get(b)
		return direction(order, compareSortKeys(av, aok, bv, bok))
	})
}

func applyLimit(rows []*ResultRow, limit *ast.Limit) []*ResultRow {
	if limit == nil {
		return rows
	}
	if limit.Offset >= len(rows) {
		return nil
	}
	rows = rows[limit.Offset:]
	if limit.Count < len(rows) {
		rows = rows[:limit.Count]
	}
	return rows
}
