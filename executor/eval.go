// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package executor

import (
	"github.com/huaouo/tabsql/ast"
	"github.com/huaouo/tabsql/storage"
	"github.com/huaouo/tabsql/utils"
	"github.com/pkg/errors"
	"strings"
)

// lookupIn resolves name in r. When rows come from a single table, a name
// qualified with that table also matches the bare column.
func lookupIn(table string, r *storage.Row, name string) (string, bool) {
	if r == nil {
		return "", false
	}
	if v, ok := r.Lookup(name); ok {
		return v, true
	}
	if q, bare := splitQualifier(name); table != "" && strings.EqualFold(q, table) {
		return r.Lookup(bare)
	}
	return "", false
}

// scope is what a predicate sees: one row for WHERE and ON, a whole group
// (with its first row) for HAVING. table is empty for joined rows.
type scope struct {
	table string
	row   *storage.Row
	group []*storage.Row
	stmt  *ast.SelectStmt
}

func rowScope(table string, row *storage.Row) *scope {
	return &scope{table: table, row: row}
}

func (s *scope) lookup(name string) (string, bool) {
	return lookupIn(s.table, s.row, name)
}

// resolveLeft resolves the left side of a comparison.
func (s *scope) resolveLeft(op ast.Operand) (string, bool, error) {
	switch op.Kind {
	case ast.LITERAL:
		return op.Text, true, nil
	case ast.AGGREGATE:
		return s.aggregate(*op.Agg)
	}
	if s.group != nil && s.stmt != nil {
		if agg, ok := s.stmt.AggregateByAlias(op.Text); ok {
			return s.aggregate(agg)
		}
	}
	v, ok := s.lookup(op.Text)
	return v, ok, nil
}

// resolveRight is resolveLeft, except that a bare identifier naming no
// column reads as literal text.
func (s *scope) resolveRight(op ast.Operand) (string, bool, error) {
	v, ok, err := s.resolveLeft(op)
	if err != nil || ok {
		return v, ok, err
	}
	if op.Kind == ast.COLUMN && !strings.Contains(op.Text, ".") {
		return op.Text, true, nil
	}
	return "", false, nil
}

func (s *scope) aggregate(agg ast.Aggregate) (string, bool, error) {
	if s.group == nil {
		return "", false, nil
	}
	v, err := computeAggregate(agg, s.group, s.table)
	if err != nil {
		return "", false, err
	}
	return FormatValue(v), true, nil
}

// evaluate walks the expression tree. Both sides of AND and OR are always
// evaluated. A nil expression matches.
func evaluate(expr *ast.Expr, s *scope) (bool, error) {
	if expr == nil {
		return true, nil
	}
	if !expr.IsLeaf() {
		left, err := evaluate(expr.Left, s)
		if err != nil {
			return false, err
		}
		right, err := evaluate(expr.Right, s)
		if err != nil {
			return false, err
		}
		switch expr.Op {
		case ast.AND:
			return left && right, nil
		case ast.OR:
			return left || right, nil
		default:
			return false, errors.Wrapf(UnsupportedOperator, "logical operator %q", expr.Op.String())
		}
	}

	if !expr.Op.IsComparison() {
		return false, errors.Wrapf(UnsupportedOperator, "comparison operator %q", expr.Op.String())
	}
	left, ok, err := s.resolveLeft(expr.Column)
	if err != nil || !ok {
		return false, err
	}
	right, ok, err := s.resolveRight(expr.Value)
	if err != nil || !ok {
		return false, err
	}
	return compare(left, expr.Op, right), nil
}

func compare(left string, op ast.Op, right string) bool {
	c := utils.CompareValues(left, right)
	switch op {
	case ast.EQ:
		return c == 0
	case ast.NE:
		return c != 0
	case ast.GT:
		return c > 0
	case ast.GE:
		return c >= 0
	case ast.LT:
		return c < 0
	case ast.LE:
		return c <= 0
	}
	return false
}

// filter keeps the rows matching where.
func filter(rows []*storage.Row, where *ast.Expr, table string) ([]*storage.Row, error) {
	if where == nil {
		return rows, nil
	}
	var kept []*storage.Row
	for _, r := range rows {
		ok, err := evaluate(where, rowScope(table, r))
		if err != nil {
			return nil, err
		}
		if ok {
			kept = append(kept, r)
		}
	}
	return kept, nil
}
