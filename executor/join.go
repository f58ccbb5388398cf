// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package executor

import (
	"github.com/huaouo/tabsql/ast"
	"github.com/huaouo/tabsql/storage"
	"strings"
)

func qualify(table, key string) string {
	if strings.Contains(key, ".") {
		return key
	}
	return table + "." + key
}

func splitQualifier(name string) (string, string) {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

// combine merges two rows into one whose keys are all table-qualified. A
// nil row contributes NULL for each of its table's columns.
func combine(left *storage.Table, l *storage.Row, right *storage.Table, r *storage.Row) *storage.Row {
	merged := storage.NewRow()
	appendSide := func(t *storage.Table, row *storage.Row) {
		if row == nil {
			for _, c := range t.Columns {
				merged.Set(qualify(t.Name, c), NULL)
			}
			return
		}
		for i, k := range row.Keys {
			merged.Set(qualify(t.Name, k), row.Values[i])
		}
	}
	appendSide(left, l)
	appendSide(right, r)
	return merged
}

// side reports which table a join key belongs to: 0 for left, 1 for right,
// -1 when it names neither table or a bare column both tables have.
func side(left, right *storage.Table, key string) int {
	q, column := splitQualifier(key)
	switch {
	case q != "" && strings.EqualFold(q, left.Name):
		return 0
	case q != "" && strings.EqualFold(q, right.Name):
		return 1
	case q != "":
		return -1
	}
	inLeft, inRight := left.HasColumn(column), right.HasColumn(column)
	switch {
	case inLeft && !inRight:
		return 0
	case inRight && !inLeft:
		return 1
	}
	return -1
}

// joinKeys picks the (left key, right column) pair an index can serve: ON
// must be a single '=' between a left column and a right column.
func joinKeys(left, right *storage.Table, on *ast.Expr) (string, string, bool) {
	if on == nil || !on.IsLeaf() || on.Op != ast.EQ ||
		on.Column.Kind != ast.COLUMN || on.Value.Kind != ast.COLUMN {
		return "", "", false
	}
	leftKey, rightKey := on.Column.Text, on.Value.Text
	ls, rs := side(left, right, leftKey), side(left, right, rightKey)
	if ls == 1 && rs == 0 {
		leftKey, rightKey = rightKey, leftKey
	} else if ls != 0 || rs != 1 {
		return "", "", false
	}
	_, rightColumn := splitQualifier(rightKey)
	return leftKey, rightColumn, true
}

// candidates returns the right rows worth testing against l. With an index
// on the right key only the matching bucket is scanned.
func (e *Executor) candidates(right *storage.Table, l *storage.Row, leftKey, rightColumn string, indexed bool) []*storage.Row {
	if !indexed {
		return right.Rows
	}
	_, bare := splitQualifier(leftKey)
	v, ok := l.Lookup(bare)
	if !ok {
		return nil
	}
	ids, hit := e.indexes.Lookup(right.Name, rightColumn, v)
	if !hit {
		e.logger.Debugf("Index miss on %s.%s for %q", right.Name, rightColumn, v)
		return right.Rows
	}
	e.logger.Debugf("Index hit on %s.%s for %q: %d row(s)", right.Name, rightColumn, v, len(ids))
	rows := make([]*storage.Row, 0, len(ids))
	for _, id := range ids {
		if r, ok := right.RowByID(id); ok {
			rows = append(rows, r)
		}
	}
	return rows
}

// join pairs every left row with the right rows satisfying ON. Outer kinds
// keep unmatched rows with the other side filled with NULL.
func (e *Executor) join(left *storage.Table, info *ast.JoinInfo) ([]*storage.Row, error) {
	right, err := e.store.GetTable(info.Table)
	if err != nil {
		return nil, err
	}

	leftKey, rightColumn, usable := joinKeys(left, right, info.OnCondition)
	indexed := usable && e.indexes.HasIndex(right.Name, rightColumn)

	var joined []*storage.Row
	matchedRight := make(map[uint64]bool)
	for _, l := range left.Rows {
		matched := false
		for _, r := range e.candidates(right, l, leftKey, rightColumn, indexed) {
			merged := combine(left, l, right, r)
			ok, err := evaluate(info.OnCondition, rowScope("", merged))
			if err != nil {
				return nil, err
			}
			if ok {
				joined = append(joined, merged)
				matched = true
				matchedRight[r.ID] = true
			}
		}
		if !matched && (info.Kind == ast.LEFT || info.Kind == ast.FULL) {
			joined = append(joined, combine(left, l, right, nil))
		}
	}

	if info.Kind == ast.RIGHT || info.Kind == ast.FULL {
		for _, r := range right.Rows {
			if !matchedRight[r.ID] {
				joined = append(joined, combine(left, nil, right, r))
			}
		}
	}
	e.logger.Debugf("%s join of %s and %s produced %d row(s)", info.Kind, left.Name, right.Name, len(joined))
	return joined, nil
}
