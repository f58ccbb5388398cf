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

// presentValues collects the column's values, skipping rows that lack the
// column. NULL is skipped too unless keepNull is set.
func presentValues(table, column string, rows []*storage.Row, keepNull bool) []string {
	var values []string
	for _, r := range rows {
		if v, ok := lookupIn(table, r, column); ok && (keepNull || v != NULL) {
			values = append(values, v)
		}
	}
	return values
}

func computeAggregate(agg ast.Aggregate, rows []*storage.Row, table string) (interface{}, error) {
	function := strings.ToUpper(agg.Func)
	if function == "COUNT" {
		if agg.Column == "*" || agg.Column == "" {
			return len(rows), nil
		}
		return len(presentValues(table, agg.Column, rows, false)), nil
	}

	switch function {
	case "SUM", "AVG":
		// Non-numeric values, NULL included, count as 0.
		values := presentValues(table, agg.Column, rows, true)
		sum := 0.0
		for _, v := range values {
			if f, ok := utils.ParseNumber(v); ok {
				sum += f
			}
		}
		if function == "SUM" {
			return sum, nil
		}
		if len(values) == 0 {
			return 0.0, nil
		}
		return sum / float64(len(values)), nil
	case "MIN", "MAX":
		values := presentValues(table, agg.Column, rows, false)
		if len(values) == 0 {
			return nil, errors.Wrapf(EmptyAggregate, "%s", agg.String())
		}
		best := values[0]
		for _, v := range values[1:] {
			c := compareSortKeys(v, true, best, true)
			if function == "MIN" && c < 0 || function == "MAX" && c > 0 {
				best = v
			}
		}
		return best, nil
	}
	return nil, errors.Wrapf(UnsupportedAggregate, "%s", agg.Func)
}
