// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package executor

import "github.com/pkg/errors"

var (
	UnsupportedOperator  = errors.New("unsupported operator")
	UnsupportedAggregate = errors.New("aggregate function not supported")
	EmptyAggregate       = errors.New("aggregate over an empty set")
	ColumnCountMismatch  = errors.New("Column count doesn't match value count")
	UnsupportedStatement = errors.New("statement not supported")
)
