// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package executor

import (
	"github.com/huaouo/tabsql/ast"
	"github.com/huaouo/tabsql/index"
	"github.com/huaouo/tabsql/storage"
	"github.com/huaouo/tabsql/utils"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Executor runs statements against a store. It is not safe for concurrent
// use; callers serialize Execute.
type Executor struct {
	store   storage.Store
	indexes *index.Manager
	logger  *zap.SugaredLogger
}

func New(store storage.Store, indexes *index.Manager, logger *zap.SugaredLogger) *Executor {
	if indexes == nil {
		indexes = index.NewManager()
	}
	return &Executor{
		store:   store,
		indexes: indexes,
		logger:  utils.OrNop(logger),
	}
}

func (e *Executor) Execute(stmt ast.Stmt) (*Result, error) {
	switch stmt := stmt.(type) {
	case ast.SelectStmt:
		return e.sel(stmt)
	case ast.InsertStmt:
		return e.insert(stmt)
	case ast.UpdateStmt:
		return e.update(stmt)
	case ast.DeleteStmt:
		return e.del(stmt)
	case ast.CreateTableStmt:
		return e.createTable(stmt)
	case ast.CreateIndexStmt:
		return e.createIndex(stmt)
	case ast.DropTableStmt:
		return e.dropTable(stmt)
	case ast.AlterTableStmt:
		return e.alterTable(stmt)
	case ast.ShowStmt:
		return e.show(stmt)
	}
	return nil, errors.Wrapf(UnsupportedStatement, "%T", stmt)
}

func (e *Executor) insert(stmt ast.InsertStmt) (*Result, error) {
	table, err := e.store.GetTable(stmt.TableName)
	if err != nil {
		return nil, err
	}
	if len(stmt.Columns) != len(stmt.Values) {
		return nil, errors.Wrapf(ColumnCountMismatch, "%d column(s), %d value(s)",
			len(stmt.Columns), len(stmt.Values))
	}

	row := storage.NewRow()
	for i, col := range stmt.Columns {
		row.Set(col, stmt.Values[i])
	}
	if err := table.Append(row); err != nil {
		return nil, errors.WithMessage(err, "allocate row id")
	}
	if err := e.store.SaveTable(table.Name); err != nil {
		table.Remove([]*storage.Row{row})
		return nil, err
	}
	e.indexes.UpdateIndex(table.Name, row)
	return affectedResult(1), nil
}

func (e *Executor) update(stmt ast.UpdateStmt) (*Result, error) {
	table, err := e.store.GetTable(stmt.TableName)
	if err != nil {
		return nil, err
	}
	matched, err := filter(table.Rows, stmt.Where, table.Name)
	if err != nil {
		return nil, err
	}

	for _, r := range matched {
		e.indexes.RemoveRow(table.Name, r)
		for _, p := range stmt.UpdatePairs {
			r.Set(p.FieldName, p.Value)
			table.AddColumn(p.FieldName)
		}
		e.indexes.UpdateIndex(table.Name, r)
	}
	if err := e.store.SaveTable(table.Name); err != nil {
		return nil, err
	}
	e.logger.Debugf("Updated %d row(s) in %s", len(matched), table.Name)
	return affectedResult(len(matched)), nil
}

func (e *Executor) del(stmt ast.DeleteStmt) (*Result, error) {
	table, err := e.store.GetTable(stmt.TableName)
	if err != nil {
		return nil, err
	}
	matched, err := filter(table.Rows, stmt.Where, table.Name)
	if err != nil {
		return nil, err
	}
	// table.Rows is compacted in place by Remove.
	matched = append([]*storage.Row(nil), matched...)

	for _, r := range matched {
		e.indexes.RemoveRow(table.Name, r)
	}
	n := table.Remove(matched)
	if err := e.store.SaveTable(table.Name); err != nil {
		return nil, err
	}
	e.logger.Debugf("Deleted %d row(s) from %s", n, table.Name)
	return affectedResult(n), nil
}

func (e *Executor) createTable(stmt ast.CreateTableStmt) (*Result, error) {
	if err := e.store.AddTable(storage.NewTable(stmt.TableName, stmt.Columns)); err != nil {
		return nil, err
	}
	return affectedResult(0), nil
}

func (e *Executor) createIndex(stmt ast.CreateIndexStmt) (*Result, error) {
	table, err := e.store.GetTable(stmt.TableName)
	if err != nil {
		return nil, err
	}
	e.indexes.AddIndex(table.Name, stmt.Column, table.Rows)
	e.logger.Debugf("Built index on %s.%s over %d row(s)", table.Name, stmt.Column, len(table.Rows))
	return affectedResult(0), nil
}

func (e *Executor) dropTable(stmt ast.DropTableStmt) (*Result, error) {
	if err := e.store.DropTable(stmt.TableName); err != nil {
		return nil, err
	}
	e.indexes.DropTable(stmt.TableName)
	return affectedResult(0), nil
}

func (e *Executor) alterTable(stmt ast.AlterTableStmt) (*Result, error) {
	table, err := e.store.GetTable(stmt.TableName)
	if err != nil {
		return nil, err
	}
	filled := 0
	for _, r := range table.Rows {
		if !r.Has(stmt.ColumnToAdd) {
			r.Set(stmt.ColumnToAdd, NULL)
			filled++
		}
	}
	table.AddColumn(stmt.ColumnToAdd)
	if err := e.store.SaveTable(table.Name); err != nil {
		return nil, err
	}
	// NULL fills can land in an existing index on this column.
	if e.indexes.HasIndex(table.Name, stmt.ColumnToAdd) {
		e.indexes.AddIndex(table.Name, stmt.ColumnToAdd, table.Rows)
	}
	return affectedResult(filled), nil
}

func (e *Executor) show(stmt ast.ShowStmt) (*Result, error) {
	if stmt.ShowTables {
		var rows []*ResultRow
		for _, name := range e.store.TableNames() {
			rows = append(rows, &ResultRow{Names: []string{"Tables"}, Values: []interface{}{name}})
		}
		res := rowsResult(rows)
		res.Columns = []string{"Tables"}
		return res, nil
	}

	table, err := e.store.GetTable(stmt.TableName)
	if err != nil {
		return nil, err
	}
	indexed := e.indexes.Columns(table.Name)
	var rows []*ResultRow
	for _, c := range table.Columns {
		flag := "NO"
		if containsFold(indexed, c) {
			flag = "YES"
		}
		rows = append(rows, &ResultRow{
			Names:  []string{"Field", "Indexed"},
			Values: []interface{}{c, flag},
		})
	}
	res := rowsResult(rows)
	res.Columns = []string{"Field", "Indexed"}
	return res, nil
}
