// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package parser

import (
	"github.com/huaouo/tabsql/ast"
	"github.com/stretchr/testify/assert"
	"testing"
)

func assertSyntaxError(t *testing.T, sql string, expected string) {
	_, err := Parse(sql)
	if assert.IsType(t, &SyntaxError{}, err, sql) {
		assert.Equal(t, expected, err.(*SyntaxError).Expected, sql)
	}
}

func TestSelectParser(t *testing.T) {
	stmts, err := ParseAll(
		"select * from test_table where col > 12;" +
			"select a, users.b from test_table where b = 'x' and c != d or e <= 1.5;" +
			"SELECT id, COUNT(*), sum(amount) AS total FROM users GROUP BY id HAVING COUNT(*) > 1 ORDER BY total DESC LIMIT 10 OFFSET 5;",
	)
	assert.Nil(t, err)

	expectedStmts := ast.Stmts{
		ast.SelectStmt{
			Columns:   []string{"*"},
			TableName: "test_table",
			Where:     ast.Compare(ast.Column("col"), ast.GT, ast.Literal("12")),
		},
		ast.SelectStmt{
			Columns:   []string{"a", "users.b"},
			TableName: "test_table",
			Where: ast.Logical(
				ast.Logical(
					ast.Compare(ast.Column("b"), ast.EQ, ast.Literal("x")),
					ast.AND,
					ast.Compare(ast.Column("c"), ast.NE, ast.Column("d")),
				),
				ast.OR,
				ast.Compare(ast.Column("e"), ast.LE, ast.Literal("1.5")),
			),
		},
		ast.SelectStmt{
			Columns: []string{"id"},
			Aggregates: []ast.Aggregate{
				{Func: "COUNT", Column: "*"},
				{Func: "SUM", Column: "amount", Alias: "total"},
			},
			TableName: "users",
			GroupBy:   []string{"id"},
			Having:    ast.Compare(ast.AggregateOf(ast.Aggregate{Func: "COUNT", Column: "*"}), ast.GT, ast.Literal("1")),
			OrderBy:   &ast.OrderBy{Column: "total", Desc: true},
			Limit:     &ast.Limit{Count: 10, Offset: 5},
		},
	}
	assert.Equal(t, expectedStmts, stmts)

	assertSyntaxError(t, "select hello;", "Expected 'FROM'")
	assertSyntaxError(t, "select from yu;", "Expected column name")
	assertSyntaxError(t, "select a from b where a = ;", "Expected number, string or identifier")
	assertSyntaxError(t, "select a from b where = 1;", "Expected column name")
	assertSyntaxError(t, "select a from b where 21;", "Expected column name")
	assertSyntaxError(t, "select a from b where c = 1", "Expected ';' after statement")
	assertSyntaxError(t, "select a from b where c 1;", "Expected comparison operator")
	assertSyntaxError(t, "select count(* from b;", "Expected ')' after aggregate function")
	assertSyntaxError(t, "select a from b order a;", "Expected 'BY' after ORDER")
	assertSyntaxError(t, "select a from b limit 1.5;", "Expected integer after LIMIT")
	assertSyntaxError(t, "select a from b; select", "Expected end of input after ';'")
	assertSyntaxError(t, "select a from t;\x00garbage", "Expected end of input after ';'")
}

func TestJoinParser(t *testing.T) {
	stmt, err := Parse("select users.name, orders.total from users join orders on users.id = orders.user_id;")
	assert.Nil(t, err)
	assert.Equal(t, ast.SelectStmt{
		Columns:   []string{"users.name", "orders.total"},
		TableName: "users",
		Join: &ast.JoinInfo{
			Kind:        ast.INNER,
			Table:       "orders",
			OnCondition: ast.Compare(ast.Column("users.id"), ast.EQ, ast.Column("orders.user_id")),
		},
	}, stmt)

	// WHERE may come before the join clause.
	stmt, err = Parse("select * from a where a.x > 1 left outer join b on a.id = b.aid;")
	assert.Nil(t, err)
	sel := stmt.(ast.SelectStmt)
	assert.Equal(t, ast.LEFT, sel.Join.Kind)
	assert.Equal(t, "b", sel.Join.Table)
	assert.Equal(t, ast.Compare(ast.Column("a.x"), ast.GT, ast.Literal("1")), sel.Where)

	stmt, err = Parse("select * from a full join b on a.id = b.aid where b.y = 'k';")
	assert.Nil(t, err)
	sel = stmt.(ast.SelectStmt)
	assert.Equal(t, ast.FULL, sel.Join.Kind)
	assert.NotNil(t, sel.Where)

	stmt, err = Parse("select * from a right join b on a.id = b.aid;")
	assert.Nil(t, err)
	assert.Equal(t, ast.RIGHT, stmt.(ast.SelectStmt).Join.Kind)

	assertSyntaxError(t, "select * from a left b on a.id = b.id;", "Expected JOIN after join type")
	assertSyntaxError(t, "select * from a join b a.id = b.id;", "Expected ON clause after JOIN table")
	assertSyntaxError(t, "select * from a join on a.id = b.id;", "Expected join table name")
}

func TestInsertParser(t *testing.T) {
	stmts, err := ParseAll(
		"insert into mytable (a, b) values (1, 'x');" +
			"INSERT INTO mytable (a, b, c) VALUES (2.5, bare, NULL);",
	)
	assert.Nil(t, err)

	expectedStmts := ast.Stmts{
		ast.InsertStmt{
			TableName: "mytable",
			Columns:   []string{"a", "b"},
			Values:    []string{"1", "x"},
		},
		ast.InsertStmt{
			TableName: "mytable",
			Columns:   []string{"a", "b", "c"},
			Values:    []string{"2.5", "bare", "NULL"},
		},
	}
	assert.Equal(t, expectedStmts, stmts)

	// Counts are checked by the executor, not the parser.
	stmt, err := Parse("insert into t (a, b) values (1);")
	assert.Nil(t, err)
	assert.Equal(t, ast.InsertStmt{TableName: "t", Columns: []string{"a", "b"}, Values: []string{"1"}}, stmt)

	assertSyntaxError(t, "insert into ll values (1);", "Expected '(' after table name")
	assertSyntaxError(t, "insert into ll (a) values ();", "Expected value")
	assertSyntaxError(t, "insert into ll (a) values (*);", "Expected value")
	assertSyntaxError(t, "insert ll (a) values (1);", "Expected INTO after INSERT")
}

func TestUpdateParser(t *testing.T) {
	stmts, err := ParseAll(
		"update mytable set a = 1, b = 'xmu' where a != 12;" +
			"update mytable set a = 1;",
	)
	assert.Nil(t, err)

	expectedStmts := ast.Stmts{
		ast.UpdateStmt{
			TableName: "mytable",
			UpdatePairs: []ast.UpdatePair{
				{FieldName: "a", Value: "1"},
				{FieldName: "b", Value: "xmu"},
			},
			Where: ast.Compare(ast.Column("a"), ast.NE, ast.Literal("12")),
		},
		ast.UpdateStmt{
			TableName:   "mytable",
			UpdatePairs: []ast.UpdatePair{{FieldName: "a", Value: "1"}},
		},
	}
	assert.Equal(t, expectedStmts, stmts)

	assertSyntaxError(t, "update mytable set a = 2, where a = 1;", "Expected column name")
	assertSyntaxError(t, "update mytable a = 2;", "Expected SET")
}

func TestDeleteParser(t *testing.T) {
	stmts, err := ParseAll("delete from mytable;delete from mytable where a = '12';")
	assert.Nil(t, err)

	expectedStmts := ast.Stmts{
		ast.DeleteStmt{TableName: "mytable"},
		ast.DeleteStmt{
			TableName: "mytable",
			Where:     ast.Compare(ast.Column("a"), ast.EQ, ast.Literal("12")),
		},
	}
	assert.Equal(t, expectedStmts, stmts)

	assertSyntaxError(t, "delete from where a = 1;", "Expected table name")
	assertSyntaxError(t, "delete mytable;", "Expected FROM after DELETE")
}

func TestDDLParser(t *testing.T) {
	stmts, err := ParseAll(
		"create table users (id, name);" +
			"create index idx_id on users(id);" +
			"drop table users;" +
			"alter table users add email;" +
			"show tables;" +
			"show users;",
	)
	assert.Nil(t, err)

	expectedStmts := ast.Stmts{
		ast.CreateTableStmt{TableName: "users", Columns: []string{"id", "name"}},
		ast.CreateIndexStmt{TableName: "users", Column: "id"},
		ast.DropTableStmt{TableName: "users"},
		ast.AlterTableStmt{TableName: "users", ColumnToAdd: "email"},
		ast.ShowStmt{ShowTables: true},
		ast.ShowStmt{TableName: "users"},
	}
	assert.Equal(t, expectedStmts, stmts)

	assertSyntaxError(t, "create users (a);", "Expected TABLE or INDEX after CREATE")
	assertSyntaxError(t, "create table t ();", "Expected column name")
	assertSyntaxError(t, "create table t (a,);", "Expected column name")
	assertSyntaxError(t, "create index on t(a);", "Expected index name")
	assertSyntaxError(t, "drop table;", "Expected table name")
	assertSyntaxError(t, "drop tables;", "Expected 'TABLE' after DROP")
	assertSyntaxError(t, "alter table t email;", "Expected 'ADD' after table name")
	assertSyntaxError(t, "show;", "Expected TABLES or table name after SHOW")
}

func TestUnknownStatement(t *testing.T) {
	_, err := Parse("explain select * from t;")
	assert.Equal(t, UnknownStatement, err)

	_, err = Parse("")
	assert.Equal(t, UnknownStatement, err)

	stmts, err := ParseAll("  ")
	assert.Nil(t, err)
	assert.Empty(t, stmts)
}

func TestHavingAggregateOperand(t *testing.T) {
	stmt, err := Parse("select g from t group by g having count() >= 2 and max(t.v) < 'm';")
	assert.Nil(t, err)

	having := stmt.(ast.SelectStmt).Having
	assert.False(t, having.IsLeaf())
	assert.Equal(t, ast.AND, having.Op)
	assert.Equal(t, ast.AGGREGATE, having.Left.Column.Kind)
	assert.Equal(t, "COUNT()", having.Left.Column.Text)
	assert.Equal(t, "MAX(t.v)", having.Right.Column.Text)
	assert.Equal(t, ast.LITERAL, having.Right.Value.Kind)
}
