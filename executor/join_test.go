// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package executor

import (
	"github.com/huaouo/tabsql/ast"
	"github.com/huaouo/tabsql/parser"
	"github.com/stretchr/testify/assert"
	"testing"
)

func newJoinExecutorForTest(t *testing.T) *Executor {
	e := newExecutorForTest()
	mustExec(t, e,
		"create table users (id, name);",
		"insert into users (id, name) values (1, 'Alice');",
		"insert into users (id, name) values (2, 'Bob');",
		"insert into users (id, name) values (3, 'Carol');",
		"create table orders (id, user_id, total);",
		"insert into orders (id, user_id, total) values (10, 1, 5);",
		"insert into orders (id, user_id, total) values (11, 2.0, 7);",
		"insert into orders (id, user_id, total) values (12, 1, 3);",
		"insert into orders (id, user_id, total) values (13, 9, 1);",
	)
	return e
}

func TestInnerJoin(t *testing.T) {
	e := newJoinExecutorForTest(t)
	res := mustExec(t, e, "select * from orders join users on orders.user_id = users.id;")
	assert.Equal(t, []string{"orders.id", "orders.user_id", "orders.total", "users.id", "users.name"}, res.Columns)
	assert.Equal(t, 3, len(res.Rows))
	assert.Equal(t, row(
		"orders.id", "10",
		"orders.user_id", "1",
		"orders.total", "5",
		"users.id", "1",
		"users.name", "Alice",
	), res.Rows[0])
	assert.Equal(t, []interface{}{"Alice", "Bob", "Alice"}, column(res, "users.name"))

	res = mustExec(t, e, "select users.name, orders.total from orders inner join users on orders.user_id = users.id "+
		"where orders.total > 4 order by total desc;")
	assert.Equal(t, []*ResultRow{
		row("users.name", "Bob", "orders.total", "7"),
		row("users.name", "Alice", "orders.total", "5"),
	}, res.Rows)

	// WHERE may precede the join clause; it still filters joined rows.
	res = mustExec(t, e, "select orders.id from orders where orders.total >= 5 join users on orders.user_id = users.id;")
	assert.Equal(t, []interface{}{"10", "11"}, column(res, "orders.id"))

	res = mustExec(t, e, "select users.name, count(*) as n from orders join users on orders.user_id = users.id "+
		"group by users.name order by n desc;")
	assert.Equal(t, []*ResultRow{
		row("users.name", "Alice", "n", 2),
		row("users.name", "Bob", "n", 1),
	}, res.Rows)

	res = mustExec(t, e, "select * from orders join users on orders.user_id < users.id;")
	assert.Equal(t, 5, len(res.Rows))
}

func TestJoinIndexMatchesScan(t *testing.T) {
	sqls := []string{
		"select * from orders join users on orders.user_id = users.id;",
		"select * from orders join users on users.id = orders.user_id;",
		"select * from orders join users on user_id = users.id;",
		"select * from orders join users on users.id = user_id;",
		"select * from orders left join users on orders.user_id = users.id;",
		"select * from orders full outer join users on orders.user_id = users.id;",
		"select orders.id from orders join users on orders.user_id = users.id and users.name != 'bob';",
	}

	e := newJoinExecutorForTest(t)
	var scanned []*Result
	for _, sql := range sqls {
		scanned = append(scanned, mustExec(t, e, sql))
	}

	mustExec(t, e, "create index idx_id on users(id);")
	for i, sql := range sqls {
		assert.Equal(t, scanned[i].Rows, mustExec(t, e, sql).Rows, sql)
	}

	// Rows inserted after the index is built are found through it.
	mustExec(t, e, "insert into users (id, name) values (9.0, 'Zed');")
	res := mustExec(t, e, sqls[0])
	assert.Equal(t, 4, len(res.Rows))
	assert.Equal(t, "Zed", FormatValue(must(res.Rows[3].Get("users.name"))))
}

func must(v interface{}, ok bool) interface{} {
	if !ok {
		return nil
	}
	return v
}

func TestJoinUsesIndex(t *testing.T) {
	e := newJoinExecutorForTest(t)
	mustExec(t, e, "create index idx_id on users(id);")
	orders, _ := e.store.GetTable("orders")
	users, _ := e.store.GetTable("users")

	stmt, err := parser.Parse("select * from orders join users on users.id = orders.user_id;")
	assert.Nil(t, err)
	leftKey, rightColumn, ok := joinKeys(orders, users, stmt.(ast.SelectStmt).Join.OnCondition)
	assert.True(t, ok)
	assert.Equal(t, "orders.user_id", leftKey)
	assert.Equal(t, "id", rightColumn)

	got := e.candidates(users, orders.Rows[1], leftKey, rightColumn, true)
	assert.Equal(t, 1, len(got))
	v, _ := got[0].Get("name")
	assert.Equal(t, "Bob", v)

	// A miss falls back to the whole table.
	got = e.candidates(users, orders.Rows[3], leftKey, rightColumn, true)
	assert.Equal(t, users.Rows, got)

	_, _, ok = joinKeys(orders, users, ast.Compare(ast.Column("orders.user_id"), ast.GT, ast.Column("users.id")))
	assert.False(t, ok)
	// Bare keys belong to the one table that has the column.
	leftKey, rightColumn, ok = joinKeys(orders, users, ast.Compare(ast.Column("user_id"), ast.EQ, ast.Column("users.id")))
	assert.True(t, ok)
	assert.Equal(t, "user_id", leftKey)
	assert.Equal(t, "id", rightColumn)
	leftKey, rightColumn, ok = joinKeys(orders, users, ast.Compare(ast.Column("name"), ast.EQ, ast.Column("user_id")))
	assert.True(t, ok)
	assert.Equal(t, "user_id", leftKey)
	assert.Equal(t, "name", rightColumn)

	got = e.candidates(users, orders.Rows[1], "user_id", "id", true)
	assert.Equal(t, 1, len(got))

	// id is in both tables.
	_, _, ok = joinKeys(orders, users, ast.Compare(ast.Column("user_id"), ast.EQ, ast.Column("id")))
	assert.False(t, ok)
	_, _, ok = joinKeys(orders, users, ast.Compare(ast.Column("orders.user_id"), ast.EQ, ast.Column("items.id")))
	assert.False(t, ok)
	_, _, ok = joinKeys(orders, users, ast.Compare(ast.Column("orders.user_id"), ast.EQ, ast.Column("orders.id")))
	assert.False(t, ok)
}

func TestOuterJoin(t *testing.T) {
	e := newJoinExecutorForTest(t)

	res := mustExec(t, e, "select orders.id, users.name from orders left join users on orders.user_id = users.id;")
	assert.Equal(t, []interface{}{"10", "11", "12", "13"}, column(res, "orders.id"))
	assert.Equal(t, []interface{}{"Alice", "Bob", "Alice", "NULL"}, column(res, "users.name"))

	res = mustExec(t, e, "select orders.id, users.name from orders right join users on orders.user_id = users.id;")
	assert.Equal(t, []interface{}{"10", "11", "12", "NULL"}, column(res, "orders.id"))
	assert.Equal(t, []interface{}{"Alice", "Bob", "Alice", "Carol"}, column(res, "users.name"))

	res = mustExec(t, e, "select orders.id, users.name from orders full join users on orders.user_id = users.id;")
	assert.Equal(t, []interface{}{"10", "11", "12", "13", "NULL"}, column(res, "orders.id"))
	assert.Equal(t, []interface{}{"Alice", "Bob", "Alice", "NULL", "Carol"}, column(res, "users.name"))

	res = mustExec(t, e, "select count(users.id) from orders left join users on orders.user_id = users.id;")
	assert.Equal(t, []*ResultRow{row("COUNT(users.id)", 3)}, res.Rows)
}
