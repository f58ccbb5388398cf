// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package ast

import "strings"

type Op int

const (
	ILLEGAL Op = iota
	EQ
	NE
	GT
	GE
	LT
	LE
	AND
	OR
)

var opNames = map[Op]string{
	ILLEGAL: "",
	EQ:      "=",
	NE:      "!=",
	GT:      ">",
	GE:      ">=",
	LT:      "<",
	LE:      "<=",
	AND:     "AND",
	OR:      "OR",
}

func (o Op) String() string {
	return opNames[o]
}

func (o Op) IsLogical() bool {
	return o == AND || o == OR
}

func (o Op) IsComparison() bool {
	return o >= EQ && o <= LE
}

type OperandKind int

const (
	LITERAL OperandKind = iota
	COLUMN
	AGGREGATE
)

// Operand is one side of a comparison. Whether it names a column or holds
// a literal is decided by the parser.
type Operand struct {
	Kind OperandKind
	Text string
	Agg  *Aggregate
}

func Literal(text string) Operand {
	return Operand{Kind: LITERAL, Text: text}
}

func Column(name string) Operand {
	return Operand{Kind: COLUMN, Text: name}
}

func AggregateOf(agg Aggregate) Operand {
	return Operand{Kind: AGGREGATE, Text: agg.String(), Agg: &agg}
}

// Expr is either a logical node (Left, Op in {AND, OR}, Right) or a
// comparison leaf (Column, Op, Value), never both.
type Expr struct {
	Left  *Expr
	Right *Expr

	Column Operand
	Op
	Value Operand
}

func (e *Expr) IsLeaf() bool {
	return e.Left == nil && e.Right == nil
}

func Compare(column Operand, op Op, value Operand) *Expr {
	return &Expr{Column: column, Op: op, Value: value}
}

func Logical(left *Expr, op Op, right *Expr) *Expr {
	return &Expr{Left: left, Op: op, Right: right}
}

type Aggregate struct {
	Func   string
	Column string
	Alias  string
}

// String renders the canonical FUNC(column) form.
func (a Aggregate) String() string {
	return a.Func + "(" + a.Column + ")"
}

// Name is the display name of the aggregate in a result row.
func (a Aggregate) Name() string {
	if a.Alias != "" {
		return a.Alias
	}
	return a.String()
}

type JoinKind int

const (
	INNER JoinKind = iota
	LEFT
	RIGHT
	FULL
)

var joinKindNames = map[JoinKind]string{
	INNER: "INNER",
	LEFT:  "LEFT",
	RIGHT: "RIGHT",
	FULL:  "FULL",
}

func (k JoinKind) String() string {
	return joinKindNames[k]
}

type JoinInfo struct {
	Kind        JoinKind
	Table       string
	OnCondition *Expr
}

type OrderBy struct {
	Column string
	Desc   bool
}

type Limit struct {
	Count  int
	Offset int
}

type SelectStmt struct {
	Columns    []string
	Aggregates []Aggregate
	TableName  string
	Where      *Expr
	Join       *JoinInfo
	GroupBy    []string
	Having     *Expr
	OrderBy    *OrderBy
	Limit      *Limit
}

// HasStar reports whether the column list is a bare "*".
func (s *SelectStmt) HasStar() bool {
	for _, c := range s.Columns {
		if c == "*" {
			return true
		}
	}
	return false
}

// AggregateByAlias finds a select-list aggregate by its alias.
func (s *SelectStmt) AggregateByAlias(alias string) (Aggregate, bool) {
	for _, a := range s.Aggregates {
		if a.Alias != "" && strings.EqualFold(a.Alias, alias) {
			return a, true
		}
	}
	return Aggregate{}, false
}

type InsertStmt struct {
	TableName string
	Columns   []string
	Values    []string
}

type UpdatePair struct {
	FieldName string
	Value     string
}

type UpdateStmt struct {
	TableName   string
	UpdatePairs []UpdatePair
	Where       *Expr
}

type DeleteStmt struct {
	TableName string
	Where     *Expr
}

type CreateTableStmt struct {
	TableName string
	Columns   []string
}

type CreateIndexStmt struct {
	TableName string
	Column    string
}

type DropTableStmt struct {
	TableName string
}

type AlterTableStmt struct {
	TableName   string
	ColumnToAdd string
}

type ShowStmt struct {
	ShowTables bool
	TableName  string
}

type Stmt interface {
	stmtNode()
}

func (SelectStmt) stmtNode()      {}
func (InsertStmt) stmtNode()      {}
func (UpdateStmt) stmtNode()      {}
func (DeleteStmt) stmtNode()      {}
func (CreateTableStmt) stmtNode() {}
func (CreateIndexStmt) stmtNode() {}
func (DropTableStmt) stmtNode()   {}
func (AlterTableStmt) stmtNode()  {}
func (ShowStmt) stmtNode()        {}

type Stmts []Stmt
