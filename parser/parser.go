// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package parser

import (
	"errors"
	"github.com/huaouo/tabsql/ast"
	"strconv"
	"strings"
)

var UnknownStatement = errors.New("unknown statement")

// SyntaxError reports the first grammar expectation that was not met.
type SyntaxError struct {
	Expected string
}

func (e *SyntaxError) Error() string {
	return "syntax error: " + e.Expected
}

type Parser struct {
	tokens []Token
	pos    int
	err    error
}

func newParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses exactly one statement terminated by ';'.
func Parse(sql string) (ast.Stmt, error) {
	p := newParser(Tokenize(sql))
	stmt := p.parseStmt()
	if p.err != nil {
		return nil, p.err
	}
	if !p.check(end) {
		return nil, &SyntaxError{Expected: "Expected end of input after ';'"}
	}
	return stmt, nil
}

// ParseAll parses a sequence of statements and stops at the first error.
func ParseAll(sql string) (ast.Stmts, error) {
	p := newParser(Tokenize(sql))
	stmts := ast.Stmts{}
	for !p.check(end) {
		stmt := p.parseStmt()
		if p.err != nil {
			return nil, p.err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.peek().Kind {
	case selectId:
		return p.parseSelectStmt()
	case insertId:
		return p.parseInsertStmt()
	case updateId:
		return p.parseUpdateStmt()
	case deleteId:
		return p.parseDeleteStmt()
	case createId:
		return p.parseCreateStmt()
	case dropId:
		return p.parseDropStmt()
	case alterId:
		return p.parseAlterStmt()
	case showId:
		return p.parseShowStmt()
	default:
		p.err = UnknownStatement
		return nil
	}
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: end}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekNext() Token {
	if p.pos+1 >= len(p.tokens) {
		return Token{Kind: end}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) check(kinds ...TokenKind) bool {
	cur := p.peek().Kind
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if tok.Kind != end {
		p.pos++
	}
	return tok
}

// match consumes the next token if it is one of kinds.
func (p *Parser) match(kinds ...TokenKind) (Token, bool) {
	if p.err != nil || !p.check(kinds...) {
		return Token{}, false
	}
	return p.advance(), true
}

// expectToken consumes the next token, which must be one of exTokens.
// The first failure is sticky: later calls return a zero token.
func (p *Parser) expectToken(msg string, exTokens ...TokenKind) Token {
	if p.err != nil {
		return Token{}
	}
	if !p.check(exTokens...) {
		p.err = &SyntaxError{Expected: msg}
		return Token{}
	}
	return p.advance()
}

func (p *Parser) parseQualifiedIdentifier(msg string) string {
	name := p.expectToken(msg, identifier).Text
	for p.err == nil {
		if _, ok := p.match(dot); !ok {
			break
		}
		name += "." + p.expectToken("Expected identifier after '.'", identifier).Text
	}
	return name
}

func (p *Parser) parseAggregateCall() ast.Aggregate {
	agg := ast.Aggregate{}
	agg.Func = strings.ToUpper(p.expectToken("Expected aggregate function name", identifier).Text)
	_ = p.expectToken("Expected '(' after aggregate function", lParenthesis)
	if _, ok := p.match(star); ok {
		agg.Column = "*"
	} else if !p.check(rParenthesis) {
		agg.Column = p.parseQualifiedIdentifier("Expected column name inside aggregate function")
	}
	_ = p.expectToken("Expected ')' after aggregate function", rParenthesis)
	return agg
}

func (p *Parser) parseSelectList(stmt *ast.SelectStmt) {
	if _, ok := p.match(star); ok {
		stmt.Columns = append(stmt.Columns, "*")
		return
	}

	for p.err == nil {
		if p.check(identifier) && p.peekNext().Kind == lParenthesis {
			agg := p.parseAggregateCall()
			if _, ok := p.match(asId); ok {
				agg.Alias = p.expectToken("Expected alias after AS", identifier).Text
			}
			stmt.Aggregates = append(stmt.Aggregates, agg)
		} else {
			stmt.Columns = append(stmt.Columns, p.parseQualifiedIdentifier("Expected column name"))
		}
		if _, ok := p.match(comma); !ok {
			break
		}
	}
}

var joinKinds = map[TokenKind]ast.JoinKind{
	innerId: ast.INNER,
	leftId:  ast.LEFT,
	rightId: ast.RIGHT,
	fullId:  ast.FULL,
}

func (p *Parser) parseJoinClause() *ast.JoinInfo {
	join := &ast.JoinInfo{Kind: ast.INNER}
	if tok, ok := p.match(innerId, leftId, rightId, fullId); ok {
		join.Kind = joinKinds[tok.Kind]
		_, _ = p.match(outerId)
		_ = p.expectToken("Expected JOIN after join type", joinId)
	} else if _, ok := p.match(joinId); !ok {
		return nil
	}

	join.Table = p.expectToken("Expected join table name", identifier).Text
	_ = p.expectToken("Expected ON clause after JOIN table", onId)
	join.OnCondition = p.parseExpression()
	return join
}

func (p *Parser) parseInt(msg string) int {
	lit := p.expectToken(msg, numberLiteral).Text
	if p.err != nil {
		return 0
	}
	n, err := strconv.Atoi(lit)
	if err != nil {
		p.err = &SyntaxError{Expected: msg}
	}
	return n
}

func (p *Parser) parseSelectStmt() ast.Stmt {
	stmt := ast.SelectStmt{}

	_ = p.expectToken("Expected 'SELECT'", selectId)
	p.parseSelectList(&stmt)
	_ = p.expectToken("Expected 'FROM'", fromId)
	stmt.TableName = p.expectToken("Expected table name", identifier).Text

	stmt.Join = p.parseJoinClause()
	if _, ok := p.match(whereId); ok {
		stmt.Where = p.parseExpression()
	}
	if stmt.Join == nil {
		stmt.Join = p.parseJoinClause()
	}

	if _, ok := p.match(groupId); ok {
		_ = p.expectToken("Expected 'BY' after GROUP", byId)
		for p.err == nil {
			stmt.GroupBy = append(stmt.GroupBy, p.parseQualifiedIdentifier("Expected column name after GROUP BY"))
			if _, ok := p.match(comma); !ok {
				break
			}
		}
	}

	if _, ok := p.match(havingId); ok {
		stmt.Having = p.parseExpression()
	}

	if _, ok := p.match(orderId); ok {
		_ = p.expectToken("Expected 'BY' after ORDER", byId)
		stmt.OrderBy = &ast.OrderBy{
			Column: p.parseQualifiedIdentifier("Expected column name after ORDER BY"),
		}
		if tok, ok := p.match(ascId, descId); ok {
			stmt.OrderBy.Desc = tok.Kind == descId
		}
	}

	if _, ok := p.match(limitId); ok {
		stmt.Limit = &ast.Limit{Count: p.parseInt("Expected integer after LIMIT")}
		if _, ok := p.match(offsetId); ok {
			stmt.Limit.Offset = p.parseInt("Expected integer after OFFSET")
		}
	}

	_ = p.expectToken("Expected ';' after statement", semicolon)
	return stmt
}

func (p *Parser) parseValue() string {
	tok := p.expectToken("Expected value", numberLiteral, stringLiteral, identifier, nullId)
	if tok.Kind == nullId {
		return "NULL"
	}
	return tok.Text
}

func (p *Parser) parseInsertStmt() ast.Stmt {
	stmt := ast.InsertStmt{}

	_ = p.expectToken("Expected INSERT", insertId)
	_ = p.expectToken("Expected INTO after INSERT", intoId)
	stmt.TableName = p.expectToken("Expected table name", identifier).Text

	_ = p.expectToken("Expected '(' after table name", lParenthesis)
	for p.err == nil {
		stmt.Columns = append(stmt.Columns, p.expectToken("Expected column name", identifier).Text)
		if _, ok := p.match(comma); !ok {
			break
		}
	}
	_ = p.expectToken("Expected ')' after column list", rParenthesis)

	_ = p.expectToken("Expected VALUES keyword", valuesId)
	_ = p.expectToken("Expected '(' before values list", lParenthesis)
	for p.err == nil {
		stmt.Values = append(stmt.Values, p.parseValue())
		if _, ok := p.match(comma); !ok {
			break
		}
	}
	_ = p.expectToken("Expected ')' after values list", rParenthesis)
	_ = p.expectToken("Expected ';' after statement", semicolon)
	return stmt
}

func (p *Parser) parseUpdateStmt() ast.Stmt {
	stmt := ast.UpdateStmt{}

	_ = p.expectToken("Expected UPDATE", updateId)
	stmt.TableName = p.expectToken("Expected table name", identifier).Text
	_ = p.expectToken("Expected SET", setId)

	for p.err == nil {
		pair := ast.UpdatePair{}
		pair.FieldName = p.expectToken("Expected column name", identifier).Text
		_ = p.expectToken("Expected '='", eq)
		pair.Value = p.parseValue()
		stmt.UpdatePairs = append(stmt.UpdatePairs, pair)
		if _, ok := p.match(comma); !ok {
			break
		}
	}

	if _, ok := p.match(whereId); ok {
		stmt.Where = p.parseExpression()
	}
	_ = p.expectToken("Expected ';' after statement", semicolon)
	return stmt
}

func (p *Parser) parseDeleteStmt() ast.Stmt {
	stmt := ast.DeleteStmt{}

	_ = p.expectToken("Expected DELETE", deleteId)
	_ = p.expectToken("Expected FROM after DELETE", fromId)
	stmt.TableName = p.expectToken("Expected table name", identifier).Text
	if _, ok := p.match(whereId); ok {
		stmt.Where = p.parseExpression()
	}
	_ = p.expectToken("Expected ';' after statement", semicolon)
	return stmt
}

func (p *Parser) parseCreateStmt() ast.Stmt {
	_ = p.expectToken("Expected 'CREATE'", createId)
	tok := p.expectToken("Expected TABLE or INDEX after CREATE", tableId, indexId)
	if tok.Kind == indexId {
		return p.parseCreateIndex()
	}

	stmt := ast.CreateTableStmt{}
	stmt.TableName = p.expectToken("Expected table name", identifier).Text
	_ = p.expectToken("Expected '(' after table name", lParenthesis)
	for p.err == nil {
		stmt.Columns = append(stmt.Columns, p.expectToken("Expected column name", identifier).Text)
		if _, ok := p.match(comma); !ok {
			break
		}
	}
	_ = p.expectToken("Expected ')' after column list", rParenthesis)
	_ = p.expectToken("Expected ';' after CREATE TABLE", semicolon)
	return stmt
}

// The index name is required by the grammar but not kept.
func (p *Parser) parseCreateIndex() ast.Stmt {
	stmt := ast.CreateIndexStmt{}

	_ = p.expectToken("Expected index name", identifier)
	_ = p.expectToken("Expected ON", onId)
	stmt.TableName = p.expectToken("Expected table name", identifier).Text
	_ = p.expectToken("Expected '('", lParenthesis)
	stmt.Column = p.expectToken("Expected column name", identifier).Text
	_ = p.expectToken("Expected ')'", rParenthesis)
	_ = p.expectToken("Expected ';' after CREATE INDEX", semicolon)
	return stmt
}

func (p *Parser) parseDropStmt() ast.Stmt {
	stmt := ast.DropTableStmt{}

	_ = p.expectToken("Expected 'DROP'", dropId)
	_ = p.expectToken("Expected 'TABLE' after DROP", tableId)
	stmt.TableName = p.expectToken("Expected table name", identifier).Text
	_ = p.expectToken("Expected ';' after DROP TABLE", semicolon)
	return stmt
}

func (p *Parser) parseAlterStmt() ast.Stmt {
	stmt := ast.AlterTableStmt{}

	_ = p.expectToken("Expected 'ALTER'", alterId)
	_ = p.expectToken("Expected 'TABLE' after ALTER", tableId)
	stmt.TableName = p.expectToken("Expected table name", identifier).Text
	_ = p.expectToken("Expected 'ADD' after table name", addId)
	stmt.ColumnToAdd = p.expectToken("Expected column name to add", identifier).Text
	_ = p.expectToken("Expected ';' after ALTER TABLE", semicolon)
	return stmt
}

func (p *Parser) parseShowStmt() ast.Stmt {
	stmt := ast.ShowStmt{}

	_ = p.expectToken("Expected 'SHOW'", showId)
	tok := p.expectToken("Expected TABLES or table name after SHOW", tablesId, identifier)
	if tok.Kind == tablesId {
		stmt.ShowTables = true
	} else {
		stmt.TableName = tok.Text
	}
	_ = p.expectToken("Expected ';' after SHOW", semicolon)
	return stmt
}

var compTok2Op = map[TokenKind]ast.Op{
	eq: ast.EQ,
	ne: ast.NE,
	gt: ast.GT,
	ge: ast.GE,
	lt: ast.LT,
	le: ast.LE,
}

// Expression := Comparison (("AND"|"OR") Comparison)*, left-associative
// with AND and OR at the same level.
func (p *Parser) parseExpression() *ast.Expr {
	left := p.parseComparison()
	for p.err == nil {
		tok, ok := p.match(andId, orId)
		if !ok {
			break
		}
		op := ast.AND
		if tok.Kind == orId {
			op = ast.OR
		}
		left = ast.Logical(left, op, p.parseComparison())
	}
	if p.err != nil {
		return nil
	}
	return left
}

func (p *Parser) parseComparison() *ast.Expr {
	var column ast.Operand
	if p.check(identifier) && p.peekNext().Kind == lParenthesis {
		column = ast.AggregateOf(p.parseAggregateCall())
	} else {
		column = ast.Column(p.parseQualifiedIdentifier("Expected column name"))
	}

	opTok := p.expectToken("Expected comparison operator", eq, ne, gt, ge, lt, le)

	var value ast.Operand
	if p.check(identifier) {
		value = ast.Column(p.parseQualifiedIdentifier("Expected identifier"))
	} else {
		tok := p.expectToken("Expected number, string or identifier", numberLiteral, stringLiteral, nullId)
		if tok.Kind == nullId {
			value = ast.Literal("NULL")
		} else {
			value = ast.Literal(tok.Text)
		}
	}

	if p.err != nil {
		return nil
	}
	return ast.Compare(column, compTok2Op[opTok.Kind], value)
}
