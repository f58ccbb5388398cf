// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package parser

type TokenKind int

const (
	unknown TokenKind = iota
	end

	selectId
	fromId
	whereId
	joinId
	innerId
	leftId
	rightId
	fullId
	outerId
	onId
	asId
	orderId
	byId
	groupId
	havingId
	limitId
	offsetId
	insertId
	intoId
	valuesId
	updateId
	setId
	deleteId
	createId
	tableId
	dropId
	alterId
	addId
	andId
	orId
	ascId
	descId
	indexId
	showId
	tablesId
	nullId

	identifier
	stringLiteral
	numberLiteral

	star
	comma
	dot
	semicolon
	lParenthesis
	rParenthesis
	eq // =
	ne // != or <>
	gt
	lt
	ge
	le
)

var tokenNames = map[TokenKind]string{
	unknown: "unknown",
	end:     "end",

	selectId: "selectId",
	fromId:   "fromId",
	whereId:  "whereId",
	joinId:   "joinId",
	innerId:  "innerId",
	leftId:   "leftId",
	rightId:  "rightId",
	fullId:   "fullId",
	outerId:  "outerId",
	onId:     "onId",
	asId:     "asId",
	orderId:  "orderId",
	byId:     "byId",
	groupId:  "groupId",
	havingId: "havingId",
	limitId:  "limitId",
	offsetId: "offsetId",
	insertId: "insertId",
	intoId:   "intoId",
	valuesId: "valuesId",
	updateId: "updateId",
	setId:    "setId",
	deleteId: "deleteId",
	createId: "createId",
	tableId:  "tableId",
	dropId:   "dropId",
	alterId:  "alterId",
	addId:    "addId",
	andId:    "andId",
	orId:     "orId",
	ascId:    "ascId",
	descId:   "descId",
	indexId:  "indexId",
	showId:   "showId",
	tablesId: "tablesId",
	nullId:   "nullId",

	identifier:    "identifier",
	stringLiteral: "stringLiteral",
	numberLiteral: "numberLiteral",

	star:         "star",
	comma:        "comma",
	dot:          "dot",
	semicolon:    "semicolon",
	lParenthesis: "lParenthesis",
	rParenthesis: "rParenthesis",
	eq:           "eq",
	ne:           "ne",
	gt:           "gt",
	lt:           "lt",
	ge:           "ge",
	le:           "le",
}

func (k TokenKind) String() string {
	return tokenNames[k]
}

var keywords = map[string]TokenKind{
	"select": selectId,
	"from":   fromId,
	"where":  whereId,
	"join":   joinId,
	"inner":  innerId,
	"left":   leftId,
	"right":  rightId,
	"full":   fullId,
	"outer":  outerId,
	"on":     onId,
	"as":     asId,
	"order":  orderId,
	"by":     byId,
	"group":  groupId,
	"having": havingId,
	"limit":  limitId,
	"offset": offsetId,
	"insert": insertId,
	"into":   intoId,
	"values": valuesId,
	"update": updateId,
	"set":    setId,
	"delete": deleteId,
	"create": createId,
	"table":  tableId,
	"drop":   dropId,
	"alter":  alterId,
	"add":    addId,
	"and":    andId,
	"or":     orId,
	"asc":    ascId,
	"desc":   descId,
	"index":  indexId,
	"show":   showId,
	"tables": tablesId,
	"null":   nullId,
}

// Token is immutable once produced by the lexer. Text holds the lexeme as
// written, except for string literals where the quotes are stripped.
type Token struct {
	Kind TokenKind
	Text string
}

// Lexeme reconstructs the source form of the token.
func (t Token) Lexeme() string {
	if t.Kind == stringLiteral {
		return "'" + t.Text + "'"
	}
	return t.Text
}
