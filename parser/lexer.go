// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package parser

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"unicode"
)

// eofRune is never produced by ReadRune, so NUL in the input lexes as a symbol.
const eofRune rune = -1

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

type lexer struct {
	r *bufio.Reader
}

func newLexer(r io.Reader) *lexer {
	return &lexer{r: bufio.NewReader(r)}
}

func (l *lexer) read() rune {
	ch, _, err := l.r.ReadRune()
	if err != nil {
		return eofRune
	}
	return ch
}

func (l *lexer) unread() {
	_ = l.r.UnreadRune()
}

func (l *lexer) peek() rune {
	ch := l.read()
	if ch != eofRune {
		l.unread()
	}
	return ch
}

func (l *lexer) scanNumber() Token {
	buf := new(bytes.Buffer)

	hasDot := false
	ch := l.read()
	for isDigit(ch) || ch == '.' && !hasDot {
		if ch == '.' {
			hasDot = true
		}
		buf.WriteRune(ch)
		ch = l.read()
	}
	if ch != eofRune {
		l.unread()
	}
	return Token{Kind: numberLiteral, Text: buf.String()}
}

// scanString reads up to the closing quote. There are no escapes, and an
// unterminated literal runs to the end of input.
func (l *lexer) scanString() Token {
	_ = l.read()
	buf := new(bytes.Buffer)

	for ch := l.read(); ch != '\'' && ch != eofRune; ch = l.read() {
		buf.WriteRune(ch)
	}
	return Token{Kind: stringLiteral, Text: buf.String()}
}

func (l *lexer) scanIdentifierOrKeyword() Token {
	buf := new(bytes.Buffer)

	ch := l.read()
	for isDigit(ch) || isLetter(ch) || ch == '_' {
		buf.WriteRune(ch)
		ch = l.read()
	}
	if ch != eofRune {
		l.unread()
	}

	str := buf.String()
	if kind, ok := keywords[strings.ToLower(str)]; ok {
		return Token{Kind: kind, Text: str}
	}
	return Token{Kind: identifier, Text: str}
}

func (l *lexer) scanSymbol() Token {
	ch := l.read()
	switch ch {
	case '*':
		return Token{Kind: star, Text: "*"}
	case ',':
		return Token{Kind: comma, Text: ","}
	case '.':
		return Token{Kind: dot, Text: "."}
	case ';':
		return Token{Kind: semicolon, Text: ";"}
	case '(':
		return Token{Kind: lParenthesis, Text: "("}
	case ')':
		return Token{Kind: rParenthesis, Text: ")"}
	case '=':
		return Token{Kind: eq, Text: "="}
	case '!':
		if l.peek() == '=' {
			_ = l.read()
			return Token{Kind: ne, Text: "!="}
		}
		return Token{Kind: unknown, Text: "!"}
	case '<':
		switch l.peek() {
		case '=':
			_ = l.read()
			return Token{Kind: le, Text: "<="}
		case '>':
			_ = l.read()
			return Token{Kind: ne, Text: "<>"}
		}
		return Token{Kind: lt, Text: "<"}
	case '>':
		if l.peek() == '=' {
			_ = l.read()
			return Token{Kind: ge, Text: ">="}
		}
		return Token{Kind: gt, Text: ">"}
	default:
		return Token{Kind: unknown, Text: string(ch)}
	}
}

func (l *lexer) nextToken() Token {
	ch := l.read()
	for unicode.IsSpace(ch) {
		ch = l.read()
	}
	if ch == eofRune {
		return Token{Kind: end}
	}
	l.unread()

	switch {
	case isLetter(ch):
		return l.scanIdentifierOrKeyword()
	case isDigit(ch):
		return l.scanNumber()
	case ch == '\'':
		return l.scanString()
	default:
		return l.scanSymbol()
	}
}

// Tokenize splits sql into tokens in a single left-to-right pass. It never
// fails: characters it does not recognize become unknown tokens and are
// rejected by the parser. The result always ends with one end token.
func Tokenize(sql string) []Token {
	l := newLexer(strings.NewReader(sql))

	var tokens []Token
	for {
		tok := l.nextToken()
		tokens = append(tokens, tok)
		if tok.Kind == end {
			return tokens
		}
	}
}
