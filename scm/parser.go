/*
Copyright (C) 2026  yukinoshita0219

    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package scm

import (
	"strconv"
	"strings"
)

// parser reads s-expressions from a string. source names the origin
// (file path or "repl") for error positions.
type parser struct {
	source string
	s      string
	pos    int
	line   int
	col    int
}

func newParser(source, s string) *parser {
	return &parser{source: source, s: s, line: 1, col: 1}
}

// Read parses exactly one expression. Trailing content is a syntax error.
func Read(source, s string) Scmer {
	p := newParser(source, s)
	expr := p.parseExpr()
	p.skipSpace()
	if p.pos < len(p.s) {
		p.fail(ErrSyntax, "trailing content after expression")
	}
	return expr
}

// ReadAll parses every expression in s.
func ReadAll(source, s string) []Scmer {
	p := newParser(source, s)
	var exprs []Scmer
	for {
		p.skipSpace()
		if p.pos >= len(p.s) {
			return exprs
		}
		exprs = append(exprs, p.parseExpr())
	}
}

// EvalAll parses and evaluates every expression in s, returning the last
// result (nil for empty input).
func EvalAll(source, s string, en *Env) Scmer {
	var result Scmer
	for _, expr := range ReadAll(source, s) {
		result = Eval(expr, en)
	}
	return result
}

func (p *parser) fail(kind ErrorKind, msg string) {
	raise(kind, "%s at %s:%d:%d", msg, p.source, p.line, p.col)
}

func (p *parser) advance(n int) {
	for i := 0; i < n; i++ {
		if p.s[p.pos] == '\n' {
			p.line++
			p.col = 1
		} else {
			p.col++
		}
		p.pos++
	}
}

func (p *parser) skipSpace() {
	for p.pos < len(p.s) {
		c := p.s[p.pos]
		if c == ';' {
			for p.pos < len(p.s) && p.s[p.pos] != '\n' {
				p.advance(1)
			}
		} else if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			p.advance(1)
		} else {
			return
		}
	}
}

func (p *parser) parseExpr() Scmer {
	p.skipSpace()
	if p.pos >= len(p.s) {
		p.fail(ErrIncompleteInput, "unexpected end of input")
	}
	switch p.s[p.pos] {
	case '(':
		return p.parseList()
	case ')':
		p.fail(ErrSyntax, "unexpected )")
	case '\'':
		p.advance(1)
		return List(Symbol("quote"), p.parseExpr())
	case '"':
		return p.parseString()
	}
	return p.parseAtom()
}

func (p *parser) parseList() Scmer {
	p.advance(1) // (
	var items []Scmer
	var dotted Scmer
	for {
		p.skipSpace()
		if p.pos >= len(p.s) {
			p.fail(ErrIncompleteInput, "expecting matching )")
		}
		if p.s[p.pos] == ')' {
			p.advance(1)
			break
		}
		if p.s[p.pos] == '.' && p.isDelimited(p.pos+1) {
			if len(items) == 0 {
				p.fail(ErrSyntax, "dot without preceding element")
			}
			p.advance(1)
			dotted = p.parseExpr()
			p.skipSpace()
			if p.pos >= len(p.s) {
				p.fail(ErrIncompleteInput, "expecting matching )")
			}
			if p.s[p.pos] != ')' {
				p.fail(ErrSyntax, "more than one element after dot")
			}
			p.advance(1)
			break
		}
		items = append(items, p.parseExpr())
	}
	var result Scmer = Nil
	if dotted != nil {
		result = dotted
	}
	for i := len(items) - 1; i >= 0; i-- {
		result = &Pair{items[i], result}
	}
	return result
}

var stringEscapes = strings.NewReplacer(
	"\\\\", "\\",
	"\\\"", "\"",
	"\\n", "\n",
	"\\t", "\t",
	"\\r", "\r",
)

func (p *parser) parseString() Scmer {
	p.advance(1) // "
	start := p.pos
	for p.pos < len(p.s) {
		switch p.s[p.pos] {
		case '\\':
			if p.pos+1 >= len(p.s) {
				p.fail(ErrIncompleteInput, "unterminated string literal")
			}
			p.advance(2)
		case '"':
			raw := p.s[start:p.pos]
			p.advance(1)
			return stringEscapes.Replace(raw)
		default:
			p.advance(1)
		}
	}
	p.fail(ErrIncompleteInput, "unterminated string literal")
	return nil
}

func (p *parser) isDelimited(at int) bool {
	if at >= len(p.s) {
		return true
	}
	switch p.s[at] {
	case ' ', '\t', '\n', '\r', '(', ')', '"', ';':
		return true
	}
	return false
}

func (p *parser) parseAtom() Scmer {
	start := p.pos
	for p.pos < len(p.s) && !p.isDelimited(p.pos) {
		p.advance(1)
	}
	token := p.s[start:p.pos]
	if f, err := strconv.ParseFloat(token, 64); err == nil {
		return f
	}
	return Symbol(token)
}
