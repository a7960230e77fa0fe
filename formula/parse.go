// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package formula

import (
	"fmt"
	"strconv"
	"strings"
)

// Term is one "+"-separated part of a formula.
type Term struct {
	// Role is the role named by a role:value pair, or "" if the
	// term is positional.
	Role string

	// Value is the term's operand. Names have backquotes
	// removed. Literals are exactly as written.
	Value string

	// Literal indicates that Value is a number or a quoted
	// string rather than a name.
	Literal bool

	// Pos is the byte offset of the term in the formula.
	Pos int
}

// Positional reports whether t is a bare operand rather than a
// role:value pair.
func (t Term) Positional() bool {
	return t.Role == ""
}

func (t Term) String() string {
	v := t.Value
	if !t.Literal {
		v = QuoteName(v)
	}
	if t.Role == "" {
		return v
	}
	return t.Role + ":" + v
}

// Formula is a parsed formula.
type Formula struct {
	// Text is the original formula.
	Text string

	// LHS and RHS are the terms on either side of "~". If the
	// formula has no "~", all terms are on the RHS.
	LHS, RHS []Term
}

// Parse parses a flat formula of the form
//
//	[term {+ term}] ~ term {+ term}
//
// where each term is either an operand or role:operand.
func Parse(s string) (f *Formula, err error) {
	toks, err := lex(s)
	if err != nil {
		return nil, err
	}
	p := &parser{src: s, toks: toks}
	defer func() {
		if r := recover(); r != nil {
			if serr, ok := r.(*SyntaxError); ok {
				f, err = nil, serr
				return
			}
			panic(r)
		}
	}()
	return p.formula(), nil
}

type parser struct {
	src  string
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

// bad panics with a *SyntaxError at tok.
func (p *parser) bad(tok token, format string, args ...interface{}) {
	panic(&SyntaxError{p.src, tok.pos, fmt.Sprintf(format, args...)})
}

func (p *parser) formula() *Formula {
	f := &Formula{Text: p.src}
	if p.peek().kind == tokEOF {
		p.bad(p.peek(), "empty formula")
	}
	if p.peek().kind != tokTilde {
		f.RHS = p.side()
	}
	if p.peek().kind == tokTilde {
		p.next()
		f.LHS, f.RHS = f.RHS, p.side()
	}
	if t := p.peek(); t.kind != tokEOF {
		p.bad(t, "unexpected %s", t.kind)
	}
	return f
}

func (p *parser) side() []Term {
	terms := []Term{p.term()}
	for p.peek().kind == tokPlus {
		p.next()
		terms = append(terms, p.term())
	}
	return terms
}

func (p *parser) term() Term {
	t := p.operand()
	if p.peek().kind != tokColon {
		return t
	}
	colon := p.next()
	if t.Literal {
		p.bad(colon, "role must be a name, not %s", t.Value)
	}
	v := p.operand()
	v.Role, v.Pos = t.Value, t.Pos
	return v
}

func (p *parser) operand() Term {
	t := p.next()
	switch t.kind {
	case tokName:
		return Term{Value: t.text, Pos: t.pos}
	case tokNumber:
		if _, err := strconv.ParseFloat(strings.TrimPrefix(t.text, "+"), 64); err != nil {
			p.bad(t, "malformed number %s", t.text)
		}
		return Term{Value: t.text, Literal: true, Pos: t.pos}
	case tokString:
		return Term{Value: t.text, Literal: true, Pos: t.pos}
	}
	p.bad(t, "expected name or literal, found %s", t.kind)
	panic("unreachable")
}

// QuoteName returns name in backquotes if it is not a plain
// identifier.
func QuoteName(name string) string {
	toks, err := lex(name)
	if err == nil && len(toks) == 2 && toks[0].kind == tokName && toks[0].text == name {
		return name
	}
	return "`" + name + "`"
}

// Unquote returns the value of a literal. Quoted strings have their
// quotes removed and escapes interpreted; other values are returned
// unchanged.
func Unquote(v string) string {
	if len(v) < 2 {
		return v
	}
	switch v[0] {
	case '"':
		if s, err := strconv.Unquote(v); err == nil {
			return s
		}
		return v[1 : len(v)-1]
	case '\'':
		body := v[1 : len(v)-1]
		body = strings.Replace(body, `\'`, `'`, -1)
		return strings.Replace(body, `\\`, `\`, -1)
	}
	return v
}
