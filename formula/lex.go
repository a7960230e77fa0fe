// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package formula

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokKind int

const (
	tokEOF tokKind = iota
	tokName
	tokNumber
	tokString
	tokTilde
	tokPlus
	tokColon
)

func (k tokKind) String() string {
	switch k {
	case tokEOF:
		return "end of formula"
	case tokName:
		return "name"
	case tokNumber:
		return "number"
	case tokString:
		return "string"
	case tokTilde:
		return "\"~\""
	case tokPlus:
		return "\"+\""
	case tokColon:
		return "\":\""
	}
	return fmt.Sprintf("tokKind(%d)", int(k))
}

type token struct {
	kind tokKind
	pos  int
	// text is the token exactly as written, except that
	// backquoted names have their quotes stripped.
	text string
}

// SyntaxError reports a malformed formula.
type SyntaxError struct {
	Formula string
	Pos     int // Byte offset in Formula
	Msg     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("formula %q: offset %d: %s", e.Formula, e.Pos, e.Msg)
}

// grouping lists the characters that would introduce structure beyond
// a flat sum of terms.
const grouping = "()[]{}|*/^-%=,"

// lex splits s into tokens.
func lex(s string) ([]token, error) {
	var toks []token
	bad := func(pos int, format string, args ...interface{}) ([]token, error) {
		return nil, &SyntaxError{s, pos, fmt.Sprintf(format, args...)}
	}

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case unicode.IsSpace(r):
			i += size

		case r == '~':
			toks = append(toks, token{tokTilde, i, "~"})
			i++

		case r == '+':
			toks = append(toks, token{tokPlus, i, "+"})
			i++

		case r == ':':
			toks = append(toks, token{tokColon, i, ":"})
			i++
			// A sign directly after a colon belongs to a
			// numeric literal.
			if i < len(s) && (s[i] == '-' || s[i] == '+') && isNumAt(s, i+1) {
				j := scanNumber(s, i+1)
				toks = append(toks, token{tokNumber, i, s[i:j]})
				i = j
			}

		case r == '"' || r == '\'':
			j := i + 1
			for ; j < len(s) && s[j] != byte(r); j++ {
				if s[j] == '\\' {
					j++
				}
			}
			if j >= len(s) {
				return bad(i, "unterminated string")
			}
			toks = append(toks, token{tokString, i, s[i : j+1]})
			i = j + 1

		case r == '`':
			j := strings.IndexByte(s[i+1:], '`')
			if j < 0 {
				return bad(i, "unterminated quoted name")
			}
			if j == 0 {
				return bad(i, "empty quoted name")
			}
			toks = append(toks, token{tokName, i, s[i+1 : i+1+j]})
			i += j + 2

		case isNumAt(s, i):
			j := scanNumber(s, i)
			toks = append(toks, token{tokNumber, i, s[i:j]})
			i = j

		case isNameRune(r):
			j := i
			for j < len(s) {
				r2, size2 := utf8.DecodeRuneInString(s[j:])
				if !isNameRune(r2) && !unicode.IsDigit(r2) {
					break
				}
				j += size2
			}
			toks = append(toks, token{tokName, i, s[i:j]})
			i = j

		case strings.ContainsRune(grouping, r):
			return bad(i, "unsupported operator %q; formulas must be a flat sum of terms", r)

		default:
			return bad(i, "unexpected character %q", r)
		}
	}
	toks = append(toks, token{tokEOF, len(s), ""})
	return toks, nil
}

// isNumAt reports whether a number starts at s[i].
func isNumAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	if s[i] == '.' {
		return i+1 < len(s) && isDigit(s[i+1])
	}
	return isDigit(s[i])
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || r == '_' || r == '.'
}

// scanNumber returns the end of the number starting at s[i].
func scanNumber(s string, i int) int {
	j := i
	for j < len(s) && (isDigit(s[j]) || s[j] == '.') {
		j++
	}
	// Exponent.
	if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
		k := j + 1
		if k < len(s) && (s[k] == '-' || s[k] == '+') {
			k++
		}
		if k < len(s) && isDigit(s[k]) {
			for k < len(s) && isDigit(s[k]) {
				k++
			}
			j = k
		}
	}
	return j
}
