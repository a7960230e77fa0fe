// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package formula

import "strings"

// MappingFunc is the name of the construct that wraps mapped entries
// in a rendered argument list.
const MappingFunc = "aes"

// Render returns t as a parenthesized argument list.
//
// Entries whose values are names in cols are rendered as "role =
// value" pairs inside a single aes(...) argument. All other entries
// are rendered as separate "role = value" literal arguments after
// it. If prefix is not "", it is the first argument. For example,
//
//	Render(t, cols, "data = mtcars")
//
// may return
//
//	(data = mtcars, aes(y = mpg, x = hp), alpha = 0.75)
//
// With no entries, Render returns "(prefix)".
func Render(t Table, cols Columns, prefix string) string {
	var args []string
	if prefix != "" {
		args = append(args, prefix)
	}
	if m := MappingBlock(t, cols); m != "" {
		args = append(args, m)
	}
	args = append(args, LiteralArgs(t, cols)...)
	return "(" + strings.Join(args, ", ") + ")"
}

// MappingBlock returns the aes(...) argument for the entries of t that
// are mapped against cols, or "" if there are none.
func MappingBlock(t Table, cols Columns) string {
	var pairs []string
	for _, e := range t {
		if isMapped(e, cols) {
			pairs = append(pairs, e.Role+" = "+QuoteName(e.Value))
		}
	}
	if len(pairs) == 0 {
		return ""
	}
	return MappingFunc + "(" + strings.Join(pairs, ", ") + ")"
}

// LiteralArgs returns the "role = value" arguments for the entries of
// t that are not mapped against cols.
func LiteralArgs(t Table, cols Columns) []string {
	var args []string
	for _, e := range t {
		if !isMapped(e, cols) {
			args = append(args, e.Role+" = "+e.Value)
		}
	}
	return args
}

// Remap returns a copy of t with Mapped recomputed against cols.
func Remap(t Table, cols Columns) Table {
	out := make(Table, len(t))
	for i, e := range t {
		e.Mapped = isMapped(e, cols)
		out[i] = e
	}
	return out
}

func isMapped(e Entry, cols Columns) bool {
	return !e.Literal && cols.Has(e.Value)
}
