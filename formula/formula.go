// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package formula decomposes compact plotting formulas into tables of
// aesthetic bindings.
//
// A formula has the form
//
//	[response ~] explanatory [+ role:value]...
//
// for example "mpg ~ hp + color:cyl + alpha:0.75". The response is
// bound to the "y" aesthetic and the explanatory variable to "x". Each
// role:value pair binds an arbitrary aesthetic (color, fill, alpha,
// size, ...) or geometry parameter to value. A value is either a name,
// which refers to a data column if the data has a column of that name,
// or a literal: a number or a quoted string.
//
// Formulas are flat. Grouping, interaction, and arithmetic operators
// are rejected with a *SyntaxError rather than interpreted. Names that
// are not plain identifiers can be written in backquotes, as in
// "`time/op` ~ `commit index`".
package formula

import (
	"log"
	"os"
	"sort"
)

// Warning is a logger for reporting formula parts that are ignored,
// such as positional terms beyond the response, the explanatory
// variable, and one extra.
var Warning = log.New(os.Stderr, "[formula] ", log.Lshortfile)

// Entry binds a single role to a value.
type Entry struct {
	// Role is "x", "y", or an aesthetic or parameter name such as
	// "color" or "alpha".
	Role string

	// Value is a column name or literal text. Literals keep their
	// quotes exactly as written.
	Value string

	// Mapped indicates that Value names a column of the data being
	// plotted, so Role is bound per row rather than to a constant.
	Mapped bool

	// Literal indicates that Value was written as a number or a
	// quoted string. Literal entries are never mapped.
	Literal bool
}

// Table is an ordered sequence of entries. Response entries precede
// explanatory entries; otherwise entries appear in formula order.
type Table []Entry

// Lookup returns the entry for role and whether it exists.
func (t Table) Lookup(role string) (Entry, bool) {
	for _, e := range t {
		if e.Role == role {
			return e, true
		}
	}
	return Entry{}, false
}

// Mapped returns the entries of t that are bound to data columns.
func (t Table) Mapped() Table {
	return t.filter(true)
}

// Literals returns the entries of t that are bound to constants.
func (t Table) Literals() Table {
	return t.filter(false)
}

func (t Table) filter(mapped bool) Table {
	out := Table{}
	for _, e := range t {
		if e.Mapped == mapped {
			out = append(out, e)
		}
	}
	return out
}

// Columns is a set of known data column names.
type Columns map[string]bool

// ColumnSet returns a Columns containing names.
func ColumnSet(names ...string) Columns {
	cols := make(Columns, len(names))
	for _, name := range names {
		cols[name] = true
	}
	return cols
}

// Has reports whether name is in cols. A nil Columns is empty.
func (cols Columns) Has(name string) bool {
	return cols[name]
}

// Names returns the column names in sorted order.
func (cols Columns) Names() []string {
	names := make([]string, 0, len(cols))
	for name := range cols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
