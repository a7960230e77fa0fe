// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package formula

import "strings"

// ExtraRole is the role given to the single positional term allowed
// after the explanatory variable.
const ExtraRole = "color"

// Decompose parses formula and returns its table of bindings. An
// entry is mapped if its value is a name in cols.
//
// The response (the positional term left of "~") becomes "y". The
// first positional term right of "~" becomes "x" and the second
// becomes ExtraRole. Further positional terms, and role:value pairs
// that repeat a role, are reported to Warning and dropped.
func Decompose(formula string, cols Columns) (Table, error) {
	f, err := Parse(formula)
	if err != nil {
		return nil, err
	}
	return f.Table(cols), nil
}

// Table returns the table of bindings for f. See Decompose.
func (f *Formula) Table(cols Columns) Table {
	var (
		tab     Table
		dropped []string
		seen    = map[string]bool{}
	)
	add := func(role string, t Term) {
		if seen[role] {
			dropped = append(dropped, t.String())
			return
		}
		seen[role] = true
		tab = append(tab, Entry{
			Role:    role,
			Value:   t.Value,
			Mapped:  !t.Literal && cols.Has(t.Value),
			Literal: t.Literal,
		})
	}

	// The response and explanatory variable are reserved up front
	// so that "x" and "y" pairs can't displace them.
	posLHS, posRHS := positional(f.LHS), positional(f.RHS)
	roleAt := map[int]string{}
	reserved := map[string]bool{}
	if len(posLHS) > 0 {
		roleAt[posLHS[0].Pos] = "y"
		reserved["y"] = true
	}
	if len(posRHS) > 0 {
		roleAt[posRHS[0].Pos] = "x"
		reserved["x"] = true
	}
	if len(posRHS) > 1 {
		roleAt[posRHS[1].Pos] = ExtraRole
	}

	for _, side := range [][]Term{f.LHS, f.RHS} {
		for _, t := range side {
			if !t.Positional() {
				if reserved[t.Role] {
					dropped = append(dropped, t.String())
					continue
				}
				add(t.Role, t)
				continue
			}
			role, ok := roleAt[t.Pos]
			if !ok {
				dropped = append(dropped, t.String())
				continue
			}
			add(role, t)
		}
	}

	if len(dropped) > 0 {
		Warning.Printf("%q: ignoring extra formula terms: %s", f.Text, strings.Join(dropped, ", "))
	}
	return tab
}

func positional(terms []Term) []Term {
	var out []Term
	for _, t := range terms {
		if t.Positional() {
			out = append(out, t)
		}
	}
	return out
}
