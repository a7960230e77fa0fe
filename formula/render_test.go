// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package formula

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	mtcars := ColumnSet("mpg", "hp", "cyl", "time/op")
	for _, test := range []struct {
		formula string
		cols    Columns
		prefix  string
		want    string
	}{
		{"mpg ~ hp + color:cyl + alpha:0.75", mtcars, "data = mtcars",
			"(data = mtcars, aes(y = mpg, x = hp, color = cyl), alpha = 0.75)"},
		{"mpg ~ hp", mtcars, "data = mtcars",
			"(data = mtcars, aes(y = mpg, x = hp))"},
		{"mpg ~ hp", mtcars, "",
			"(aes(y = mpg, x = hp))"},
		{"mpg ~ hp + alpha:0.75", nil, "data = d",
			"(data = d, y = mpg, x = hp, alpha = 0.75)"},
		{"`time/op` ~ hp + fill:'red'", mtcars, "",
			"(aes(y = `time/op`, x = hp), fill = 'red')"},
	} {
		tab, err := Decompose(test.formula, test.cols)
		if err != nil {
			t.Fatal(err)
		}
		if got := Render(tab, test.cols, test.prefix); got != test.want {
			t.Errorf("Render(%q, %q):\nwant %s\ngot  %s", test.formula, test.prefix, test.want, got)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	if got, want := Render(nil, nil, "data = d"), "(data = d)"; got != want {
		t.Errorf("want %s, got %s", want, got)
	}
	if got, want := Render(Table{}, ColumnSet("a"), ""), "()"; got != want {
		t.Errorf("want %s, got %s", want, got)
	}
}

func TestRenderRemapsColumns(t *testing.T) {
	// A table decomposed against one data set can be rendered
	// against another.
	tab, err := Decompose("a ~ b + color:c", ColumnSet("a", "b"))
	if err != nil {
		t.Fatal(err)
	}
	got := Render(tab, ColumnSet("a", "b", "c"), "")
	if want := "(aes(y = a, x = b, color = c))"; got != want {
		t.Errorf("want %s, got %s", want, got)
	}
	if r := Remap(tab, ColumnSet("c")); r[0].Mapped || r[1].Mapped || !r[2].Mapped {
		t.Errorf("Remap: want only color mapped, got %+v", r)
	}
}

func TestRenderSingleMappingBlock(t *testing.T) {
	// Formulas without aesthetic pairs render exactly one mapping
	// block and no literal arguments.
	cols := ColumnSet("y1", "x1")
	for _, f := range []string{"y1 ~ x1", "~ x1", "x1"} {
		tab, err := Decompose(f, cols)
		if err != nil {
			t.Fatal(err)
		}
		got := Render(tab, cols, "data = d")
		if n := strings.Count(got, MappingFunc+"("); n != 1 {
			t.Errorf("Render(%q) = %s: want 1 mapping block, got %d", f, got, n)
		}
		if lits := LiteralArgs(tab, cols); len(lits) != 0 {
			t.Errorf("Render(%q): want no literal arguments, got %v", f, lits)
		}
	}
}
