// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf

import (
	"strings"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-ggformula/formula"
)

// Arg is a keyword argument of a geometry call. Value is literal
// text, as written in a formula.
type Arg struct {
	Key, Value string
}

func (a Arg) String() string {
	return a.Key + " = " + a.Value
}

// Args is an ordered list of keyword arguments.
type Args []Arg

// Get returns the value of the last argument named key.
func (as Args) Get(key string) (string, bool) {
	for i := len(as) - 1; i >= 0; i-- {
		if as[i].Key == key {
			return as[i].Value, true
		}
	}
	return "", false
}

// With returns as followed by more. An argument in more replaces any
// earlier argument with the same key.
func (as Args) With(more ...Arg) Args {
	out := make(Args, 0, len(as)+len(more))
	out = append(out, as...)
	for _, a := range more {
		j := 0
		for _, o := range out {
			if o.Key != a.Key {
				out[j] = o
				j++
			}
		}
		out = append(out[:j], a)
	}
	return out
}

// Call is a synthesized plotting call: an optional frame that sets up
// a new plot with its default mappings, followed by a geometry layer.
type Call struct {
	// Geom is the layer's geometry.
	Geom *Geometry

	// Add indicates that the layer is added to an existing plot
	// rather than a new frame.
	Add bool

	// DataName names the call's data argument. A call in add
	// mode without layer data has no data argument.
	DataName string

	// Entries are the formula's entries, mapped against Cols.
	Entries formula.Table

	// Cols are the columns of the data the layer sees.
	Cols formula.Columns

	// Args are the geometry call's literal arguments: unmapped
	// formula entries followed by extra arguments.
	Args Args

	plot *gg.Plot
	data table.Grouping
}

// Synthesize translates formula into a call of geometry geom.
//
// If add is false, the call creates a new plot from data and plot is
// ignored. If add is true, the call adds a layer to plot; data, if
// not nil, becomes the layer's data. Mapping is determined against
// the columns of the layer's data.
//
// extra is appended to the geometry call's arguments after the
// formula's literals. On a key collision the later argument wins.
func Synthesize(f string, data table.Grouping, geom *Geometry, plot *gg.Plot, add bool, extra Args) (*Call, error) {
	var cols formula.Columns
	switch {
	case add && plot == nil:
		return nil, ErrNoPlot
	case !add && data == nil:
		return nil, ErrNoData
	case data != nil:
		cols = formula.ColumnSet(data.Columns()...)
	default:
		cols = formula.ColumnSet(plot.Data().Columns()...)
	}

	tab, err := formula.Decompose(f, cols)
	if err != nil {
		return nil, err
	}

	var args Args
	for _, e := range tab.Literals() {
		args = append(args, Arg{e.Role, e.Value})
	}
	args = args.With(extra...)

	c := &Call{
		Geom:    geom,
		Add:     add,
		Entries: tab,
		Cols:    cols,
		Args:    args,
		data:    data,
	}
	if add {
		c.plot = plot
	}
	if data != nil {
		c.DataName = "data"
	}
	return c, nil
}

// Frame returns the frame part of c's call expression, or "" in add
// mode.
func (c *Call) Frame() string {
	if c.Add {
		return ""
	}
	return "gg" + formula.Render(c.Entries.Mapped(), c.Cols, c.dataArg())
}

// Layer returns the geometry part of c's call expression.
func (c *Call) Layer() string {
	var args []string
	if c.Add {
		if d := c.dataArg(); d != "" {
			args = append(args, d)
		}
		if m := formula.MappingBlock(c.Entries, c.Cols); m != "" {
			args = append(args, m)
		}
	}
	for _, a := range c.Args {
		args = append(args, a.String())
	}
	return "geom_" + c.Geom.Name + "(" + strings.Join(args, ", ") + ")"
}

// String returns c as a call expression.
func (c *Call) String() string {
	if c.Add {
		return c.Layer()
	}
	return c.Frame() + " + " + c.Layer()
}

func (c *Call) dataArg() string {
	if c.DataName == "" {
		return ""
	}
	return "data = " + formula.QuoteName(c.DataName)
}
