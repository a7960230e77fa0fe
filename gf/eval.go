// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-ggformula/formula"
)

// aesthetics maps the aesthetic roles a formula may bind to the gg
// aesthetic that literal values of that role are scaled by, or "" if
// literals of that role are plain columns.
var aesthetics = map[string]string{
	"x":      "",
	"y":      "",
	"ymin":   "",
	"ymax":   "",
	"color":  "stroke",
	"fill":   "fill",
	"alpha":  "opacity",
	"size":   "size",
	"label":  "",
	"weight": "",
	"group":  "",
	// Faceting roles are handled before the layer is built.
	"facet":   "",
	"facet_x": "",
	"facet_y": "",
}

// unsupported lists aesthetics gg has no way to render.
var unsupported = map[string]bool{
	"shape":    true,
	"linetype": true,
}

// params lists the non-aesthetic arguments geometries understand.
var params = map[string]bool{
	"title":     true,
	"xlab":      true,
	"ylab":      true,
	"stat":      true,
	"position":  true,
	"bins":      true,
	"bw":        true,
	"n":         true,
	"span":      true,
	"degree":    true,
	"width":     true,
	"height":    true,
	"direction": true,
	"seed":      true,
}

// Eval evaluates c against gg and returns the resulting plot. In add
// mode, this is the plot c was synthesized with, with a new layer.
func (c *Call) Eval() (p *gg.Plot, err error) {
	// gg reports misuse, such as unknown columns or unsupported
	// column types, by panicking.
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("gf: evaluating %s: %v", c, r)
		}
	}()

	if c.Add {
		p = c.plot
	} else {
		p = gg.NewPlot(c.data)
	}

	for _, a := range c.Args {
		switch a.Key {
		case "title":
			p.Add(gg.Title(formula.Unquote(a.Value)))
		case "xlab":
			p.Add(gg.AxisLabel("x", formula.Unquote(a.Value)))
		case "ylab":
			p.Add(gg.AxisLabel("y", formula.Unquote(a.Value)))
		}
	}

	// Facets persist for later layers, so they are applied
	// outside the layer's saved state. Facets only make sense on
	// the plot's own data.
	if c.Add && c.data != nil {
		for _, e := range c.Entries {
			if facetRoles[e.Role] {
				Warning.Printf("geom_%s: ignoring %s on layer data", c.Geom.Name, e.Role)
			}
		}
		p.Save()
		defer p.Restore()
		p.SetData(c.data)
	} else if err := c.facet(p); err != nil {
		return nil, err
	}

	defer p.Save().Restore()
	l, err := newLayer(p, c)
	if err != nil {
		return nil, err
	}
	if err := c.Geom.apply(l); err != nil {
		return nil, err
	}
	return p, nil
}

var facetRoles = map[string]bool{"facet": true, "facet_x": true, "facet_y": true}

func (c *Call) facet(p *gg.Plot) error {
	for _, e := range c.Entries {
		var f gg.Plotter
		switch e.Role {
		case "facet":
			f = gg.FacetWrap{Col: e.Value}
		case "facet_x":
			f = gg.FacetX{Col: e.Value}
		case "facet_y":
			f = gg.FacetY{Col: e.Value}
		default:
			continue
		}
		if !e.Mapped {
			return &AesError{c.Geom.Name, e.Role, e.Value, "facets must name a column"}
		}
		p.Add(f)
	}
	return nil
}

// layer is a geometry layer under construction. It resolves every
// aesthetic role to a column of p's current data.
type layer struct {
	p    *gg.Plot
	call *Call

	// cols maps aesthetic roles to columns. Literal aesthetics
	// are bound to generated constant columns.
	cols map[string]string

	// groups are the columns the data is grouped by, which stats
	// must preserve.
	groups []string
}

func newLayer(p *gg.Plot, c *Call) (*layer, error) {
	l := &layer{p: p, call: c, cols: make(map[string]string)}

	// Mapped entries bind columns. Literal arguments, which
	// include the formula's unmapped entries, bind constants and
	// win over mapped entries of the same role.
	for _, e := range c.Entries.Mapped() {
		if unsupported[e.Role] {
			Warning.Printf("geom_%s: ignoring unsupported aesthetic %s", c.Geom.Name, e.Role)
			continue
		}
		if _, ok := aesthetics[e.Role]; !ok {
			return nil, l.bad(e, "unknown aesthetic")
		}
		l.cols[e.Role] = e.Value
	}
	for _, a := range c.Args {
		e := formula.Entry{Role: a.Key, Value: a.Value}
		scaleAes, isAes := aesthetics[e.Role]
		switch {
		case unsupported[e.Role]:
			Warning.Printf("geom_%s: ignoring unsupported aesthetic %s", c.Geom.Name, e.Role)
			continue
		case !isAes:
			if !params[e.Role] {
				Warning.Printf("geom_%s: ignoring unknown argument %s", c.Geom.Name, a)
			}
			continue
		}
		switch e.Role {
		case "facet", "facet_x", "facet_y", "group":
			return nil, l.bad(e, "must name a column")
		}
		col, err := l.constant(e, scaleAes)
		if err != nil {
			return nil, err
		}
		l.cols[e.Role] = col
	}

	// Group by discrete color, fill, and explicit groups so each
	// group gets its own stat and path.
	for _, role := range []string{"group", "color", "fill"} {
		col := l.cols[role]
		if col == "" || (role != "group" && isNumeric(p.Data(), col)) || isConst(col) {
			continue
		}
		p.GroupBy(col)
		l.groups = append(l.groups, col)
	}
	return l, nil
}

func (l *layer) bad(e formula.Entry, format string, args ...interface{}) error {
	return &AesError{l.call.Geom.Name, e.Role, e.Value, fmt.Sprintf(format, args...)}
}

// constant binds a literal entry to a new constant column.
func (l *layer) constant(e formula.Entry, scaleAes string) (string, error) {
	switch e.Role {
	case "color", "fill":
		c, err := parseColor(formula.Unquote(e.Value))
		if err != nil {
			return "", l.bad(e, "%v", err)
		}
		return l.p.Const(c), nil

	case "alpha", "size":
		v, err := strconv.ParseFloat(e.Value, 64)
		if err != nil {
			return "", l.bad(e, "want a number")
		}
		// Literal opacities and sizes are physical values,
		// not data to be scaled.
		l.p.SetScale(scaleAes, gg.NewIdentityScale())
		return l.p.Const(v), nil

	case "label":
		return l.p.Const(formula.Unquote(e.Value)), nil
	}

	// Positions and weights must be numbers if they aren't
	// columns.
	v, err := strconv.ParseFloat(e.Value, 64)
	if err != nil {
		return "", l.bad(e, "no column %q in data", formula.Unquote(e.Value))
	}
	return l.p.Const(v), nil
}

// col returns the column bound to role, or "".
func (l *layer) col(role string) string {
	return l.cols[role]
}

// need returns the columns bound to roles, or an error if any role is
// unbound.
func (l *layer) need(roles ...string) ([]string, error) {
	cols := make([]string, len(roles))
	for i, role := range roles {
		cols[i] = l.cols[role]
		if cols[i] == "" {
			return nil, fmt.Errorf("gf: geom_%s requires %s", l.call.Geom.Name, role)
		}
	}
	return cols, nil
}

// arg returns the unquoted argument key, or def.
func (l *layer) arg(key, def string) string {
	if v, ok := l.call.Args.Get(key); ok {
		return formula.Unquote(v)
	}
	return def
}

func (l *layer) float(key string, def float64) (float64, error) {
	v, ok := l.call.Args.Get(key)
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(formula.Unquote(v), 64)
	if err != nil {
		return 0, fmt.Errorf("gf: geom_%s: %s = %s: want a number", l.call.Geom.Name, key, v)
	}
	return f, nil
}

func (l *layer) int(key string, def int) (int, error) {
	f, err := l.float(key, float64(def))
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("gf: geom_%s: %s = %v: want an integer", l.call.Geom.Name, key, f)
	}
	return int(f), nil
}

// isConst reports whether col was generated by gg.Plot.Const.
func isConst(col string) bool {
	return strings.HasPrefix(col, "[gg-const-")
}

var numericKinds = map[reflect.Kind]bool{
	reflect.Float32: true,
	reflect.Float64: true,
	reflect.Int:     true,
	reflect.Int8:    true,
	reflect.Int16:   true,
	reflect.Int32:   true,
	reflect.Int64:   true,
	reflect.Uint:    true,
	reflect.Uint8:   true,
	reflect.Uint16:  true,
	reflect.Uint32:  true,
	reflect.Uint64:  true,
}

// isNumeric reports whether column col of g holds numbers.
func isNumeric(g table.Grouping, col string) bool {
	return numericKinds[table.ColType(g, col).Elem().Kind()]
}
