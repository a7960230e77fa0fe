// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gf

import (
	"fmt"
	"sort"

	"github.com/aclements/go-gg/gg"
)

// Geometry is a kind of plot layer.
type Geometry struct {
	// Name is the geometry's name, as in "geom_<name>".
	Name string

	// Extras are fixed keyword arguments added to every call of
	// this geometry.
	Extras Args

	apply func(*layer) error
}

// geometries is the configuration table from which the entry points
// are built.
var geometries = []Geometry{
	{Name: "point", apply: (*layer).points},
	{Name: "jitter", Extras: Args{{"position", `"jitter"`}}, apply: (*layer).points},
	{Name: "line", apply: (*layer).lines},
	{Name: "path", apply: (*layer).paths},
	{Name: "step", apply: (*layer).steps},
	{Name: "area", apply: (*layer).area},
	{Name: "ribbon", apply: (*layer).ribbon},
	{Name: "density", apply: (*layer).density},
	{Name: "histogram", apply: (*layer).histogram},
	{Name: "freqpoly", apply: (*layer).freqpoly},
	{Name: "ecdf", apply: (*layer).ecdf},
	{Name: "boxplot", apply: (*layer).boxplot},
	{Name: "bar", Extras: Args{{"stat", `"count"`}}, apply: (*layer).bars},
	{Name: "col", Extras: Args{{"stat", `"identity"`}}, apply: (*layer).bars},
	{Name: "smooth", apply: (*layer).smooth},
	{Name: "lm", apply: (*layer).lm},
	{Name: "text", apply: (*layer).text},
	{Name: "tile", apply: (*layer).tiles},
}

var registry = register(geometries)

func register(gs []Geometry) map[string]*Geometry {
	m := make(map[string]*Geometry, len(gs))
	for i := range gs {
		g := &gs[i]
		if m[g.Name] != nil {
			panic("duplicate geometry " + g.Name)
		}
		m[g.Name] = g
	}
	return m
}

// A Func is a geometry entry point. plotOrFormula is either a formula
// string, which creates a new plot from opts.Data, or a *gg.Plot,
// which adds a layer for opts.Formula to that plot.
//
// A Func returns the new plot, or in add mode, the updated plot.
type Func func(plotOrFormula interface{}, opts Options) (*gg.Plot, error)

// Entry points for each geometry.
var (
	Point     = entry("point")
	Jitter    = entry("jitter")
	Line      = entry("line")
	Path      = entry("path")
	Step      = entry("step")
	Area      = entry("area")
	Ribbon    = entry("ribbon")
	Density   = entry("density")
	Histogram = entry("histogram")
	Freqpoly  = entry("freqpoly")
	ECDF      = entry("ecdf")
	Boxplot   = entry("boxplot")
	Bar       = entry("bar")
	Col       = entry("col")
	Smooth    = entry("smooth")
	LM        = entry("lm")
	Text      = entry("text")
	Tile      = entry("tile")
)

func entry(name string) Func {
	g, ok := registry[name]
	if !ok {
		panic("no geometry " + name)
	}
	return g.Layer
}

// Lookup returns the entry point for the named geometry.
func Lookup(name string) (Func, error) {
	g, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGeometry, name)
	}
	return g.Layer, nil
}

// Geometries returns the names of all geometries in sorted order.
func Geometries() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call synthesizes the call that Layer would evaluate.
func (g *Geometry) Call(plotOrFormula interface{}, opts Options) (*Call, error) {
	var plot *gg.Plot
	f, add := opts.Formula, opts.Add
	switch x := plotOrFormula.(type) {
	case *gg.Plot:
		plot, add = x, true
	case string:
		f = x
	case nil:
	default:
		return nil, fmt.Errorf("gf: geom_%s: want formula or *gg.Plot, got %T", g.Name, plotOrFormula)
	}
	if f == "" {
		return nil, ErrNoFormula
	}

	c, err := Synthesize(f, opts.Data, g, plot, add, opts.Args.With(g.Extras...))
	if err != nil {
		return nil, err
	}
	if opts.Data != nil && opts.DataName != "" {
		c.DataName = opts.DataName
	}
	return c, nil
}

// Layer is g's entry point. See Func.
func (g *Geometry) Layer(plotOrFormula interface{}, opts Options) (*gg.Plot, error) {
	c, err := g.Call(plotOrFormula, opts)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		Log.Print(c)
	}
	return c.Eval()
}
