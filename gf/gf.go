// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gf builds gg plots from formulas.
//
// Each geometry has an entry point that takes a formula such as
//
//	mpg ~ hp + color:cyl + alpha:0.75
//
// and a data table and returns a plot with one layer:
//
//	p, err := gf.Point("mpg ~ hp + color:cyl", gf.Options{Data: tab})
//
// Passing an existing plot instead of a formula adds a layer to that
// plot:
//
//	p, err = gf.Smooth(p, gf.Options{Formula: "mpg ~ hp"})
//
// Internally, an entry point decomposes the formula (see package
// formula), synthesizes a Call, and evaluates the Call against gg. A
// Call's String method gives the equivalent call expression, which
// Options.Verbose logs before evaluation:
//
//	gg(data = data, aes(y = mpg, x = hp, color = cyl)) + geom_point(alpha = 0.75)
//
// Role:value pairs in the formula either bind aesthetics or set
// geometry parameters. The aesthetics are x, y, ymin, ymax, color,
// fill, alpha, size, label, weight, group, facet, facet_x, and
// facet_y. The parameters are title, xlab, ylab, and the
// geometry-specific stat, position, bins, bw, n, span, degree, width,
// height, direction, and seed.
package gf

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/aclements/go-gg/table"
)

// Warning is a logger for reporting conditions that don't prevent the
// production of a plot, but may lead to unexpected results.
var Warning = log.New(os.Stderr, "[gf] ", log.Lshortfile)

// Log receives call expressions when Options.Verbose is set.
var Log = log.New(os.Stderr, "[gf] ", 0)

var (
	// ErrNoData is returned when a new plot is requested without
	// data.
	ErrNoData = errors.New("gf: no data given and no plot to add to")

	// ErrNoPlot is returned when add mode is requested without a
	// plot.
	ErrNoPlot = errors.New("gf: add mode requires an existing plot")

	// ErrNoFormula is returned when an entry point gets no
	// formula.
	ErrNoFormula = errors.New("gf: no formula")

	// ErrUnknownGeometry is returned by Lookup for unregistered
	// geometry names.
	ErrUnknownGeometry = errors.New("gf: unknown geometry")
)

// AesError reports a formula entry that can't be applied to a layer.
type AesError struct {
	Geom  string
	Role  string
	Value string
	Msg   string
}

func (e *AesError) Error() string {
	return fmt.Sprintf("gf: geom_%s: %s = %s: %s", e.Geom, e.Role, e.Value, e.Msg)
}

// Options are the arguments to an entry point other than the plot or
// formula.
type Options struct {
	// Formula is the layer's formula when the first argument is
	// an existing plot.
	Formula string

	// Data is the data to plot. It is required for a new plot. In
	// add mode, it replaces the plot's data for this layer only.
	Data table.Grouping

	// DataName names Data in call expressions. It defaults to
	// "data".
	DataName string

	// Verbose logs the call expression to Log before evaluating
	// it.
	Verbose bool

	// Add adds a layer to an existing plot. It is implied when
	// the first argument is a *gg.Plot.
	Add bool

	// Args are extra keyword arguments for the geometry call.
	// They override formula literals with the same key, and are
	// overridden by the geometry's fixed arguments.
	Args Args
}
