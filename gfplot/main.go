// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gfplot plots data files using formulas.
//
// Each layer of the plot is given as a geometry name followed by a
// formula. For example,
//
//	gfplot -data mtcars.csv -o mpg.svg point 'mpg ~ hp + color:cyl' lm 'mpg ~ hp'
//
// plots mpg against hp as points colored by cyl, and adds a least
// squares fit. The first layer creates the plot and later layers add
// to it.
//
// Layers can also be read from a script file with -script. Each
// non-blank line of the script that doesn't start with "#" is a
// layer, written as a geometry, a formula, and optional key=value
// arguments, quoted as in a shell:
//
//	point "mpg ~ hp + color:cyl"
//	smooth "mpg ~ hp" span=0.9
//
// Data files are CSV files or Go benchmark results [1]. If -data
// matches more than one file, the files are merged and a "file" column
// records where each row came from. Use -list to list the geometries
// and -table to print the data instead of plotting it.
//
// [1] https://github.com/golang/proposal/blob/master/design/14313-benchmark-format.md
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-ggformula/dataset"
	"github.com/aclements/go-ggformula/gf"
	"golang.org/x/crypto/ssh/terminal"
)

func main() {
	log.SetPrefix("gfplot: ")
	log.SetFlags(0)

	var (
		flagData    = flag.String("data", "-", "read data from files matching `pattern`, which may use **")
		flagFormat  = flag.String("format", "", "data `format`: "+strings.Join(dataset.Formats(), " or ")+" (default: from file extension)")
		flagOut     = flag.String("o", "", "write output to `file` (default: stdout)")
		flagWidth   = flag.Int("w", 640, "plot width in `pixels`")
		flagHeight  = flag.Int("h", 480, "plot height in `pixels`")
		flagTitle   = flag.String("title", "", "plot `title`")
		flagScript  = flag.String("script", "", "read layers from `file`")
		flagVerbose = flag.Bool("v", false, "print the call expression of each layer")
		flagList    = flag.Bool("list", false, "list geometries and exit")
		flagTable   = flag.Bool("table", false, "output the data table instead of a plot")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [geom formula]...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *flagList {
		for _, name := range gf.Geometries() {
			fmt.Println(name)
		}
		return
	}

	layers, err := parseLayers(flag.Args())
	if err != nil {
		log.Fatal(err)
	}
	if *flagScript != "" {
		f, err := os.Open(*flagScript)
		if err != nil {
			log.Fatal(err)
		}
		more, err := parseScript(f, *flagScript)
		f.Close()
		if err != nil {
			log.Fatal(err)
		}
		layers = append(layers, more...)
	}
	if len(layers) == 0 && !*flagTable {
		flag.Usage()
		os.Exit(2)
	}

	paths, err := dataset.Glob(*flagData)
	if err != nil {
		log.Fatal(err)
	}
	tab, err := dataset.OpenAll(paths, *flagFormat)
	if err != nil {
		log.Fatal(err)
	}
	name := "data"
	if len(paths) == 1 {
		name = dataset.Name(paths[0])
	}

	// Prepare for output.
	if *flagOut == "" && !*flagTable && terminal.IsTerminal(int(os.Stdout.Fd())) {
		log.Fatal("refusing to write SVG to a terminal; use -o")
	}
	var w io.Writer = os.Stdout
	if *flagOut != "" {
		f, err := os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		w = f
	}

	if *flagTable {
		table.Fprint(w, tab)
		return
	}

	p, err := build(tab, name, layers, *flagVerbose)
	if err != nil {
		log.Fatal(err)
	}
	if *flagTitle != "" {
		p.Add(gg.Title(*flagTitle))
	}
	if err := p.WriteSVG(w, *flagWidth, *flagHeight); err != nil {
		log.Fatal(err)
	}
}

// build creates a plot of data from layers. The first layer creates the
// plot and each later layer adds to it.
func build(data table.Grouping, name string, layers []layer, verbose bool) (*gg.Plot, error) {
	var p *gg.Plot
	for _, l := range layers {
		f, err := gf.Lookup(l.geom)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.pos, err)
		}
		opts := gf.Options{Verbose: verbose, Args: l.args}
		var first interface{} = l.formula
		if p == nil {
			opts.Data, opts.DataName = data, name
		} else {
			first, opts.Formula = p, l.formula
		}
		if p, err = f(first, opts); err != nil {
			return nil, fmt.Errorf("%s: %w", l.pos, err)
		}
	}
	return p, nil
}
