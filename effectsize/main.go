// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command effectsize reports the effect of one predictor on a fitted
// model's prediction.
//
// Usage:
//
//	effectsize -model mpg.json '~ hp' hp=110 wt=2.6 cyl=6
//
// The formula names the predictor to vary. The name=value arguments
// fix every predictor the model uses, including the varied one. A
// continuous predictor is increased by -step and the result is a
// slope. A categorical predictor is changed to the level given by
// -to, or to the model's first other level, and the result is a
// change.
//
// Model files are JSON, of the form {"kind": "linear"|"tree",
// "model": {...}}.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/aclements/go-ggformula/effect"
)

func main() {
	log.SetPrefix("effectsize: ")
	log.SetFlags(0)

	var (
		flagModel = flag.String("model", "", "read fitted model from `file`")
		flagType  = flag.String("type", "response", "prediction `scale`: response or link")
		flagStep  = flag.Float64("step", 1, "step `size` for continuous predictors")
		flagTo    = flag.String("to", "", "comparison `level` for categorical predictors")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -model file [flags] formula name=value...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if *flagModel == "" || flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	typ, err := effect.ParseType(*flagType)
	if err != nil {
		log.Fatal(err)
	}
	f, err := os.Open(*flagModel)
	if err != nil {
		log.Fatal(err)
	}
	m, err := effect.Load(f)
	f.Close()
	if err != nil {
		log.Fatal(err)
	}

	fixed, err := effect.ParseValues(m, flag.Args()[1:])
	if err != nil {
		log.Fatal(err)
	}
	r, err := effect.EffectSize(m, flag.Arg(0), fixed, effect.Options{Type: typ, Step: *flagStep, To: *flagTo})
	if err != nil {
		log.Fatal(err)
	}
	report(os.Stdout, r)
}

// report writes r as a table.
func report(w io.Writer, r *effect.Result) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	if r.Classes == nil {
		fmt.Fprintf(tw, "variable\tfrom\tto\t%s\n", r.Label)
		for _, v := range r.Values {
			fmt.Fprintf(tw, "%s\t%v\t%v\t%.6g\n", r.Variable, r.From, r.To, v)
		}
	} else {
		fmt.Fprintf(tw, "variable\tfrom\tto\tclass\t%s\n", r.Label)
		for i, v := range r.Values {
			fmt.Fprintf(tw, "%s\t%v\t%v\t%s\t%.6g\n", r.Variable, r.From, r.To, r.Classes[i], v)
		}
	}
	tw.Flush()
}
