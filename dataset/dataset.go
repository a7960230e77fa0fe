// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dataset reads data files into tables.
//
// Two formats are supported: CSV files with a header row, and Go
// benchmark results, as specified at
// https://github.com/golang/proposal/blob/master/design/14313-benchmark-format.md
package dataset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aclements/go-gg/table"
)

var readers = map[string]func(io.Reader) (*table.Table, error){
	"csv":   ReadCSV,
	"bench": ReadBench,
}

// Formats returns the names of the supported formats.
func Formats() []string {
	var names []string
	for name := range readers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open reads the data file at path, or standard input if path is "-".
// If format is "", it is chosen from path's extension: ".csv" files
// are CSV and anything else is benchmark results.
func Open(path, format string) (*table.Table, error) {
	if format == "" {
		format = "bench"
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			format = "csv"
		}
	}
	read, ok := readers[format]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(Formats(), ", "))
	}

	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	t, err := read(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Name returns a name for the data at path for use in call
// expressions.
func Name(path string) string {
	if path == "-" {
		return "stdin"
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
