// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"math"
	"reflect"

	"github.com/aclements/go-gg/table"
	"github.com/bmatcuk/doublestar/v4"
)

// FileCol is the column OpenAll adds to record each row's file.
const FileCol = "file"

// Glob returns the files matching pattern, which may use "**" to match
// any number of directories. "-" is returned as is.
func Glob(pattern string) ([]string, error) {
	if pattern == "-" {
		return []string{"-"}, nil
	}
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%s: no matching files", pattern)
	}
	return paths, nil
}

// OpenAll reads and merges the data files at paths. If there is more
// than one path, the merged table has an extra FileCol column giving
// the Name of each row's file. Columns missing from some files are
// filled with NaN or "".
func OpenAll(paths []string, format string) (*table.Table, error) {
	if len(paths) == 1 {
		return Open(paths[0], format)
	}
	tabs := make([]*table.Table, len(paths))
	for i, path := range paths {
		t, err := Open(path, format)
		if err != nil {
			return nil, err
		}
		if t.Column(FileCol) != nil {
			return nil, fmt.Errorf("%s: already has a %q column", path, FileCol)
		}
		tabs[i] = t
	}
	return merge(paths, tabs)
}

var fills = map[reflect.Kind]interface{}{
	reflect.Float64: math.NaN(),
	reflect.String:  "",
}

func merge(paths []string, tabs []*table.Table) (*table.Table, error) {
	var cols []string
	types := make(map[string]reflect.Type)
	rows := 0
	for i, t := range tabs {
		rows += t.Len()
		for _, col := range t.Columns() {
			typ := reflect.TypeOf(t.Column(col))
			old, ok := types[col]
			if !ok {
				types[col] = typ
				cols = append(cols, col)
			} else if old != typ {
				return nil, fmt.Errorf("%s: column %q is %s, but %s elsewhere", paths[i], col, typ.Elem(), old.Elem())
			}
		}
	}

	b := new(table.Builder)
	for _, col := range cols {
		out := reflect.MakeSlice(types[col], 0, rows)
		for i, t := range tabs {
			if v := t.Column(col); v != nil {
				out = reflect.AppendSlice(out, reflect.ValueOf(v))
				continue
			}
			fill, ok := fills[types[col].Elem().Kind()]
			if !ok {
				return nil, fmt.Errorf("%s: missing %s column %q", paths[i], types[col].Elem(), col)
			}
			for j := 0; j < t.Len(); j++ {
				out = reflect.Append(out, reflect.ValueOf(fill))
			}
		}
		b.Add(col, out.Interface())
	}

	files := make([]string, 0, rows)
	for i, t := range tabs {
		name := Name(paths[i])
		for j := 0; j < t.Len(); j++ {
			files = append(files, name)
		}
	}
	b.Add(FileCol, files)
	return b.Done(), nil
}
